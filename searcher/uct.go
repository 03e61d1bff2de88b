package searcher

import "math"

// uct = winRate + c*sqrt(ln(N)/n). Unvisited nodes score 0, so selection prefers to simulate
// an explored node again before it expands a new child.
func uct(winRate, sims, parentSims, exploration float64) float64 {
	if sims == 0 {
		return 0
	}
	return winRate + exploration*math.Sqrt(math.Log(parentSims)/sims)
}
