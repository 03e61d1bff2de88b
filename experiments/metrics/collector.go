package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Duration    time.Duration
	Iterations  int
	Rollouts    int
	Decided     int // Iterations that reached a node with a known outcome
	Simulations int
	Exploration float64
}

type MoveMetric struct {
	Step   int
	Player string
	Move   string
	SearchMetric
}

type GameMetric struct {
	ID             string
	StartingPlayer int // AgentConfig.ID
	Winner         string
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(simulations int, exploration float64)
	AddIteration()
	AddRollouts(n int)
	AddDecided()
	Complete() SearchMetric
}

type collector struct {
	simulations int
	exploration float64
	startTime   time.Time
	iterations  atomic.Int32
	rollouts    atomic.Int32
	decided     atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

// Start resets the counters for a new search.
func (m *collector) Start(simulations int, exploration float64) {
	m.startTime = time.Now()
	m.simulations = simulations
	m.exploration = exploration
	m.iterations.Store(0)
	m.rollouts.Store(0)
	m.decided.Store(0)
}

func (m *collector) AddIteration() {
	m.iterations.Add(1)
}

func (m *collector) AddRollouts(n int) {
	m.rollouts.Add(int32(n))
}

func (m *collector) AddDecided() {
	m.decided.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Duration:    time.Since(m.startTime),
		Iterations:  int(m.iterations.Load()),
		Rollouts:    int(m.rollouts.Load()),
		Decided:     int(m.decided.Load()),
		Simulations: m.simulations,
		Exploration: m.exploration,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(simulations int, exploration float64) {}
func (m *dummyCollector) AddIteration()                              {}
func (m *dummyCollector) AddRollouts(n int)                          {}
func (m *dummyCollector) AddDecided()                                {}
func (m *dummyCollector) Complete() SearchMetric                     { return SearchMetric{} }
