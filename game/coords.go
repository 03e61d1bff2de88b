package game

import (
	"fmt"
	"strconv"
	"strings"
)

// Column letters skip I. Row 1 is the bottom row, which is unpadded row 0.
const columnLetters = "ABCDEFGHJKLMNOPQRSTUVWXYZ"

// FormatPoint renders p as a vertex such as "C3", or "pass".
func FormatPoint(p Point, size int) string {
	if p == Pass {
		return "pass"
	}
	if p < 0 || int(p) >= size*size {
		return "?"
	}
	row, col := int(p)/size, int(p)%size
	return fmt.Sprintf("%c%d", columnLetters[col], row+1)
}

// ParsePoint reads a vertex, case-insensitively. "pass" yields Pass.
func ParsePoint(vertex string, size int) (Point, error) {
	vertex = strings.ToUpper(strings.TrimSpace(vertex))
	if vertex == "PASS" {
		return Pass, nil
	}
	if len(vertex) < 2 {
		return NoMove, fmt.Errorf("invalid vertex: %q", vertex)
	}

	col := strings.IndexByte(columnLetters, vertex[0])
	if col < 0 {
		return NoMove, fmt.Errorf("invalid column in vertex: %q", vertex)
	}
	row, err := strconv.Atoi(vertex[1:])
	if err != nil {
		return NoMove, fmt.Errorf("invalid row in vertex: %q", vertex)
	}
	if col >= size || row < 1 || row > size {
		return NoMove, fmt.Errorf("vertex out of bounds: %q", vertex)
	}
	return Point((row-1)*size + col), nil
}

// ParseColor accepts "b", "black", "w" and "white" in any case.
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "b", "black":
		return Black, nil
	case "w", "white":
		return White, nil
	default:
		return Empty, fmt.Errorf("invalid color: %q", s)
	}
}
