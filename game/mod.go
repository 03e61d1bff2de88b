package game

import "errors"

const (
	MinSize = 5
	MaxSize = 25

	WinLength = 5
)

// ErrInvalidSize is returned when a board is requested outside [MinSize, MaxSize].
var ErrInvalidSize = errors.New("invalid board size")

// Color is the content of a cell, and doubles as a game outcome (Black, White, Draw or Empty
// for undetermined).
type Color int8

const (
	Empty Color = iota
	Black
	White
	Border
	Draw
)

func (c Color) Opponent() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	default:
		return c
	}
}

func (c Color) IsStone() bool {
	return c == Black || c == White
}

func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	case Border:
		return "border"
	case Draw:
		return "draw"
	default:
		return "empty"
	}
}

// Point is an unpadded cell index in [0, size*size). Padded indices never leave this package
// except inside Window values.
type Point int

const (
	Pass   Point = -1
	NoMove Point = -2
)

// Window is a contiguous run of padded indices along a row, column or diagonal.
type Window []int
