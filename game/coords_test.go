package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatPoint(t *testing.T) {
	require.Equal(t, "A1", FormatPoint(0, 7), "Point 0 is the bottom left corner")
	require.Equal(t, "G7", FormatPoint(48, 7))
	require.Equal(t, "C2", FormatPoint(9, 7))
	require.Equal(t, "J1", FormatPoint(8, 9), "Column I is skipped")
	require.Equal(t, "Z25", FormatPoint(624, 25))
	require.Equal(t, "pass", FormatPoint(Pass, 7))
}

func TestParsePoint(t *testing.T) {
	t.Run("round trips every point", func(t *testing.T) {
		for _, size := range []int{MinSize, 7, 19, MaxSize} {
			for p := Point(0); int(p) < size*size; p++ {
				got, err := ParsePoint(FormatPoint(p, size), size)
				require.NoError(t, err)
				require.Equal(t, p, got)
			}
		}
	})

	t.Run("is case insensitive", func(t *testing.T) {
		p, err := ParsePoint(" c2 ", 7)
		require.NoError(t, err)
		require.Equal(t, Point(9), p)

		p, err = ParsePoint("PASS", 7)
		require.NoError(t, err)
		require.Equal(t, Pass, p)
	})

	t.Run("rejects bad vertices", func(t *testing.T) {
		for _, vertex := range []string{"", "a", "i3", "a0", "a8", "h1", "ax", "11"} {
			_, err := ParsePoint(vertex, 7)
			require.Error(t, err, "Vertex %q should be rejected", vertex)
		}
	})
}

func TestParseColor(t *testing.T) {
	for in, want := range map[string]Color{"b": Black, "BLACK": Black, "w": White, "White": White} {
		got, err := ParseColor(in)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := ParseColor("red")
	require.Error(t, err)
}
