package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rawBoard builds a board from rows without checking gravity, so tests can
// set up positions that could not arise in play.
func rawBoard(t *testing.T, rows ...string) *Board {
	t.Helper()

	b := NewBoard(len(rows), len(rows[0]))
	for y, line := range rows {
		require.Len(t, line, b.Cols(), "row %d", y)
		for x, r := range line {
			switch r {
			case '1':
				b.grid[y][x] = Player1
				b.filled++
			case '2':
				b.grid[y][x] = Player2
				b.filled++
			}
		}
	}
	return b
}

// assertGravity fails if any occupied cell has an empty cell below it.
func assertGravity(t *testing.T, b *Board) {
	t.Helper()

	c, floating := b.floatingCell()
	assert.False(t, floating, "piece at %+v floats\n%s", c, b)
}

func TestNewBoard(t *testing.T) {
	b := NewBoard(DefaultRows, DefaultCols)

	assert.Equal(t, 6, b.Rows())
	assert.Equal(t, 7, b.Cols())
	assert.False(t, b.IsFull())
	assert.Equal(t, 0, b.Filled())

	for y := range b.Rows() {
		for x := range b.Cols() {
			assert.Equal(t, Empty, b.At(y, x))
		}
	}
}

func TestNewBoard_InvalidSizePanics(t *testing.T) {
	assert.Panics(t, func() { NewBoard(0, 7) })
	assert.Panics(t, func() { NewBoard(6, -1) })
}

func TestBoard_LandingRowSequence(t *testing.T) {
	for col := range DefaultCols {
		b := NewBoard(DefaultRows, DefaultCols)
		p := Player1

		for k := range DefaultRows {
			row, ok := b.LandingRow(col)
			require.True(t, ok, "col %d after %d drops", col, k)
			assert.Equal(t, DefaultRows-1-k, row)

			b.Place(row, col, p)
			assertGravity(t, b)
			p = p.Other()
		}

		_, ok := b.LandingRow(col)
		assert.False(t, ok, "col %d should be full", col)
		assert.True(t, b.ColumnFull(col))
	}
}

func TestBoard_LandingRowOutOfRange(t *testing.T) {
	b := NewBoard(DefaultRows, DefaultCols)

	for _, col := range []int{-1, DefaultCols, 100} {
		_, ok := b.LandingRow(col)
		assert.False(t, ok, "col %d", col)
		assert.False(t, b.ColumnFull(col))
	}
}

func TestBoard_PlaceInvariantViolations(t *testing.T) {
	tests := []struct {
		name string
		fn   func(b *Board)
	}{
		{"occupied cell", func(b *Board) {
			b.Place(5, 0, Player1)
			b.Place(5, 0, Player2)
		}},
		{"floating piece", func(b *Board) { b.Place(2, 3, Player1) }},
		{"out of bounds", func(b *Board) { b.Place(6, 0, Player1) }},
		{"negative column", func(b *Board) { b.Place(5, -1, Player1) }},
		{"no player", func(b *Board) { b.Place(5, 0, NoPlayer) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoard(DefaultRows, DefaultCols)
			assert.Panics(t, func() { tt.fn(b) })
		})
	}
}

func TestBoard_IsFullMatchesScan(t *testing.T) {
	b := NewBoard(4, 4)
	p := Player1

	scanFull := func() bool {
		for y := range b.Rows() {
			for x := range b.Cols() {
				if b.At(y, x) == Empty {
					return false
				}
			}
		}
		return true
	}

	for col := range b.Cols() {
		for {
			row, ok := b.LandingRow(col)
			if !ok {
				break
			}
			assert.Equal(t, scanFull(), b.IsFull())
			b.Place(row, col, p)
			p = p.Other()
		}
	}

	assert.True(t, scanFull())
	assert.True(t, b.IsFull())
	assert.Equal(t, 16, b.Filled())
}

func TestBoard_CloneIsIndependent(t *testing.T) {
	b := NewBoard(DefaultRows, DefaultCols)
	b.Place(5, 3, Player1)

	c := b.Clone()
	c.Place(4, 3, Player2)

	assert.Equal(t, Empty, b.At(4, 3))
	assert.Equal(t, 1, b.Filled())
	assert.Equal(t, Player2, c.At(4, 3))
	assert.Equal(t, 2, c.Filled())

	grid := b.Grid()
	grid[0][0] = Player2
	assert.Equal(t, Empty, b.At(0, 0))
}

func TestBoard_StringParseRoundTrip(t *testing.T) {
	text := `
		.......
		.......
		...2...
		...1...
		..121..
		.12121.
	`

	b, err := ParseBoard(text)
	require.NoError(t, err)

	assert.Equal(t, 6, b.Rows())
	assert.Equal(t, 7, b.Cols())
	assert.Equal(t, 10, b.Filled())
	assert.Equal(t, Player2, b.At(2, 3))
	assert.Equal(t, ".......\n.......\n...2...\n...1...\n..121..\n.12121.", b.String())
}

func TestParseBoard_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "  \n ", "empty input"},
		{"ragged", "....\n...", "row 1 has 3 cells"},
		{"unknown glyph", "....\n..x.", "unknown cell"},
		{"floating", "1...\n....", "floats"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBoard(tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestPlayer(t *testing.T) {
	assert.Equal(t, Player2, Player1.Other())
	assert.Equal(t, Player1, Player2.Other())
	assert.Equal(t, NoPlayer, NoPlayer.Other())

	assert.True(t, Player1.Valid())
	assert.True(t, Player2.Valid())
	assert.False(t, NoPlayer.Valid())
	assert.False(t, Player(3).Valid())

	assert.Equal(t, "1", Player1.String())
	assert.Equal(t, "-", NoPlayer.String())
}
