// Package engine implements the Connect Four rules: the board with its
// gravity rule, four-in-a-row detection, and the turn state machine.
// It has no rendering or input dependencies; presentation layers drive a
// Session and observe it through a Listener.
package engine

import (
	"fmt"
	"strings"
)

// Default board dimensions.
const (
	DefaultRows = 6
	DefaultCols = 7
)

// Player identifies a participant. NoPlayer doubles as the empty cell.
type Player uint8

const (
	NoPlayer Player = iota
	Player1
	Player2
)

// Other returns the opponent of p.
func (p Player) Other() Player {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	default:
		return NoPlayer
	}
}

// Valid reports whether p is Player1 or Player2.
func (p Player) Valid() bool {
	return p == Player1 || p == Player2
}

// String returns "1", "2" or "-" for NoPlayer.
func (p Player) String() string {
	switch p {
	case Player1:
		return "1"
	case Player2:
		return "2"
	default:
		return "-"
	}
}

// Cell is the content of one board square.
type Cell = Player

// Empty is the unoccupied cell.
const Empty Cell = NoPlayer

// Coord addresses a board cell. Row 0 is the top row.
type Coord struct {
	Row, Col int
}

// Board is a rows x cols grid indexed grid[row][col], row 0 at the top.
// Pieces fall to the largest empty row index of a column.
type Board struct {
	rows   int
	cols   int
	grid   [][]Cell
	filled int // occupied cells, lets IsFull skip the scan
}

// NewBoard creates an empty board. Both dimensions should be at least 4,
// otherwise no four-in-a-row can exist along that axis. Non-positive
// dimensions panic.
func NewBoard(rows, cols int) *Board {
	if rows < 1 || cols < 1 {
		panic(fmt.Sprintf("engine: invalid board size %dx%d", rows, cols))
	}
	b := &Board{rows: rows, cols: cols}
	b.grid = make([][]Cell, rows)
	for y := range b.grid {
		b.grid[y] = make([]Cell, cols)
	}
	return b
}

// Rows returns the board height.
func (b *Board) Rows() int {
	return b.rows
}

// Cols returns the board width.
func (b *Board) Cols() int {
	return b.cols
}

// InBounds reports whether (row, col) lies on the board.
func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.rows && col >= 0 && col < b.cols
}

// At returns the cell at (row, col), or Empty when out of bounds.
func (b *Board) At(row, col int) Cell {
	if !b.InBounds(row, col) {
		return Empty
	}
	return b.grid[row][col]
}

// LandingRow returns the row a piece dropped into col would occupy.
// ok is false when col is out of range or the column is full.
func (b *Board) LandingRow(col int) (row int, ok bool) {
	if col < 0 || col >= b.cols {
		return 0, false
	}
	for y := b.rows - 1; y >= 0; y-- {
		if b.grid[y][col] == Empty {
			return y, true
		}
	}
	return 0, false
}

// ColumnFull reports whether col has no empty cell left.
// Out-of-range columns report false.
func (b *Board) ColumnFull(col int) bool {
	if col < 0 || col >= b.cols {
		return false
	}
	return b.grid[0][col] != Empty
}

// Place puts p's piece at (row, col). The cell must be the column's landing
// row; anything else is a programming error and panics.
func (b *Board) Place(row, col int, p Player) {
	if !p.Valid() {
		panic(fmt.Sprintf("engine: place invalid player %d", p))
	}
	if !b.InBounds(row, col) {
		panic(fmt.Sprintf("engine: place out of bounds (%d,%d) on %dx%d", row, col, b.rows, b.cols))
	}
	if b.grid[row][col] != Empty {
		panic(fmt.Sprintf("engine: place into occupied cell (%d,%d)", row, col))
	}
	if row+1 < b.rows && b.grid[row+1][col] == Empty {
		panic(fmt.Sprintf("engine: place at (%d,%d) would float above an empty cell", row, col))
	}
	b.grid[row][col] = p
	b.filled++
}

// IsFull reports whether every cell is occupied.
func (b *Board) IsFull() bool {
	return b.filled == b.rows*b.cols
}

// Filled returns the number of occupied cells.
func (b *Board) Filled() int {
	return b.filled
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	c := &Board{rows: b.rows, cols: b.cols, filled: b.filled}
	c.grid = make([][]Cell, b.rows)
	for y := range b.grid {
		c.grid[y] = append([]Cell(nil), b.grid[y]...)
	}
	return c
}

// Grid returns a copy of the cells, row by row.
func (b *Board) Grid() [][]Cell {
	return b.Clone().grid
}

// String dumps the board one row per line, top row first,
// using '.' for empty cells and '1'/'2' for pieces.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow(b.rows * (b.cols + 1))
	for y := range b.grid {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, c := range b.grid[y] {
			if c == Empty {
				sb.WriteByte('.')
			} else {
				sb.WriteString(c.String())
			}
		}
	}
	return sb.String()
}

// ParseBoard builds a board from the String format. Blank lines and
// surrounding whitespace are ignored. The result must satisfy gravity.
func ParseBoard(s string) (*Board, error) {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("engine: parse board: empty input")
	}

	cols := len(lines[0])
	b := NewBoard(len(lines), cols)
	for y, line := range lines {
		if len(line) != cols {
			return nil, fmt.Errorf("engine: parse board: row %d has %d cells, want %d", y, len(line), cols)
		}
		for x, r := range line {
			switch r {
			case '.':
			case '1':
				b.grid[y][x] = Player1
				b.filled++
			case '2':
				b.grid[y][x] = Player2
				b.filled++
			default:
				return nil, fmt.Errorf("engine: parse board: unknown cell %q at (%d,%d)", r, y, x)
			}
		}
	}

	if c, ok := b.floatingCell(); ok {
		return nil, fmt.Errorf("engine: parse board: piece at (%d,%d) floats above an empty cell", c.Row, c.Col)
	}
	return b, nil
}

// floatingCell finds an occupied cell with an empty cell directly below it.
func (b *Board) floatingCell() (Coord, bool) {
	for y := 0; y < b.rows-1; y++ {
		for x := 0; x < b.cols; x++ {
			if b.grid[y][x] != Empty && b.grid[y+1][x] == Empty {
				return Coord{Row: y, Col: x}, true
			}
		}
	}
	return Coord{}, false
}
