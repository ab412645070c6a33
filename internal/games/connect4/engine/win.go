package engine

// RunLength is the number of aligned pieces needed to win.
const RunLength = 4

// Run is a line of RunLength coordinates checked together.
type Run [RunLength]Coord

// direction is a (row, col) step.
type direction struct {
	dy, dx int
}

// Forward directions only: every line is found from exactly one end.
var directions = [...]direction{
	{0, 1},  // horizontal
	{1, 0},  // vertical
	{1, 1},  // diagonal down-right
	{1, -1}, // diagonal down-left
}

// HasWon reports whether p owns four aligned cells anywhere on the board.
// It depends only on the board contents, not on move order.
func HasWon(b *Board, p Player) bool {
	_, ok := WinningRun(b, p)
	return ok
}

// WinningRun returns the first run owned by p, scanning start cells in
// row-major order and directions in the order above.
func WinningRun(b *Board, p Player) (Run, bool) {
	if !p.Valid() {
		return Run{}, false
	}
	for y := 0; y < b.rows; y++ {
		for x := 0; x < b.cols; x++ {
			for _, d := range directions {
				if run, ok := runFrom(b, p, y, x, d); ok {
					return run, true
				}
			}
		}
	}
	return Run{}, false
}

func runFrom(b *Board, p Player, y, x int, d direction) (Run, bool) {
	var run Run
	for i := range RunLength {
		r, c := y+i*d.dy, x+i*d.dx
		if !b.InBounds(r, c) || b.grid[r][c] != p {
			return Run{}, false
		}
		run[i] = Coord{Row: r, Col: c}
	}
	return run, true
}
