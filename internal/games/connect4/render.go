package connect4

import (
	"fmt"

	"github.com/vovakirdan/tui-connect4/internal/core"
	"github.com/vovakirdan/tui-connect4/internal/games/connect4/engine"
)

const (
	cellWidth = 4 // "│ X " per column, plus one closing border

	titleY  = 0
	turnY   = 1
	labelY  = 2
	cursorY = 3
	gridY   = 4 // top border

	marginX = 2
)

func (g *Game) boardWidth() int {
	return g.opts.Cols*cellWidth + 1
}

func (g *Game) minWidth() int {
	return g.boardWidth() + 2*marginX
}

// minHeight covers the header, the grid with both borders, a blank line
// and the status line.
func (g *Game) minHeight() int {
	return gridY + g.opts.Rows + 2 + 2
}

func (g *Game) boardX() int {
	return (g.screenW - g.boardWidth()) / 2
}

// cellX returns the screen column of the piece glyph in board column col.
func (g *Game) cellX(col int) int {
	return g.boardX() + col*cellWidth + 2
}

// ColumnAt maps a screen position (e.g. a mouse click) to a board column.
// The label row, cursor row and the grid itself are clickable.
func (g *Game) ColumnAt(x, y int) (int, bool) {
	if g.tooSmall {
		return 0, false
	}
	area := core.NewRect(g.boardX()+1, labelY, g.boardWidth()-2, gridY+g.opts.Rows+2-labelY)
	if !area.Contains(x, y) {
		return 0, false
	}
	return (x - area.X) / cellWidth, true
}

// Render draws the game into dst.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	g.renderHeader(dst)
	g.renderGrid(dst)
	g.renderPieces(dst)

	statusY := gridY + g.opts.Rows + 3
	dst.DrawTextCenteredColor(statusY, g.status, g.statusColor)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", g.minWidth(), g.minHeight()))
}

func (g *Game) renderHeader(dst *core.Screen) {
	dst.DrawTextCenteredColor(titleY, g.Title(), core.ColorBrightWhite)

	bx := g.boardX()
	switch g.session.Phase() {
	case engine.PhaseInProgress:
		s := g.style(g.session.ActivePlayer())
		dst.DrawTextColor(bx, turnY, fmt.Sprintf("%s (%c) to move", s.Name, s.Symbol), s.Color)
	case engine.PhaseWon:
		s := g.style(g.session.Winner())
		dst.DrawTextColor(bx, turnY, fmt.Sprintf("%s (%c) wins", s.Name, s.Symbol), s.Color)
	case engine.PhaseTied:
		dst.DrawText(bx, turnY, "Tie game")
	}

	moves := fmt.Sprintf("Moves: %d", g.session.Moves())
	dst.DrawText(bx+g.boardWidth()-len(moves), turnY, moves)

	for col := range g.opts.Cols {
		dst.DrawTextColor(g.cellX(col)-1, labelY, fmt.Sprintf("%2d", col+1), core.ColorGray)
	}

	if g.session.Phase().Terminal() {
		return
	}
	s := g.style(g.session.ActivePlayer())
	dst.SetColor(g.cellX(g.cursor), cursorY, '▼', s.Color)
}

func (g *Game) renderGrid(dst *core.Screen) {
	bx := g.boardX()
	bottom := gridY + g.opts.Rows + 1

	for col := 0; col <= g.opts.Cols; col++ {
		x := bx + col*cellWidth

		top, mid, low := '┬', '│', '┴'
		switch col {
		case 0:
			top, low = '┌', '└'
		case g.opts.Cols:
			top, low = '┐', '┘'
		}

		dst.SetColor(x, gridY, top, core.ColorBlue)
		dst.SetColor(x, bottom, low, core.ColorBlue)
		for y := gridY + 1; y < bottom; y++ {
			dst.SetColor(x, y, mid, core.ColorBlue)
		}

		if col < g.opts.Cols {
			for i := 1; i < cellWidth; i++ {
				dst.SetColor(x+i, gridY, '─', core.ColorBlue)
				dst.SetColor(x+i, bottom, '─', core.ColorBlue)
			}
		}
	}
}

func (g *Game) renderPieces(dst *core.Screen) {
	board := g.session.Board()

	for row := range board.Rows() {
		for col := range board.Cols() {
			p := board.At(row, col)
			if p == engine.Empty {
				continue
			}
			s := g.style(p)
			dst.SetColor(g.cellX(col), gridY+1+row, s.Symbol, s.Color)
		}
	}

	// Ghost piece where a drop at the cursor would land.
	if row, ok := g.session.LandingRow(g.cursor); ok {
		s := g.style(g.session.ActivePlayer())
		dst.SetColor(g.cellX(g.cursor), gridY+1+row, s.Symbol, core.ColorGray)
	}

	if g.hasLast {
		y := gridY + 1 + g.lastMove.Row
		x := g.cellX(g.lastMove.Col)
		dst.SetColor(x-1, y, '(', core.ColorGray)
		dst.SetColor(x+1, y, ')', core.ColorGray)
	}

	if run, ok := g.session.WinningRun(); ok {
		for _, c := range run {
			y := gridY + 1 + c.Row
			x := g.cellX(c.Col)
			dst.SetColor(x-1, y, '[', core.ColorBrightWhite)
			dst.SetColor(x+1, y, ']', core.ColorBrightWhite)
		}
	}
}
