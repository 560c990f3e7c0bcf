package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/rocketscienceinc/mnk-tictactoe/internal/entity"
)

// Each cell is drawn cellWidth-1 columns wide and one row high, followed by
// a separator column and a separator row.
const (
	cellWidth  = 4
	cellHeight = 2
)

// BoardView draws the grid of a Session and turns clicks and keys into moves.
type BoardView struct {
	*tview.Box

	session  *Session
	onChange func()

	selRow, selCol int
}

func NewBoardView(session *Session, onChange func()) *BoardView {
	return &BoardView{
		Box:      tview.NewBox(),
		session:  session,
		onChange: onChange,
	}
}

// ResetSelection puts the keyboard cursor back on the top left cell.
func (that *BoardView) ResetSelection() {
	that.selRow, that.selCol = 0, 0
}

func (that *BoardView) Draw(screen tcell.Screen) {
	that.Box.DrawForSubclass(screen, that)

	x0, y0, _, _ := that.GetInnerRect()
	game := that.session.Game()
	board := game.Board
	rows, cols := board.Rows(), board.Cols()

	lineStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			cell, _ := board.Get(row, col)

			style := tcell.StyleDefault.Foreground(markColor(cell)).Bold(cell != entity.EmptyCell)
			if row == that.selRow && col == that.selCol && !game.IsFinished() {
				style = style.Reverse(true)
			}
			if game.LastMove != nil && game.LastMove.Row == row && game.LastMove.Col == col {
				style = style.Underline(true)
			}

			x, y := x0+col*cellWidth, y0+row*cellHeight
			symbol := ' '
			if cell != entity.EmptyCell {
				symbol = rune(cell.String()[0])
			}
			screen.SetContent(x, y, ' ', nil, style)
			screen.SetContent(x+1, y, symbol, nil, style)
			screen.SetContent(x+2, y, ' ', nil, style)

			if col < cols-1 {
				screen.SetContent(x+3, y, '│', nil, lineStyle)
			}
			if row < rows-1 {
				for dx := 0; dx < cellWidth-1; dx++ {
					screen.SetContent(x+dx, y+1, '─', nil, lineStyle)
				}
				if col < cols-1 {
					screen.SetContent(x+3, y+1, '┼', nil, lineStyle)
				}
			}
		}
	}
}

// cellAt maps a screen position to a board cell. Separators and positions
// outside the grid are not cells.
func (that *BoardView) cellAt(x, y int) (int, int, bool) {
	x0, y0, _, _ := that.GetInnerRect()
	dx, dy := x-x0, y-y0
	if dx < 0 || dy < 0 {
		return 0, 0, false
	}

	if dx%cellWidth == cellWidth-1 || dy%cellHeight == cellHeight-1 {
		return 0, 0, false
	}

	row, col := dy/cellHeight, dx/cellWidth
	if !that.session.Game().Board.InBounds(row, col) {
		return 0, 0, false
	}

	return row, col, true
}

func (that *BoardView) MouseHandler() func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
	return that.WrapMouseHandler(func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
		x, y := event.Position()
		if !that.InRect(x, y) {
			return false, nil
		}

		if action != tview.MouseLeftClick {
			return false, nil
		}

		setFocus(that)

		row, col, ok := that.cellAt(x, y)
		if !ok {
			return true, nil
		}

		that.selRow, that.selCol = row, col
		that.play(row, col)

		return true, nil
	})
}

func (that *BoardView) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return that.WrapInputHandler(func(event *tcell.EventKey, _ func(p tview.Primitive)) {
		switch event.Key() {
		case tcell.KeyUp:
			that.moveSelection(-1, 0)
		case tcell.KeyDown:
			that.moveSelection(1, 0)
		case tcell.KeyLeft:
			that.moveSelection(0, -1)
		case tcell.KeyRight:
			that.moveSelection(0, 1)
		case tcell.KeyEnter:
			that.play(that.selRow, that.selCol)
		case tcell.KeyRune:
			if event.Rune() == ' ' {
				that.play(that.selRow, that.selCol)
			}
		}
	})
}

func (that *BoardView) moveSelection(dRow, dCol int) {
	board := that.session.Game().Board
	if board.InBounds(that.selRow+dRow, that.selCol+dCol) {
		that.selRow += dRow
		that.selCol += dCol
	}
}

func (that *BoardView) play(row, col int) {
	that.session.Click(row, col)

	if that.onChange != nil {
		that.onChange()
	}
}

func markColor(mark entity.Cell) tcell.Color {
	switch mark {
	case entity.MarkX:
		return tcell.ColorBlue
	case entity.MarkO:
		return tcell.ColorRed
	default:
		return tcell.ColorDefault
	}
}
