package terminal

import (
	"io"
	"log/slog"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/mnk-tictactoe/internal/entity"
	"github.com/rocketscienceinc/mnk-tictactoe/internal/tictactoe"
)

// fixedRand always returns the same value.
type fixedRand int

func (that fixedRand) IntN(int) int {
	return int(that)
}

// scriptedBot plays its moves in order.
type scriptedBot struct {
	moves []entity.Position
}

func (that *scriptedBot) ChooseMove(*entity.Board, entity.Cell, entity.Cell, int) (entity.Position, error) {
	move := that.moves[0]
	that.moves = that.moves[1:]
	return move, nil
}

func newSession(t *testing.T, rows, cols, k int, moves ...entity.Position) *Session {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	controller := tictactoe.NewGameController(logger, &scriptedBot{moves: moves}, fixedRand(0))

	session, err := NewSession(logger, controller, rows, cols, k)
	require.NoError(t, err)

	return session
}

func newBoardView(session *Session) (*BoardView, *int) {
	changes := 0
	view := NewBoardView(session, func() { changes++ })
	view.SetRect(0, 0, 40, 20)

	return view, &changes
}

func click(view *BoardView, x, y int) bool {
	consumed, _ := view.MouseHandler()(tview.MouseLeftClick, tcell.NewEventMouse(x, y, tcell.Button1, 0), func(tview.Primitive) {})
	return consumed
}

func press(view *BoardView, key tcell.Key, ch rune) {
	view.InputHandler()(tcell.NewEventKey(key, ch, tcell.ModNone), func(tview.Primitive) {})
}

func TestBoardView_cellAt(t *testing.T) {
	view, _ := newBoardView(newSession(t, 3, 3, 3))

	cases := []struct {
		name     string
		x, y     int
		row, col int
		ok       bool
	}{
		{"top left", 0, 0, 0, 0, true},
		{"inside first cell", 2, 0, 0, 0, true},
		{"second column", 4, 0, 0, 1, true},
		{"center", 5, 2, 1, 1, true},
		{"bottom right", 10, 4, 2, 2, true},
		{"vertical separator", 3, 0, 0, 0, false},
		{"horizontal separator", 1, 1, 0, 0, false},
		{"right of the grid", 12, 0, 0, 0, false},
		{"below the grid", 0, 6, 0, 0, false},
		{"negative", -1, 0, 0, 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			row, col, ok := view.cellAt(tc.x, tc.y)

			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.row, row)
				assert.Equal(t, tc.col, col)
			}
		})
	}
}

func TestBoardView_Mouse(t *testing.T) {
	t.Run("Left click on a cell plays it and the engine replies", func(t *testing.T) {
		// Given: a 3x3 session where the human holds X
		session := newSession(t, 3, 3, 3, entity.Position{Row: 0, Col: 0})
		view, changes := newBoardView(session)

		// When: the center cell is clicked
		consumed := click(view, 5, 2)

		// Then: X is in the center, O answered and the view asked for a redraw
		assert.True(t, consumed)
		assert.Equal(t, [][]entity.Cell{
			{entity.MarkO, entity.EmptyCell, entity.EmptyCell},
			{entity.EmptyCell, entity.MarkX, entity.EmptyCell},
			{entity.EmptyCell, entity.EmptyCell, entity.EmptyCell},
		}, session.Game().Board.Cells())
		assert.Equal(t, 1, *changes)
	})

	t.Run("Click on a separator is no move", func(t *testing.T) {
		session := newSession(t, 3, 3, 3)
		view, changes := newBoardView(session)

		assert.True(t, click(view, 3, 0))

		assert.False(t, session.Game().Board.IsFull())
		assert.Equal(t, 9, countEmpty(session.Game().Board))
		assert.Equal(t, 0, *changes)
	})

	t.Run("Click outside the view is not consumed", func(t *testing.T) {
		session := newSession(t, 3, 3, 3)
		view, _ := newBoardView(session)

		assert.False(t, click(view, 50, 30))
	})
}

func TestBoardView_Keys(t *testing.T) {
	t.Run("Arrows move the cursor and Enter plays", func(t *testing.T) {
		session := newSession(t, 3, 3, 3, entity.Position{Row: 0, Col: 0})
		view, _ := newBoardView(session)

		// When: moving right, down and pressing Enter
		press(view, tcell.KeyRight, 0)
		press(view, tcell.KeyDown, 0)
		press(view, tcell.KeyEnter, 0)

		// Then: X lands on (1,1)
		cell, err := session.Game().Board.Get(1, 1)
		require.NoError(t, err)
		assert.Equal(t, entity.MarkX, cell)
	})

	t.Run("Cursor stays on the board", func(t *testing.T) {
		session := newSession(t, 2, 2, 2, entity.Position{Row: 1, Col: 1})
		view, _ := newBoardView(session)

		press(view, tcell.KeyUp, 0)
		press(view, tcell.KeyLeft, 0)
		press(view, tcell.KeyRune, ' ')

		cell, err := session.Game().Board.Get(0, 0)
		require.NoError(t, err)
		assert.Equal(t, entity.MarkX, cell)
	})
}

func TestBoardView_Draw(t *testing.T) {
	// Given: a session after one exchange
	session := newSession(t, 3, 3, 3, entity.Position{Row: 2, Col: 2})
	session.Click(0, 1)
	view, _ := newBoardView(session)

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(40, 20)

	// When: the view is drawn
	view.Draw(screen)
	screen.Show()

	// Then: marks sit in the middle of their cells with separators between
	assert.Equal(t, 'X', runeAt(screen, 5, 0))
	assert.Equal(t, 'O', runeAt(screen, 9, 4))
	assert.Equal(t, '│', runeAt(screen, 3, 0))
	assert.Equal(t, '─', runeAt(screen, 0, 1))
	assert.Equal(t, '┼', runeAt(screen, 3, 1))
}

func TestSession(t *testing.T) {
	t.Run("Status shows whose move it is", func(t *testing.T) {
		session := newSession(t, 3, 3, 3)

		assert.Contains(t, session.Status(), "Your move ([blue]X[-])")
	})

	t.Run("Occupied cell leaves a message and no change", func(t *testing.T) {
		session := newSession(t, 3, 3, 3, entity.Position{Row: 0, Col: 0})
		session.Click(1, 1)
		before := session.Game().Board.Cells()

		session.Click(0, 0)

		assert.Equal(t, before, session.Game().Board.Cells())
		assert.Contains(t, session.Status(), "That cell is taken.")
	})

	t.Run("Win is reported and restart starts over", func(t *testing.T) {
		// Given: a 1x3 row won with a single mark
		session := newSession(t, 1, 3, 1)

		// When: the human plays
		session.Click(0, 1)

		// Then: X won, further clicks are refused
		assert.True(t, session.Game().IsFinished())
		assert.Contains(t, session.Status(), "[blue]X[-] won!")
		session.Click(0, 0)
		assert.Contains(t, session.Status(), "Game over")

		// When: restarting
		require.NoError(t, session.Restart())

		// Then: the board is empty again
		assert.Equal(t, 3, countEmpty(session.Game().Board))
		assert.NotContains(t, session.Status(), "Game over")
	})

	t.Run("Invalid configuration fails to start", func(t *testing.T) {
		logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
		controller := tictactoe.NewGameController(logger, &scriptedBot{}, fixedRand(0))

		_, err := NewSession(logger, controller, 3, 3, 4)

		require.Error(t, err)
	})
}

func runeAt(screen tcell.SimulationScreen, x, y int) rune {
	cells, width, _ := screen.GetContents()
	runes := cells[y*width+x].Runes
	if len(runes) == 0 {
		return 0
	}

	return runes[0]
}

func countEmpty(board *entity.Board) int {
	n := 0
	for range board.EmptyCells() {
		n++
	}

	return n
}
