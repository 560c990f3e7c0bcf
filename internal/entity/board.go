package entity

import (
	"encoding/json"
	"fmt"
	"iter"

	"github.com/rocketscienceinc/mnk-tictactoe/internal/apperror"
)

// Cell is the content of a single board square.
type Cell uint8

const (
	EmptyCell Cell = iota
	MarkX
	MarkO
)

// FirstMark always opens the game.
const FirstMark = MarkX

func (that Cell) String() string {
	switch that {
	case MarkX:
		return "X"
	case MarkO:
		return "O"
	default:
		return ""
	}
}

// Opponent returns the other mark. EmptyCell has no opponent.
func (that Cell) Opponent() Cell {
	switch that {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	default:
		return EmptyCell
	}
}

func (that Cell) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Cell) UnmarshalText(text []byte) error {
	switch string(text) {
	case "":
		*that = EmptyCell
	case "X":
		*that = MarkX
	case "O":
		*that = MarkO
	default:
		return fmt.Errorf("%w: %q", apperror.ErrInvalidMark, text)
	}

	return nil
}

// Position addresses a board square, zero-based.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Board is a rows x cols grid stored row-major.
type Board struct {
	rows  int
	cols  int
	cells []Cell
}

func NewBoard(rows, cols int) (*Board, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: board %dx%d", apperror.ErrInvalidConfiguration, rows, cols)
	}

	return &Board{
		rows:  rows,
		cols:  cols,
		cells: make([]Cell, rows*cols),
	}, nil
}

func (that *Board) Rows() int {
	return that.rows
}

func (that *Board) Cols() int {
	return that.cols
}

func (that *Board) InBounds(row, col int) bool {
	return row >= 0 && row < that.rows && col >= 0 && col < that.cols
}

func (that *Board) Get(row, col int) (Cell, error) {
	if !that.InBounds(row, col) {
		return EmptyCell, fmt.Errorf("%w: row %d, col %d", apperror.ErrOutOfBounds, row, col)
	}

	return that.cells[row*that.cols+col], nil
}

// Set places mark on an empty square. The board is left untouched on error.
func (that *Board) Set(row, col int, mark Cell) error {
	if !that.InBounds(row, col) {
		return fmt.Errorf("%w: row %d, col %d", apperror.ErrOutOfBounds, row, col)
	}

	if mark != MarkX && mark != MarkO {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidMark, mark)
	}

	idx := row*that.cols + col
	if that.cells[idx] != EmptyCell {
		return fmt.Errorf("%w: row %d, col %d", apperror.ErrCellOccupied, row, col)
	}

	that.cells[idx] = mark

	return nil
}

func (that *Board) IsFull() bool {
	for _, cell := range that.cells {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// EmptyCells yields the free squares in row-major order.
func (that *Board) EmptyCells() iter.Seq[Position] {
	return func(yield func(Position) bool) {
		for idx, cell := range that.cells {
			if cell != EmptyCell {
				continue
			}

			if !yield(Position{Row: idx / that.cols, Col: idx % that.cols}) {
				return
			}
		}
	}
}

func (that *Board) Clone() *Board {
	cells := make([]Cell, len(that.cells))
	copy(cells, that.cells)

	return &Board{
		rows:  that.rows,
		cols:  that.cols,
		cells: cells,
	}
}

// Cells returns a copy of the grid as rows.
func (that *Board) Cells() [][]Cell {
	grid := make([][]Cell, that.rows)
	for row := range grid {
		grid[row] = make([]Cell, that.cols)
		copy(grid[row], that.cells[row*that.cols:(row+1)*that.cols])
	}

	return grid
}

type boardJSON struct {
	Rows  int      `json:"rows"`
	Cols  int      `json:"cols"`
	Cells [][]Cell `json:"cells"`
}

func (that *Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(boardJSON{
		Rows:  that.rows,
		Cols:  that.cols,
		Cells: that.Cells(),
	})
}

func (that *Board) UnmarshalJSON(data []byte) error {
	var raw boardJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("could not unmarshal board: %w", err)
	}

	board, err := NewBoard(raw.Rows, raw.Cols)
	if err != nil {
		return err
	}

	if len(raw.Cells) != raw.Rows {
		return fmt.Errorf("%w: expected %d rows, got %d", apperror.ErrInvalidConfiguration, raw.Rows, len(raw.Cells))
	}

	for row, cells := range raw.Cells {
		if len(cells) != raw.Cols {
			return fmt.Errorf("%w: row %d has %d cells, expected %d", apperror.ErrInvalidConfiguration, row, len(cells), raw.Cols)
		}

		copy(board.cells[row*raw.Cols:], cells)
	}

	*that = *board

	return nil
}
