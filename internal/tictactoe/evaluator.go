package tictactoe

import "github.com/rocketscienceinc/mnk-tictactoe/internal/entity"

// Evaluate reports a win for the first run of k equal marks found in Lines
// order, a draw when the board is full without one, and in-progress otherwise.
// k must be at least 1.
func Evaluate(board *entity.Board, k int) entity.Result {
	for _, line := range Lines(board, k) {
		if mark, ok := findRun(line, k); ok {
			return entity.Win(mark)
		}
	}

	if board.IsFull() {
		return entity.Draw()
	}

	return entity.InProgress()
}

func findRun(line []entity.Cell, k int) (entity.Cell, bool) {
	count := 0
	prev := entity.EmptyCell

	for _, cell := range line {
		switch {
		case cell == entity.EmptyCell:
			count = 0
		case cell == prev:
			count++
		default:
			count = 1
		}
		prev = cell

		if count >= k && cell != entity.EmptyCell {
			return cell, true
		}
	}

	return entity.EmptyCell, false
}
