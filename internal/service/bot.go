package service

import (
	"errors"

	"github.com/rocketscienceinc/mnk-tictactoe/internal/entity"
	"github.com/rocketscienceinc/mnk-tictactoe/internal/tictactoe"
)

var ErrNoAvailableMoves = errors.New("no available moves")

type BotService interface {
	ChooseMove(board *entity.Board, botMark, opponentMark entity.Cell, k int) (entity.Position, error)
}

type randSource interface {
	IntN(n int) int
}

type botService struct {
	rnd randSource
}

func NewBotService(rnd randSource) BotService {
	return &botService{
		rnd: rnd,
	}
}

// ChooseMove looks one move ahead: take a winning cell, else block the
// opponent's winning cell, else play a random free cell. board is not modified.
func (that *botService) ChooseMove(board *entity.Board, botMark, opponentMark entity.Cell, k int) (entity.Position, error) {
	if pos, ok := completingMove(board, botMark, k); ok {
		return pos, nil
	}

	if pos, ok := completingMove(board, opponentMark, k); ok {
		return pos, nil
	}

	availableCells := make([]entity.Position, 0, board.Rows()*board.Cols())
	for pos := range board.EmptyCells() {
		availableCells = append(availableCells, pos)
	}

	if len(availableCells) == 0 {
		return entity.Position{}, ErrNoAvailableMoves
	}

	return availableCells[that.rnd.IntN(len(availableCells))], nil
}

// completingMove returns the first free cell, in row-major order, where mark
// would complete a run of k. Each trial is played on its own copy of board.
func completingMove(board *entity.Board, mark entity.Cell, k int) (entity.Position, bool) {
	for pos := range board.EmptyCells() {
		scratch := board.Clone()
		if err := scratch.Set(pos.Row, pos.Col, mark); err != nil {
			continue
		}

		if result := tictactoe.Evaluate(scratch, k); result.IsWin() && result.Winner == mark {
			return pos, true
		}
	}

	return entity.Position{}, false
}
