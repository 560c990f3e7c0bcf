package apperror

import "errors"

var (
	ErrOutOfBounds          = errors.New("cell is out of bounds")
	ErrCellOccupied         = errors.New("cell is already occupied")
	ErrInvalidMark          = errors.New("invalid mark")
	ErrInvalidMove          = errors.New("invalid move")
	ErrInvalidConfiguration = errors.New("invalid game configuration")
	ErrGameFinished         = errors.New("game is already finished")
	ErrNotYourTurn          = errors.New("it's not your turn")
)
