package tictactoe

import (
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/mnk-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/mnk-tictactoe/internal/entity"
)

type moveSelector interface {
	ChooseMove(board *entity.Board, botMark, opponentMark entity.Cell, k int) (entity.Position, error)
}

// Rand is the random source used to bind marks to players.
type Rand interface {
	IntN(n int) int
}

type GameController struct {
	logger *slog.Logger
	bot    moveSelector
	rnd    Rand
}

func NewGameController(logger *slog.Logger, bot moveSelector, rnd Rand) *GameController {
	return &GameController{
		logger: logger.With("component", "game_controller"),
		bot:    bot,
		rnd:    rnd,
	}
}

// NewGame starts a rows x cols game won by k in a row. When the engine draws
// the opening mark it moves before the game is returned.
func (that *GameController) NewGame(rows, cols, k int) (*entity.Game, error) {
	if err := validateConfiguration(rows, cols, k); err != nil {
		return nil, err
	}

	board, err := entity.NewBoard(rows, cols)
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	humanMark, engineMark := that.randomMarks()

	game := &entity.Game{
		Board:      board,
		RunLength:  k,
		HumanMark:  humanMark,
		EngineMark: engineMark,
		State:      entity.StateAwaitingHuman,
		Result:     entity.InProgress(),
	}

	that.logger.Debug("new game", "rows", rows, "cols", cols, "k", k, "human", humanMark.String())

	if engineMark == entity.FirstMark {
		game.State = entity.StateEngineThinking
		if err = that.engineTurn(game); err != nil {
			return nil, fmt.Errorf("engine failed to make first turn: %w", err)
		}
	}

	return game, nil
}

// HandleClick plays the human move at (row, col) and, if the game goes on,
// the engine reply. Invalid clicks wrap apperror.ErrInvalidMove and leave the
// game untouched.
func (that *GameController) HandleClick(game *entity.Game, row, col int) (entity.Result, error) {
	if game.IsFinished() {
		return game.Result, apperror.ErrGameFinished
	}

	if !game.IsAwaitingHuman() {
		return game.Result, apperror.ErrNotYourTurn
	}

	if err := game.Board.Set(row, col, game.HumanMark); err != nil {
		return game.Result, fmt.Errorf("%w: %w", apperror.ErrInvalidMove, err)
	}

	game.LastMove = &entity.Move{Position: entity.Position{Row: row, Col: col}, Mark: game.HumanMark}
	that.conclude(game)

	if game.IsFinished() {
		that.logger.Debug("game finished by human move", "result", game.Result.String())
		return game.Result, nil
	}

	game.State = entity.StateEngineThinking
	if err := that.engineTurn(game); err != nil {
		return game.Result, fmt.Errorf("engine failed to make turn: %w", err)
	}

	return game.Result, nil
}

// engineTurn lets the bot pick a cell on a copy of the board, then commits it.
func (that *GameController) engineTurn(game *entity.Game) error {
	pos, err := that.bot.ChooseMove(game.CurrentBoard(), game.EngineMark, game.HumanMark, game.RunLength)
	if err != nil {
		return fmt.Errorf("failed to choose move: %w", err)
	}

	if err = game.Board.Set(pos.Row, pos.Col, game.EngineMark); err != nil {
		return fmt.Errorf("failed to place engine mark: %w", err)
	}

	game.LastMove = &entity.Move{Position: pos, Mark: game.EngineMark}
	that.conclude(game)

	that.logger.Debug("engine moved", "row", pos.Row, "col", pos.Col, "result", game.Result.String())

	return nil
}

// conclude evaluates the board and moves the game to its next state.
func (that *GameController) conclude(game *entity.Game) {
	game.Result = Evaluate(game.Board, game.RunLength)
	game.State = stateFor(game.Result)
}

// stateFor is the state a game sits in between turns for a given result.
func stateFor(result entity.Result) string {
	if result.IsTerminal() {
		return entity.StateFinished
	}

	return entity.StateAwaitingHuman
}

func (that *GameController) randomMarks() (entity.Cell, entity.Cell) {
	if that.rnd.IntN(2) == 0 {
		return entity.MarkX, entity.MarkO
	}
	return entity.MarkO, entity.MarkX
}

func validateConfiguration(rows, cols, k int) error {
	if rows < 1 || cols < 1 {
		return fmt.Errorf("%w: board %dx%d", apperror.ErrInvalidConfiguration, rows, cols)
	}

	if k < 1 || k > min(rows, cols) {
		return fmt.Errorf("%w: run length %d on a %dx%d board", apperror.ErrInvalidConfiguration, k, rows, cols)
	}

	return nil
}
