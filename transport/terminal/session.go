package terminal

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/mnk-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/mnk-tictactoe/internal/entity"
)

type gameController interface {
	NewGame(rows, cols, k int) (*entity.Game, error)
	HandleClick(game *entity.Game, row, col int) (entity.Result, error)
}

// Session holds the single game played in the terminal.
type Session struct {
	logger     *slog.Logger
	controller gameController

	rows, cols, runLength int

	game    *entity.Game
	message string
}

func NewSession(logger *slog.Logger, controller gameController, rows, cols, runLength int) (*Session, error) {
	session := &Session{
		logger:     logger.With("component", "terminal_session"),
		controller: controller,
		rows:       rows,
		cols:       cols,
		runLength:  runLength,
	}

	if err := session.Restart(); err != nil {
		return nil, err
	}

	return session, nil
}

// Restart discards the current game and starts a fresh one with new marks.
func (that *Session) Restart() error {
	game, err := that.controller.NewGame(that.rows, that.cols, that.runLength)
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	that.game = game
	that.message = ""
	that.logger.Info("game started", "human", game.HumanMark.String(), "rows", that.rows, "cols", that.cols, "k", that.runLength)

	return nil
}

// Click plays the human move at (row, col). Rejected clicks only change the message.
func (that *Session) Click(row, col int) {
	log := that.logger.With("method", "Click")

	result, err := that.controller.HandleClick(that.game, row, col)
	switch {
	case err == nil:
		that.message = ""
		if result.IsTerminal() {
			log.Info("game finished", "result", result.String())
		}
	case errors.Is(err, apperror.ErrCellOccupied):
		that.message = "That cell is taken."
	case errors.Is(err, apperror.ErrGameFinished):
		that.message = "Game over. Press r to play again."
	case errors.Is(err, apperror.ErrInvalidMove), errors.Is(err, apperror.ErrNotYourTurn):
		that.message = "You cannot play there."
	default:
		that.message = "Something went wrong."
		log.Error("click failed", "row", row, "col", col, "error", err)
	}
}

func (that *Session) Game() *entity.Game {
	return that.game
}

// Status renders the status line with tview color tags.
func (that *Session) Status() string {
	game := that.game

	var status string
	if game.IsFinished() {
		result := game.CurrentResult()
		if result.IsWin() {
			status = fmt.Sprintf("%s won!", coloredMark(result.Winner))
		} else {
			status = "Draw!"
		}
		status += " Press r to play again."
	} else {
		status = fmt.Sprintf("Your move (%s). Get %d in a row.", coloredMark(game.HumanMark), game.RunLength)
	}

	if that.message != "" {
		status += "\n[yellow]" + that.message + "[-]"
	}

	return status
}

func coloredMark(mark entity.Cell) string {
	return fmt.Sprintf("[%s]%s[-]", markColorName(mark), mark.String())
}

func markColorName(mark entity.Cell) string {
	switch mark {
	case entity.MarkX:
		return "blue"
	case entity.MarkO:
		return "red"
	default:
		return "white"
	}
}
