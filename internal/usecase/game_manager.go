package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/mnk-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/mnk-tictactoe/internal/entity"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type gameController interface {
	NewGame(rows, cols, k int) (*entity.Game, error)
	HandleClick(game *entity.Game, row, col int) (entity.Result, error)
}

// BoardSettings describes the games a GameManager creates.
type BoardSettings struct {
	Rows      int
	Cols      int
	RunLength int
}

// GameManager keeps games behind opaque ids so they can be played over the network.
type GameManager struct {
	logger     *slog.Logger
	gameRepo   gameRepo
	controller gameController
	settings   BoardSettings
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, controller gameController, settings BoardSettings) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameRepo:   gameRepo,
		controller: controller,
		settings:   settings,
	}
}

func (that *GameManager) NewGame(ctx context.Context) (*entity.Game, error) {
	game, err := that.controller.NewGame(that.settings.Rows, that.settings.Cols, that.settings.RunLength)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	game.ID = uuid.NewString()

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	that.logger.Info("game created", "game_id", game.ID, "human", game.HumanMark.String())

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// MakeTurn plays the human click and the engine reply. Rejected clicks leave
// the stored game untouched and return it alongside the error.
func (that *GameManager) MakeTurn(ctx context.Context, id string, row, col int) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "game_id", id)

	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	result, err := that.controller.HandleClick(game, row, col)
	if isRejectedClick(err) {
		log.Debug("click rejected", "row", row, "col", col, "error", err)
		return game, err
	}

	if err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	if result.IsTerminal() {
		log.Info("game finished", "result", result.String())
	}

	return game, nil
}

func (that *GameManager) AbandonGame(ctx context.Context, id string) error {
	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game abandoned", "game_id", id)

	return nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

func isRejectedClick(err error) bool {
	return errors.Is(err, apperror.ErrInvalidMove) ||
		errors.Is(err, apperror.ErrGameFinished) ||
		errors.Is(err, apperror.ErrNotYourTurn)
}
