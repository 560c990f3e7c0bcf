package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/mnk-tictactoe/internal/config"
	"github.com/rocketscienceinc/mnk-tictactoe/internal/random"
	"github.com/rocketscienceinc/mnk-tictactoe/internal/repository"
	"github.com/rocketscienceinc/mnk-tictactoe/internal/repository/storage"
	"github.com/rocketscienceinc/mnk-tictactoe/internal/service"
	"github.com/rocketscienceinc/mnk-tictactoe/internal/tictactoe"
	"github.com/rocketscienceinc/mnk-tictactoe/internal/usecase"
	"github.com/rocketscienceinc/mnk-tictactoe/transport/rest"
	"github.com/rocketscienceinc/mnk-tictactoe/transport/terminal"
)

// RunTerminal - plays games against the engine in the terminal until the user quits.
func RunTerminal(logger *slog.Logger, conf *config.Config) error {
	session, err := terminal.NewSession(logger, newGameController(logger, conf), conf.Board.Rows, conf.Board.Cols, conf.Board.GetRunLength())
	if err != nil {
		return fmt.Errorf("could not start session: %w", err)
	}

	tui := terminal.NewApp(logger, session)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		if _, ok := <-sigs; ok {
			tui.Stop()
		}
	}()

	if err = tui.Run(); err != nil {
		return fmt.Errorf("terminal error: %w", err)
	}

	return nil
}

// RunApp - serves games over HTTP, keeping them in Redis.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisAddr, err := conf.Redis.GetRedisAddr()
	if err != nil {
		return fmt.Errorf("invalid redis config: %w", err)
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddr)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	gameRepo := repository.NewGameRepository(redisStorage.Connection, conf.Redis.GameTTL)
	gameManager := usecase.NewGameManager(logger, gameRepo, newGameController(logger, conf), usecase.BoardSettings{
		Rows:      conf.Board.Rows,
		Cols:      conf.Board.Cols,
		RunLength: conf.Board.GetRunLength(),
	})

	log.Info("Starting HTTP server", "port", conf.HTTPPort)
	if err = rest.Start(ctx, conf.HTTPPort, rest.NewRouter(logger, gameManager)); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

func newGameController(logger *slog.Logger, conf *config.Config) *tictactoe.GameController {
	rnd := random.New(conf.Seed)

	return tictactoe.NewGameController(logger, service.NewBotService(rnd), rnd)
}
