package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	app "github.com/rocketscienceinc/mnk-tictactoe/internal"
	"github.com/rocketscienceinc/mnk-tictactoe/internal/config"
)

var (
	flagConfig = flag.String("config", "", "Path to config.yml (default: xdg config dir, then ./config.yml)")
	flagServe  = flag.Bool("serve", false, "Serve games over HTTP instead of playing in the terminal")
)

// main - is the entry point of the application. It initializes the configuration, logger, and runs the application.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	flag.Parse()

	conf := initConfig()
	logger, closeLog := initLogger(conf, *flagServe)
	defer closeLog()

	run := app.RunTerminal
	if *flagServe {
		run = app.RunApp
	}

	if err := run(logger, conf); err != nil {
		panic(fmt.Errorf("app run failed: %w", err))
	}
}

// initialize config.
func initConfig() *config.Config {
	return config.MustLoad(config.Locate(*flagConfig))
}

// initialize logger. The terminal owns stdout, so terminal mode logs to a file.
func initLogger(conf *config.Config, serve bool) (*slog.Logger, func()) {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var out io.Writer = os.Stdout
	closeLog := func() {}

	if !serve {
		path, err := conf.LogFilePath()
		if err != nil {
			panic(err)
		}

		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			panic(fmt.Errorf("failed to open log file: %w", err))
		}

		out = file
		closeLog = func() { _ = file.Close() }
	}

	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level})), closeLog
}
