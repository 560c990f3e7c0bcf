package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/adrg/xdg"
	"github.com/ilyakaznacheev/cleanenv"
)

// AppName names the xdg config and state directories.
const AppName = "mnk-tictactoe"

type Config struct {
	LogLevel string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	LogFile  string `yaml:"log-file" env:"LOG_FILE"`
	HTTPPort string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Seed     uint64 `yaml:"seed" env:"SEED" env-default:"0"`
	Board    Board  `yaml:"board"`
	Redis    Redis  `yaml:"redis"`
}

type Board struct {
	Rows      int `yaml:"rows" env:"BOARD_ROWS" env-default:"3"`
	Cols      int `yaml:"cols" env:"BOARD_COLS" env-default:"3"`
	RunLength int `yaml:"run-length" env:"BOARD_RUN_LENGTH" env-default:"0"`
}

type Redis struct {
	Host    string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port    string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	GameTTL time.Duration `yaml:"game-ttl" env:"REDIS_GAME_TTL" env-default:"1h"`
}

// MustLoad - load configuration from the yaml file at path, overridden by
// environment variables. An empty path reads the environment only.
func MustLoad(path string) *Config {
	config := &Config{}

	if path == "" {
		if err := cleanenv.ReadEnv(config); err != nil {
			panic(fmt.Errorf("unable to read config from environment: %w", err))
		}

		return config
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// Locate - find the config file: the explicit path if given, then
// $XDG_CONFIG_HOME/mnk-tictactoe/config.yml and the xdg config dirs, then
// ./config.yml. Returns an empty string when none exists.
func Locate(explicit string) string {
	if explicit != "" {
		return explicit
	}

	if path, err := xdg.SearchConfigFile(AppName + "/config.yml"); err == nil {
		return path
	}

	if _, err := os.Stat("config.yml"); err == nil {
		return "config.yml"
	}

	return ""
}

// LogFilePath - the configured log file, or one under the xdg state directory.
func (that *Config) LogFilePath() (string, error) {
	if that.LogFile != "" {
		return that.LogFile, nil
	}

	path, err := xdg.StateFile(AppName + "/game.log")
	if err != nil {
		return "", fmt.Errorf("failed to resolve log file: %w", err)
	}

	return path, nil
}

// GetRunLength - the configured run length, defaulting to the shorter side.
func (that *Board) GetRunLength() int {
	if that.RunLength == 0 {
		return min(that.Rows, that.Cols)
	}

	return that.RunLength
}

var ErrAddrNotFound = errors.New("redis address string is empty")

func (that *Redis) GetRedisAddr() (string, error) {
	if that.Host == "" || that.Port == "" {
		return "", ErrAddrNotFound
	}

	return fmt.Sprintf("%s:%s", that.Host, that.Port), nil
}
