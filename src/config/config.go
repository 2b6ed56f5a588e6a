package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	DataCfg   DataConfig
	ViewCfg   ViewConfig
	ServerCfg ServerConfig
	LogLevel  string `env:"LOG_LEVEL" env-default:"WARN"`
	Flags     Flags
}

type DataConfig struct {
	Path           string   `env:"DATA_PATH" env-default:"data.csv"`
	CategoryColumn string   `env:"CATEGORY_COLUMN" env-default:"track_genre"`
	NumericColumns []string `env:"NUMERIC_COLUMNS" env-default:"danceability,energy,key,loudness,speechiness,acousticness,instrumentalness,valence,tempo,time_signature"`
}

type ViewConfig struct {
	Title             string   `env:"TITLE" env-default:"Spotify Data Center: Get to Know the Numbers Behind the Songs"`
	Description       string   `env:"DESCRIPTION" env-default:"This dashboard is an interactive interface allowing users to interact with spotify data..."`
	PreviewRows       int      `env:"PREVIEW_ROWS" env-default:"5"`    // sampled rows per selected genre
	PreviewColumns    int      `env:"PREVIEW_COLUMNS" env-default:"5"` // leading schema columns shown in the table
	PageSize          int      `env:"PAGE_SIZE" env-default:"10"`
	DefaultX          string   `env:"DEFAULT_X" env-default:"energy"`
	DefaultY          string   `env:"DEFAULT_Y" env-default:"danceability"`
	DefaultPlotGenres []string `env:"DEFAULT_PLOT_GENRES" env-default:"acoustic"`
	ChartWidth        int      `env:"CHART_WIDTH" env-default:"960"`
	ChartHeight       int      `env:"CHART_HEIGHT" env-default:"540"`
	RandomSeed        uint64   `env:"RANDOM_SEED" env-default:"0"` // 0 seeds from the clock
}

type ServerConfig struct {
	Addr            string        `env:"LISTEN_ADDR" env-default:":8050"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"5s"`
}

// Load reads the config file at path when it exists and the environment otherwise.
func Load(path string) (Config, error) {
	var cfg Config
	_, err := os.Stat(path)
	switch {
	case err == nil:
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return cfg, fmt.Errorf("failed to read environment: %w", err)
		}
	default:
		return cfg, fmt.Errorf("failed to stat config %s: %w", path, err)
	}
	return cfg, nil
}

func (cfg *Config) Validate() error {
	if cfg.DataCfg.Path == "" {
		return fmt.Errorf("config validation error: DATA_PATH is required")
	}
	cfg.LogLevel = strings.ToUpper(strings.TrimSpace(cfg.LogLevel))
	if !slices.Contains(validLogLevels, cfg.LogLevel) {
		return fmt.Errorf("config validation error: invalid LOG_LEVEL %q (must be one of: %s)",
			cfg.LogLevel, strings.Join(validLogLevels, ", "))
	}
	if len(cfg.DataCfg.NumericColumns) == 0 {
		return fmt.Errorf("config validation error: NUMERIC_COLUMNS is empty")
	}
	for _, axis := range []string{cfg.ViewCfg.DefaultX, cfg.ViewCfg.DefaultY} {
		if !slices.Contains(cfg.DataCfg.NumericColumns, axis) {
			return fmt.Errorf("config validation error: default axis %s is not a numeric column", axis)
		}
	}
	sizes := map[string]int{
		"PREVIEW_ROWS":    cfg.ViewCfg.PreviewRows,
		"PREVIEW_COLUMNS": cfg.ViewCfg.PreviewColumns,
		"PAGE_SIZE":       cfg.ViewCfg.PageSize,
		"CHART_WIDTH":     cfg.ViewCfg.ChartWidth,
		"CHART_HEIGHT":    cfg.ViewCfg.ChartHeight,
	}
	for name, v := range sizes {
		if v <= 0 {
			return fmt.Errorf("config validation error: %s must be positive, got %d", name, v)
		}
	}
	return nil
}
