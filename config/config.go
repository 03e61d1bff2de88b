package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"gomoku/game"
	"gomoku/policy"
	"gomoku/searcher"
	"io/fs"
	"os"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
)

var (
	cfgFile = "gomoku/config.json"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type Config struct {
	BoardSize    int     `json:"board_size"`
	TimeLimit    int     `json:"time_limit"` // Seconds per generated move
	Simulations  int     `json:"simulations"`
	Exploration  float64 `json:"exploration"`
	RobustFactor int     `json:"robust_factor"`
	Seed         uint64  `json:"seed"` // 0 seeds from the clock
	Policy       string  `json:"policy"`
	LogLevel     string  `json:"log_level"`
}

var DefaultConfig = Config{
	BoardSize:    7,
	TimeLimit:    10,
	Simulations:  searcher.DefaultSimulations,
	Exploration:  searcher.DefaultExploration,
	RobustFactor: searcher.DefaultRobustFactor,
	Policy:       "combined",
	LogLevel:     "info",
}

// InitConfig reads the config file from the XDG config dirs, falling back to defaults when
// there is none.
func InitConfig() (*Config, error) {
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err != nil {
		config := DefaultConfig
		return &config, nil
	}
	return Load(absPath)
}

// Load reads the file at path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	config := DefaultConfig
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	default:
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	if c.BoardSize < game.MinSize || c.BoardSize > game.MaxSize {
		return &InvalidConfig{fmt.Sprintf("board_size must be in [%d, %d]", game.MinSize, game.MaxSize)}
	}
	if c.TimeLimit < 1 || c.TimeLimit > 100 {
		return &InvalidConfig{"time_limit must be in [1, 100] seconds"}
	}
	if c.Simulations < 1 {
		return &InvalidConfig{"simulations must be positive"}
	}
	if c.Exploration < 0 {
		return &InvalidConfig{"exploration must not be negative"}
	}
	if c.RobustFactor < 0 {
		return &InvalidConfig{"robust_factor must not be negative"}
	}
	if _, err := policy.ByName(c.Policy); err != nil {
		return &InvalidConfig{err.Error()}
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return &InvalidConfig{fmt.Sprintf("log_level: %v", err)}
	}
	return nil
}

func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

func (c *Config) TimeLimitDuration() time.Duration {
	return time.Duration(c.TimeLimit) * time.Second
}

// SearchOptions translates the search settings. The time budget is left to the caller.
func (c *Config) SearchOptions() []searcher.Option {
	options := []searcher.Option{
		searcher.WithSimulations(c.Simulations),
		searcher.WithExploration(c.Exploration),
		searcher.WithRobustFactor(c.RobustFactor),
		searcher.WithSeed(c.Seed),
	}
	if p, err := policy.ByName(c.Policy); err == nil {
		options = append(options, searcher.WithPolicy(p))
	}
	return options
}

// Save writes the config to the user XDG config dir.
func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to locate config file: %w", err)
	}
	return c.SaveTo(absPath)
}

func (c *Config) SaveTo(path string) error {
	jsonData, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, jsonData, 0664); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}
