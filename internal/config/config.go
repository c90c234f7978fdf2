package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Sim     SimConfig     `toml:"sim"`
	Data    DataConfig    `toml:"data"`
	Logging LoggingConfig `toml:"logging"`
}

type SimConfig struct {
	Ticks    int           `toml:"ticks"`     // <= 0 runs until interrupted
	TickRate time.Duration `toml:"tick_rate"` // 0 runs ticks back to back
	Workers  int           `toml:"workers"`   // max systems running at once, 0 = GOMAXPROCS
	Audit    bool          `toml:"audit"`     // register the asset conservation check
}

type DataConfig struct {
	Scenario string `toml:"scenario"`
	Scripts  string `toml:"scripts"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Sim.Workers < 0 {
		return nil, fmt.Errorf("config %s: sim.workers must not be negative", path)
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Sim: SimConfig{
			Ticks:    10,
			TickRate: 0,
			Workers:  0,
			Audit:    true,
		},
		Data: DataConfig{
			Scenario: "data/yaml/scenario.yaml",
			Scripts:  "scripts",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
