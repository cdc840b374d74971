// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Experiment ExperimentConfig `toml:"experiment"`
	Terminal   TerminalConfig   `toml:"terminal"`
}

// ExperimentConfig maps measurement settings shared by every frontend.
type ExperimentConfig struct {
	Delay       *float64 `toml:"delay"`
	TargetSize  *int     `toml:"target-size"`
	Trials      *int     `toml:"trials"`
	IgnoreFirst *int     `toml:"ignore-first"`
	Width       *int     `toml:"width"`
	Height      *int     `toml:"height"`
	Windowed    *bool    `toml:"windowed"`
	Seed        *int64   `toml:"seed"`
}

// TerminalConfig maps settings of the terminal frontend.
type TerminalConfig struct {
	TargetSize *int `toml:"target-size"`
	FrameRate  *int `toml:"frame-rate"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
