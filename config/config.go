// Copyright 2026 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the configuration of the wnutil command.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/ianlewis/go-wordnet/ramdict"
)

// DefaultPath is the configuration file read when no path is given and
// WORDNET_CONFIG is not set.
const DefaultPath = "./wordnet.yaml"

// Config is the root configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Loader   LoaderConfig   `yaml:"loader"`
	Log      LogConfig      `yaml:"log"`
}

// DatabaseConfig locates the database.
type DatabaseConfig struct {
	// Dir is a WordNet database directory.
	Dir string `yaml:"dir" env:"WORDNET_DIR"`

	// Snapshot is a snapshot file written by the export command. It is used
	// instead of Dir when set.
	Snapshot string `yaml:"snapshot" env:"WORDNET_SNAPSHOT"`

	AppendAdjectiveMarker bool `yaml:"append_adjective_marker" env:"WORDNET_APPEND_ADJECTIVE_MARKER" env-default:"false"`
}

// LoaderConfig controls loading the database into memory.
type LoaderConfig struct {
	InMemory bool    `yaml:"in_memory" env:"WORDNET_IN_MEMORY"   env-default:"false"`
	Policy   string  `yaml:"policy"    env:"WORDNET_LOAD_POLICY" env-default:"background"`
	Rate     float64 `yaml:"rate"      env:"WORDNET_LOAD_RATE"   env-default:"0"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"WORDNET_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"WORDNET_LOG_FORMAT" env-default:"text"`
}

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
// If path is empty it is taken from WORDNET_CONFIG, falling back to
// DefaultPath. A missing file is only an error if the path was given.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		path = os.Getenv("WORDNET_CONFIG")
	}
	explicitPath := path != ""
	if !explicitPath {
		path = DefaultPath
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	if _, err := c.Loader.LoadPolicy(); err != nil {
		return fmt.Errorf("loader: %w", err)
	}
	if c.Loader.Rate < 0 {
		return fmt.Errorf("loader: rate must be >= 0 (got %v)", c.Loader.Rate)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log: unknown format %q", c.Log.Format)
	}
	switch strings.ToLower(strings.TrimSpace(c.Log.Level)) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log: unknown level %q", c.Log.Level)
	}
	return nil
}

var errUnknownPolicy = errors.New("unknown load policy")

// LoadPolicy returns the ramdict load policy named by Policy.
func (c LoaderConfig) LoadPolicy() (ramdict.LoadPolicy, error) {
	switch strings.ToLower(c.Policy) {
	case "", "background":
		return ramdict.Background, nil
	case "immediate":
		return ramdict.Immediate, nil
	default:
		return 0, fmt.Errorf("%w: %q", errUnknownPolicy, c.Policy)
	}
}
