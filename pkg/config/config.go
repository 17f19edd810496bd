// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads augur's configuration file.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const FilePermissions = 0755

//go:embed augur.yaml
var DefaultFile []byte

var (
	Directory = filepath.Join(xdg.ConfigHome, "augur")
	File      = filepath.Join(Directory, "augur.yaml")
)

// Config is the contents of a configuration file.
type Config struct {
	LogLevel string `yaml:"log-level"`

	// Options maps option names to values, as they would be given to
	// setoption.
	Options map[string]string `yaml:"options"`
}

// Load reads the configuration file at path. A missing file is not an
// error and results in an empty configuration.
func Load(path string) (*Config, error) {
	var config Config

	file, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logrus.WithField("path", path).Debug("no configuration file, using defaults")
		return &config, nil
	case err != nil:
		return nil, err
	}

	if err := yaml.Unmarshal(file, &config); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}

	return &config, nil
}

// Level parses the configured log level, which defaults to info.
func (config *Config) Level() (logrus.Level, error) {
	if config.LogLevel == "" {
		return logrus.InfoLevel, nil
	}

	return logrus.ParseLevel(config.LogLevel)
}

// TryCreate writes the default configuration to path, creating its
// directory if needed. An existing file is left alone.
func TryCreate(path string) error {
	if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), FilePermissions); err != nil {
		return err
	}

	return os.WriteFile(path, DefaultFile, 0644)
}
