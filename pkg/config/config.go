/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package config loads JSON configuration files for the probe binaries.
package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/carverauto/touchprobe/pkg/logger"
)

var errLoadConfigFailed = errors.New("failed to load configuration")

// ConfigLoader loads configuration from a source into dst.
type ConfigLoader interface {
	Load(ctx context.Context, path string, dst interface{}) error
}

// Validator is implemented by config structs that normalize and check
// themselves after loading.
type Validator interface {
	Validate() error
}

// Config holds the configuration loading dependencies.
type Config struct {
	loader ConfigLoader
	logger logger.Logger
}

// NewConfig initializes a Config with the default file loader.
func NewConfig(log logger.Logger) *Config {
	if log == nil {
		log = logger.NewTestLogger()
	}

	return &Config{
		loader: &FileConfigLoader{},
		logger: log,
	}
}

// LoadAndValidate reads the file at path into dst and runs its validation.
// If path is empty, dst keeps its zero values and only validation runs, so
// callers can run with built-in defaults and no config file.
func (c *Config) LoadAndValidate(ctx context.Context, path string, dst interface{}) error {
	if path != "" {
		if err := c.loader.Load(ctx, path, dst); err != nil {
			return fmt.Errorf("%w: %w", errLoadConfigFailed, err)
		}

		c.logger.Debug().Str("path", path).Msg("Loaded configuration file")
	}

	if v, ok := dst.(Validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("%w: %w", errLoadConfigFailed, err)
		}
	}

	return nil
}
