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

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/touchprobe/pkg/logger"
	"github.com/carverauto/touchprobe/pkg/probe"
)

func TestLoadAndValidateFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "touchprobe.json")
	contents := `{
		"sysfs_root": "/custom/sys/class/input",
		"event_timeout": "750ms",
		"logging": {"level": "debug", "output": "stderr"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	var cfg probe.Config

	loader := NewConfig(logger.NewTestLogger())
	require.NoError(t, loader.LoadAndValidate(context.Background(), path, &cfg))

	assert.Equal(t, "/custom/sys/class/input", cfg.SysfsRoot)
	assert.Equal(t, logger.Duration(750*time.Millisecond), cfg.EventTimeout)
	// Unset fields validate to defaults.
	assert.Equal(t, "/dev/input", cfg.DevRoot)
	assert.Equal(t, "/proc/modules", cfg.ProcModules)
	require.NotNil(t, cfg.Logging)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadAndValidateEmptyPathUsesDefaults(t *testing.T) {
	var cfg probe.Config

	loader := NewConfig(logger.NewTestLogger())
	require.NoError(t, loader.LoadAndValidate(context.Background(), "", &cfg))

	assert.Equal(t, "/sys/class/input", cfg.SysfsRoot)
	assert.Equal(t, logger.Duration(500*time.Millisecond), cfg.EventTimeout)
}

func TestLoadAndValidateMissingFile(t *testing.T) {
	var cfg probe.Config

	loader := NewConfig(logger.NewTestLogger())
	err := loader.LoadAndValidate(context.Background(), filepath.Join(t.TempDir(), "nope.json"), &cfg)
	require.ErrorIs(t, err, errLoadConfigFailed)
}

func TestLoadAndValidateMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	var cfg probe.Config

	loader := NewConfig(logger.NewTestLogger())
	err := loader.LoadAndValidate(context.Background(), path, &cfg)
	require.ErrorIs(t, err, errLoadConfigFailed)
}
