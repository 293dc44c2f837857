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

package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	t.Run("explicit level", func(t *testing.T) {
		err := Init(&Config{Level: "warn", Output: "stderr"})
		require.NoError(t, err)
		assert.Equal(t, zerolog.WarnLevel, GetLogger().GetLevel())
	})

	t.Run("debug overrides level", func(t *testing.T) {
		err := Init(&Config{Level: "error", Debug: true})
		require.NoError(t, err)
		assert.Equal(t, zerolog.DebugLevel, GetLogger().GetLevel())
	})

	t.Run("invalid level", func(t *testing.T) {
		err := Init(&Config{Level: "shouting"})
		require.Error(t, err)
	})

	t.Run("nil config uses defaults", func(t *testing.T) {
		err := Init(nil)
		require.NoError(t, err)
	})
}

func TestSetLevel(t *testing.T) {
	require.NoError(t, Init(&Config{Level: "info", Output: "stderr"}))

	SetLevel(zerolog.ErrorLevel)
	assert.Equal(t, zerolog.ErrorLevel, GetLogger().GetLevel())

	// Suppressed below the level; must not emit.
	Debug().Msg("dropped")
	Info().Msg("dropped")
	Warn().Msg("dropped")
}

func TestSetDebug(t *testing.T) {
	require.NoError(t, Init(&Config{Level: "warn", Output: "stderr"}))

	SetDebug(true)
	assert.Equal(t, zerolog.DebugLevel, GetLogger().GetLevel())

	SetDebug(false)
	assert.Equal(t, zerolog.InfoLevel, GetLogger().GetLevel())
}

func TestInitWithDefaults(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("DEBUG", "")

	require.NoError(t, InitWithDefaults())
	assert.Equal(t, zerolog.ErrorLevel, GetLogger().GetLevel())
}

func TestScopedLoggers(t *testing.T) {
	require.NoError(t, Init(&Config{Level: "error", Output: "stderr"}))

	scoped := WithComponent("scan")
	scoped.Info().Msg("dropped")

	contextual := With().Str("run_id", "abc").Logger()
	contextual.Info().Msg("dropped")
}

func TestNewTestLoggerDiscards(t *testing.T) {
	log := NewTestLogger()

	// Must not panic or emit; Disabled level drops everything.
	log.Info().Str("key", "value").Msg("dropped")
	log.Error().Msg("also dropped")
}
