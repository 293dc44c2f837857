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

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/host"

	"github.com/carverauto/touchprobe/pkg/config"
	"github.com/carverauto/touchprobe/pkg/lifecycle"
	"github.com/carverauto/touchprobe/pkg/logger"
	"github.com/carverauto/touchprobe/pkg/probe"
)

func main() {
	if err := run(); err != nil {
		logger.Fatal().Err(err).Msg("Touchprobe failed")
	}
}

func run() error {
	configPath := flag.String("config", "", "Path to touchprobe config file (optional)")
	timeout := flag.Duration("timeout", 0, "Event observation window, overrides config (e.g. 500ms)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	jsonOut := flag.Bool("json", false, "Print the full probe report as JSON on stdout")
	flag.Parse()

	// Bootstrap logging from the environment; everything up to the
	// component logger below reports through it.
	if err := logger.InitWithDefaults(); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	if *debug {
		logger.SetDebug(true)
	}

	logger.Debug().Str("config_path", *configPath).Msg("Loading configuration")

	ctx := context.Background()

	var cfg probe.Config

	cfgLoader := config.NewConfig(nil)
	if err := cfgLoader.LoadAndValidate(ctx, *configPath, &cfg); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if *timeout > 0 {
		cfg.EventTimeout = logger.Duration(*timeout)
	}

	logConfig := cfg.Logging
	if logConfig == nil {
		logConfig = &logger.Config{
			Level:  "info",
			Output: "stderr",
		}
	}

	if *debug {
		logConfig.Debug = true
	}

	probeLogger, err := lifecycle.CreateComponentLogger("touchprobe", logConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logHostContext(ctx, probeLogger)

	// Initialization failure is the only hard failure surfaced to the
	// caller; everything after degrades to a diagnostic status.
	p, err := probe.New(&cfg, probeLogger)
	if err != nil {
		return fmt.Errorf("failed to initialize probe: %w", err)
	}

	defer func() {
		_ = p.Close()
	}()

	p.ScanDevices(ctx)

	working := p.VerifyTouchpad(ctx)

	summary := "not working or not found"
	if working {
		summary = "working"
	}

	probeLogger.Info().
		Str("summary", summary).
		Stringer("status", p.LastStatus()).
		Msg("Touchpad status")

	if *jsonOut {
		report := p.Report()

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")

		if err := encoder.Encode(report); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
	}

	return nil
}

// logHostContext records where the probe ran, for reports collected across
// a fleet of machines.
func logHostContext(ctx context.Context, log logger.Logger) {
	infoCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	info, err := host.InfoWithContext(infoCtx)
	if err != nil {
		log.Debug().Err(err).Msg("Host info unavailable")
		return
	}

	log.Info().
		Str("hostname", info.Hostname).
		Str("platform", info.Platform).
		Str("kernel_version", info.KernelVersion).
		Str("kernel_arch", info.KernelArch).
		Msg("Probing host")
}
