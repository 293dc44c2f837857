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

// Package probe coordinates the scan/verify lifecycle consumed by the host:
// New (initialize), ScanDevices, VerifyTouchpad, Close (teardown). The
// ranked candidate list from the last scan is the only state carried
// between calls, and it is guarded so concurrent entry points stay
// sequentially consistent.
package probe

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/carverauto/touchprobe/pkg/classify"
	"github.com/carverauto/touchprobe/pkg/logger"
	"github.com/carverauto/touchprobe/pkg/models"
	"github.com/carverauto/touchprobe/pkg/scan"
	"github.com/carverauto/touchprobe/pkg/verify"
)

var errNilLogger = errors.New("probe requires a logger")

// Option adjusts a Probe after its configuration is applied.
type Option func(*Probe)

// WithChecker replaces the driver health checker. Tests use it to exercise
// the scan/verify handshake without touching real kernel interfaces.
func WithChecker(checker *verify.Checker) Option {
	return func(p *Probe) {
		p.checker = checker
	}
}

// Probe owns the process-wide state of the verification engine.
type Probe struct {
	mu         sync.Mutex
	log        logger.Logger
	scanner    *scan.Scanner
	checker    *verify.Checker
	candidates []models.RankedCandidate
	lastRunID  string
	lastStatus models.VerificationStatus
	lastStart  time.Time
	lastNs     int64
	closed     bool
}

// New builds a probe from the given configuration. A nil config gets
// defaults. Failure here is fatal to the host; it only happens when the
// minimal internal state cannot be assembled.
func New(cfg *Config, log logger.Logger, opts ...Option) (*Probe, error) {
	if log == nil {
		return nil, errNilLogger
	}

	if cfg == nil {
		cfg = &Config{}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Probe{
		log: log,
		scanner: scan.NewScanner(log,
			scan.WithSysfsRoot(cfg.SysfsRoot),
			scan.WithDevRoot(cfg.DevRoot),
		),
		checker: verify.NewChecker(log,
			verify.WithProcModules(cfg.ProcModules),
			verify.WithEventTimeout(time.Duration(cfg.EventTimeout)),
		),
		lastStatus: models.StatusNotFound,
	}

	for _, opt := range opts {
		opt(p)
	}

	log.Info().
		Str("sysfs_root", cfg.SysfsRoot).
		Str("proc_modules", cfg.ProcModules).
		Dur("event_timeout", time.Duration(cfg.EventTimeout)).
		Msg("Initializing touchpad probe")

	return p, nil
}

// ScanDevices enumerates and classifies input devices, replacing the cached
// candidate list. It is best-effort from the host's point of view: an
// unavailable device tree degrades to an empty list, never an error.
func (p *Probe) ScanDevices(ctx context.Context) {
	runID := uuid.New().String()
	start := time.Now()

	records, err := p.scanner.Scan(ctx)

	switch {
	case errors.Is(err, scan.ErrEnumerationUnavailable):
		p.log.Warn().
			Err(err).
			Str("run_id", runID).
			Msg("Device enumeration unavailable; proceeding with no candidates")

		records = nil
	case err != nil:
		// Cancellation mid-walk; whatever was read so far still classifies.
		p.log.Warn().
			Err(err).
			Str("run_id", runID).
			Int("devices", len(records)).
			Msg("Device scan interrupted; keeping partial results")
	}

	candidates := classify.Classify(records)

	touchpads := 0
	for _, candidate := range candidates {
		if candidate.Result.IsTouchpad {
			touchpads++
		}
	}

	p.mu.Lock()
	p.candidates = candidates
	p.lastRunID = runID
	p.lastStatus = models.StatusNotFound
	p.lastStart = start
	p.mu.Unlock()

	p.log.Info().
		Str("run_id", runID).
		Int("devices", len(candidates)).
		Int("touchpads", touchpads).
		Msg("Input device scan complete")
}

// VerifyTouchpad runs the driver health check on the top-ranked candidate
// from the last scan. It returns the simplified summary the host consumes:
// true only for a fully working touchpad. The full status is available via
// LastStatus and Report.
func (p *Probe) VerifyTouchpad(ctx context.Context) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	var candidate *models.DeviceRecord

	if len(p.candidates) > 0 && p.candidates[0].Result.IsTouchpad {
		record := p.candidates[0].Record
		candidate = &record
	}

	status := p.checker.Verify(ctx, candidate)

	p.lastStatus = status
	p.lastNs = time.Since(p.lastStart).Nanoseconds()

	p.log.Info().
		Str("run_id", p.lastRunID).
		Stringer("status", status).
		Bool("working", status.Working()).
		Msg("Touchpad verification complete")

	return status.Working()
}

// LastStatus returns the status from the most recent verification, or
// StatusNotFound if none ran since the last scan.
func (p *Probe) LastStatus() models.VerificationStatus {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.lastStatus
}

// Report snapshots the last pass as a JSON-serializable payload.
func (p *Probe) Report() models.ProbeReport {
	p.mu.Lock()
	defer p.mu.Unlock()

	candidates := make([]models.RankedCandidate, len(p.candidates))
	copy(candidates, p.candidates)

	return models.ProbeReport{
		RunID:      p.lastRunID,
		Timestamp:  time.Now().UTC(),
		Candidates: candidates,
		Status:     p.lastStatus,
		Working:    p.lastStatus.Working(),
		ElapsedNs:  p.lastNs,
	}
}

// Close releases the candidate cache. Idempotent and safe to call even if
// the probe never scanned.
func (p *Probe) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}

	p.candidates = nil
	p.closed = true

	p.log.Info().Msg("Probe state released")

	return nil
}
