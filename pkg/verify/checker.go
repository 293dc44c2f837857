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

// Package verify checks whether a classified touchpad is actually usable:
// driver module registered, event node answering the capability query, and
// events arriving within a bounded observation window.
//
// The check is passive. It never injects input, so StatusWorking requires
// real input during the window or an event already queued on the node.
package verify

import (
	"context"
	"time"

	"github.com/carverauto/touchprobe/pkg/logger"
	"github.com/carverauto/touchprobe/pkg/models"
)

const defaultEventTimeout = 500 * time.Millisecond

// Node is an opened event character device that answered the capability
// query.
type Node interface {
	// WaitEvent blocks until an input event is readable or the deadline
	// passes. It never blocks longer than timeout.
	WaitEvent(timeout time.Duration) (bool, error)
	Close() error
}

type checkerDeps struct {
	moduleLoaded func(name string) bool
	openNode     func(path string) (Node, error)
}

// Option adjusts checker dependencies; used by tests to substitute the
// kernel-facing pieces.
type Option func(*Checker)

func withModuleCheck(fn func(name string) bool) Option {
	return func(c *Checker) {
		c.deps.moduleLoaded = fn
	}
}

// WithNodeOpener replaces how event nodes are opened and probed. The
// default opens the real evdev character device; tests substitute scripted
// nodes.
func WithNodeOpener(fn func(path string) (Node, error)) Option {
	return func(c *Checker) {
		c.deps.openNode = fn
	}
}

// WithProcModules points the module registry check at an alternate modules
// list, such as a fixture file.
func WithProcModules(path string) Option {
	return func(c *Checker) {
		c.deps.moduleLoaded = func(name string) bool {
			return moduleLoaded(path, name)
		}
	}
}

// WithEventTimeout sets the observation window for step four. The deadline
// is explicit so tests can drive StatusNoEvents with a near-zero window.
func WithEventTimeout(timeout time.Duration) Option {
	return func(c *Checker) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// Checker runs the layered driver health check.
type Checker struct {
	log     logger.Logger
	timeout time.Duration
	deps    checkerDeps
}

// NewChecker creates a checker against the real kernel interfaces.
func NewChecker(log logger.Logger, opts ...Option) *Checker {
	c := &Checker{
		log:     log,
		timeout: defaultEventTimeout,
		deps: checkerDeps{
			moduleLoaded: func(name string) bool {
				return moduleLoaded(defaultProcModules, name)
			},
			openNode: openEventNode,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Verify walks the health layers in order and returns the first terminal
// status. The sequence never backtracks: a failed layer decides the result
// regardless of what later layers would have reported.
func (c *Checker) Verify(ctx context.Context, candidate *models.DeviceRecord) models.VerificationStatus {
	if candidate == nil {
		c.log.Info().Msg("No touchpad candidate to verify")
		return models.StatusNotFound
	}

	if !c.deps.moduleLoaded(candidate.Driver) {
		c.log.Info().
			Str("driver", candidate.Driver).
			Str("name", candidate.Name).
			Msg("Driver module not registered")

		return models.StatusModuleMissing
	}

	if candidate.EventNode == "" {
		c.log.Info().
			Str("sysfs_path", candidate.SysfsPath).
			Msg("Candidate has no event node")

		return models.StatusNodeUnresponsive
	}

	node, err := c.deps.openNode(candidate.EventNode)
	if err != nil {
		c.log.Info().
			Err(err).
			Str("event_node", candidate.EventNode).
			Msg("Event node did not respond to capability query")

		return models.StatusNodeUnresponsive
	}
	defer func() {
		_ = node.Close()
	}()

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	got, err := node.WaitEvent(timeout)
	if err != nil {
		// The node answered the capability query, so a failed wait counts
		// as silence, not unresponsiveness.
		c.log.Warn().
			Err(err).
			Str("event_node", candidate.EventNode).
			Msg("Event wait failed")

		return models.StatusNoEvents
	}

	if !got {
		c.log.Info().
			Str("event_node", candidate.EventNode).
			Dur("timeout", timeout).
			Msg("No input events within observation window")

		return models.StatusNoEvents
	}

	c.log.Info().
		Str("event_node", candidate.EventNode).
		Str("driver", candidate.Driver).
		Msg("Touchpad verified working")

	return models.StatusWorking
}
