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

package probe

import (
	"time"

	"github.com/carverauto/touchprobe/pkg/logger"
)

const (
	defaultSysfsRoot    = "/sys/class/input"
	defaultDevRoot      = "/dev/input"
	defaultProcModules  = "/proc/modules"
	defaultEventTimeout = 500 * time.Millisecond
)

// Config holds the probe's external data source locations and the event
// observation window. The classification heuristics themselves are fixed.
type Config struct {
	SysfsRoot    string          `json:"sysfs_root,omitempty"`
	DevRoot      string          `json:"dev_root,omitempty"`
	ProcModules  string          `json:"proc_modules,omitempty"`
	EventTimeout logger.Duration `json:"event_timeout,omitempty"`
	Logging      *logger.Config  `json:"logging,omitempty"`
}

// Validate fills unset fields with their defaults.
func (c *Config) Validate() error {
	if c.SysfsRoot == "" {
		c.SysfsRoot = defaultSysfsRoot
	}

	if c.DevRoot == "" {
		c.DevRoot = defaultDevRoot
	}

	if c.ProcModules == "" {
		c.ProcModules = defaultProcModules
	}

	if c.EventTimeout <= 0 {
		c.EventTimeout = logger.Duration(defaultEventTimeout)
	}

	return nil
}
