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

package models

import "time"

// VerificationStatus is the terminal outcome of one driver health check.
// The values are ordered by increasing health; exactly one is reported per
// verification pass.
type VerificationStatus int

const (
	// StatusNotFound means no touchpad was discovered during the scan.
	StatusNotFound VerificationStatus = iota
	// StatusModuleMissing means a touchpad was classified but its driver
	// module is not registered with the kernel.
	StatusModuleMissing
	// StatusNodeUnresponsive means the module is loaded but the event node
	// could not be opened or did not answer the capability query.
	StatusNodeUnresponsive
	// StatusNoEvents means the node responded but produced no input event
	// within the observation window.
	StatusNoEvents
	// StatusWorking means module loaded, node responsive and at least one
	// event observed.
	StatusWorking
)

func (s VerificationStatus) String() string {
	switch s {
	case StatusNotFound:
		return "not_found"
	case StatusModuleMissing:
		return "module_missing"
	case StatusNodeUnresponsive:
		return "node_unresponsive"
	case StatusNoEvents:
		return "no_events"
	case StatusWorking:
		return "working"
	default:
		return "unknown"
	}
}

// Working reports the simplified boolean summary exposed to the host.
func (s VerificationStatus) Working() bool {
	return s == StatusWorking
}

func (s VerificationStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// RankedCandidate pairs a scanned record with its classification, in the
// order the classifier ranked it.
type RankedCandidate struct {
	Record DeviceRecord         `json:"record"`
	Result ClassificationResult `json:"result"`
}

// ProbeReport is the JSON status payload for one full verification pass.
type ProbeReport struct {
	RunID      string             `json:"run_id"`
	Timestamp  time.Time          `json:"timestamp"`
	Candidates []RankedCandidate  `json:"candidates"`
	Status     VerificationStatus `json:"status"`
	Working    bool               `json:"working"`
	ElapsedNs  int64              `json:"elapsed_ns"`
}
