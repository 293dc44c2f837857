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

// Package classify decides which scanned input devices are touchpads.
//
// Three independent heuristics are evaluated per record: a name-fragment
// match, a capability-bitmap match and a known-vendor match. A record is a
// touchpad iff at least one heuristic fires. Candidates are ranked by the
// number of heuristics that fired; ties keep enumeration order.
package classify

import (
	"sort"
	"strings"

	"github.com/carverauto/touchprobe/pkg/models"
)

// Linux input event codes consulted by the capability heuristic.
const (
	evAbs          = 0x03
	absX           = 0x00
	absY           = 0x01
	absMtSlot      = 0x2f
	absMtPositionX = 0x35
	btnToolFinger  = 0x145
)

// nameFragments are matched case-insensitively against the device name.
var nameFragments = []string{
	"touchpad",
	"trackpad",
	"clickpad",
	"synaptics",
	"elan",
	"alps",
}

// knownVendors are input vendor IDs of common touchpad manufacturers.
var knownVendors = map[uint16]string{
	0x04f3: "ELAN",
	0x06cb: "Synaptics",
	0x044e: "ALPS",
}

// Classify evaluates every record and returns the full list ranked
// most-confident first. Records that match nothing are included at the tail
// with IsTouchpad false, so callers get one entry per scanned device.
func Classify(records []models.DeviceRecord) []models.RankedCandidate {
	candidates := make([]models.RankedCandidate, 0, len(records))

	for _, record := range records {
		candidates = append(candidates, models.RankedCandidate{
			Record: record,
			Result: classifyOne(record),
		})
	}

	// Stable sort keeps enumeration order for equal signal counts. That
	// order is whatever sysfs yielded and is not stable across runs on
	// multi-touchpad systems.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Result.SignalCount() > candidates[j].Result.SignalCount()
	})

	return candidates
}

func classifyOne(record models.DeviceRecord) models.ClassificationResult {
	var result models.ClassificationResult

	if matchesName(record.Name) {
		result.Signals = append(result.Signals, models.SignalName)
	}

	if matchesCapabilities(record) {
		result.Signals = append(result.Signals, models.SignalCapability)
	}

	if _, ok := knownVendors[record.Vendor]; ok {
		result.Signals = append(result.Signals, models.SignalVendor)
	}

	result.IsTouchpad = len(result.Signals) > 0

	return result
}

func matchesName(name string) bool {
	if name == "" {
		return false
	}

	lower := strings.ToLower(name)
	for _, fragment := range nameFragments {
		if strings.Contains(lower, fragment) {
			return true
		}
	}

	return false
}

// matchesCapabilities requires absolute pointer-motion axes plus a touch
// capability: the MT slot protocol, MT position reporting, or the finger
// tool button that single-touch pads report instead.
func matchesCapabilities(record models.DeviceRecord) bool {
	if record.EventBits&(1<<evAbs) == 0 {
		return false
	}

	if record.AbsBits&(1<<absX) == 0 || record.AbsBits&(1<<absY) == 0 {
		return false
	}

	if record.AbsBits&(1<<absMtSlot) != 0 || record.AbsBits&(1<<absMtPositionX) != 0 {
		return true
	}

	return models.BitmapHas(record.KeyBits, btnToolFinger)
}
