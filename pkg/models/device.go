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

// Package models holds the data types shared by the touchprobe engine packages.
package models

// DeviceRecord is one input device as exposed by the sysfs input class.
// Records are rebuilt from scratch on every scan; fields that could not be
// read or parsed are left at their zero value.
type DeviceRecord struct {
	// SysfsPath locates the device's sysfs node, e.g. /sys/class/input/input5.
	SysfsPath string `json:"sysfs_path"`
	// Name is the kernel-reported device name, empty if unreadable.
	Name string `json:"name,omitempty"`
	// Vendor and Product come from the id/vendor and id/product attributes.
	// Zero means the attribute was missing or unparsable.
	Vendor  uint16 `json:"vendor,omitempty"`
	Product uint16 `json:"product,omitempty"`
	// EventBits and AbsBits are the capability bitmaps from capabilities/ev
	// and capabilities/abs. The EV and ABS code ranges both fit in 64 bits.
	EventBits uint64 `json:"event_bits,omitempty"`
	AbsBits   uint64 `json:"abs_bits,omitempty"`
	// KeyBits is the capabilities/key bitmap as 64-bit words, least
	// significant first. Button codes sit above bit 255, so the key map
	// never fits a single word.
	KeyBits []uint64 `json:"key_bits,omitempty"`
	// Driver is the basename of the device/driver symlink target, empty if
	// the link is absent or unresolvable.
	Driver string `json:"driver,omitempty"`
	// EventNode is the character device for reading input events,
	// e.g. /dev/input/event4. Empty if the device has no event interface.
	EventNode string `json:"event_node,omitempty"`
}

// BitmapHas reports whether bit is set in a multi-word bitmap stored least
// significant word first.
func BitmapHas(words []uint64, bit int) bool {
	word := bit / 64
	if word >= len(words) {
		return false
	}

	return words[word]&(1<<(bit%64)) != 0
}

// Signal identifies one classification heuristic that fired.
type Signal string

const (
	SignalName       Signal = "name"
	SignalCapability Signal = "capability"
	SignalVendor     Signal = "vendor"
)

// ClassificationResult is the outcome of matching one DeviceRecord against
// the touchpad heuristics. Signals records which heuristics fired; it is
// diagnostic detail, the verdict is the OR of the signals.
type ClassificationResult struct {
	IsTouchpad bool     `json:"is_touchpad"`
	Signals    []Signal `json:"signals,omitempty"`
}

// SignalCount returns how many heuristics fired.
func (r ClassificationResult) SignalCount() int {
	return len(r.Signals)
}

// Has reports whether the given signal fired.
func (r ClassificationResult) Has(s Signal) bool {
	for _, sig := range r.Signals {
		if sig == s {
			return true
		}
	}

	return false
}
