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

// Package scan enumerates input devices from the sysfs input class tree.
package scan

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/carverauto/touchprobe/pkg/logger"
	"github.com/carverauto/touchprobe/pkg/models"
	"github.com/carverauto/touchprobe/pkg/sysfs"
)

const (
	defaultSysfsRoot = "/sys/class/input"
	defaultDevRoot   = "/dev/input"
)

// ErrEnumerationUnavailable is returned when the input class root itself
// cannot be read. Per-device failures never produce this error.
var ErrEnumerationUnavailable = errors.New("input device enumeration unavailable")

// Scanner walks the sysfs input class tree and produces device records.
type Scanner struct {
	sysfsRoot string
	devRoot   string
	log       logger.Logger
}

// Option adjusts a Scanner.
type Option func(*Scanner)

// WithSysfsRoot overrides the input class root, used by tests to point the
// scanner at a fake tree.
func WithSysfsRoot(root string) Option {
	return func(s *Scanner) {
		s.sysfsRoot = root
	}
}

// WithDevRoot overrides the directory event nodes are mapped under.
func WithDevRoot(root string) Option {
	return func(s *Scanner) {
		s.devRoot = root
	}
}

// NewScanner creates a scanner over the standard sysfs and /dev locations.
func NewScanner(log logger.Logger, opts ...Option) *Scanner {
	s := &Scanner{
		sysfsRoot: defaultSysfsRoot,
		devRoot:   defaultDevRoot,
		log:       log,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Scan reads every input* entry under the sysfs root and returns one record
// per device, in directory order. A device whose attributes cannot be read
// still yields a record with the unreadable fields left at zero; only an
// unreadable root aborts the scan.
func (s *Scanner) Scan(ctx context.Context) ([]models.DeviceRecord, error) {
	entries, err := os.ReadDir(s.sysfsRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEnumerationUnavailable, err)
	}

	var records []models.DeviceRecord

	for _, entry := range entries {
		if ctx.Err() != nil {
			return records, ctx.Err()
		}

		name := entry.Name()
		if !strings.HasPrefix(name, "input") {
			// event*, mouse*, js* and mice are interface nodes, not devices.
			continue
		}

		record := s.readDevice(filepath.Join(s.sysfsRoot, name))
		records = append(records, record)

		s.log.Debug().
			Str("sysfs_path", record.SysfsPath).
			Str("name", record.Name).
			Str("driver", record.Driver).
			Str("event_node", record.EventNode).
			Uint16("vendor", record.Vendor).
			Msg("Scanned input device")
	}

	return records, nil
}

func (s *Scanner) readDevice(devicePath string) models.DeviceRecord {
	record := models.DeviceRecord{SysfsPath: devicePath}

	if name, ok := sysfs.ReadAttr(filepath.Join(devicePath, "name")); ok {
		record.Name = name
	}

	if vendor, ok := sysfs.ReadHexID(filepath.Join(devicePath, "id", "vendor")); ok {
		record.Vendor = vendor
	}

	if product, ok := sysfs.ReadHexID(filepath.Join(devicePath, "id", "product")); ok {
		record.Product = product
	}

	if ev, ok := sysfs.ReadBitmap(filepath.Join(devicePath, "capabilities", "ev"), sysfs.EvRangeBits); ok {
		record.EventBits = ev
	}

	if abs, ok := sysfs.ReadBitmap(filepath.Join(devicePath, "capabilities", "abs"), sysfs.AbsRangeBits); ok {
		record.AbsBits = abs
	}

	if key, ok := sysfs.ReadBitmapWords(filepath.Join(devicePath, "capabilities", "key"), sysfs.KeyRangeBits); ok {
		record.KeyBits = key
	}

	if driver, ok := sysfs.ResolveDriver(devicePath); ok {
		record.Driver = driver
	}

	if node, ok := sysfs.FindEventNode(devicePath, s.devRoot); ok {
		record.EventNode = node
	}

	return record
}
