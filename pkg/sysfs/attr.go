// Package sysfs reads device attributes from the sysfs input class tree.
// Every helper is best-effort: a missing or malformed attribute yields
// (zero, false) rather than an error, so a partially readable device still
// produces a usable record.
package sysfs

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ReadAttr reads a sysfs attribute file and returns its trimmed contents.
func ReadAttr(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}

	raw := strings.TrimSpace(string(data))
	if raw == "" {
		return "", false
	}

	return raw, true
}

// ReadHexID reads an attribute holding a 16-bit hex identifier, such as
// id/vendor or id/product.
func ReadHexID(path string) (uint16, bool) {
	raw, ok := ReadAttr(path)
	if !ok {
		return 0, false
	}

	val, err := strconv.ParseUint(raw, 16, 16)
	if err != nil {
		return 0, false
	}

	return uint16(val), true
}

// Bit counts of the capability code ranges read by the scanner, matching
// EV_CNT, ABS_CNT and KEY_CNT in the kernel's input-event-codes.h.
const (
	EvRangeBits  = 0x20
	AbsRangeBits = 0x40
	KeyRangeBits = 0x300
)

// ReadBitmap reads a capability bitmap attribute and returns its low 64
// bits, which covers the full EV and ABS code ranges on any kernel.
// rangeBits is the bit count of the attribute's code range.
func ReadBitmap(path string, rangeBits int) (uint64, bool) {
	words, ok := ReadBitmapWords(path, rangeBits)
	if !ok {
		return 0, false
	}

	return words[0], true
}

// ReadBitmapWords reads a capability bitmap attribute in full, returning
// 64-bit words least significant first. The kernel prints these maps as
// space-separated unpadded hex words, most significant word first, one word
// per native unsigned long; words are refolded here so callers see the same
// layout whatever the kernel's word size was.
func ReadBitmapWords(path string, rangeBits int) ([]uint64, bool) {
	raw, ok := ReadAttr(path)
	if !ok {
		return nil, false
	}

	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return nil, false
	}

	wordBits := bitmapWordBits(fields, rangeBits)

	var (
		words   []uint64
		current uint64
		shift   int
	)

	for i := len(fields) - 1; i >= 0; i-- {
		w, err := strconv.ParseUint(fields[i], 16, wordBits)
		if err != nil {
			return nil, false
		}

		current |= w << shift

		shift += wordBits
		if shift == 64 {
			words = append(words, current)
			current, shift = 0, 0
		}
	}

	if shift > 0 {
		words = append(words, current)
	}

	return words, true
}

// bitmapWordBits infers the kernel word width of an unpadded bitmap. A word
// wider than eight hex digits proves 64-bit longs; more words than the code
// range needs at 64 bits proves 32-bit longs. Otherwise the kernel's width
// is taken to match this process's word size.
func bitmapWordBits(fields []string, rangeBits int) int {
	for _, f := range fields {
		if len(f) > 8 {
			return 64
		}
	}

	if len(fields) > (rangeBits+63)/64 {
		return 32
	}

	return strconv.IntSize
}

// ResolveDriver returns the registration name of the driver bound to the
// device, resolved from the basename of the device/driver symlink.
func ResolveDriver(sysfsPath string) (string, bool) {
	target, err := os.Readlink(filepath.Join(sysfsPath, "device", "driver"))
	if err != nil {
		return "", false
	}

	name := filepath.Base(target)
	if name == "." || name == "/" {
		return "", false
	}

	return name, true
}

// FindEventNode locates the event character device for an input device by
// looking for the event* child entry of its sysfs node, and maps it to the
// matching node under devRoot.
func FindEventNode(sysfsPath, devRoot string) (string, bool) {
	entries, err := os.ReadDir(sysfsPath)
	if err != nil {
		return "", false
	}

	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), "event") {
			return filepath.Join(devRoot, entry.Name()), true
		}
	}

	return "", false
}
