package sysfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAttr(t *testing.T, dir, name, contents string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	return path
}

func TestReadAttr(t *testing.T) {
	dir := t.TempDir()

	path := writeAttr(t, dir, "name", "ELAN1200:00 04F3:303E Touchpad\n")

	val, ok := ReadAttr(path)
	require.True(t, ok)
	assert.Equal(t, "ELAN1200:00 04F3:303E Touchpad", val)

	_, ok = ReadAttr(filepath.Join(dir, "missing"))
	assert.False(t, ok)

	empty := writeAttr(t, dir, "empty", "\n")
	_, ok = ReadAttr(empty)
	assert.False(t, ok)
}

func TestReadHexID(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		contents string
		expected uint16
		ok       bool
	}{
		{"elan vendor", "04f3\n", 0x04f3, true},
		{"synaptics vendor", "06cb\n", 0x06cb, true},
		{"garbage", "zz17\n", 0, false},
		{"too wide", "123456\n", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeAttr(t, dir, tt.name, tt.contents)

			val, ok := ReadHexID(path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, val)
		})
	}
}

func TestReadBitmap(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name      string
		contents  string
		rangeBits int
		expected  uint64
		ok        bool
	}{
		{"single word", "b\n", EvRangeBits, 0xb, true},
		{"abs with mt", "663800013000003\n", AbsRangeBits, 0x663800013000003, true},
		// A 32-bit kernel splits the same abs map into two words; the MT
		// bits live in the high word and must survive the fold.
		{"abs split into 32-bit words", "6638000 13000003\n", AbsRangeBits, 0x663800013000003, true},
		// Two full 64-bit words: only the low one fits the return value.
		{"64-bit words keep low word", "660800011000003 0\n", KeyRangeBits, 0, true},
		{"garbage", "not-a-bitmap\n", AbsRangeBits, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeAttr(t, dir, tt.name, tt.contents)

			val, ok := ReadBitmap(path, tt.rangeBits)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, val)
		})
	}
}

func TestReadBitmapWords(t *testing.T) {
	dir := t.TempDir()

	// A touchpad key map as a 64-bit kernel prints it: BTN_LEFT and the
	// tool buttons in the sixth word, nothing below bit 256.
	path := writeAttr(t, dir, "key", "e520 10000 0 0 0 0\n")

	words, ok := ReadBitmapWords(path, KeyRangeBits)
	require.True(t, ok)
	require.Len(t, words, 6)
	assert.Equal(t, uint64(0xe520), words[5])
	assert.Equal(t, uint64(0x10000), words[4])
	assert.Zero(t, words[0])

	// The same map from a 32-bit kernel uses twice as many half-width
	// words and must refold to the identical layout.
	split := writeAttr(t, dir, "key32", "0 0 e520 0 10000 0 0 0 0 0 0 0 0\n")

	words32, ok := ReadBitmapWords(split, KeyRangeBits)
	require.True(t, ok)
	require.Len(t, words32, 7)
	assert.Equal(t, uint64(0xe520), words32[5])
	assert.Equal(t, uint64(0x10000), words32[4])

	_, ok = ReadBitmapWords(filepath.Join(dir, "missing"), KeyRangeBits)
	assert.False(t, ok)
}

func TestResolveDriver(t *testing.T) {
	root := t.TempDir()

	driverDir := filepath.Join(root, "bus", "drivers", "elan_i2c")
	require.NoError(t, os.MkdirAll(driverDir, 0o750))

	deviceDir := filepath.Join(root, "input0", "device")
	require.NoError(t, os.MkdirAll(deviceDir, 0o750))
	require.NoError(t, os.Symlink(driverDir, filepath.Join(deviceDir, "driver")))

	name, ok := ResolveDriver(filepath.Join(root, "input0"))
	require.True(t, ok)
	assert.Equal(t, "elan_i2c", name)

	// No driver link at all.
	bare := filepath.Join(root, "input1")
	require.NoError(t, os.MkdirAll(filepath.Join(bare, "device"), 0o750))

	_, ok = ResolveDriver(bare)
	assert.False(t, ok)
}

func TestFindEventNode(t *testing.T) {
	root := t.TempDir()

	dev := filepath.Join(root, "input3")
	require.NoError(t, os.MkdirAll(filepath.Join(dev, "event2"), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(dev, "id"), 0o750))

	node, ok := FindEventNode(dev, "/dev/input")
	require.True(t, ok)
	assert.Equal(t, "/dev/input/event2", node)

	noEvent := filepath.Join(root, "input4")
	require.NoError(t, os.MkdirAll(noEvent, 0o750))

	_, ok = FindEventNode(noEvent, "/dev/input")
	assert.False(t, ok)
}
