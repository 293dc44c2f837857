//go:build linux

package verify

import (
	"errors"
	"fmt"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

var errCapabilityQuery = errors.New("capability query failed")

// evdevNode wraps an open evdev character device.
type evdevNode struct {
	fd int
}

// inputEventSize is sizeof(struct input_event) on 64-bit kernels:
// two 64-bit timeval fields plus type, code and value.
const inputEventSize = 24

// openEventNode opens the node non-blocking and issues EVIOCGBIT(0) to
// confirm the device answers an event-type capability query.
func openEventNode(path string) (Node, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	var bits [8]byte
	if err := ioctlEviocgbit(fd, bits[:]); err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("%w: %s: %w", errCapabilityQuery, path, err)
	}

	return &evdevNode{fd: fd}, nil
}

// WaitEvent polls the node for readability and consumes one event if any
// arrives before the deadline.
func (n *evdevNode) WaitEvent(timeout time.Duration) (bool, error) {
	deadline := time.Now().Add(timeout)

	for {
		fds := []unix.PollFd{{Fd: int32(n.fd), Events: unix.POLLIN}}

		ready, err := unix.Poll(fds, pollTimeoutMs(time.Until(deadline)))
		if err != nil {
			if errors.Is(err, unix.EINTR) && time.Now().Before(deadline) {
				continue
			}

			return false, err
		}

		if ready == 0 {
			return false, nil
		}

		var buf [inputEventSize]byte

		count, err := unix.Read(n.fd, buf[:])
		if err != nil {
			if errors.Is(err, unix.EAGAIN) && time.Now().Before(deadline) {
				continue
			}

			return false, err
		}

		return count > 0, nil
	}
}

func (n *evdevNode) Close() error {
	return unix.Close(n.fd)
}

// pollTimeoutMs rounds the remaining window up to whole milliseconds, so a
// sub-millisecond remainder still polls instead of returning immediately.
func pollTimeoutMs(remaining time.Duration) int {
	if remaining <= 0 {
		return 0
	}

	return int((remaining + time.Millisecond - 1) / time.Millisecond)
}

// ioctlEviocgbit issues EVIOCGBIT(0, len(buf)) on fd, filling buf with the
// supported event-type bitmap.
func ioctlEviocgbit(fd int, buf []byte) error {
	// _IOC(_IOC_READ, 'E', 0x20, len(buf))
	request := uintptr(2<<30 | len(buf)<<16 | 'E'<<8 | 0x20)

	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), request, uintptr(unsafe.Pointer(&buf[0])))
	if errno != 0 {
		return errno
	}

	return nil
}
