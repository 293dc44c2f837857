//go:build !linux

package verify

import "errors"

var errUnsupportedPlatform = errors.New("event node probing requires linux")

func openEventNode(_ string) (Node, error) {
	return nil, errUnsupportedPlatform
}
