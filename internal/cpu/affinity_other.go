//go:build !linux

package cpu

import "errors"

var errUnsupported = errors.New("cpu pinning is not supported on this platform")

// pinThread is a no-op outside Linux; the worker still owns its OS thread.
func pinThread(int) (int, error) {
	return -1, errUnsupported
}

func currentCPU() (int, error) {
	return -1, errUnsupported
}
