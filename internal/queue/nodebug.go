//go:build !debug

package queue

func debugLog(string, ...any) {}
