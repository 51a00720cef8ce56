// Package cpu binds pool workers to operating-system threads.
//
// A worker that calls LockWorker owns its OS thread for as long as it runs,
// and on Linux that thread is also pinned to one CPU, chosen round-robin
// from the worker id.
package cpu
