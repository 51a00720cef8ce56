package cpu

import "runtime"

// Binding describes the thread a worker ended up on.
type Binding struct {
	// CPU is the pinned CPU, or -1 when pinning was unavailable.
	CPU int
	// Err is the pinning error, if any. Thread locking itself cannot fail.
	Err error
}

// LockWorker wires the calling goroutine to its own OS thread and tries to
// pin that thread to a CPU. The returned release func must be called from the
// same goroutine before it exits.
func LockWorker(workerID int) (Binding, func()) {
	runtime.LockOSThread()
	cpuID, err := pinThread(workerID)
	return Binding{CPU: cpuID, Err: err}, runtime.UnlockOSThread
}

// NumCPU returns the number of logical CPUs usable by the process.
func NumCPU() int {
	return runtime.NumCPU()
}

func cpuFor(workerID int) int {
	n := NumCPU()
	id := workerID % n
	if id < 0 {
		id += n
	}
	return id
}
