//go:build linux

package cpu

import "golang.org/x/sys/unix"

// pinThread restricts the calling OS thread to a single CPU.
// The caller must already hold runtime.LockOSThread.
func pinThread(workerID int) (int, error) {
	cpuID := cpuFor(workerID)

	var set unix.CPUSet
	set.Zero()
	set.Set(cpuID)

	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return -1, err
	}
	return cpuID, nil
}

// currentCPU reports the CPU the calling thread is running on.
func currentCPU() (int, error) {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return -1, err
	}
	for i := range NumCPU() {
		if set.IsSet(i) {
			return i, nil
		}
	}
	return -1, nil
}
