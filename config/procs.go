package config

import (
	"runtime"

	"github.com/shirou/gopsutil/cpu"
)

// DefaultProcs leaves one logical CPU for the coordinator.
func DefaultProcs() int {
	n, err := cpu.Counts(true)
	if err != nil || n < 1 {
		n = runtime.NumCPU()
	}
	return max(1, n-1)
}
