// Package sysmem describes the machine a benchmark run executed on.
//
// Timing numbers are only comparable between runs on similar hosts, so every
// run records a Host snapshot next to its results.
package sysmem

import "runtime"

// FallbackMemoryBytes is reported when the platform gives no memory figure.
const FallbackMemoryBytes uint64 = 4 * 1024 * 1024 * 1024

// Host is a point-in-time description of the machine and Go runtime.
// Reliable is false when TotalBytes is FallbackMemoryBytes.
type Host struct {
	TotalBytes uint64 `json:"total_memory_bytes"`
	Reliable   bool   `json:"total_memory_reliable"`
	NumCPU     int    `json:"num_cpu"`
	GOMAXPROCS int    `json:"gomaxprocs"`
	GoVersion  string `json:"go_version"`
	OS         string `json:"os"`
	Arch       string `json:"arch"`
}

// Snapshot probes the current host.
func Snapshot() Host {
	mem, ok := physicalMemory()
	if !ok || mem == 0 {
		mem, ok = FallbackMemoryBytes, false
	}
	return Host{
		TotalBytes: mem,
		Reliable:   ok,
		NumCPU:     runtime.NumCPU(),
		GOMAXPROCS: runtime.GOMAXPROCS(0),
		GoVersion:  runtime.Version(),
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
	}
}
