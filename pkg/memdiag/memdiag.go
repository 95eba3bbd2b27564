// Package memdiag reads Go runtime memory statistics around benchmark phases.
//
// Garbage collection that runs while a sort is being timed shows up in the
// samples, so the CLI records how many cycles and how much allocation each
// phase caused. Reads are synchronous; nothing runs in the background.
package memdiag

import (
	"runtime"
	"time"
)

// Stats holds memory statistics from runtime.
type Stats struct {
	// HeapAlloc is bytes allocated on heap and still in use.
	HeapAlloc uint64

	// TotalAlloc is cumulative bytes allocated (even if freed).
	TotalAlloc uint64

	// Sys is bytes obtained from OS.
	Sys uint64

	// NumGC is the number of completed GC cycles.
	NumGC uint32

	// PauseTotal is the cumulative stop-the-world pause time.
	PauseTotal time.Duration
}

// Read reads current memory statistics.
func Read() Stats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return Stats{
		HeapAlloc:  m.HeapAlloc,
		TotalAlloc: m.TotalAlloc,
		Sys:        m.Sys,
		NumGC:      m.NumGC,
		PauseTotal: time.Duration(m.PauseTotalNs),
	}
}

// Delta is the runtime activity between two Stats readings.
type Delta struct {
	Allocated uint64
	GCCycles  uint32
	GCPause   time.Duration
	HeapAlloc uint64
}

// Since returns the activity from before to s. HeapAlloc is the value at s.
func (s Stats) Since(before Stats) Delta {
	return Delta{
		Allocated: s.TotalAlloc - before.TotalAlloc,
		GCCycles:  s.NumGC - before.NumGC,
		GCPause:   s.PauseTotal - before.PauseTotal,
		HeapAlloc: s.HeapAlloc,
	}
}
