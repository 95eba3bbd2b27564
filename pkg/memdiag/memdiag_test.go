package memdiag

import (
	"testing"
	"time"
)

var sink [][]byte

func TestReadAndSince(t *testing.T) {
	before := Read()
	for i := 0; i < 64; i++ {
		sink = append(sink, make([]byte, 64*1024))
	}
	after := Read()
	sink = nil

	d := after.Since(before)
	if d.Allocated < 64*64*1024 {
		t.Errorf("Allocated = %d, want at least %d", d.Allocated, 64*64*1024)
	}
	if d.HeapAlloc != after.HeapAlloc {
		t.Errorf("HeapAlloc = %d, want reading at end %d", d.HeapAlloc, after.HeapAlloc)
	}
	if after.NumGC < before.NumGC {
		t.Errorf("NumGC went backwards: %d -> %d", before.NumGC, after.NumGC)
	}
}

func TestSince_Arithmetic(t *testing.T) {
	before := Stats{TotalAlloc: 100, NumGC: 3, PauseTotal: time.Millisecond}
	after := Stats{TotalAlloc: 400, NumGC: 5, PauseTotal: 3 * time.Millisecond, HeapAlloc: 50}

	got := after.Since(before)
	want := Delta{Allocated: 300, GCCycles: 2, GCPause: 2 * time.Millisecond, HeapAlloc: 50}
	if got != want {
		t.Errorf("Since() = %+v, want %+v", got, want)
	}
}
