package report

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestCompressionFor(t *testing.T) {
	tests := []struct {
		path string
		want Compression
	}{
		{"results/raw.csv", CompressionNone},
		{"results/raw.csv.zst", CompressionZstd},
		{"results/raw.csv.ZST", CompressionZstd},
		{"results/raw.csv.gz", CompressionGzip},
		{"records.parquet", CompressionNone},
	}
	for _, tt := range tests {
		if got := CompressionFor(tt.path); got != tt.want {
			t.Errorf("CompressionFor(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestOutput_CommitRoundTrip(t *testing.T) {
	for _, name := range []string{"out.csv", "out.csv.zst", "out.csv.gz"} {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "nested", name)
			payload := []byte("array_type,n\nrandom,500\n")

			out, err := Create(path)
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			if _, err := os.Stat(path); !os.IsNotExist(err) {
				t.Fatalf("final file exists before Commit: %v", err)
			}
			if _, err := out.Write(payload); err != nil {
				t.Fatalf("Write: %v", err)
			}
			if out.BytesWritten() != int64(len(payload)) {
				t.Errorf("BytesWritten = %d, want %d", out.BytesWritten(), len(payload))
			}
			if err := out.Commit(); err != nil {
				t.Fatalf("Commit: %v", err)
			}
			if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
				t.Errorf("tmp file left behind: %v", err)
			}

			r, err := Open(path)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			defer r.Close()
			got, err := io.ReadAll(r)
			if err != nil {
				t.Fatalf("ReadAll: %v", err)
			}
			if string(got) != string(payload) {
				t.Errorf("got %q, want %q", got, payload)
			}
		})
	}
}

func TestOutput_Abort(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")

	out, err := Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := out.Write([]byte("partial")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := out.Abort(); err != nil {
		t.Fatalf("Abort: %v", err)
	}
	if err := out.Abort(); err != nil {
		t.Errorf("second Abort: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty dir after Abort, found %d entries", len(entries))
	}

	if _, err := out.Write([]byte("x")); !errors.Is(err, ErrOutput) {
		t.Errorf("Write after Abort = %v, want ErrOutput", err)
	}
	if err := out.Commit(); !errors.Is(err, ErrOutput) {
		t.Errorf("Commit after Abort = %v, want ErrOutput", err)
	}
}

func TestCreate_Unwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	// A regular file where a directory is needed.
	_, err := Create(filepath.Join(blocker, "out.csv"))
	if !errors.Is(err, ErrOutput) {
		t.Errorf("Create() = %v, want ErrOutput", err)
	}

	if _, err := Create(""); !errors.Is(err, ErrOutput) {
		t.Errorf("Create(\"\") = %v, want ErrOutput", err)
	}
}
