// Package report writes experiment measurements as CSV, Parquet and a run
// manifest.
//
// Every destination is written with tmp+rename semantics: Create opens
// <path>.tmp straight away so an unwritable location is reported before any
// measurement runs, and Commit moves the finished file into place.
package report

import (
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// ErrOutput marks failures to open, write or commit a report destination.
var ErrOutput = errors.New("report output")

const writeBufferSize = 256 * 1024

// Compression identifies the stream compression applied to an output.
type Compression string

// Supported compressions, selected by file suffix.
const (
	CompressionNone Compression = "none"
	CompressionZstd Compression = "zstd"
	CompressionGzip Compression = "gzip"
)

// CompressionFor returns the compression implied by the path suffix.
func CompressionFor(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst":
		return CompressionZstd
	case ".gz":
		return CompressionGzip
	default:
		return CompressionNone
	}
}

// Output is a report file being written. It must end with Commit or Abort.
type Output struct {
	path    string
	tmpPath string
	file    *os.File
	buf     *bufio.Writer
	enc     io.WriteCloser // nil for uncompressed outputs
	w       io.Writer
	written int64
	closed  bool
}

// Create opens a temporary file next to path, creating parent directories.
func Create(path string) (*Output, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrOutput)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("%w: create output dir: %w", ErrOutput, err)
	}

	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("%w: create %s: %w", ErrOutput, tmpPath, err)
	}

	o := &Output{
		path:    path,
		tmpPath: tmpPath,
		file:    f,
		buf:     bufio.NewWriterSize(f, writeBufferSize),
	}
	o.w = o.buf

	switch CompressionFor(path) {
	case CompressionZstd:
		enc, err := zstd.NewWriter(o.buf, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			f.Close()
			os.Remove(tmpPath)
			return nil, fmt.Errorf("%w: create zstd encoder: %w", ErrOutput, err)
		}
		o.enc, o.w = enc, enc
	case CompressionGzip:
		gz := gzip.NewWriter(o.buf)
		o.enc, o.w = gz, gz
	}

	return o, nil
}

// Write writes uncompressed bytes to the output.
func (o *Output) Write(p []byte) (int, error) {
	if o.closed {
		return 0, fmt.Errorf("%w: write to closed output %s", ErrOutput, o.path)
	}
	n, err := o.w.Write(p)
	o.written += int64(n)
	if err != nil {
		return n, fmt.Errorf("%w: write %s: %w", ErrOutput, o.path, err)
	}
	return n, nil
}

// Path returns the final destination.
func (o *Output) Path() string {
	return o.path
}

// BytesWritten returns the uncompressed byte count written so far.
func (o *Output) BytesWritten() int64 {
	return o.written
}

// Commit flushes, fsyncs and renames the temporary file to its destination.
// On failure the temporary file is removed.
func (o *Output) Commit() error {
	if o.closed {
		return fmt.Errorf("%w: %s already closed", ErrOutput, o.path)
	}
	o.closed = true

	if err := o.finish(); err != nil {
		o.file.Close()
		os.Remove(o.tmpPath)
		return fmt.Errorf("%w: finish %s: %w", ErrOutput, o.path, err)
	}
	if err := o.file.Close(); err != nil {
		os.Remove(o.tmpPath)
		return fmt.Errorf("%w: close %s: %w", ErrOutput, o.tmpPath, err)
	}
	if err := os.Rename(o.tmpPath, o.path); err != nil {
		os.Remove(o.tmpPath)
		return fmt.Errorf("%w: rename temp to final: %w", ErrOutput, err)
	}
	return nil
}

func (o *Output) finish() error {
	if o.enc != nil {
		if err := o.enc.Close(); err != nil {
			return err
		}
	}
	if err := o.buf.Flush(); err != nil {
		return err
	}
	return o.file.Sync()
}

// Abort discards the output. It is a no-op after Commit or a previous Abort.
func (o *Output) Abort() error {
	if o.closed {
		return nil
	}
	o.closed = true
	if o.enc != nil {
		o.enc.Close()
	}
	o.file.Close()
	if err := os.Remove(o.tmpPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: remove %s: %w", ErrOutput, o.tmpPath, err)
	}
	return nil
}

// Open opens a report file for reading, decompressing it by suffix.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	switch CompressionFor(path) {
	case CompressionZstd:
		dec, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("create zstd reader: %w", err)
		}
		return &decodedReader{r: dec.IOReadCloser(), f: f}, nil
	case CompressionGzip:
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		return &decodedReader{r: gz, f: f}, nil
	default:
		return f, nil
	}
}

// decodedReader closes both the decompressor and the underlying file.
type decodedReader struct {
	r io.ReadCloser
	f *os.File
}

func (d *decodedReader) Read(p []byte) (int, error) {
	return d.r.Read(p)
}

func (d *decodedReader) Close() error {
	d.r.Close()
	return d.f.Close()
}
