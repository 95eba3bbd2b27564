package logging

import (
	"time"

	"github.com/eunmann/mergebench/pkg/humanfmt"
	"github.com/rs/zerolog"
)

// ProgressTracker counts completed experiment cells and estimates the time
// remaining. Cells grow more expensive with array size, so the ETA uses a
// moving average of the most recent cell durations.
type ProgressTracker struct {
	total     int64
	completed int64
	startTime time.Time
	log       zerolog.Logger
	phase     string

	recentDurations []time.Duration
	maxRecent       int
}

// NewProgressTracker creates a new progress tracker.
func NewProgressTracker(phase string, total int64, log zerolog.Logger) *ProgressTracker {
	return &ProgressTracker{
		total:           total,
		startTime:       time.Now(),
		log:             log,
		phase:           phase,
		recentDurations: make([]time.Duration, 0, 32),
		maxRecent:       32,
	}
}

// RecordCompletion records that a cell completed with the given duration.
func (pt *ProgressTracker) RecordCompletion(d time.Duration) {
	pt.completed++
	if len(pt.recentDurations) >= pt.maxRecent {
		pt.recentDurations = pt.recentDurations[1:]
	}
	pt.recentDurations = append(pt.recentDurations, d)
}

// Completed returns the number of completed cells.
func (pt *ProgressTracker) Completed() int64 {
	return pt.completed
}

// Total returns the total count.
func (pt *ProgressTracker) Total() int64 {
	return pt.total
}

// Remaining returns how many cells are left.
func (pt *ProgressTracker) Remaining() int64 {
	return max(0, pt.total-pt.completed)
}

// ProgressPct returns the progress percentage (0-100).
func (pt *ProgressTracker) ProgressPct() float64 {
	if pt.total == 0 {
		return 100.0
	}
	return float64(pt.completed) * 100.0 / float64(pt.total)
}

// ETA returns the estimated time remaining.
func (pt *ProgressTracker) ETA() time.Duration {
	if pt.completed == 0 {
		return 0
	}
	remaining := pt.Remaining()
	if remaining == 0 {
		return 0
	}

	var avg time.Duration
	if len(pt.recentDurations) > 0 {
		var sum time.Duration
		for _, d := range pt.recentDurations {
			sum += d
		}
		avg = sum / time.Duration(len(pt.recentDurations))
	} else {
		avg = time.Since(pt.startTime) / time.Duration(pt.completed)
	}
	return avg * time.Duration(remaining)
}

// Elapsed returns time since tracking started.
func (pt *ProgressTracker) Elapsed() time.Duration {
	return time.Since(pt.startTime)
}

// Event starts a cells_completed event carrying the current progress.
func (pt *ProgressTracker) Event() *CompletionEvent {
	return NewCompletionEvent(pt.log, "cells_completed", pt.phase, pt.Elapsed()).
		Progress(pt.completed, pt.total, pt.ETA())
}

// CompletionEvent helps build consistent completion log events.
type CompletionEvent struct {
	log     zerolog.Logger
	event   string
	phase   string
	elapsed time.Duration
	keys    []string
	fields  map[string]interface{}
}

// NewCompletionEvent creates a new completion event builder.
func NewCompletionEvent(log zerolog.Logger, event, phase string, elapsed time.Duration) *CompletionEvent {
	return &CompletionEvent{
		log:     log,
		event:   event,
		phase:   phase,
		elapsed: elapsed,
		fields:  make(map[string]interface{}),
	}
}

func (ce *CompletionEvent) set(key string, val interface{}) *CompletionEvent {
	if _, ok := ce.fields[key]; !ok {
		ce.keys = append(ce.keys, key)
	}
	ce.fields[key] = val
	return ce
}

// Str adds a string field.
func (ce *CompletionEvent) Str(key, val string) *CompletionEvent {
	return ce.set(key, val)
}

// Int adds an int field.
func (ce *CompletionEvent) Int(key string, val int) *CompletionEvent {
	return ce.set(key, val)
}

// Int64 adds an int64 field.
func (ce *CompletionEvent) Int64(key string, val int64) *CompletionEvent {
	return ce.set(key, val)
}

// Float64 adds a float64 field.
func (ce *CompletionEvent) Float64(key string, val float64) *CompletionEvent {
	return ce.set(key, val)
}

// Bytes adds byte count with optional human-readable companion.
func (ce *CompletionEvent) Bytes(key string, bytes int64) *CompletionEvent {
	ce.set(key, bytes)
	if IsPrettyMode() {
		ce.set(key+"_h", humanfmt.Bytes(bytes))
	}
	return ce
}

// Count adds count with optional human-readable companion.
func (ce *CompletionEvent) Count(key string, n int64) *CompletionEvent {
	ce.set(key, n)
	if IsPrettyMode() {
		ce.set(key+"_h", humanfmt.Count(n))
	}
	return ce
}

// Micros adds a microsecond measurement with optional human-readable companion.
func (ce *CompletionEvent) Micros(key string, usec float64) *CompletionEvent {
	ce.set(key, usec)
	if IsPrettyMode() {
		ce.set(key+"_h", humanfmt.Micros(usec))
	}
	return ce
}

// Progress adds progress fields (done, total, percentage, optional ETA).
func (ce *CompletionEvent) Progress(done, total int64, eta time.Duration) *CompletionEvent {
	ce.set("done", done)
	ce.set("total", total)
	if total > 0 {
		ce.set("progress_pct", float64(done)*100.0/float64(total))
		if IsPrettyMode() {
			ce.set("progress_h", humanfmt.Count(done)+"/"+humanfmt.Count(total))
		}
	}
	if eta > 0 {
		ce.set("eta_ms", eta.Milliseconds())
		if IsPrettyMode() {
			ce.set("eta_h", humanfmt.Duration(eta))
		}
	}
	return ce
}

// Log emits the completion event at info level.
func (ce *CompletionEvent) Log(msg string) {
	ce.emit(ce.log.Info(), msg)
}

// LogDebug emits the completion event at debug level.
func (ce *CompletionEvent) LogDebug(msg string) {
	ce.emit(ce.log.Debug(), msg)
}

func (ce *CompletionEvent) emit(e *zerolog.Event, msg string) {
	e = e.Str("event", ce.event).
		Str("phase", ce.phase).
		Int64("duration_ms", ce.elapsed.Milliseconds())

	if IsPrettyMode() {
		e = e.Str("duration_h", humanfmt.Duration(ce.elapsed))
	}

	for _, k := range ce.keys {
		e = e.Interface(k, ce.fields[k])
	}

	e.Msg(msg)
}

// PhaseComplete starts a phase completion event.
func PhaseComplete(log zerolog.Logger, phase string, elapsed time.Duration) *CompletionEvent {
	return NewCompletionEvent(log, "phase_completed", phase, elapsed)
}

// FileCreated starts a file creation event.
func FileCreated(log zerolog.Logger, phase string, elapsed time.Duration) *CompletionEvent {
	return NewCompletionEvent(log, "file_created", phase, elapsed)
}

// FileUploaded starts a file upload event.
func FileUploaded(log zerolog.Logger, phase string, elapsed time.Duration) *CompletionEvent {
	return NewCompletionEvent(log, "file_uploaded", phase, elapsed)
}
