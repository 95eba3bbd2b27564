// Package humanfmt renders timings, memory sizes and counts for the _h
// companion fields of log events.
//
// Timings are microsecond-native: every sub-minute value, whether it came
// from a sample in µs or from a time.Duration, goes through Micros so a
// cell's mean and a phase's wall time read on the same scale.
package humanfmt

import (
	"fmt"
	"strconv"
	"time"
)

// Binary (IEC) units for bytes.
const (
	KiB = 1024
	MiB = 1024 * KiB
	GiB = 1024 * MiB
	TiB = 1024 * GiB
)

type unit struct {
	size   float64
	suffix string
}

// Largest first.
var (
	byteUnits  = []unit{{TiB, " TiB"}, {GiB, " GiB"}, {MiB, " MiB"}, {KiB, " KiB"}}
	countUnits = []unit{{1e9, "B"}, {1e6, "M"}, {1e3, "K"}}
	microUnits = []unit{{1e6, "s"}, {1e3, "ms"}}
)

// scale picks the first unit v reaches. ok is false below the smallest unit.
func scale(v float64, units []unit) (s string, ok bool) {
	for _, u := range units {
		if v >= u.size {
			return strconv.FormatFloat(v/u.size, 'f', 2, 64) + u.suffix, true
		}
	}
	return "", false
}

// Micros formats a measurement given in microseconds.
// Examples: "0.4µs", "812.0µs", "1.23ms", "2.50s".
func Micros(usec float64) string {
	if s, ok := scale(usec, microUnits); ok {
		return s
	}
	return strconv.FormatFloat(usec, 'f', 1, 64) + "µs"
}

// Duration formats d. Below a minute it matches Micros; above, it drops to
// whole minutes and seconds ("1m30s", "2h15m").
func Duration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return Micros(float64(d) / float64(time.Microsecond))
	case d >= time.Hour:
		return clock(d/time.Hour, "h", (d%time.Hour)/time.Minute, "m")
	default:
		return clock(d/time.Minute, "m", (d%time.Minute)/time.Second, "s")
	}
}

func clock(major time.Duration, mu string, minor time.Duration, nu string) string {
	if minor == 0 {
		return fmt.Sprintf("%d%s", major, mu)
	}
	return fmt.Sprintf("%d%s%d%s", major, mu, minor, nu)
}

// Bytes formats a byte count in IEC units, e.g. "1.23 GiB".
func Bytes(b int64) string {
	if s, ok := scale(float64(b), byteUnits); ok {
		return s
	}
	return strconv.FormatInt(b, 10) + " B"
}

// Count formats n with a metric suffix, e.g. "1.23M".
func Count(n int64) string {
	if s, ok := scale(float64(n), countUnits); ok {
		return s
	}
	return strconv.FormatInt(n, 10)
}
