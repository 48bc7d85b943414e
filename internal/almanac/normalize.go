package almanac

import (
	"math"
	"time"
)

// WindowHalfWidth is how many hours either side of local midnight are
// charted. Samples outside the window are masked.
const WindowHalfWidth = 10.0

// FractionalDay expresses t as days since the Unix epoch; the fractional
// part is the UTC time of day.
func FractionalDay(t time.Time) float64 {
	secs := t.UTC().Unix()
	days := math.Floor(float64(secs) / 86400)
	rem := float64(secs-int64(days)*86400) + float64(t.Nanosecond())/1e9
	return days + rem/86400
}

// Normalize converts a fractional day into UTC hours in (ref-24, ref].
func Normalize(x, ref float64) float64 {
	h := (x - math.Floor(x)) * 24
	if h > ref {
		h -= 24
	}
	return h
}

// RiseReference is local noon in UTC hours, in [0, 24).
func RiseReference(offset int) float64 {
	return floorMod(float64(-offset+12), 24)
}

// SetReference is the reference hour for set events: local midnight in
// UTC hours, or local noon for SetRefNoon.
func SetReference(offset int, ref SetRef) float64 {
	if ref == SetRefNoon {
		return RiseReference(offset)
	}
	return float64(-offset)
}

// floorMod is a modulo whose result takes the sign of the divisor.
func floorMod(a, b float64) float64 {
	m := math.Mod(a, b)
	if m < 0 {
		m += b
	}
	return m
}
