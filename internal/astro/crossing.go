package astro

import (
	"math"
	"time"
)

// Direction selects which horizon crossing to look for.
type Direction int

const (
	Rising  Direction = iota // altitude goes from below to at-or-above the threshold
	Setting                  // altitude goes from at-or-above to below the threshold
)

func (d Direction) String() string {
	switch d {
	case Rising:
		return "rising"
	case Setting:
		return "setting"
	default:
		return "unknown"
	}
}

// AltitudeFunc returns the altitude of a body in degrees at t.
type AltitudeFunc func(t time.Time) float64

// Default search parameters for FindCrossing.
const (
	DefaultScanStep  = 10 * time.Minute
	DefaultPrecision = time.Second
)

// CrossingSearch configures FindCrossing.
type CrossingSearch struct {
	Threshold float64       // altitude threshold in degrees
	Span      time.Duration // search horizon after the start time
	Step      time.Duration // coarse scan step, DefaultScanStep when zero
	Precision time.Duration // bisection tolerance, DefaultPrecision when zero
}

// FindCrossing returns the first time after start at which alt crosses
// s.Threshold in direction dir, within s.Span. The boolean is false when
// no such crossing exists in the window.
//
// The window is scanned in s.Step increments and the bracketing interval
// is refined by bisection. Crossings that begin and end within a single
// step are not detected; a ten minute step is far below the fastest
// altitude change of any planet at non-polar latitudes.
func FindCrossing(alt AltitudeFunc, start time.Time, dir Direction, s CrossingSearch) (time.Time, bool) {
	step := s.Step
	if step <= 0 {
		step = DefaultScanStep
	}
	prec := s.Precision
	if prec <= 0 {
		prec = DefaultPrecision
	}
	end := start.Add(s.Span)

	t0 := start
	a0 := alt(t0) - s.Threshold
	for t0.Before(end) {
		t1 := t0.Add(step)
		if t1.After(end) {
			t1 = end
		}
		a1 := alt(t1) - s.Threshold
		if crosses(a0, a1, dir) {
			return bisect(alt, s.Threshold, t0, t1, dir, prec), true
		}
		t0, a0 = t1, a1
	}
	return time.Time{}, false
}

func crosses(a0, a1 float64, dir Direction) bool {
	if dir == Rising {
		return a0 < 0 && a1 >= 0
	}
	return a0 >= 0 && a1 < 0
}

// bisect narrows [lo, hi] around the crossing until it is shorter than prec.
func bisect(alt AltitudeFunc, threshold float64, lo, hi time.Time, dir Direction, prec time.Duration) time.Time {
	for hi.Sub(lo) > prec {
		mid := lo.Add(hi.Sub(lo) / 2)
		above := alt(mid)-threshold >= 0
		// Rising: below before the crossing. Setting: above before it.
		if above == (dir == Setting) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo.Add(hi.Sub(lo) / 2)
}

// InterpolateCrossing finds the time when elevation crosses a threshold
// between two samples, assuming a linear change.
func InterpolateCrossing(t1, t2 time.Time, el1, el2, threshold float64) time.Time {
	if math.Abs(el2-el1) < 0.0001 {
		return t1
	}

	fraction := (threshold - el1) / (el2 - el1)
	if fraction < 0 {
		fraction = 0
	} else if fraction > 1 {
		fraction = 1
	}

	dt := t2.Sub(t1)
	return t1.Add(time.Duration(float64(dt) * fraction))
}
