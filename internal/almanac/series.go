package almanac

import (
	"context"
	"fmt"

	"cloudeng.io/datetime"

	"github.com/litescript/planet-chart/internal/ephem"
)

// SampleState says whether a sample is drawn.
type SampleState int

const (
	Present SampleState = iota // drawn
	NoEvent                    // no crossing within the search window
	Masked                     // crossing outside the plotted window
)

func (s SampleState) String() string {
	switch s {
	case Present:
		return "present"
	case NoEvent:
		return "no-event"
	case Masked:
		return "masked"
	default:
		return "unknown"
	}
}

// Sample is one day's normalised event. Hours is kept for Masked samples
// and is zero for NoEvent.
type Sample struct {
	Hours float64
	State SampleState
}

// Drawn reports whether the sample is part of a line.
func (s Sample) Drawn() bool {
	return s.State == Present
}

// EventKind distinguishes rise and set series.
type EventKind int

const (
	Rise EventKind = iota
	Set
)

func (k EventKind) String() string {
	if k == Rise {
		return "rise"
	}
	return "set"
}

// Series is one body's rise or set samples, index-aligned with the
// calendar: Samples[i] belongs to day i.
type Series struct {
	Body     ephem.Body
	Kind     EventKind
	Twilight bool
	Samples  []Sample
}

// Label names the series for legends and tables.
func (s Series) Label() string {
	name := s.Body.Name
	if s.Twilight {
		name += " Twilight"
	}
	if s.Kind == Rise {
		return name + " Rise"
	}
	return name + " Set"
}

// Count returns how many samples are in state st.
func (s Series) Count(st SampleState) int {
	n := 0
	for _, smp := range s.Samples {
		if smp.State == st {
			n++
		}
	}
	return n
}

// Range returns the smallest and largest drawn hour. ok is false when no
// sample is drawn.
func (s Series) Range() (lo, hi float64, ok bool) {
	for _, smp := range s.Samples {
		if !smp.Drawn() {
			continue
		}
		if !ok || smp.Hours < lo {
			lo = smp.Hours
		}
		if !ok || smp.Hours > hi {
			hi = smp.Hours
		}
		ok = true
	}
	return lo, hi, ok
}

// Mask marks Present samples outside [center-halfWidth, center+halfWidth]
// as Masked. Length and order are unchanged.
func Mask(s Series, center, halfWidth float64) Series {
	out := s
	out.Samples = make([]Sample, len(s.Samples))
	lo, hi := center-halfWidth, center+halfWidth
	for i, smp := range s.Samples {
		if smp.State == Present && (smp.Hours < lo || smp.Hours > hi) {
			smp.State = Masked
		}
		out.Samples[i] = smp
	}
	return out
}

// SeriesParams carries what BuildSeries needs besides the body.
type SeriesParams struct {
	Days     []datetime.CalendarDate
	Observer ephem.Observer
	Offset   int
	SetRef   SetRef
	// OnDay, if set, is called after each day's pair of queries.
	OnDay func(day int)
}

// BuildSeries queries rise and set for every day, each from UTC midnight,
// normalises them and masks samples outside the window around local
// midnight. Provider errors abort the build.
func BuildSeries(ctx context.Context, p ephem.Provider, body ephem.Body, sp SeriesParams) (rise, set Series, err error) {
	twilight := sp.Observer.HorizonDeg != 0
	rise = Series{Body: body, Kind: Rise, Twilight: twilight, Samples: make([]Sample, len(sp.Days))}
	set = Series{Body: body, Kind: Set, Twilight: twilight, Samples: make([]Sample, len(sp.Days))}

	riseRef := RiseReference(sp.Offset)
	setRef := SetReference(sp.Offset, sp.SetRef)

	for i, day := range sp.Days {
		if err := ctx.Err(); err != nil {
			return Series{}, Series{}, err
		}
		obs := sp.Observer.WithDate(UTCMidnight(day))

		ev, err := p.NextRising(ctx, body, obs)
		if err != nil {
			return Series{}, Series{}, fmt.Errorf("%s rise on %s: %w", body, FormatDate(day), err)
		}
		rise.Samples[i] = sampleFor(ev, riseRef)

		ev, err = p.NextSetting(ctx, body, obs)
		if err != nil {
			return Series{}, Series{}, fmt.Errorf("%s set on %s: %w", body, FormatDate(day), err)
		}
		set.Samples[i] = sampleFor(ev, setRef)

		if sp.OnDay != nil {
			sp.OnDay(i)
		}
	}

	center := float64(-sp.Offset)
	return Mask(rise, center, WindowHalfWidth), Mask(set, center, WindowHalfWidth), nil
}

// BuildTwilight is BuildSeries for the Sun against the astronomical
// twilight horizon.
func BuildTwilight(ctx context.Context, p ephem.Provider, sp SeriesParams) (rise, set Series, err error) {
	sp.Observer = sp.Observer.WithHorizon(ephem.TwilightHorizonDeg)
	return BuildSeries(ctx, p, ephem.Sun, sp)
}

func sampleFor(ev ephem.Event, ref float64) Sample {
	if !ev.Found {
		return Sample{State: NoEvent}
	}
	return Sample{Hours: Normalize(FractionalDay(ev.Time), ref), State: Present}
}
