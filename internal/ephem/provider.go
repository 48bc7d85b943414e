// Package ephem answers "when does this body next rise or set" for an
// observer, from either built-in orbital elements or JPL Horizons.
package ephem

import (
	"context"
	"fmt"
	"time"

	"github.com/litescript/planet-chart/internal/astro"
)

// SearchWindow is how far past Observer.Date a rise or set is looked for.
const SearchWindow = 24 * time.Hour

// TwilightHorizonDeg is the horizon used for astronomical twilight.
const TwilightHorizonDeg = -18.0

// Observer is the observing context for a query: where, when, and against
// which horizon. It is a value type; the With methods return copies.
type Observer struct {
	Location     astro.Observer
	PressureMbar float64   // 0 disables refraction
	HorizonDeg   float64   // altitude that counts as the horizon
	Date         time.Time // search start, UTC
}

// NewObserver returns an observer at lat/lon with refraction disabled and a
// zero-degree horizon.
func NewObserver(latDeg, lonDeg float64) Observer {
	return Observer{
		Location: astro.Observer{LatDeg: latDeg, LonDeg: lonDeg},
	}
}

// WithDate returns a copy of o searching from t.
func (o Observer) WithDate(t time.Time) Observer {
	o.Date = t.UTC()
	return o
}

// WithHorizon returns a copy of o using the given horizon altitude.
func (o Observer) WithHorizon(deg float64) Observer {
	o.HorizonDeg = deg
	return o
}

// Event is the result of a rise or set query. Found is false when the body
// does not cross the horizon within SearchWindow.
type Event struct {
	Time  time.Time
	Found bool
}

// Provider defines the interface for ephemeris sources.
type Provider interface {
	// Name returns the provider name for display/logging.
	Name() string

	// NextRising returns the first rising of body after obs.Date.
	NextRising(ctx context.Context, body Body, obs Observer) (Event, error)

	// NextSetting returns the first setting of body after obs.Date.
	NextSetting(ctx context.Context, body Body, obs Observer) (Event, error)
}

// Mode represents which ephemeris source to use.
type Mode int

const (
	ModeElements Mode = iota // built-in orbital elements (default, offline)
	ModeHorizons             // JPL Horizons API
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeElements:
		return "elements"
	case ModeHorizons:
		return "horizons"
	default:
		return "unknown"
	}
}

// ParseMode parses a mode string. The empty string selects ModeElements.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "elements":
		return ModeElements, nil
	case "horizons":
		return ModeHorizons, nil
	default:
		return ModeElements, fmt.Errorf("unknown ephemeris mode %q (want elements or horizons)", s)
	}
}

// NewProvider returns the provider for mode. Horizons options are ignored
// by the elements provider.
func NewProvider(mode Mode, opts ...HorizonsOption) (Provider, error) {
	switch mode {
	case ModeElements:
		return NewElementsProvider(), nil
	case ModeHorizons:
		return NewHorizonsProvider(opts...), nil
	default:
		return nil, fmt.Errorf("unsupported ephemeris mode %v", mode)
	}
}

// standardRefractionDeg is horizon refraction at 1010 mbar and 10 C.
const standardRefractionDeg = 34.0 / 60

// crossingThreshold is the geometric altitude of a body's centre at which
// it is considered to rise or set. The Sun uses its upper limb.
func crossingThreshold(body Body, obs Observer) float64 {
	th := obs.HorizonDeg
	if obs.PressureMbar > 0 {
		th -= standardRefractionDeg * obs.PressureMbar / 1010
	}
	if body.Kind == BodySun {
		th -= astro.SunSemiDiameterDeg
	}
	return th
}
