package ephem

import (
	"context"
	"fmt"
	"time"

	"github.com/litescript/planet-chart/internal/astro"
)

// ElementsProvider computes rise and set times offline: the Sun from the
// low-precision solar series and planets from mean orbital elements.
type ElementsProvider struct {
	step time.Duration
}

// NewElementsProvider returns a provider scanning at astro.DefaultScanStep.
func NewElementsProvider() *ElementsProvider {
	return &ElementsProvider{step: astro.DefaultScanStep}
}

// Name implements Provider.
func (p *ElementsProvider) Name() string {
	return "Elements"
}

// NextRising implements Provider.
func (p *ElementsProvider) NextRising(ctx context.Context, body Body, obs Observer) (Event, error) {
	return p.next(ctx, body, obs, astro.Rising)
}

// NextSetting implements Provider.
func (p *ElementsProvider) NextSetting(ctx context.Context, body Body, obs Observer) (Event, error) {
	return p.next(ctx, body, obs, astro.Setting)
}

func (p *ElementsProvider) next(ctx context.Context, body Body, obs Observer, dir astro.Direction) (Event, error) {
	if err := ctx.Err(); err != nil {
		return Event{}, err
	}
	pos, err := positionFunc(body)
	if err != nil {
		return Event{}, err
	}

	alt := func(t time.Time) float64 {
		c := pos(t)
		return astro.Altitude(c.RAdeg, c.DecDeg, obs.Location, t)
	}

	t, found := astro.FindCrossing(alt, obs.Date, dir, astro.CrossingSearch{
		Threshold: crossingThreshold(body, obs),
		Span:      SearchWindow,
		Step:      p.step,
	})
	return Event{Time: t, Found: found}, nil
}

// positionFunc returns the apparent geocentric position function for body.
func positionFunc(body Body) (func(time.Time) astro.SkyCoord, error) {
	if body.Kind == BodySun {
		return astro.SunPosition, nil
	}
	if !astro.HasElements(body.Name) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBody, body.Name)
	}
	name := body.Name
	return func(t time.Time) astro.SkyCoord {
		// HasElements guarantees no error.
		c, _ := astro.PlanetPosition(name, t)
		return c
	}, nil
}
