package almanac

import (
	"context"
	"fmt"
	"time"

	"cloudeng.io/datetime"

	"github.com/litescript/planet-chart/internal/ephem"
	"github.com/litescript/planet-chart/internal/logging"
)

// BodySeries pairs a body's rise and set series.
type BodySeries struct {
	Body ephem.Body
	Rise Series
	Set  Series
}

// Chart is everything needed to draw or export an annual chart.
type Chart struct {
	Config   Config
	Offset   int
	Days     []datetime.CalendarDate
	Bodies   []BodySeries // ephem.Bodies order
	Twilight BodySeries   // Sun at the -18 degree horizon
	Seasons  []SeasonMarker
	Provider string
}

// AllSeries returns every series in plotting order: Sun, twilight, then
// the planets, rise before set.
func (c *Chart) AllSeries() []Series {
	out := make([]Series, 0, 2*(len(c.Bodies)+1))
	for _, bs := range c.Bodies {
		out = append(out, bs.Rise, bs.Set)
		if bs.Body == ephem.Sun {
			out = append(out, c.Twilight.Rise, c.Twilight.Set)
		}
	}
	return out
}

// Progress reports how far Compute has got.
type Progress struct {
	Stage     string // body name or "Sun Twilight"
	StageNum  int    // 1-based
	Stages    int
	Day       int // days done within the stage
	Days      int
	Elapsed   time.Duration
	StageDone bool
}

// Fraction is overall completion in [0, 1].
func (p Progress) Fraction() float64 {
	if p.Stages == 0 || p.Days == 0 {
		return 0
	}
	return (float64(p.StageNum-1) + float64(p.Day)/float64(p.Days)) / float64(p.Stages)
}

// ComputeOption configures Compute.
type ComputeOption func(*computeOpts)

type computeOpts struct {
	logger   *logging.Logger
	progress func(Progress)
	bodies   []ephem.Body
}

// WithLogger sets the logger used for per-stage timings.
func WithLogger(l *logging.Logger) ComputeOption {
	return func(o *computeOpts) {
		o.logger = l
	}
}

// WithProgress registers a progress callback. It is called from the
// computing goroutine, once per day and once at the end of each stage.
func WithProgress(fn func(Progress)) ComputeOption {
	return func(o *computeOpts) {
		o.progress = fn
	}
}

// WithBodies restricts the chart to a subset of bodies. Duplicates are
// dropped and the subset is charted in ephem.Bodies order. The Sun's
// twilight series is computed only when the Sun is included.
func WithBodies(bodies ...ephem.Body) ComputeOption {
	return func(o *computeOpts) {
		o.bodies = bodies
	}
}

// Compute validates cfg and builds every series. Validation happens
// before any provider query.
func Compute(ctx context.Context, cfg Config, p ephem.Provider, opts ...ComputeOption) (*Chart, error) {
	o := computeOpts{logger: logging.Discard(), bodies: ephem.Bodies}
	for _, opt := range opts {
		opt(&o)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.Normalized()
	bodies := inPlottingOrder(o.bodies)

	offset := cfg.Offset()
	days := Calendar(cfg.Year)
	if IsLeap(cfg.Year) {
		o.logger.Warn("%d is a leap year; February 29 is skipped and later days shift by one", cfg.Year)
	}
	o.logger.Info("Computing %d with %s ephemeris: %s offset=%d local-midnight=%.0f UTC",
		cfg.Year, p.Name(), cfg, offset, cfg.LocalMidnight())

	chart := &Chart{
		Config:   cfg,
		Offset:   offset,
		Days:     days,
		Seasons:  Seasons(cfg.Year),
		Provider: p.Name(),
	}

	obs := ephem.NewObserver(cfg.Latitude, cfg.Longitude)
	hasSun := len(bodies) > 0 && bodies[0] == ephem.Sun
	stages := len(bodies)
	if hasSun {
		stages++
	}

	start := time.Now()
	stageNum := 0
	run := func(name string, build func(SeriesParams) (Series, Series, error)) (BodySeries, error) {
		stageNum++
		n := stageNum
		sp := SeriesParams{
			Days:     days,
			Observer: obs,
			Offset:   offset,
			SetRef:   cfg.SetRef,
			OnDay: func(day int) {
				if o.progress != nil {
					o.progress(Progress{Stage: name, StageNum: n, Stages: stages, Day: day + 1, Days: len(days), Elapsed: time.Since(start)})
				}
			},
		}
		var rise, set Series
		err := o.logger.Timed(name+" series", func() error {
			var err error
			rise, set, err = build(sp)
			return err
		})
		if err != nil {
			return BodySeries{}, err
		}
		if o.progress != nil {
			o.progress(Progress{Stage: name, StageNum: n, Stages: stages, Day: len(days), Days: len(days), Elapsed: time.Since(start), StageDone: true})
		}
		return BodySeries{Body: rise.Body, Rise: rise, Set: set}, nil
	}

	for _, b := range bodies {
		body := b
		bs, err := run(body.Name, func(sp SeriesParams) (Series, Series, error) {
			return BuildSeries(ctx, p, body, sp)
		})
		if err != nil {
			return nil, fmt.Errorf("compute %s: %w", body, err)
		}
		chart.Bodies = append(chart.Bodies, bs)
	}

	if hasSun {
		tw, err := run("Sun Twilight", func(sp SeriesParams) (Series, Series, error) {
			return BuildTwilight(ctx, p, sp)
		})
		if err != nil {
			return nil, fmt.Errorf("compute twilight: %w", err)
		}
		chart.Twilight = tw
	}

	o.logger.Info("Computed %d series in %v", len(chart.AllSeries()), time.Since(start).Round(time.Millisecond))
	return chart, nil
}

// inPlottingOrder returns the distinct members of bodies in ephem.Bodies
// order. Bodies outside the catalogue are kept at the end so the provider
// can report them.
func inPlottingOrder(bodies []ephem.Body) []ephem.Body {
	want := make(map[ephem.Body]bool, len(bodies))
	for _, b := range bodies {
		want[b] = true
	}
	out := make([]ephem.Body, 0, len(want))
	for _, b := range ephem.Bodies {
		if want[b] {
			out = append(out, b)
			delete(want, b)
		}
	}
	for _, b := range bodies {
		if want[b] {
			out = append(out, b)
			delete(want, b)
		}
	}
	return out
}
