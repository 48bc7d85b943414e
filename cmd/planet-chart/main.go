// Command planet-chart draws the rise and set times of the Sun and planets
// over a year for one observing site.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"

	"github.com/litescript/planet-chart/internal/almanac"
	"github.com/litescript/planet-chart/internal/ephem"
	"github.com/litescript/planet-chart/internal/logging"
	"github.com/litescript/planet-chart/internal/render"
	"github.com/litescript/planet-chart/internal/ui"
	"github.com/litescript/planet-chart/internal/version"
)

// envConfig is read from PLANETCHART_* variables and supplies the flag
// defaults.
type envConfig struct {
	Lat         float64 `default:"43.475085"`
	Lon         float64 `default:"-80.552901"`
	Year        int     `default:"2017"`
	Out         string  `default:"."`
	Format      string  `default:"png"`
	Width       float64 `default:"11"`
	Height      float64 `default:"8.5"`
	Ephem       string  `default:"elements"`
	SetRef      string  `split_words:"true" default:"midnight"`
	Bodies      string
	LogLevel    string `split_words:"true" default:"info"`
	HorizonsURL     string        `split_words:"true"`
	HorizonsTimeout time.Duration `split_words:"true" default:"2m"`
}

const envPrefix = "planetchart"

// options is the fully resolved command line.
type options struct {
	cfg         almanac.Config
	render      render.Options
	outDir      string
	mode        ephem.Mode
	bodies      []ephem.Body
	horizonsURL string
	timeout     time.Duration
	jsonPath    string
	summary     bool
	progress    bool
	logLevel    logging.Level
	showVersion bool
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func parseArgs(args []string, stderr io.Writer) (options, error) {
	var env envConfig
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return options{}, fmt.Errorf("environment: %w", err)
	}

	fs := flag.NewFlagSet("planet-chart", flag.ContinueOnError)
	fs.SetOutput(stderr)
	lat := fs.Float64("lat", env.Lat, "Observer latitude in degrees (north positive)")
	lon := fs.Float64("lon", env.Lon, "Observer longitude in degrees (east positive)")
	year := fs.Int("year", env.Year, "Year to chart")
	out := fs.String("out", env.Out, "Output directory for the chart image")
	format := fs.String("format", env.Format, "Image format ("+strings.Join(render.Formats, ", ")+")")
	width := fs.Float64("width", env.Width, "Image width in inches")
	height := fs.Float64("height", env.Height, "Image height in inches")
	ephemMode := fs.String("ephem", env.Ephem, "Ephemeris source (elements, horizons)")
	setRef := fs.String("set-ref", env.SetRef, "Reference for set times (midnight, noon)")
	bodies := fs.String("bodies", env.Bodies, "Comma-separated bodies to chart (default all)")
	horizonsURL := fs.String("horizons-url", env.HorizonsURL, "Override the JPL Horizons API URL")
	timeout := fs.Duration("horizons-timeout", env.HorizonsTimeout, "JPL Horizons request timeout")
	jsonPath := fs.String("json", "", "Export chart data as JSON to file (use - for stdout)")
	summary := fs.Bool("summary", false, "Print a summary table")
	progress := fs.Bool("progress", false, "Show a progress view (TTY only)")
	logLevel := fs.String("log-level", env.LogLevel, "Log level (debug, info, warn, error)")
	showVersion := fs.Bool("version", false, "Print version and exit")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	o := options{
		outDir:      *out,
		horizonsURL: *horizonsURL,
		timeout:     *timeout,
		jsonPath:    *jsonPath,
		summary:     *summary,
		progress:    *progress,
		logLevel:    logging.ParseLevel(*logLevel),
		showVersion: *showVersion,
		render:      render.Options{Width: *width, Height: *height, Format: strings.ToLower(*format)},
	}
	if o.showVersion {
		return o, nil
	}

	ref, err := almanac.ParseSetRef(*setRef)
	if err != nil {
		return options{}, err
	}
	if o.cfg, err = almanac.NewConfig(*lat, *lon, *year, ref); err != nil {
		return options{}, err
	}
	if o.mode, err = ephem.ParseMode(*ephemMode); err != nil {
		return options{}, err
	}
	if o.bodies, err = parseBodies(*bodies); err != nil {
		return options{}, err
	}
	if err := o.render.Validate(); err != nil {
		return options{}, err
	}
	if o.timeout <= 0 {
		return options{}, fmt.Errorf("horizons timeout %v must be positive", o.timeout)
	}
	return o, nil
}

// parseBodies resolves a comma-separated list, keeping the plotting order.
func parseBodies(s string) ([]ephem.Body, error) {
	if strings.TrimSpace(s) == "" {
		return ephem.Bodies, nil
	}
	want := map[ephem.Body]bool{}
	for _, name := range strings.Split(s, ",") {
		b, err := ephem.LookupBody(name)
		if err != nil {
			return nil, err
		}
		want[b] = true
	}
	var out []ephem.Body
	for _, b := range ephem.Bodies {
		if want[b] {
			out = append(out, b)
		}
	}
	return out, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	o, err := parseArgs(args, stderr)
	if err != nil {
		return err
	}
	if o.showVersion {
		fmt.Fprintf(stdout, "planet-chart v%s\n", version.Version)
		return nil
	}

	logger := logging.New(o.logLevel)
	logger.SetOutput(stderr)

	hopts := []ephem.HorizonsOption{ephem.WithTimeout(o.timeout)}
	if o.horizonsURL != "" {
		hopts = append(hopts, ephem.WithURL(o.horizonsURL))
	}
	provider, err := ephem.NewProvider(o.mode, hopts...)
	if err != nil {
		return err
	}

	compute := chartJob(o, provider, logger)

	var (
		chart *almanac.Chart
		path  string
	)
	if o.progress && isTerminal(stderr) {
		chart, path, err = runWithProgress(ctx, progressTitle(o), logger, compute, tea.WithOutput(os.Stderr))
	} else {
		chart, path, err = compute(ctx, nil)
	}
	if err != nil {
		return err
	}
	logger.Info("Wrote %s", path)

	if o.jsonPath != "" {
		if err := writeJSON(chart, o.jsonPath, stdout); err != nil {
			return err
		}
	}
	if o.summary {
		if err := ui.WriteSummary(stdout, chart); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}
	return nil
}

// computeFunc computes the chart and writes the image, returning the path.
type computeFunc func(ctx context.Context, progress func(almanac.Progress)) (*almanac.Chart, string, error)

func chartJob(o options, provider ephem.Provider, logger *logging.Logger) computeFunc {
	return func(ctx context.Context, progress func(almanac.Progress)) (*almanac.Chart, string, error) {
		opts := []almanac.ComputeOption{almanac.WithLogger(logger), almanac.WithBodies(o.bodies...)}
		if progress != nil {
			opts = append(opts, almanac.WithProgress(progress))
		}
		chart, err := almanac.Compute(ctx, o.cfg, provider, opts...)
		if err != nil {
			return nil, "", err
		}
		path, err := render.Save(chart, o.outDir, o.render)
		if err != nil {
			return nil, "", err
		}
		return chart, path, nil
	}
}

func progressTitle(o options) string {
	return fmt.Sprintf("Planet chart %d  (%.4f, %.4f)", o.cfg.Year, o.cfg.Latitude, o.cfg.Longitude)
}

// runWithProgress runs compute in the background while a Bubble Tea view
// shows its progress. Leaving the view cancels the computation. Log output
// is held back while the view is up.
func runWithProgress(ctx context.Context, title string, logger *logging.Logger,
	compute computeFunc, popts ...tea.ProgramOption) (*almanac.Chart, string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	popts = append([]tea.ProgramOption{tea.WithContext(ctx)}, popts...)
	p := tea.NewProgram(ui.NewProgressModel(title), popts...)
	logger.SetOutput(io.Discard)
	defer logger.SetOutput(os.Stderr)

	type result struct {
		chart *almanac.Chart
		path  string
		err   error
	}
	done := make(chan result, 1)
	go func() {
		chart, path, err := compute(ctx, func(pr almanac.Progress) {
			p.Send(ui.ProgressMsg(pr))
		})
		done <- result{chart, path, err}
		p.Send(ui.DoneMsg{Path: path, Err: err})
	}()

	final, runErr := p.Run()
	if m, ok := final.(ui.ProgressModel); runErr != nil || (ok && m.Cancelled()) {
		cancel()
	}
	res := <-done
	if res.err != nil {
		return nil, "", res.err
	}
	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return nil, "", fmt.Errorf("progress view: %w", runErr)
	}
	return res.chart, res.path, nil
}

func writeJSON(chart *almanac.Chart, path string, stdout io.Writer) error {
	export := chart.Export(time.Now())
	if path == "-" {
		if err := export.WriteJSON(stdout); err != nil {
			return fmt.Errorf("write JSON to stdout: %w", err)
		}
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create JSON file: %w", err)
	}
	defer f.Close()
	if err := export.WriteJSON(f); err != nil {
		return fmt.Errorf("write JSON to file: %w", err)
	}
	return f.Close()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
