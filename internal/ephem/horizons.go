package ephem

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/litescript/planet-chart/internal/astro"
)

const (
	// HorizonsAPIURL is the JPL Horizons JSON API endpoint.
	HorizonsAPIURL = "https://ssd.jpl.nasa.gov/api/horizons.api"

	// DefaultPathStep is the default step between path points.
	DefaultPathStep = 10 * time.Minute

	// RequestTimeout is the HTTP request timeout. A year of 10 minute
	// samples is a large response.
	RequestTimeout = 2 * time.Minute
)

// ErrPathCoverage is returned when a search window is not covered by the
// samples Horizons returned.
var ErrPathCoverage = errors.New("search window outside ephemeris path")

// EphemerisPoint is a body's apparent position at a specific time.
type EphemerisPoint struct {
	Time  time.Time
	Coord astro.SkyCoord // Az/El filled in by Horizons
}

// EphemerisPath is a time-ordered series of points for one body.
type EphemerisPath struct {
	TargetID TargetID
	Points   []EphemerisPoint
	Start    time.Time
	End      time.Time
}

// HorizonsProvider queries JPL Horizons for airless apparent Az/El and
// finds rise and set times by interpolating between samples. One request
// per body and calendar year is made; later queries hit the cache.
type HorizonsProvider struct {
	client  *http.Client
	url     string
	timeout time.Duration
	step    time.Duration

	mu        sync.RWMutex
	pathCache map[pathKey]*cachedPath
}

type pathKey struct {
	target TargetID
	year   int
}

// cachedPath stores a fetched year of samples.
type cachedPath struct {
	path     EphemerisPath
	observer astro.Observer
}

// HorizonsOption configures a HorizonsProvider.
type HorizonsOption func(*HorizonsProvider)

// WithURL sets a custom Horizons endpoint.
func WithURL(u string) HorizonsOption {
	return func(p *HorizonsProvider) {
		p.url = u
	}
}

// WithTimeout sets the HTTP request timeout.
func WithTimeout(d time.Duration) HorizonsOption {
	return func(p *HorizonsProvider) {
		p.timeout = d
	}
}

// WithStep sets the sampling step of fetched paths.
func WithStep(d time.Duration) HorizonsOption {
	return func(p *HorizonsProvider) {
		p.step = d
	}
}

// NewHorizonsProvider creates a new Horizons API client.
func NewHorizonsProvider(opts ...HorizonsOption) *HorizonsProvider {
	p := &HorizonsProvider{
		url:       HorizonsAPIURL,
		timeout:   RequestTimeout,
		step:      DefaultPathStep,
		pathCache: make(map[pathKey]*cachedPath),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.client = &http.Client{Timeout: p.timeout}
	return p
}

// Name implements Provider.
func (p *HorizonsProvider) Name() string {
	return "Horizons"
}

// NextRising implements Provider.
func (p *HorizonsProvider) NextRising(ctx context.Context, body Body, obs Observer) (Event, error) {
	return p.next(ctx, body, obs, astro.Rising)
}

// NextSetting implements Provider.
func (p *HorizonsProvider) NextSetting(ctx context.Context, body Body, obs Observer) (Event, error) {
	return p.next(ctx, body, obs, astro.Setting)
}

func (p *HorizonsProvider) next(ctx context.Context, body Body, obs Observer, dir astro.Direction) (Event, error) {
	path, err := p.YearPath(ctx, body, obs.Location, obs.Date.Year())
	if err != nil {
		return Event{}, err
	}
	if obs.Date.Before(path.Start) || obs.Date.Add(SearchWindow).After(path.End) {
		return Event{}, fmt.Errorf("%w: %s search from %s is outside the fetched path %s..%s",
			ErrPathCoverage, body.Name, formatHorizonsTime(obs.Date),
			formatHorizonsTime(path.Start), formatHorizonsTime(path.End))
	}
	// Horizons reports airless elevation of the centre; PressureMbar
	// and the Sun's limb are handled by the threshold.
	t, ok := findPathCrossing(path.Points, obs.Date, obs.Date.Add(SearchWindow), crossingThreshold(body, obs), dir)
	return Event{Time: t, Found: ok}, nil
}

// YearPath returns samples covering the calendar year plus one day, so a
// search starting on December 31 stays inside the path.
func (p *HorizonsProvider) YearPath(ctx context.Context, body Body, obs astro.Observer, year int) (EphemerisPath, error) {
	if _, ok := GetBodyByNAIF(body.NAIFID); !ok {
		return EphemerisPath{}, fmt.Errorf("%w: %s", ErrUnknownBody, body.Name)
	}
	key := pathKey{target: body.NAIFID, year: year}

	p.mu.RLock()
	cached, ok := p.pathCache[key]
	p.mu.RUnlock()
	if ok && observerMatch(cached.observer, obs) {
		return cached.path, nil
	}

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 1)
	path, err := p.queryHorizons(ctx, body.NAIFID, start, end, obs)
	if err != nil {
		return EphemerisPath{}, err
	}
	if len(path.Points) < 2 {
		return EphemerisPath{}, fmt.Errorf("horizons returned %d points for %s", len(path.Points), body.Name)
	}

	p.mu.Lock()
	p.pathCache[key] = &cachedPath{path: path, observer: obs}
	p.mu.Unlock()

	return path, nil
}

// findPathCrossing scans consecutive samples overlapping (from, to] for a
// crossing of threshold in direction dir.
func findPathCrossing(points []EphemerisPoint, from, to time.Time, threshold float64, dir astro.Direction) (time.Time, bool) {
	// First sample at or after from; start one earlier to bracket it.
	i := sort.Search(len(points), func(i int) bool {
		return !points[i].Time.Before(from)
	})
	if i > 0 {
		i--
	}

	for ; i+1 < len(points); i++ {
		a, b := points[i], points[i+1]
		if a.Time.After(to) {
			break
		}
		ea, eb := a.Coord.ElDeg-threshold, b.Coord.ElDeg-threshold
		var hit bool
		if dir == astro.Rising {
			hit = ea < 0 && eb >= 0
		} else {
			hit = ea >= 0 && eb < 0
		}
		if !hit {
			continue
		}
		t := astro.InterpolateCrossing(a.Time, b.Time, a.Coord.ElDeg, b.Coord.ElDeg, threshold)
		if t.After(from) && !t.After(to) {
			return t, true
		}
	}
	return time.Time{}, false
}

// queryHorizons makes a request to the Horizons API.
func (p *HorizonsProvider) queryHorizons(ctx context.Context, target TargetID, start, end time.Time, obs astro.Observer) (EphemerisPath, error) {
	// Values must be quoted with single quotes.
	params := url.Values{}
	params.Set("format", "json")
	params.Set("COMMAND", fmt.Sprintf("'%d'", target))
	params.Set("OBJ_DATA", "NO")
	params.Set("MAKE_EPHEM", "YES")
	params.Set("EPHEM_TYPE", "OBSERVER")
	params.Set("CENTER", "'coord@399'")
	params.Set("COORD_TYPE", "GEODETIC")
	params.Set("SITE_COORD", fmt.Sprintf("'%.6f,%.6f,0'", obs.LonDeg, obs.LatDeg))
	params.Set("START_TIME", fmt.Sprintf("'%s'", formatHorizonsTime(start)))
	params.Set("STOP_TIME", fmt.Sprintf("'%s'", formatHorizonsTime(end)))
	params.Set("STEP_SIZE", fmt.Sprintf("'%s'", formatStepSize(p.step)))
	params.Set("QUANTITIES", "'4'") // 4=Apparent Az/El
	params.Set("APPARENT", "AIRLESS")
	params.Set("ANG_FORMAT", "DEG")
	params.Set("CSV_FORMAT", "NO")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url+"?"+params.Encode(), nil)
	if err != nil {
		return EphemerisPath{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "planet-chart/1.0")

	resp, err := p.client.Do(req)
	if err != nil {
		return EphemerisPath{}, fmt.Errorf("horizons request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return EphemerisPath{}, fmt.Errorf("horizons returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return EphemerisPath{}, fmt.Errorf("failed to read response: %w", err)
	}

	return parseHorizonsResponse(target, body)
}

// horizonsResponse represents the JSON API response.
type horizonsResponse struct {
	Signature struct {
		Version string `json:"version"`
		Source  string `json:"source"`
	} `json:"signature"`
	Result string `json:"result"`
	Error  string `json:"error"`
}

// parseHorizonsResponse parses the Horizons JSON response.
func parseHorizonsResponse(target TargetID, body []byte) (EphemerisPath, error) {
	var resp horizonsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return EphemerisPath{}, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if resp.Error != "" {
		return EphemerisPath{}, fmt.Errorf("horizons error: %s", resp.Error)
	}

	// The ephemeris itself is a text blob inside Result.
	points, err := parseEphemerisTable(resp.Result)
	if err != nil {
		return EphemerisPath{}, err
	}

	path := EphemerisPath{
		TargetID: target,
		Points:   points,
	}
	if len(points) > 0 {
		path.Start = points[0].Time
		path.End = points[len(points)-1].Time
	}
	return path, nil
}

// parseEphemerisTable extracts points between the $$SOE and $$EOE markers.
func parseEphemerisTable(result string) ([]EphemerisPoint, error) {
	soeIdx := strings.Index(result, "$$SOE")
	eoeIdx := strings.Index(result, "$$EOE")
	if soeIdx == -1 || eoeIdx == -1 || soeIdx >= eoeIdx {
		return nil, fmt.Errorf("could not find ephemeris data markers")
	}

	var points []EphemerisPoint
	for _, line := range strings.Split(result[soeIdx+5:eoeIdx], "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		point, err := parseEphemerisLine(line)
		if err != nil {
			continue // Skip unparseable lines
		}
		points = append(points, point)
	}
	return points, nil
}

// parseEphemerisLine parses a single ephemeris data line.
// Format for QUANTITIES='4' (Az/El):
// 2017-Jan-01 00:00 *   261.032124  32.878027
// Fields: date, time, optional flags, azimuth, elevation
func parseEphemerisLine(line string) (EphemerisPoint, error) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return EphemerisPoint{}, fmt.Errorf("insufficient fields: %d", len(fields))
	}

	t, err := parseHorizonsDateTime(fields[0] + " " + fields[1])
	if err != nil {
		return EphemerisPoint{}, err
	}

	// Az/El are the first two numeric fields after the timestamp; flag
	// columns (*, C, N, A, m, r, ...) are skipped.
	var vals []float64
	for _, f := range fields[2:] {
		if v, err := strconv.ParseFloat(f, 64); err == nil {
			vals = append(vals, v)
			if len(vals) == 2 {
				break
			}
		}
	}
	if len(vals) < 2 {
		return EphemerisPoint{}, fmt.Errorf("could not find Az/El values")
	}

	return EphemerisPoint{
		Time:  t,
		Coord: astro.SkyCoord{AzDeg: vals[0], ElDeg: vals[1]},
	}, nil
}

// parseHorizonsDateTime parses Horizons dates like "2017-Jan-01 00:00".
func parseHorizonsDateTime(s string) (time.Time, error) {
	for _, layout := range []string{"2006-Jan-02 15:04", "2006-Jan-02 15:04:05", "2006-Jan-02 15:04:05.000"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", s)
}

// formatHorizonsTime formats a time for Horizons API.
func formatHorizonsTime(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04")
}

// formatStepSize formats a duration as a Horizons step size.
func formatStepSize(d time.Duration) string {
	minutes := int(d.Minutes())
	if minutes >= 60 && minutes%60 == 0 {
		return fmt.Sprintf("%d h", minutes/60)
	}
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d m", minutes)
}

// observerMatch checks if two observers are close enough to share cache.
func observerMatch(a, b astro.Observer) bool {
	const tolerance = 1e-4 // degrees
	return abs(a.LatDeg-b.LatDeg) <= tolerance && abs(a.LonDeg-b.LonDeg) <= tolerance
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
