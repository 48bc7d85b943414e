// Package almanac turns rise and set events into the aligned, normalised
// day-by-day series that make up an annual planet chart.
package almanac

import (
	"errors"
	"fmt"
	"math"

	cerrors "cloudeng.io/errors"
)

// Defaults are the observing site and year the chart was first drawn for.
const (
	DefaultLatitude  = 43.475085
	DefaultLongitude = -80.552901
	DefaultYear      = 2017
)

// ErrInvalidConfig is wrapped by every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// SetRef selects the reference hour used to normalise set events.
type SetRef int

const (
	// SetRefMidnight references sets against local midnight.
	SetRefMidnight SetRef = iota
	// SetRefNoon references sets against local noon, like rises.
	SetRefNoon
)

// String returns the reference name.
func (r SetRef) String() string {
	switch r {
	case SetRefMidnight:
		return "midnight"
	case SetRefNoon:
		return "noon"
	default:
		return "unknown"
	}
}

// ParseSetRef parses "midnight" or "noon". The empty string selects midnight.
func ParseSetRef(s string) (SetRef, error) {
	switch s {
	case "", "midnight":
		return SetRefMidnight, nil
	case "noon":
		return SetRefNoon, nil
	default:
		return SetRefMidnight, fmt.Errorf("%w: set reference %q (want midnight or noon)", ErrInvalidConfig, s)
	}
}

// Config is the immutable input of a chart computation.
type Config struct {
	Latitude  float64 // degrees, north positive
	Longitude float64 // degrees, east positive
	Year      int
	SetRef    SetRef
}

// NewConfig normalises and validates a configuration. A longitude of
// exactly -180 becomes +180.
func NewConfig(lat, lon float64, year int, setRef SetRef) (Config, error) {
	c := Config{Latitude: lat, Longitude: lon, Year: year, SetRef: setRef}.Normalized()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Normalized returns c with a longitude of -180 replaced by +180, the
// same meridian.
func (c Config) Normalized() Config {
	c.Longitude = normalizeLongitude(c.Longitude)
	return c
}

func normalizeLongitude(lon float64) float64 {
	if lon == -180 {
		return 180
	}
	return lon
}

// DefaultConfig returns the default site and year.
func DefaultConfig() Config {
	return Config{Latitude: DefaultLatitude, Longitude: DefaultLongitude, Year: DefaultYear}
}

// Validate reports every out-of-range field at once.
func (c Config) Validate() error {
	var errs cerrors.M
	if math.IsNaN(c.Latitude) || c.Latitude < -90 || c.Latitude > 90 {
		errs.Append(fmt.Errorf("latitude %v must be between -90 and +90 degrees", c.Latitude))
	}
	if math.IsNaN(c.Longitude) || c.Longitude < -180 || c.Longitude > 180 {
		errs.Append(fmt.Errorf("longitude %v must be between -180 and +180 degrees", c.Longitude))
	}
	if c.Year < 1 || c.Year > 9999 {
		errs.Append(fmt.Errorf("year %d must be between 1 and 9999", c.Year))
	}
	if c.SetRef != SetRefMidnight && c.SetRef != SetRefNoon {
		errs.Append(fmt.Errorf("unknown set reference %d", c.SetRef))
	}
	if err := errs.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Offset is the approximate UTC offset of the site in whole hours,
// floor(longitude/15).
func (c Config) Offset() int {
	return int(math.Floor(normalizeLongitude(c.Longitude) / 15))
}

// LocalMidnight is local midnight expressed in UTC hours, -Offset.
func (c Config) LocalMidnight() float64 {
	return float64(-c.Offset())
}

// Window is the plotted hour range around local midnight.
func (c Config) Window() (lo, hi float64) {
	m := c.LocalMidnight()
	return m - WindowHalfWidth, m + WindowHalfWidth
}

// InvertX reports whether the hour axis runs right to left. The axis
// limits are reversed when local midnight is not after 00 UTC, and then
// flipped again for longitudes east of -15 degrees.
func (c Config) InvertX() bool {
	return (c.LocalMidnight() <= 0) != (normalizeLongitude(c.Longitude) > -15)
}

func (c Config) String() string {
	return fmt.Sprintf("lat=%.6f lon=%.6f year=%d set-ref=%s", c.Latitude, c.Longitude, c.Year, c.SetRef)
}
