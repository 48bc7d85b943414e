// Package astro provides the sky math behind the planet chart: time scales,
// coordinate transforms, low-precision Sun and planet positions, and
// horizon-crossing search.
package astro

import (
	"math"
	"time"
)

// J2000 is the Julian Date of the J2000.0 epoch (2000-01-01 12:00 TT).
const J2000 = 2451545.0

// SkyCoord holds equatorial (RA/Dec) and horizontal (Az/El) coordinates.
type SkyCoord struct {
	RAdeg  float64 // Right Ascension in degrees (0-360)
	DecDeg float64 // Declination in degrees (-90 to +90)

	AzDeg float64 // Azimuth in degrees (0=N, 90=E)
	ElDeg float64 // Elevation in degrees (0=horizon)

	DistAU float64 // Geocentric distance, zero when unknown
}

// Observer is a ground location.
type Observer struct {
	LatDeg float64 // Latitude in degrees (north positive)
	LonDeg float64 // Longitude in degrees (east positive)
	Name   string
}

// Altitude returns the elevation in degrees of an RA/Dec position seen by
// obs at t. It is what the crossing search evaluates.
func Altitude(raDeg, decDeg float64, obs Observer, t time.Time) float64 {
	lat := degToRad(obs.LatDeg)
	dec := degToRad(decDeg)
	ha := degToRad(LocalSiderealTime(t, obs.LonDeg) - raDeg)
	sinAlt := math.Sin(dec)*math.Sin(lat) + math.Cos(dec)*math.Cos(lat)*math.Cos(ha)
	return radToDeg(math.Asin(clamp(sinAlt, -1, 1)))
}

// LocalSiderealTime returns LST in degrees [0, 360).
func LocalSiderealTime(t time.Time, lonDeg float64) float64 {
	return normalizeAngle360(GreenwichMeanSiderealTime(t) + lonDeg)
}

// GreenwichMeanSiderealTime returns GMST in degrees [0, 360) using the
// IAU 1982 expression.
func GreenwichMeanSiderealTime(t time.Time) float64 {
	jd := JulianDate(t)
	T := (jd - J2000) / 36525.0
	gmst := 280.46061837 +
		360.98564736629*(jd-J2000) +
		0.000387933*T*T -
		T*T*T/38710000.0
	return normalizeAngle360(gmst)
}

// JulianDate returns the Julian Date of t (UTC is used as an approximation
// of TT; the ~70 s difference is far below the chart's resolution).
func JulianDate(t time.Time) float64 {
	t = t.UTC()
	y := float64(t.Year())
	m := float64(t.Month())
	d := float64(t.Day())

	dayFrac := (float64(t.Hour()) +
		float64(t.Minute())/60 +
		float64(t.Second())/3600 +
		float64(t.Nanosecond())/3600e9) / 24.0

	if m <= 2 {
		y--
		m += 12
	}

	A := math.Floor(y / 100)
	B := 2 - A + math.Floor(A/4)

	return math.Floor(365.25*(y+4716)) +
		math.Floor(30.6001*(m+1)) +
		d + dayFrac + B - 1524.5
}

// JulianCenturies returns Julian centuries since J2000.0.
func JulianCenturies(t time.Time) float64 {
	return (JulianDate(t) - J2000) / 36525.0
}

func normalizeAngle360(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
