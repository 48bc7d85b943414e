package astro

import (
	"errors"
	"math"
	"time"
)

// ErrNoElements is returned for a planet without orbital elements.
var ErrNoElements = errors.New("no orbital elements for planet")

// OrbitalElements are mean Keplerian elements referred to the J2000 ecliptic
// and equinox, with linear rates per Julian century.
type OrbitalElements struct {
	A, E, I       float64 // semi-major axis (AU), eccentricity, inclination (deg)
	L, Peri, Node float64 // mean longitude, longitude of perihelion, longitude of ascending node (deg)

	ADot, EDot, IDot       float64
	LDot, PeriDot, NodeDot float64
}

// Approximate elements from JPL (Standish), valid 1800 AD to 2050 AD.
var planetElements = map[string]OrbitalElements{
	"Mercury": {
		A: 0.38709927, E: 0.20563593, I: 7.00497902,
		L: 252.25032350, Peri: 77.45779628, Node: 48.33076593,
		ADot: 0.00000037, EDot: 0.00001906, IDot: -0.00594749,
		LDot: 149472.67411175, PeriDot: 0.16047689, NodeDot: -0.12534081,
	},
	"Venus": {
		A: 0.72333566, E: 0.00677672, I: 3.39467605,
		L: 181.97909950, Peri: 131.60246718, Node: 76.67984255,
		ADot: 0.00000390, EDot: -0.00004107, IDot: -0.00078890,
		LDot: 58517.81538729, PeriDot: 0.00268329, NodeDot: -0.27769418,
	},
	"EMBary": {
		A: 1.00000261, E: 0.01671123, I: -0.00001531,
		L: 100.46457166, Peri: 102.93768193, Node: 0.0,
		ADot: 0.00000562, EDot: -0.00004392, IDot: -0.01294668,
		LDot: 35999.37244981, PeriDot: 0.32327364, NodeDot: 0.0,
	},
	"Mars": {
		A: 1.52371034, E: 0.09339410, I: 1.84969142,
		L: -4.55343205, Peri: -23.94362959, Node: 49.55953891,
		ADot: 0.00001847, EDot: 0.00007882, IDot: -0.00813131,
		LDot: 19140.30268499, PeriDot: 0.44441088, NodeDot: -0.29257343,
	},
	"Jupiter": {
		A: 5.20288700, E: 0.04838624, I: 1.30439695,
		L: 34.39644051, Peri: 14.72847983, Node: 100.47390909,
		ADot: -0.00011607, EDot: -0.00013253, IDot: -0.00183714,
		LDot: 3034.74612775, PeriDot: 0.21252668, NodeDot: 0.20469106,
	},
	"Saturn": {
		A: 9.53667594, E: 0.05386179, I: 2.48599187,
		L: 49.95424423, Peri: 92.59887831, Node: 113.66242448,
		ADot: -0.00125060, EDot: -0.00050991, IDot: 0.00193609,
		LDot: 1222.49362201, PeriDot: -0.41897216, NodeDot: -0.28867794,
	},
	"Uranus": {
		A: 19.18916464, E: 0.04725744, I: 0.77263783,
		L: 313.23810451, Peri: 170.95427630, Node: 74.01692503,
		ADot: -0.00196176, EDot: -0.00004397, IDot: -0.00242939,
		LDot: 428.48202785, PeriDot: 0.40805281, NodeDot: 0.04240589,
	},
	"Neptune": {
		A: 30.06992276, E: 0.00859048, I: 1.77004347,
		L: -55.12002969, Peri: 44.96476227, Node: 131.78422574,
		ADot: 0.00026291, EDot: 0.00005105, IDot: 0.00035372,
		LDot: 218.45945325, PeriDot: -0.32241464, NodeDot: -0.00508664,
	},
}

// HasElements reports whether PlanetPosition can compute the named planet.
func HasElements(name string) bool {
	if name == "EMBary" {
		return false
	}
	_, ok := planetElements[name]
	return ok
}

// Heliocentric returns the heliocentric position (AU) in the J2000
// ecliptic frame at T Julian centuries past J2000.
func (el OrbitalElements) Heliocentric(T float64) Vec3 {
	a := el.A + el.ADot*T
	e := el.E + el.EDot*T
	inc := degToRad(el.I + el.IDot*T)
	L := el.L + el.LDot*T
	peri := el.Peri + el.PeriDot*T
	node := el.Node + el.NodeDot*T

	w := degToRad(peri - node)
	om := degToRad(node)
	M := degToRad(normalizeAngle180(L - peri))

	E := SolveKepler(M, e)

	xp := a * (math.Cos(E) - e)
	yp := a * math.Sqrt(1-e*e) * math.Sin(E)

	cw, sw := math.Cos(w), math.Sin(w)
	co, so := math.Cos(om), math.Sin(om)
	ci, si := math.Cos(inc), math.Sin(inc)

	return Vec3{
		X: (cw*co-sw*so*ci)*xp + (-sw*co-cw*so*ci)*yp,
		Y: (cw*so+sw*co*ci)*xp + (-sw*so+cw*co*ci)*yp,
		Z: (sw*si)*xp + (cw*si)*yp,
	}
}

// SolveKepler solves E - e*sin(E) = M for the eccentric anomaly (radians).
func SolveKepler(M, e float64) float64 {
	E := M + e*math.Sin(M)
	for i := 0; i < 30; i++ {
		dE := (E - e*math.Sin(E) - M) / (1 - e*math.Cos(E))
		E -= dE
		if math.Abs(dE) < 1e-12 {
			break
		}
	}
	return E
}

// PlanetPosition returns the geocentric equatorial coordinates of date of
// the named planet (Mercury through Neptune), corrected for light time.
func PlanetPosition(name string, t time.Time) (SkyCoord, error) {
	el, ok := planetElements[name]
	if !ok || name == "EMBary" {
		return SkyCoord{}, ErrNoElements
	}

	T := JulianCenturies(t)
	earth := planetElements["EMBary"].Heliocentric(T)

	geo := el.Heliocentric(T).Sub(earth)
	tau := geo.Norm() * lightDaysPerAU / 36525.0
	geo = el.Heliocentric(T - tau).Sub(earth)

	eq := eclipticOfDateToEquatorial(geo, T)
	ra, dec := RADec(eq)
	return SkyCoord{RAdeg: ra, DecDeg: dec, DistAU: geo.Norm()}, nil
}

// eclipticOfDateToEquatorial precesses a J2000 ecliptic vector to the
// equinox of date and rotates it onto the equator of date.
func eclipticOfDateToEquatorial(ecl Vec3, T float64) Vec3 {
	// General precession in longitude.
	p := 1.396971*T + 0.0003086*T*T
	return ecl.RotateZ(p).RotateX(meanObliquityDeg(T))
}

func normalizeAngle180(a float64) float64 {
	a = normalizeAngle360(a)
	if a > 180 {
		a -= 360
	}
	return a
}
