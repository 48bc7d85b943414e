package astro

import (
	"math"
	"time"
)

// SunSemiDiameterDeg is the mean apparent radius of the solar disc.
// Rise and set of the Sun are taken at its upper limb.
const SunSemiDiameterDeg = 0.2666

// SunPosition calculates the apparent equatorial coordinates of the Sun.
// Uses a simplified solar ephemeris based on the Astronomical Almanac.
// Accuracy: ~0.01 degrees, a few seconds of rise/set time.
func SunPosition(t time.Time) SkyCoord {
	T := JulianCenturies(t)

	// Mean longitude and mean anomaly (degrees)
	L0 := normalizeAngle360(280.46646 + 36000.76983*T + 0.0003032*T*T)
	M := normalizeAngle360(357.52911 + 35999.05029*T - 0.0001537*T*T)
	Mrad := degToRad(M)

	// Equation of center
	C := (1.914602 - 0.004817*T - 0.000014*T*T) * math.Sin(Mrad)
	C += (0.019993 - 0.000101*T) * math.Sin(2*Mrad)
	C += 0.000289 * math.Sin(3*Mrad)

	sunLon := L0 + C
	v := degToRad(M + C)

	e := 0.016708634 - 0.000042037*T - 0.0000001267*T*T
	R := 1.000001018 * (1 - e*e) / (1 + e*math.Cos(v))

	// Apparent longitude (aberration and nutation)
	omega := 125.04 - 1934.136*T
	sunLonApp := sunLon - 0.00569 - 0.00478*math.Sin(degToRad(omega))

	eps := meanObliquityDeg(T) + 0.00256*math.Cos(degToRad(omega))

	lonRad := degToRad(sunLonApp)
	epsRad := degToRad(eps)

	ra := normalizeAngle360(radToDeg(math.Atan2(math.Cos(epsRad)*math.Sin(lonRad), math.Cos(lonRad))))
	dec := radToDeg(math.Asin(math.Sin(epsRad) * math.Sin(lonRad)))

	return SkyCoord{RAdeg: ra, DecDeg: dec, DistAU: R}
}

// meanObliquityDeg returns the mean obliquity of the ecliptic of date.
func meanObliquityDeg(T float64) float64 {
	return 23.439291 - 0.0130042*T - 0.00000016*T*T + 0.000000504*T*T*T
}
