package astro

import (
	"math"
)

// lightDaysPerAU is the light travel time across one AU, in days.
const lightDaysPerAU = 0.0057755183

// Vec3 is a Cartesian position, in AU unless stated otherwise.
type Vec3 struct {
	X, Y, Z float64
}

// Norm returns the length of v.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Sub returns v - u.
func (v Vec3) Sub(u Vec3) Vec3 {
	return Vec3{X: v.X - u.X, Y: v.Y - u.Y, Z: v.Z - u.Z}
}

// RotateZ rotates v about the Z axis by deg degrees.
func (v Vec3) RotateZ(deg float64) Vec3 {
	s, c := math.Sincos(degToRad(deg))
	return Vec3{X: v.X*c - v.Y*s, Y: v.X*s + v.Y*c, Z: v.Z}
}

// RotateX rotates v about the X axis by deg degrees. Rotating an ecliptic
// vector by the obliquity yields an equatorial one.
func (v Vec3) RotateX(deg float64) Vec3 {
	s, c := math.Sincos(degToRad(deg))
	return Vec3{X: v.X, Y: v.Y*c - v.Z*s, Z: v.Y*s + v.Z*c}
}

// RADec returns the right ascension [0,360) and declination of an
// equatorial vector, in degrees.
func RADec(eq Vec3) (raDeg, decDeg float64) {
	r := eq.Norm()
	if r == 0 {
		return 0, 0
	}
	raDeg = normalizeAngle360(radToDeg(math.Atan2(eq.Y, eq.X)))
	decDeg = radToDeg(math.Asin(clamp(eq.Z/r, -1, 1)))
	return raDeg, decDeg
}
