package ephem

import (
	"errors"
	"fmt"
	"strings"
)

// TargetID is a NAIF SPICE ID for a solar system body.
type TargetID int

// NAIF IDs of the charted bodies (planet body centres, not barycentres).
// Sourced from https://naif.jpl.nasa.gov/pub/naif/toolkit_docs/C/req/naif_ids.html
const (
	NAIFSun     TargetID = 10
	NAIFMercury TargetID = 199
	NAIFVenus   TargetID = 299
	NAIFMars    TargetID = 499
	NAIFJupiter TargetID = 599
	NAIFSaturn  TargetID = 699
	NAIFUranus  TargetID = 799
	NAIFNeptune TargetID = 899
)

// BodyKind categorizes bodies for rise/set rules.
type BodyKind int

const (
	BodySun BodyKind = iota
	BodyPlanet
)

// String returns the body kind name.
func (k BodyKind) String() string {
	switch k {
	case BodySun:
		return "sun"
	case BodyPlanet:
		return "planet"
	default:
		return "unknown"
	}
}

// Body is a chartable solar system body.
type Body struct {
	Name   string
	Code   string // short label
	NAIFID TargetID
	Kind   BodyKind
}

// String returns the body name.
func (b Body) String() string {
	return b.Name
}

// ErrUnknownBody is returned when a body name or ID is not charted.
var ErrUnknownBody = errors.New("unknown body")

// The charted bodies.
var (
	Sun     = Body{Name: "Sun", Code: "SUN", NAIFID: NAIFSun, Kind: BodySun}
	Mercury = Body{Name: "Mercury", Code: "MER", NAIFID: NAIFMercury, Kind: BodyPlanet}
	Venus   = Body{Name: "Venus", Code: "VEN", NAIFID: NAIFVenus, Kind: BodyPlanet}
	Mars    = Body{Name: "Mars", Code: "MAR", NAIFID: NAIFMars, Kind: BodyPlanet}
	Jupiter = Body{Name: "Jupiter", Code: "JUP", NAIFID: NAIFJupiter, Kind: BodyPlanet}
	Saturn  = Body{Name: "Saturn", Code: "SAT", NAIFID: NAIFSaturn, Kind: BodyPlanet}
	Uranus  = Body{Name: "Uranus", Code: "URA", NAIFID: NAIFUranus, Kind: BodyPlanet}
	Neptune = Body{Name: "Neptune", Code: "NEP", NAIFID: NAIFNeptune, Kind: BodyPlanet}
)

// Bodies lists the charted bodies in plotting order.
var Bodies = []Body{Sun, Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune}

// BodiesByNAIF maps NAIF IDs to bodies for quick lookup.
var BodiesByNAIF = func() map[TargetID]Body {
	m := make(map[TargetID]Body, len(Bodies))
	for _, b := range Bodies {
		m[b.NAIFID] = b
	}
	return m
}()

// bodiesByName maps lowercase names and codes to bodies.
var bodiesByName = func() map[string]Body {
	m := make(map[string]Body, len(Bodies)*2)
	for _, b := range Bodies {
		m[strings.ToLower(b.Name)] = b
		m[strings.ToLower(b.Code)] = b
	}
	return m
}()

// LookupBody returns the body for a name or code (case-insensitive).
func LookupBody(name string) (Body, error) {
	b, ok := bodiesByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Body{}, fmt.Errorf("%w: %q", ErrUnknownBody, name)
	}
	return b, nil
}

// GetBodyByNAIF returns the body for a NAIF ID.
func GetBodyByNAIF(id TargetID) (Body, bool) {
	b, ok := BodiesByNAIF[id]
	return b, ok
}
