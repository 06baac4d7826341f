// Package surface normalizes the three PV surface input forms (3-D
// geometry, plain area, nameplate power rating) into surface area, active
// area and nameplate DC power.
package surface

import (
	"fmt"
	"strconv"
	"strings"
)

// Geometry is the host geometry collaborator for the 3-D surface input
// form. Angles are degrees; azimuth is clockwise from true north.
type Geometry interface {
	// FaceCount reports the number of faces; more than one face is a
	// polysurface and cannot carry a single PV array.
	FaceCount() int
	// FaceArea returns the face area in the host model's area units.
	FaceArea() float64
	// Azimuth derives the azimuth from the surface normal. tiltKnown is
	// true when the normal trivially fixes the tilt (flat or vertical
	// surfaces, 0/90/180 degrees).
	Azimuth() (azimuthDeg, tiltDeg float64, tiltKnown bool)
	// Tilt derives the tilt from the angle the surface closes with the
	// horizontal plane.
	Tilt() float64
}

// Kind discriminates the surface input variants.
type Kind int

const (
	KindGeometry Kind = iota
	KindArea
	KindPowerRating
)

// Spec is the tagged surface input: exactly one variant is populated.
type Spec struct {
	kind    Kind
	geom    Geometry
	area    float64
	powerKW float64
}

func FromGeometry(g Geometry) Spec { return Spec{kind: KindGeometry, geom: g} }
func FromArea(m2 float64) Spec     { return Spec{kind: KindArea, area: m2} }
func FromPowerRating(kw float64) Spec {
	return Spec{kind: KindPowerRating, powerKW: kw}
}

func (s Spec) Kind() Kind { return s.kind }

// Geometry returns the geometry collaborator for the geometry variant.
func (s Spec) Geometry() (Geometry, bool) { return s.geom, s.kind == KindGeometry }

// NotASurfaceError reports a geometry input with more than one face.
type NotASurfaceError struct {
	Faces int
}

func (e *NotASurfaceError) Error() string {
	return fmt.Sprintf("surface input is a polysurface with %d faces; supply a single surface", e.Faces)
}

// InvalidSurfaceInputError reports a literal that is neither an area nor
// a "kW" power rating.
type InvalidSurfaceInputError struct {
	Input string
}

func (e *InvalidSurfaceInputError) Error() string {
	return fmt.Sprintf("invalid surface input %q: want an area in m2 (e.g. \"100\") or a nameplate rating (e.g. \"4 kw\")", e.Input)
}

// Parse interprets a literal surface input: a bare number is an area in
// square meters, a number with a "kw" suffix is a nameplate DC rating.
func Parse(input string) (Spec, error) {
	trimmed := strings.TrimSpace(input)
	if v, err := strconv.ParseFloat(trimmed, 64); err == nil && v >= 0 {
		return FromArea(v), nil
	}

	lower := strings.ToLower(trimmed)
	if strings.HasSuffix(lower, "kw") {
		num := strings.TrimSpace(strings.TrimSuffix(lower, "kw"))
		if v, err := strconv.ParseFloat(num, 64); err == nil && v >= 0 {
			return FromPowerRating(v), nil
		}
	}
	return Spec{}, &InvalidSurfaceInputError{Input: input}
}
