// Package geometry resolves the final array tilt and azimuth from the
// layered rules over explicit inputs, the surface variant, the site
// latitude and an optional true-north reference.
package geometry

import (
	"fmt"
	"math"

	"pv_simulator/internal/surface"
)

// InvalidNorthError reports a numeric north reference outside [0, 360].
type InvalidNorthError struct {
	Deg float64
}

func (e *InvalidNorthError) Error() string {
	return fmt.Sprintf("north angle %v outside [0, 360]", e.Deg)
}

// North is the optional true-north reference, stored as a clockwise
// offset in degrees from the default north axis.
type North struct {
	OffsetDeg float64
}

// NorthFromDegrees builds a north reference from a clockwise angle.
func NorthFromDegrees(deg float64) (North, error) {
	if deg < 0 || deg > 360 {
		return North{}, &InvalidNorthError{Deg: deg}
	}
	return North{OffsetDeg: deg}, nil
}

// NorthFromVector builds a north reference from a direction vector in the
// horizontal plane. The vector is normalized and converted to a clockwise
// angle from the default north axis (+Y).
func NorthFromVector(x, y float64) North {
	deg := math.Atan2(x, y) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return North{OffsetDeg: deg}
}

// Angles is the resolved array orientation. AzimuthDeg is stored after
// north correction.
type Angles struct {
	TiltDeg        float64 // [0, 180]
	AzimuthDeg     float64 // [0, 360)
	NorthOffsetDeg float64
}

// Config carries the optional explicit angle inputs; nil means absent.
type Config struct {
	TiltDeg    *float64
	AzimuthDeg *float64
	North      *North
}

// Resolve applies the azimuth and tilt priority rules and the north
// correction. The surface variant supplies derived angles when nothing
// explicit is given.
func Resolve(cfg Config, spec surface.Spec, latitude float64) Angles {
	rawAzimuth, geomTilt, geomTiltKnown := resolveAzimuth(cfg.AzimuthDeg, spec, latitude)

	var offset float64
	if cfg.North != nil {
		offset = cfg.North.OffsetDeg
	}
	corrected := math.Mod(offset+rawAzimuth, 360)
	if corrected < 0 {
		corrected += 360
	}

	return Angles{
		TiltDeg:        resolveTilt(cfg.TiltDeg, spec, latitude, geomTilt, geomTiltKnown),
		AzimuthDeg:     corrected,
		NorthOffsetDeg: offset,
	}
}

// hemisphereDefault is the equator-facing azimuth for the latitude sign.
func hemisphereDefault(latitude float64) float64 {
	if latitude > 0 {
		return 180 // south-facing, northern hemisphere
	}
	return 0 // north-facing, southern hemisphere
}

func resolveAzimuth(explicit *float64, spec surface.Spec, latitude float64) (azimuthDeg, tiltDeg float64, tiltKnown bool) {
	if explicit != nil {
		if *explicit < 0 || *explicit > 360 {
			return hemisphereDefault(latitude), 0, false
		}
		return *explicit, 0, false
	}
	if g, ok := spec.Geometry(); ok {
		return g.Azimuth()
	}
	return hemisphereDefault(latitude), 0, false
}

func resolveTilt(explicit *float64, spec surface.Spec, latitude, geomTilt float64, geomTiltKnown bool) float64 {
	if explicit != nil {
		if *explicit < 0 || *explicit > 180 {
			return 0
		}
		return *explicit
	}
	// Flat and vertical surfaces already fix the tilt during azimuth
	// derivation.
	if geomTiltKnown && (geomTilt == 0 || geomTilt == 90 || geomTilt == 180) {
		return geomTilt
	}
	if g, ok := spec.Geometry(); ok {
		return g.Tilt()
	}
	return math.Abs(latitude)
}
