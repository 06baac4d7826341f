package surface

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGeometry is a stand-in for the host geometry collaborator.
type fakeGeometry struct {
	faces    int
	area     float64
	azimuth  float64
	tilt     float64
	tiltSet  bool
	tiltFrom float64
}

func (g *fakeGeometry) FaceCount() int { return g.faces }

func (g *fakeGeometry) FaceArea() float64 { return g.area }

func (g *fakeGeometry) Azimuth() (float64, float64, bool) {
	return g.azimuth, g.tilt, g.tiltSet
}

func (g *fakeGeometry) Tilt() float64 { return g.tiltFrom }

func unset() Params {
	return Params{
		SurfacePercent:    -1,
		ActiveAreaPercent: -1,
		ModuleEfficiency:  -1,
		DerateFactor:      -1,
		ModuleType:        -1,
	}
}

func TestParse_Area(t *testing.T) {
	spec, err := Parse("100")
	require.NoError(t, err)
	assert.Equal(t, KindArea, spec.Kind())
}

func TestParse_PowerRating(t *testing.T) {
	for _, in := range []string{"4 kw", "4kw", "4 KW", " 4.5 kW "} {
		spec, err := Parse(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, KindPowerRating, spec.Kind(), "input %q", in)
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, in := range []string{"", "abc", "4 mw", "-5", "kw"} {
		_, err := Parse(in)
		var invalid *InvalidSurfaceInputError
		assert.ErrorAs(t, err, &invalid, "input %q", in)
	}
}

func TestResolve_PowerRatingExample(t *testing.T) {
	// "4 kw" at 50% surface percent and 15% efficiency.
	spec, err := Parse("4 kw")
	require.NoError(t, err)

	p := unset()
	p.SurfacePercent = 50
	p.ModuleEfficiency = 15

	got, err := Resolve(spec, p)
	require.NoError(t, err)

	assert.InDelta(t, 2.0, got.NameplateKW, 1e-9)
	assert.InDelta(t, 2.0/0.15, got.ActiveArea, 1e-9)
	assert.InDelta(t, 2.0/0.15/0.9, got.SurfaceArea, 1e-9)
}

func TestResolve_AreaLiteral(t *testing.T) {
	got, err := Resolve(FromArea(100), unset())
	require.NoError(t, err)

	assert.InDelta(t, 100.0, got.SurfaceArea, 1e-9)
	assert.InDelta(t, 90.0, got.ActiveArea, 1e-9)
	assert.InDelta(t, 13.5, got.NameplateKW, 1e-9) // 90 m2 at 15%
}

func TestResolve_Geometry(t *testing.T) {
	g := &fakeGeometry{faces: 1, area: 100}
	got, err := Resolve(FromGeometry(g), unset())
	require.NoError(t, err)
	assert.InDelta(t, 100.0, got.SurfaceArea, 1e-9)
}

func TestResolve_GeometryUnitConversion(t *testing.T) {
	g := &fakeGeometry{faces: 1, area: 100}
	p := unset()
	p.UnitAreaConversion = 0.0929 // model drawn in square feet
	got, err := Resolve(FromGeometry(g), p)
	require.NoError(t, err)
	assert.InDelta(t, 9.29, got.SurfaceArea, 1e-9)
}

func TestResolve_Polysurface(t *testing.T) {
	g := &fakeGeometry{faces: 3, area: 100}
	_, err := Resolve(FromGeometry(g), unset())

	var notSurface *NotASurfaceError
	require.ErrorAs(t, err, &notSurface)
	assert.Equal(t, 3, notSurface.Faces)
}

func TestResolve_DefaultsApplied(t *testing.T) {
	got, err := Resolve(FromArea(10), unset())
	require.NoError(t, err)

	assert.Equal(t, 100.0, got.Params.SurfacePercent)
	assert.Equal(t, 90.0, got.Params.ActiveAreaPercent)
	assert.Equal(t, 15.0, got.Params.ModuleEfficiency)
	assert.Equal(t, 0.85, got.Params.DerateFactor)
	assert.Equal(t, 0, got.Params.ModuleType)
	assert.Equal(t, 1.0, got.Params.UnitAreaConversion)
}

func TestResolve_OutOfRangeFallsBack(t *testing.T) {
	p := unset()
	p.SurfacePercent = 150
	p.DerateFactor = 2
	p.ModuleType = 9

	got, err := Resolve(FromArea(10), p)
	require.NoError(t, err)
	assert.Equal(t, 100.0, got.Params.SurfacePercent)
	assert.Equal(t, 0.85, got.Params.DerateFactor)
	assert.Equal(t, 0, got.Params.ModuleType)
}
