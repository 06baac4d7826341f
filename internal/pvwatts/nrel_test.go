package pvwatts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSunPosition_NoonSouthOfNorthernSite(t *testing.T) {
	m := NREL{}

	// Solar noon near the March equinox at 45N, 0E, UTC.
	sun, err := m.SunPosition(45, 0, 0, 1989, 3, 21, 11.0)
	require.NoError(t, err)

	assert.InDelta(t, 90.0, sun.ZenithDeg+sun.AltitudeDeg, 1e-9)
	// Sun roughly due south, altitude roughly 90-45 at the equinox.
	assert.InDelta(t, 180.0, sun.AzimuthDeg, 15)
	assert.InDelta(t, 45.0, sun.AltitudeDeg, 5)
}

func TestSunPosition_MorningEastAfternoonWest(t *testing.T) {
	m := NREL{}

	morning, err := m.SunPosition(45, 0, 0, 1989, 6, 21, 7)
	require.NoError(t, err)
	afternoon, err := m.SunPosition(45, 0, 0, 1989, 6, 21, 16)
	require.NoError(t, err)

	assert.Less(t, morning.AzimuthDeg, 180.0, "morning sun east of south")
	assert.Greater(t, afternoon.AzimuthDeg, 180.0, "afternoon sun west of south")
}

func TestSunPosition_NightBelowHorizon(t *testing.T) {
	m := NREL{}
	sun, err := m.SunPosition(45, 0, 0, 1989, 1, 1, 0)
	require.NoError(t, err)
	assert.Negative(t, sun.AltitudeDeg)
}

func TestPOAIrradiance_FlatSurface(t *testing.T) {
	m := NREL{}
	sun := SunPosition{ZenithDeg: 30, AzimuthDeg: 180, AltitudeDeg: 60}

	poa, err := m.POAIrradiance(sun, 0, 180, 800, 100, 0.2)
	require.NoError(t, err)

	// On a horizontal plane the AOI equals the zenith, the sky term is
	// the full DHI and nothing reflects from the ground.
	assert.InDelta(t, 30.0, poa.AOIDeg, 1e-9)
	assert.InDelta(t, 800*0.8660254, poa.Beam, 1e-3)
	assert.InDelta(t, 100.0, poa.SkyDiffuse, 1e-9)
	assert.InDelta(t, 0.0, poa.GroundReflected, 1e-9)
	assert.InDelta(t, poa.Beam+poa.SkyDiffuse+poa.GroundReflected, poa.Total, 1e-9)
}

func TestPOAIrradiance_VerticalSurfaceGroundTerm(t *testing.T) {
	m := NREL{}
	sun := SunPosition{ZenithDeg: 45, AzimuthDeg: 180, AltitudeDeg: 45}

	poa, err := m.POAIrradiance(sun, 90, 180, 1000, 200, 0.2)
	require.NoError(t, err)

	assert.InDelta(t, 100.0, poa.SkyDiffuse, 1e-9) // half the sky dome
	ghi := 1000*0.70710678 + 200
	assert.InDelta(t, ghi*0.2*0.5, poa.GroundReflected, 1e-3)
}

func TestPOAIrradiance_SunBehindSurface(t *testing.T) {
	m := NREL{}
	// Sun in the north, surface facing south and steeply tilted.
	sun := SunPosition{ZenithDeg: 60, AzimuthDeg: 0, AltitudeDeg: 30}

	poa, err := m.POAIrradiance(sun, 90, 180, 900, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, poa.Beam)
	assert.Greater(t, poa.AOIDeg, 90.0)
}

func TestPower_NightIsAmbientAndZero(t *testing.T) {
	m := NREL{}
	moduleC, cellC, acKW, err := m.Power(4, 0.85, POA{}, 0, 12.5, 3, 0, 0)
	require.NoError(t, err)

	assert.Equal(t, 12.5, moduleC)
	assert.Equal(t, 12.5, cellC)
	assert.Equal(t, 0.0, acKW)
}

func TestPower_SunnyHour(t *testing.T) {
	m := NREL{}
	poa := POA{Total: 1000, Beam: 850, SkyDiffuse: 120, GroundReflected: 30}

	moduleC, cellC, acKW, err := m.Power(4, 0.85, poa, 0, 20, 2, 850, 120)
	require.NoError(t, err)

	assert.Greater(t, moduleC, 20.0, "module heats above ambient")
	assert.GreaterOrEqual(t, cellC, moduleC)
	assert.Greater(t, acKW, 0.0)
	// Far below nameplate after derate and thermal losses.
	assert.Less(t, acKW, 4.0)
}

func TestPower_WindCoolsModule(t *testing.T) {
	m := NREL{}
	poa := POA{Total: 1000}

	calm, _, _, err := m.Power(4, 0.85, poa, 0, 20, 0, 0, 0)
	require.NoError(t, err)
	windy, _, _, err := m.Power(4, 0.85, poa, 0, 20, 10, 0, 0)
	require.NoError(t, err)

	assert.Less(t, windy, calm)
}

func TestPower_ModuleTypeOutOfRange(t *testing.T) {
	m := NREL{}
	_, _, _, err := m.Power(4, 0.85, POA{Total: 500}, 4, 20, 2, 0, 0)
	assert.Error(t, err)
}

func TestModuleTypeNamesCoverThermalTable(t *testing.T) {
	assert.Equal(t, len(moduleThermal), len(ModuleTypeNames))
}
