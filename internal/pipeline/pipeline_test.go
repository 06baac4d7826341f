package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pv_simulator/internal/condition"
	"pv_simulator/internal/geometry"
	"pv_simulator/internal/ingest"
	"pv_simulator/internal/model"
	"pv_simulator/internal/pvwatts"
	"pv_simulator/internal/surface"
)

// dniModel converts each hour's DNI straight into AC output, which makes
// filtering effects directly observable in the totals.
type dniModel struct{}

func (dniModel) SunPosition(lat, lon, tz float64, year, month, day int, hour float64) (pvwatts.SunPosition, error) {
	return pvwatts.SunPosition{ZenithDeg: 45, AzimuthDeg: 180, AltitudeDeg: 45}, nil
}

func (dniModel) POAIrradiance(sun pvwatts.SunPosition, tiltDeg, azimuthDeg, dni, dhi, albedo float64) (pvwatts.POA, error) {
	return pvwatts.POA{Total: dni + dhi, Beam: dni, SkyDiffuse: dhi}, nil
}

func (dniModel) Power(nameplateKW, derateFactor float64, poa pvwatts.POA, moduleType int, ambientC, windMS, dni, dhi float64) (float64, float64, float64, error) {
	return ambientC, ambientC, dni / 1000, nil
}

func flatSeries(v float64) []float64 {
	s := make([]float64, model.HoursPerYear)
	for i := range s {
		s[i] = v
	}
	return s
}

func weatherFixture() *ingest.RawWeather {
	return &ingest.RawWeather{
		DryBulb:   flatSeries(15),
		WindSpeed: flatSeries(3),
		DNI:       flatSeries(500),
		DHI:       flatSeries(100),
		ModelYear: flatSeries(1989),
	}
}

func baseRequest() Request {
	return Request{
		Location: model.Location{Name: "Testville", Latitude: 40, Longitude: -105, TimeZone: -7},
		Surface:  surface.FromPowerRating(4),
		SurfaceParams: surface.Params{
			SurfacePercent:    100,
			ActiveAreaPercent: 90,
			ModuleEfficiency:  15,
			DerateFactor:      0.85,
		},
		Albedo:   0.2,
		Weather:  weatherFixture(),
		Simulate: true,
	}
}

func TestRun_EndToEnd(t *testing.T) {
	p := New(dniModel{})

	out, err := p.Run(baseRequest())
	require.NoError(t, err)
	require.NotNil(t, out.Result)

	assert.InDelta(t, 4.0, out.Resolved.NameplateKW, 1e-9)
	assert.InDelta(t, 40.0, out.Angles.TiltDeg, 1e-9) // abs(latitude)
	assert.InDelta(t, 180.0, out.Angles.AzimuthDeg, 1e-9)
	assert.Equal(t, "No condition", out.Condition)
	assert.InDelta(t, 8760*0.5, out.Result.AnnualACKWh, 1e-6)
}

func TestRun_SimulateFalseResolvesOnly(t *testing.T) {
	req := baseRequest()
	req.Simulate = false

	out, err := New(dniModel{}).Run(req)
	require.NoError(t, err)

	assert.Nil(t, out.Result)
	assert.InDelta(t, 4.0, out.Resolved.NameplateKW, 1e-9)
	assert.Equal(t, "No condition", out.Condition)
}

func TestRun_ConditionZeroesFailingHours(t *testing.T) {
	// Marker dataset passes exactly the first half of the year.
	marker := make([]float64, model.HoursPerYear)
	for i := 0; i < model.HoursPerYear/2; i++ {
		marker[i] = 1
	}

	req := baseRequest()
	req.Condition = "a>0"
	req.Datasets = []condition.Dataset{{Name: "Occupancy", Values: marker}}

	out, err := New(dniModel{}).Run(req)
	require.NoError(t, err)

	assert.Equal(t, "Occupancy>0", out.Condition)
	assert.InDelta(t, 8760/2*0.5, out.Result.AnnualACKWh, 1e-6)
}

func TestRun_DatasetWithImportHeaderIsAligned(t *testing.T) {
	raw := make([]float64, model.RawSeriesLen)
	for i := model.HeaderLen; i < len(raw); i++ {
		raw[i] = 1
	}

	req := baseRequest()
	req.Condition = "a>0"
	req.Datasets = []condition.Dataset{{Name: "Flag", Values: raw}}

	out, err := New(dniModel{}).Run(req)
	require.NoError(t, err)
	assert.InDelta(t, 8760*0.5, out.Result.AnnualACKWh, 1e-6)
}

func TestRun_ConditionWithoutDatasets(t *testing.T) {
	req := baseRequest()
	req.Condition = "a>0"

	_, err := New(dniModel{}).Run(req)
	assert.ErrorIs(t, err, condition.ErrMissingFilterInput)
}

func TestRun_InvalidCondition(t *testing.T) {
	req := baseRequest()
	req.Condition = "a >"
	req.Datasets = []condition.Dataset{{Name: "Flag", Values: flatSeries(1)}}

	_, err := New(dniModel{}).Run(req)
	var exprErr *condition.InvalidExpressionError
	assert.ErrorAs(t, err, &exprErr)
}

func TestRun_MissingWeather(t *testing.T) {
	req := baseRequest()
	req.Weather = nil

	_, err := New(dniModel{}).Run(req)
	assert.Error(t, err)
}

func TestRun_ShortWeatherSeries(t *testing.T) {
	req := baseRequest()
	req.Weather.DNI = req.Weather.DNI[:5000]

	_, err := New(dniModel{}).Run(req)
	assert.Error(t, err)
}

func TestRun_ExplicitAnglesAndNorth(t *testing.T) {
	tilt, azimuth := 30.0, 170.0
	north := geometry.North{OffsetDeg: 20}

	req := baseRequest()
	req.AngleConfig = geometry.Config{TiltDeg: &tilt, AzimuthDeg: &azimuth, North: &north}

	out, err := New(dniModel{}).Run(req)
	require.NoError(t, err)
	assert.InDelta(t, 30.0, out.Angles.TiltDeg, 1e-9)
	assert.InDelta(t, 190.0, out.Angles.AzimuthDeg, 1e-9)
}

func TestRun_RealPhysicsProducesEnergy(t *testing.T) {
	p := New(pvwatts.NREL{})

	out, err := p.Run(baseRequest())
	require.NoError(t, err)

	assert.Greater(t, out.Result.AnnualACKWh, 0.0)
	assert.Greater(t, out.Result.AnnualPOAKWhM2, 0.0)
	// Constant daylight-agnostic inputs still cannot beat the nameplate
	// running flat out all year.
	assert.Less(t, out.Result.AnnualACKWh, 4.0*8760)
}
