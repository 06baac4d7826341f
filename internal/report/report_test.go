package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pv_simulator/internal/geometry"
	"pv_simulator/internal/model"
	"pv_simulator/internal/simulator"
	"pv_simulator/internal/surface"
)

func sampleRun() Run {
	res := &simulator.Result{
		ACEnergyKWh:    []float64{0, 0.5},
		BeamKWhM2:      []float64{0, 0.3},
		DiffuseKWhM2:   []float64{0, 0.1},
		ReflectedKWhM2: []float64{0, 0.05},
		TotalKWhM2:     []float64{0, 0.45},
		ModuleTempC:    []float64{10, 32},
		CellTempC:      []float64{10, 34},
		AnnualACKWh:    1200,
		AnnualPOAKWhM2: 1500,
	}
	res.MonthlyACKWh[0] = 80
	res.MonthlyPOAKWhM2[0] = 95
	res.AvgDailyPOAKWhM2[0] = 95.0 / 31

	return Run{
		Location: model.Location{
			Name: "Golden CO", Latitude: 39.74, Longitude: -105.18,
			TimeZone: -7, Elevation: 1829,
		},
		Angles: geometry.Angles{TiltDeg: 39.74, AzimuthDeg: 180},
		Surface: surface.Resolved{
			SurfaceArea: 29.63,
			ActiveArea:  26.67,
			NameplateKW: 4,
			Params: surface.Params{
				SurfacePercent:    100,
				ActiveAreaPercent: 90,
				ModuleEfficiency:  15,
				DerateFactor:      0.85,
				ModuleType:        0,
			},
		},
		Albedo:    0.2,
		Condition: "No condition",
		Result:    res,
	}
}

func TestTextReporter(t *testing.T) {
	var buf strings.Builder
	err := TextReporter{W: &buf}.Report(sampleRun())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Simulation results successfully completed!")
	assert.Contains(t, out, "Location: Golden CO")
	assert.Contains(t, out, "Latitude: 39.74")
	assert.Contains(t, out, "Nameplate DC power rating (kW): 4.00")
	assert.Contains(t, out, "Overall DC to AC derate factor: 0.850")
	assert.Contains(t, out, "Module type and mounting: Glass/cell/glass Close (flush) roof mount")
	assert.Contains(t, out, "Array type: fixed tilt")
	assert.Contains(t, out, "Surface tilt angle: 39.74")
	assert.Contains(t, out, "No condition")
	assert.Contains(t, out, "Annual AC energy (kWh): 1200.00")
}

func TestTextReporter_ModuleTypeOutOfRange(t *testing.T) {
	run := sampleRun()
	run.Surface.Params.ModuleType = 7

	err := TextReporter{W: &strings.Builder{}}.Report(run)
	assert.Error(t, err)
}

func TestTextReporter_NoResultSkipsSummary(t *testing.T) {
	run := sampleRun()
	run.Result = nil

	var buf strings.Builder
	err := TextReporter{W: &buf}.Report(run)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Input data:")
	assert.NotContains(t, out, "Annual AC energy")

	// Without a result the restatement points at the run switch instead
	// of claiming a completed simulation.
	assert.NotContains(t, out, "successfully completed")
	assert.Contains(t, out, "Set the run flag to start the simulation.")
}

func TestCSVReporter(t *testing.T) {
	var buf strings.Builder
	err := CSVReporter{W: &buf}.Report(sampleRun())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3) // header plus two hours
	assert.Equal(t, "hoy,month,ac_kwh,beam_kwh_m2,diffuse_kwh_m2,reflected_kwh_m2,total_kwh_m2,module_temp_c,cell_temp_c", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "1,1,0,"))
	assert.True(t, strings.HasPrefix(lines[2], "2,1,0.5,"))
}

func TestCSVReporter_NoResult(t *testing.T) {
	run := sampleRun()
	run.Result = nil
	err := CSVReporter{W: &strings.Builder{}}.Report(run)
	assert.Error(t, err)
}
