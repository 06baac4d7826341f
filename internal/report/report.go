// Package report renders completed simulation runs for humans and for
// downstream tooling.
package report

import (
	"fmt"
	"io"

	"pv_simulator/internal/geometry"
	"pv_simulator/internal/model"
	"pv_simulator/internal/pvwatts"
	"pv_simulator/internal/simulator"
	"pv_simulator/internal/surface"
)

// Run bundles the resolved inputs and outputs of one annual simulation.
type Run struct {
	Location  model.Location
	Angles    geometry.Angles
	Surface   surface.Resolved
	Albedo    float64
	Condition string // human-readable filter restatement
	Result    *simulator.Result
}

// Reporter consumes a completed run.
type Reporter interface {
	Report(run Run) error
}

// TextReporter writes an input restatement and a monthly summary to a
// writer, one run per call.
type TextReporter struct {
	W io.Writer
}

var _ Reporter = TextReporter{}

func (r TextReporter) Report(run Run) error {
	p := run.Surface.Params
	typeName, err := moduleTypeName(p.ModuleType)
	if err != nil {
		return err
	}

	// The completion banner only makes sense once the hourly loop ran;
	// the restatement-only path gets a pointer at the run switch instead.
	header := "Simulation results successfully completed!"
	if run.Result == nil {
		header = "All inputs are ok. Set the run flag to start the simulation."
	}

	_, err = fmt.Fprintf(r.W, `%s

Input data:

Location: %s
Latitude: %g
Longitude: %g
Time zone: %g
Elevation: %g
North: %g
Albedo: %g

Surface percentage used for PV modules: %.2f
Active area percentage: %.2f
Surface area (m2): %.2f
Surface active area (m2): %.2f
Nameplate DC power rating (kW): %.2f
Overall DC to AC derate factor: %.3f
Module type and mounting: %s
Module efficiency: %g
Array type: fixed tilt
Surface azimuth angle: %.2f
Surface tilt angle: %.2f

Calculation based on the following condition:
%s

`,
		header,
		run.Location.Name,
		run.Location.Latitude,
		run.Location.Longitude,
		run.Location.TimeZone,
		run.Location.Elevation,
		run.Angles.NorthOffsetDeg,
		run.Albedo,
		p.SurfacePercent,
		p.ActiveAreaPercent,
		run.Surface.SurfaceArea,
		run.Surface.ActiveArea,
		run.Surface.NameplateKW,
		p.DerateFactor,
		typeName,
		p.ModuleEfficiency,
		run.Angles.AzimuthDeg,
		run.Angles.TiltDeg,
		run.Condition,
	)
	if err != nil {
		return err
	}

	res := run.Result
	if res == nil {
		return nil
	}

	fmt.Fprintln(r.W, "Month  AC energy (kWh)  POA radiation (kWh/m2)  Avg daily (kWh/m2/day)")
	for m := 0; m < 12; m++ {
		_, err = fmt.Fprintf(r.W, "%5d  %15.2f  %22.2f  %22.3f\n",
			m+1, res.MonthlyACKWh[m], res.MonthlyPOAKWhM2[m], res.AvgDailyPOAKWhM2[m])
		if err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(r.W, "\nAnnual AC energy (kWh): %.2f\nAnnual POA radiation (kWh/m2): %.2f\nAverage daily POA radiation (kWh/m2/day): %.3f\n",
		res.AnnualACKWh, res.AnnualPOAKWhM2, res.AvgDailyPOAKWhM2Year)
	return err
}

func moduleTypeName(moduleType int) (string, error) {
	if moduleType < 0 || moduleType >= len(pvwatts.ModuleTypeNames) {
		return "", fmt.Errorf("module type %d out of range", moduleType)
	}
	return pvwatts.ModuleTypeNames[moduleType], nil
}
