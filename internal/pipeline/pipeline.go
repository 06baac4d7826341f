// Package pipeline composes input resolution, weather alignment,
// conditional filtering and the hourly simulation into one run. A run
// either completes fully or fails with no partial output.
package pipeline

import (
	"fmt"

	"pv_simulator/internal/condition"
	"pv_simulator/internal/geometry"
	"pv_simulator/internal/ingest"
	"pv_simulator/internal/model"
	"pv_simulator/internal/pvwatts"
	"pv_simulator/internal/report"
	"pv_simulator/internal/simulator"
	"pv_simulator/internal/surface"
	"pv_simulator/internal/weather"
)

// Request carries the raw inputs of one annual run.
type Request struct {
	Location      model.Location
	Surface       surface.Spec
	SurfaceParams surface.Params
	AngleConfig   geometry.Config
	Albedo        float64

	Weather *ingest.RawWeather

	// Conditional filter. Both must be supplied together or both left
	// empty. Dataset values may carry import headers; they are aligned
	// here.
	Condition string
	Datasets  []condition.Dataset

	// Simulate gates the hourly loop. When false the run resolves and
	// restates its inputs without simulating.
	Simulate bool
}

// Outcome is the fully resolved state of a run. Result is nil when the
// request did not simulate.
type Outcome struct {
	Resolved  surface.Resolved
	Angles    geometry.Angles
	Condition string
	Result    *simulator.Result
}

// Report assembles the reporter input for this outcome.
func (o *Outcome) Report(loc model.Location, albedo float64) report.Run {
	return report.Run{
		Location:  loc,
		Angles:    o.Angles,
		Surface:   o.Resolved,
		Albedo:    albedo,
		Condition: o.Condition,
		Result:    o.Result,
	}
}

// Pipeline runs requests against one physics model.
type Pipeline struct {
	engine *simulator.Engine
}

func New(physics pvwatts.Model) *Pipeline {
	return &Pipeline{engine: simulator.New(physics)}
}

// SetCallback forwards a progress listener to the engine.
func (p *Pipeline) SetCallback(cb simulator.Callback) {
	p.engine.SetCallback(cb)
}

// Run executes a request end to end.
func (p *Pipeline) Run(req Request) (*Outcome, error) {
	resolved, err := surface.Resolve(req.Surface, req.SurfaceParams)
	if err != nil {
		return nil, err
	}

	if err := req.Location.Validate(); err != nil {
		return nil, err
	}
	angles := geometry.Resolve(req.AngleConfig, req.Surface, req.Location.Latitude)

	if req.Weather == nil {
		return nil, fmt.Errorf("pipeline: no weather data supplied")
	}
	aligned, err := weather.Align(req.Weather.DryBulb, req.Weather.WindSpeed,
		req.Weather.DNI, req.Weather.DHI, req.Weather.ModelYear)
	if err != nil {
		return nil, err
	}

	filter, err := p.buildFilter(req)
	if err != nil {
		return nil, err
	}

	out := &Outcome{
		Resolved:  resolved,
		Angles:    angles,
		Condition: filter.Describe(),
	}
	if !req.Simulate {
		return out, nil
	}

	// Hours failing the condition are zeroed so the year stays 8760
	// hours long and monthly buckets keep their calendar positions.
	filtered, err := filter.Apply([][]float64{
		aligned.DryBulb, aligned.WindSpeed, aligned.DNI, aligned.DHI,
	}, condition.AddZero)
	if err != nil {
		return nil, err
	}
	aligned.DryBulb, aligned.WindSpeed = filtered[0], filtered[1]
	aligned.DNI, aligned.DHI = filtered[2], filtered[3]

	params := simulator.Params{
		Location:     req.Location,
		Angles:       angles,
		NameplateKW:  resolved.NameplateKW,
		DerateFactor: resolved.Params.DerateFactor,
		ModuleType:   resolved.Params.ModuleType,
		Albedo:       req.Albedo,
	}
	res, err := p.engine.Run(params, aligned)
	if err != nil {
		return nil, err
	}
	out.Result = res
	return out, nil
}

// buildFilter aligns the auxiliary datasets and compiles the condition.
func (p *Pipeline) buildFilter(req Request) (*condition.Filter, error) {
	datasets := make([]condition.Dataset, len(req.Datasets))
	for i, ds := range req.Datasets {
		values, err := weather.AlignSeries(ds.Name, ds.Values)
		if err != nil {
			return nil, err
		}
		datasets[i] = condition.Dataset{Name: ds.Name, Values: values}
	}
	return condition.New(req.Condition, datasets)
}
