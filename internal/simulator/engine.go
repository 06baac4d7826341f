// Package simulator drives the physics model across the 8760-hour
// calendar and aggregates hourly output into monthly and annual totals.
package simulator

import (
	"fmt"

	"pv_simulator/internal/geometry"
	"pv_simulator/internal/model"
	"pv_simulator/internal/pvwatts"
	"pv_simulator/internal/weather"
)

// DefaultAlbedo is the ground reflectance used when none is supplied.
const DefaultAlbedo = 0.20

// Params are the resolved parameters of one annual run.
type Params struct {
	Location     model.Location
	Angles       geometry.Angles
	NameplateKW  float64
	DerateFactor float64
	ModuleType   int
	Albedo       float64 // outside [0,1] falls back to DefaultAlbedo
}

// HourFrame is emitted to the optional callback after each simulated hour.
type HourFrame struct {
	HOY         int     `json:"hoy"`
	Month       int     `json:"month"`
	ACKWh       float64 `json:"ac_kwh"`
	POAKWhM2    float64 `json:"poa_kwh_m2"`
	ModuleTempC float64 `json:"module_temp_c"`
	CellTempC   float64 `json:"cell_temp_c"`
}

// Callback receives simulation events.
type Callback interface {
	OnHour(frame HourFrame)
	OnComplete(res *Result)
}

// Engine runs annual simulations against an injected physics model. It
// carries no state between runs.
type Engine struct {
	physics  pvwatts.Model
	callback Callback // nil when nobody listens
}

func New(physics pvwatts.Model) *Engine {
	return &Engine{physics: physics}
}

// SetCallback registers a progress listener. Pass nil to detach.
func (e *Engine) SetCallback(cb Callback) {
	e.callback = cb
}

// Run simulates every hour of the year in calendar order. Any physics
// error is fatal to the whole run; no partial result is returned.
func (e *Engine) Run(p Params, data *weather.Aligned) (*Result, error) {
	if err := p.Location.Validate(); err != nil {
		return nil, err
	}
	if err := checkLengths(data); err != nil {
		return nil, err
	}
	albedo := p.Albedo
	if albedo < 0 || albedo > 1 {
		albedo = DefaultAlbedo
	}

	res := newResult()
	loc := p.Location

	for i := 0; i < model.HoursPerYear; i++ {
		ch := data.Calendar[i]

		sun, err := e.physics.SunPosition(loc.Latitude, loc.Longitude, loc.TimeZone,
			ch.Year, ch.Month, ch.Day, float64(ch.Hour-1))
		if err != nil {
			return nil, fmt.Errorf("sun position at hour %d: %w", ch.HOY, err)
		}

		poa, err := e.physics.POAIrradiance(sun, p.Angles.TiltDeg, p.Angles.AzimuthDeg,
			data.DNI[i], data.DHI[i], albedo)
		if err != nil {
			return nil, fmt.Errorf("plane-of-array irradiance at hour %d: %w", ch.HOY, err)
		}

		moduleC, cellC, acKW, err := e.physics.Power(p.NameplateKW, p.DerateFactor, poa,
			p.ModuleType, data.DryBulb[i], data.WindSpeed[i], data.DNI[i], data.DHI[i])
		if err != nil {
			return nil, fmt.Errorf("power model at hour %d: %w", ch.HOY, err)
		}

		// Irradiance arrives in Wh/m2 and is reported in kWh/m2.
		totalKWh := poa.Total / 1000
		res.ACEnergyKWh = append(res.ACEnergyKWh, acKW)
		res.BeamKWhM2 = append(res.BeamKWhM2, poa.Beam/1000)
		res.DiffuseKWhM2 = append(res.DiffuseKWhM2, poa.SkyDiffuse/1000)
		res.ReflectedKWhM2 = append(res.ReflectedKWhM2, poa.GroundReflected/1000)
		res.TotalKWhM2 = append(res.TotalKWhM2, totalKWh)
		res.ModuleTempC = append(res.ModuleTempC, moduleC)
		res.CellTempC = append(res.CellTempC, cellC)

		m := model.MonthOfHOY(ch.HOY)
		res.MonthlyPOAKWhM2[m-1] += totalKWh
		res.MonthlyACKWh[m-1] += acKW

		if e.callback != nil {
			e.callback.OnHour(HourFrame{
				HOY:         ch.HOY,
				Month:       m,
				ACKWh:       acKW,
				POAKWhM2:    totalKWh,
				ModuleTempC: moduleC,
				CellTempC:   cellC,
			})
		}
	}

	res.aggregate()
	if e.callback != nil {
		e.callback.OnComplete(res)
	}
	return res, nil
}

func checkLengths(data *weather.Aligned) error {
	series := []struct {
		name string
		n    int
	}{
		{"dryBulbTemperature", len(data.DryBulb)},
		{"windSpeed", len(data.WindSpeed)},
		{"directNormalIrradiance", len(data.DNI)},
		{"diffuseHorizontalIrradiance", len(data.DHI)},
		{"calendar", len(data.Calendar)},
	}
	for _, s := range series {
		if s.n != model.HoursPerYear {
			return fmt.Errorf("aligned series %q has %d entries, want %d", s.name, s.n, model.HoursPerYear)
		}
	}
	return nil
}
