package simulator

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"pv_simulator/internal/model"
)

// Result holds the outputs of one annual run. It is created empty at the
// start of the hourly loop, populated incrementally, and never mutated
// after the loop completes.
type Result struct {
	// Per-hour series, all length 8760.
	ACEnergyKWh    []float64
	BeamKWhM2      []float64
	DiffuseKWhM2   []float64
	ReflectedKWhM2 []float64
	TotalKWhM2     []float64
	ModuleTempC    []float64
	CellTempC      []float64

	// Monthly and annual aggregates.
	MonthlyACKWh    [12]float64
	AnnualACKWh     float64
	MonthlyPOAKWhM2 [12]float64
	AnnualPOAKWhM2  float64

	// Average daily POA irradiance, kWh/m2/day.
	AvgDailyPOAKWhM2     [12]float64
	AvgDailyPOAKWhM2Year float64
}

func newResult() *Result {
	return &Result{
		ACEnergyKWh:    make([]float64, 0, model.HoursPerYear),
		BeamKWhM2:      make([]float64, 0, model.HoursPerYear),
		DiffuseKWhM2:   make([]float64, 0, model.HoursPerYear),
		ReflectedKWhM2: make([]float64, 0, model.HoursPerYear),
		TotalKWhM2:     make([]float64, 0, model.HoursPerYear),
		ModuleTempC:    make([]float64, 0, model.HoursPerYear),
		CellTempC:      make([]float64, 0, model.HoursPerYear),
	}
}

// aggregate derives the annual totals and average daily radiation from
// the monthly sums accumulated during the loop.
func (r *Result) aggregate() {
	r.AnnualPOAKWhM2 = floats.Sum(r.MonthlyPOAKWhM2[:])
	r.AnnualACKWh = floats.Sum(r.MonthlyACKWh[:])

	for m := 0; m < 12; m++ {
		r.AvgDailyPOAKWhM2[m] = r.MonthlyPOAKWhM2[m] / float64(model.DaysInMonth[m])
	}
	r.AvgDailyPOAKWhM2Year = stat.Mean(r.AvgDailyPOAKWhM2[:], nil)
}
