package report

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"pv_simulator/internal/model"
)

// hourRow is one hour of output in the dump file.
type hourRow struct {
	HOY          int     `csv:"hoy"`
	Month        int     `csv:"month"`
	ACKWh        float64 `csv:"ac_kwh"`
	BeamKWhM2    float64 `csv:"beam_kwh_m2"`
	DiffuseKWhM2 float64 `csv:"diffuse_kwh_m2"`
	ReflKWhM2    float64 `csv:"reflected_kwh_m2"`
	TotalKWhM2   float64 `csv:"total_kwh_m2"`
	ModuleTempC  float64 `csv:"module_temp_c"`
	CellTempC    float64 `csv:"cell_temp_c"`
}

// CSVReporter dumps the per-hour series as CSV, one row per hour of the
// year. The input restatement is not included.
type CSVReporter struct {
	W io.Writer
}

var _ Reporter = CSVReporter{}

func (r CSVReporter) Report(run Run) error {
	res := run.Result
	if res == nil {
		return fmt.Errorf("csv report: run has no result")
	}

	rows := make([]hourRow, len(res.ACEnergyKWh))
	for i := range rows {
		hoy := i + 1
		rows[i] = hourRow{
			HOY:          hoy,
			Month:        model.MonthOfHOY(hoy),
			ACKWh:        res.ACEnergyKWh[i],
			BeamKWhM2:    res.BeamKWhM2[i],
			DiffuseKWhM2: res.DiffuseKWhM2[i],
			ReflKWhM2:    res.ReflectedKWhM2[i],
			TotalKWhM2:   res.TotalKWhM2[i],
			ModuleTempC:  res.ModuleTempC[i],
			CellTempC:    res.CellTempC[i],
		}
	}
	if err := gocsv.Marshal(rows, r.W); err != nil {
		return fmt.Errorf("writing csv report: %w", err)
	}
	return nil
}
