package weather

import (
	"fmt"

	"pv_simulator/internal/model"
)

// SeriesLengthError reports a raw annual series of unusable length.
type SeriesLengthError struct {
	Name string
	Len  int
}

func (e *SeriesLengthError) Error() string {
	return fmt.Sprintf("series %q has %d values; want %d, or %d with the %d-element header",
		e.Name, e.Len, model.HoursPerYear, model.RawSeriesLen, model.HeaderLen)
}

// AlignSeries normalizes one raw annual series to 8760 hourly values.
// A series of length 8767 has its 7-element EPW-import header stripped;
// a series of length 8760 passes through; anything else is fatal.
func AlignSeries(name string, values []float64) ([]float64, error) {
	switch len(values) {
	case model.HoursPerYear:
		return values, nil
	case model.RawSeriesLen:
		return values[model.HeaderLen:], nil
	default:
		return nil, &SeriesLengthError{Name: name, Len: len(values)}
	}
}

// Aligned holds the calendarized hourly weather feed. All slices have
// length exactly 8760.
type Aligned struct {
	DryBulb   []float64 // dry-bulb temperature, °C
	WindSpeed []float64 // wind speed, m/s
	DNI       []float64 // direct-normal irradiance, Wh/m2
	DHI       []float64 // diffuse-horizontal irradiance, Wh/m2
	Calendar  []model.CalendarHour
}

// Align normalizes the four weather series plus the model-year series and
// builds the calendar index from the fixed non-leap month table.
func Align(dryBulb, windSpeed, dni, dhi, modelYear []float64) (*Aligned, error) {
	ta, err := AlignSeries("dryBulbTemperature", dryBulb)
	if err != nil {
		return nil, err
	}
	ws, err := AlignSeries("windSpeed", windSpeed)
	if err != nil {
		return nil, err
	}
	dn, err := AlignSeries("directNormalIrradiance", dni)
	if err != nil {
		return nil, err
	}
	dh, err := AlignSeries("diffuseHorizontalIrradiance", dhi)
	if err != nil {
		return nil, err
	}
	years, err := AlignSeries("modelYear", modelYear)
	if err != nil {
		return nil, err
	}

	return &Aligned{
		DryBulb:   ta,
		WindSpeed: ws,
		DNI:       dn,
		DHI:       dh,
		Calendar:  buildCalendar(years),
	}, nil
}

// buildCalendar expands the month-length table into one CalendarHour per
// hour of the year. Hour-of-day runs 1-24 and day-of-month restarts at
// each month boundary.
func buildCalendar(years []float64) []model.CalendarHour {
	cal := make([]model.CalendarHour, 0, model.HoursPerYear)
	hoy := 1
	for m := 1; m <= 12; m++ {
		for d := 1; d <= model.DaysInMonth[m-1]; d++ {
			for h := 1; h <= 24; h++ {
				cal = append(cal, model.CalendarHour{
					Year:  int(years[hoy-1]),
					Month: m,
					Day:   d,
					Hour:  h,
					HOY:   hoy,
				})
				hoy++
			}
		}
	}
	return cal
}
