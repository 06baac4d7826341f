// Package ingest parses hourly CSV inputs: the annual weather file and
// optional auxiliary datasets for conditional filtering.
package ingest

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

// weatherRecord is one row of the annual weather CSV.
type weatherRecord struct {
	Year     int     `csv:"year"`
	DryBulbC float64 `csv:"dry_bulb_c"`
	WindMS   float64 `csv:"wind_speed_ms"`
	DNIWhM2  float64 `csv:"dni_wh_m2"`
	DHIWhM2  float64 `csv:"dhi_wh_m2"`
}

// RawWeather holds the unaligned weather columns in row order.
type RawWeather struct {
	DryBulb   []float64
	WindSpeed []float64
	DNI       []float64
	DHI       []float64
	ModelYear []float64
}

// ParseWeatherCSV reads an hourly weather CSV with columns year,
// dry_bulb_c, wind_speed_ms, dni_wh_m2, dhi_wh_m2.
func ParseWeatherCSV(r io.Reader) (*RawWeather, error) {
	var rows []weatherRecord
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("parsing weather csv: %w", err)
	}

	raw := &RawWeather{
		DryBulb:   make([]float64, len(rows)),
		WindSpeed: make([]float64, len(rows)),
		DNI:       make([]float64, len(rows)),
		DHI:       make([]float64, len(rows)),
		ModelYear: make([]float64, len(rows)),
	}
	for i, row := range rows {
		raw.DryBulb[i] = row.DryBulbC
		raw.WindSpeed[i] = row.WindMS
		raw.DNI[i] = row.DNIWhM2
		raw.DHI[i] = row.DHIWhM2
		raw.ModelYear[i] = float64(row.Year)
	}
	return raw, nil
}

// seriesRecord is one row of a single-column auxiliary dataset CSV.
type seriesRecord struct {
	Value float64 `csv:"value"`
}

// SeriesParser parses a single-column hourly CSV with a "value" header.
type SeriesParser struct{}

var _ Parser = SeriesParser{}

func (SeriesParser) Parse(r io.Reader) ([]float64, error) {
	var rows []seriesRecord
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("parsing series csv: %w", err)
	}
	values := make([]float64, len(rows))
	for i, row := range rows {
		values[i] = row.Value
	}
	return values, nil
}
