package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"pv_simulator/internal/condition"
	"pv_simulator/internal/ingest"
	"pv_simulator/internal/model"
	"pv_simulator/internal/weather"
)

// datasetFlags collects repeated -dataset Name=path.csv arguments.
type datasetFlags []string

func (d *datasetFlags) String() string { return strings.Join(*d, ",") }

func (d *datasetFlags) Set(v string) error {
	*d = append(*d, v)
	return nil
}

func main() {
	weatherPath := flag.String("weather", "", "hourly weather CSV for one year")
	conditionExpr := flag.String("condition", "", "conditional statement over datasets, e.g. \"a>10\"")
	var datasets datasetFlags
	flag.Var(&datasets, "dataset", "auxiliary hourly dataset as Name=path.csv (repeatable)")
	flag.Parse()

	if *weatherPath == "" {
		log.Fatal("-weather is required")
	}

	raw, err := loadWeather(*weatherPath)
	if err != nil {
		log.Fatal(err)
	}
	aligned, err := weather.Align(raw.DryBulb, raw.WindSpeed, raw.DNI, raw.DHI, raw.ModelYear)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println()
	fmt.Println("Weather Year Summary")
	fmt.Printf("  Source: %s\n", *weatherPath)
	fmt.Println()

	fmt.Println("Month  Mean temp (C)  Mean wind (m/s)  DNI (kWh/m2)  DHI (kWh/m2)")
	for m := 0; m < 12; m++ {
		lo, hi := model.MonthStartHOY[m], model.MonthStartHOY[m+1]
		fmt.Printf("%5d  %13.1f  %15.1f  %12.1f  %12.1f\n",
			m+1,
			stat.Mean(aligned.DryBulb[lo:hi], nil),
			stat.Mean(aligned.WindSpeed[lo:hi], nil),
			floats.Sum(aligned.DNI[lo:hi])/1000,
			floats.Sum(aligned.DHI[lo:hi])/1000,
		)
	}
	fmt.Printf("\n Year  %13.1f  %15.1f  %12.1f  %12.1f\n",
		stat.Mean(aligned.DryBulb, nil),
		stat.Mean(aligned.WindSpeed, nil),
		floats.Sum(aligned.DNI)/1000,
		floats.Sum(aligned.DHI)/1000,
	)

	if *conditionExpr == "" {
		return
	}

	// Compacted view over the hours passing the condition.
	filter, err := buildFilter(*conditionExpr, datasets)
	if err != nil {
		log.Fatal(err)
	}
	filtered, err := filter.Apply([][]float64{
		aligned.DryBulb, aligned.WindSpeed, aligned.DNI, aligned.DHI,
	}, condition.Compact)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println()
	fmt.Printf("Condition: %s\n", filter.Describe())
	fmt.Printf("  Hours passing: %d of %d\n", len(filtered[0]), model.HoursPerYear)
	fmt.Printf("  Mean temp (C): %.1f\n", stat.Mean(filtered[0], nil))
	fmt.Printf("  Mean wind (m/s): %.1f\n", stat.Mean(filtered[1], nil))
	fmt.Printf("  DNI (kWh/m2): %.1f\n", floats.Sum(filtered[2])/1000)
	fmt.Printf("  DHI (kWh/m2): %.1f\n", floats.Sum(filtered[3])/1000)
}

func loadWeather(path string) (*ingest.RawWeather, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return ingest.ParseWeatherCSV(f)
}

func buildFilter(expr string, args datasetFlags) (*condition.Filter, error) {
	datasets := make([]condition.Dataset, 0, len(args))
	for _, arg := range args {
		name, path, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("invalid -dataset %q: want Name=path.csv", arg)
		}

		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		values, err := ingest.SeriesParser{}.Parse(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}

		aligned, err := weather.AlignSeries(name, values)
		if err != nil {
			return nil, err
		}
		datasets = append(datasets, condition.Dataset{Name: name, Values: aligned})
	}
	return condition.New(expr, datasets)
}
