package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"pv_simulator/internal/condition"
	"pv_simulator/internal/geometry"
	"pv_simulator/internal/ingest"
	"pv_simulator/internal/model"
	"pv_simulator/internal/pipeline"
	"pv_simulator/internal/pvwatts"
	"pv_simulator/internal/report"
	"pv_simulator/internal/simulator"
	"pv_simulator/internal/surface"
)

// datasetFlags collects repeated -dataset Name=path.csv arguments.
type datasetFlags []string

func (d *datasetFlags) String() string { return strings.Join(*d, ",") }

func (d *datasetFlags) Set(v string) error {
	*d = append(*d, v)
	return nil
}

func main() {
	locName := flag.String("location", "", "location name")
	latitude := flag.Float64("latitude", 0, "site latitude in degrees")
	longitude := flag.Float64("longitude", 0, "site longitude in degrees")
	timeZone := flag.Float64("timezone", 0, "time zone as hours offset from UTC")
	elevation := flag.Float64("elevation", 0, "site elevation in meters")

	surfaceInput := flag.String("surface", "", "array size: area in m2 (\"100\") or nameplate rating (\"4 kw\")")
	surfacePercent := flag.Float64("surface-percent", -1, "percentage of the surface covered with modules")
	activeAreaPercent := flag.Float64("active-area-percent", -1, "percentage of module area that is active cells")
	moduleEfficiency := flag.Float64("module-efficiency", -1, "module efficiency in percent")
	moduleType := flag.Int("module-type", -1, "module mounting type, 0 to 3")
	derate := flag.Float64("derate", -1, "overall DC to AC derate factor")

	tilt := flag.Float64("tilt", 0, "surface tilt angle in degrees")
	azimuth := flag.Float64("azimuth", 0, "surface azimuth angle, clockwise from north")
	north := flag.Float64("north", 0, "north correction angle in degrees")
	albedo := flag.Float64("albedo", -1, "ground reflectance, 0 to 1")

	weatherPath := flag.String("weather", "", "hourly weather CSV for one year")
	conditionExpr := flag.String("condition", "", "conditional statement over datasets, e.g. \"a>10 and b<3\"")
	var datasets datasetFlags
	flag.Var(&datasets, "dataset", "auxiliary hourly dataset as Name=path.csv (repeatable)")

	run := flag.Bool("run", true, "run the hourly simulation; false restates inputs only")
	outPath := flag.String("out", "", "write the per-hour results to this CSV file")
	flag.Parse()

	if *surfaceInput == "" {
		log.Fatal("-surface is required")
	}
	if *weatherPath == "" {
		log.Fatal("-weather is required")
	}

	spec, err := surface.Parse(*surfaceInput)
	if err != nil {
		log.Fatal(err)
	}

	weather, err := loadWeather(*weatherPath)
	if err != nil {
		log.Fatal(err)
	}

	auxData, err := loadDatasets(datasets)
	if err != nil {
		log.Fatal(err)
	}

	groundAlbedo := *albedo
	if groundAlbedo < 0 || groundAlbedo > 1 {
		groundAlbedo = simulator.DefaultAlbedo
	}

	req := pipeline.Request{
		Location: model.Location{
			Name:      *locName,
			Latitude:  *latitude,
			Longitude: *longitude,
			TimeZone:  *timeZone,
			Elevation: *elevation,
		},
		Surface: spec,
		SurfaceParams: surface.Params{
			SurfacePercent:    *surfacePercent,
			ActiveAreaPercent: *activeAreaPercent,
			ModuleEfficiency:  *moduleEfficiency,
			DerateFactor:      *derate,
			ModuleType:        *moduleType,
		},
		AngleConfig: angleConfig(*tilt, *azimuth, *north),
		Albedo:      groundAlbedo,
		Weather:     weather,
		Condition:   *conditionExpr,
		Datasets:    auxData,
		Simulate:    *run,
	}

	out, err := pipeline.New(pvwatts.NREL{}).Run(req)
	if err != nil {
		log.Fatal(err)
	}

	reporter := report.TextReporter{W: os.Stdout}
	if err := reporter.Report(out.Report(req.Location, groundAlbedo)); err != nil {
		log.Fatal(err)
	}

	if *outPath != "" && out.Result != nil {
		if err := writeCSV(*outPath, out, req.Location, groundAlbedo); err != nil {
			log.Fatal(err)
		}
		log.Printf("Per-hour results written to %s", *outPath)
	}
}

// angleConfig turns the angle flags into optional inputs: a flag the user
// never set stays absent so the priority rules can derive the angle.
func angleConfig(tilt, azimuth, northDeg float64) geometry.Config {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	var cfg geometry.Config
	if set["tilt"] {
		cfg.TiltDeg = &tilt
	}
	if set["azimuth"] {
		cfg.AzimuthDeg = &azimuth
	}
	if set["north"] {
		n, err := geometry.NorthFromDegrees(northDeg)
		if err != nil {
			log.Fatal(err)
		}
		cfg.North = &n
	}
	return cfg
}

func loadWeather(path string) (*ingest.RawWeather, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return ingest.ParseWeatherCSV(f)
}

func loadDatasets(args datasetFlags) ([]condition.Dataset, error) {
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

		datasets = append(datasets, condition.Dataset{Name: name, Values: values})
	}
	return datasets, nil
}

func writeCSV(path string, out *pipeline.Outcome, loc model.Location, albedo float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	return report.CSVReporter{W: f}.Report(out.Report(loc, albedo))
}
