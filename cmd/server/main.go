package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"pv_simulator/internal/condition"
	"pv_simulator/internal/ingest"
	"pv_simulator/internal/model"
	"pv_simulator/internal/pipeline"
	"pv_simulator/internal/pvwatts"
	"pv_simulator/internal/ws"
)

func main() {
	weatherPath := flag.String("weather", "input/weather.csv", "hourly weather CSV for one year")
	datasetDir := flag.String("dataset-dir", "", "directory of single-column hourly CSVs for conditional filtering")
	frontendDir := flag.String("frontend-dir", "frontend/build", "directory containing frontend build")
	addr := flag.String("addr", ":8080", "listen address")

	locName := flag.String("location", "", "location name")
	latitude := flag.Float64("latitude", 0, "site latitude in degrees")
	longitude := flag.Float64("longitude", 0, "site longitude in degrees")
	timeZone := flag.Float64("timezone", 0, "time zone as hours offset from UTC")
	elevation := flag.Float64("elevation", 0, "site elevation in meters")
	flag.Parse()

	loc := model.Location{
		Name:      *locName,
		Latitude:  *latitude,
		Longitude: *longitude,
		TimeZone:  *timeZone,
		Elevation: *elevation,
	}
	if err := loc.Validate(); err != nil {
		log.Fatalf("Invalid location: %v", err)
	}

	weather, err := loadWeather(*weatherPath)
	if err != nil {
		log.Fatalf("Failed to load weather data: %v", err)
	}
	log.Printf("Weather loaded from %s (%d hours)", *weatherPath, len(weather.DryBulb))

	var datasets []condition.Dataset
	if *datasetDir != "" {
		datasets, err = loadDatasets(*datasetDir)
		if err != nil {
			log.Fatalf("Failed to load datasets: %v", err)
		}
		log.Printf("Loaded %d auxiliary datasets from %s", len(datasets), *datasetDir)
	}

	hub := ws.NewHub()
	pipe := pipeline.New(pvwatts.NREL{})
	handler := ws.NewHandler(hub, pipe, loc, weather, datasets)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})
	mux.Handle("/ws", handler)

	if _, err := os.Stat(*frontendDir); err == nil {
		log.Printf("Serving frontend from %s", *frontendDir)
		mux.Handle("/", http.FileServer(http.Dir(*frontendDir)))
	}

	log.Printf("Starting server on %s", *addr)
	if err := http.ListenAndServe(*addr, mux); err != nil {
		log.Fatal(err)
	}
}

func loadWeather(path string) (*ingest.RawWeather, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return ingest.ParseWeatherCSV(f)
}

// loadDatasets reads every CSV in dir as one auxiliary hourly series,
// named after its file.
func loadDatasets(dir string) ([]condition.Dataset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading dataset directory: %w", err)
	}

	var datasets []condition.Dataset
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		values, err := ingest.SeriesParser{}.Parse(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}

		datasets = append(datasets, condition.Dataset{
			Name:   strings.TrimSuffix(entry.Name(), ".csv"),
			Values: values,
		})
		log.Printf("  Loaded %d values from %s", len(values), entry.Name())
	}
	return datasets, nil
}
