package model

import "fmt"

// Location identifies the site of the PV array.
type Location struct {
	Name      string
	Latitude  float64 // degrees, [-90, 90]
	Longitude float64 // degrees, east positive
	TimeZone  float64 // hours offset from UTC
	Elevation float64 // meters above sea level
}

// Validate checks the latitude domain. The latitude sign also selects the
// default equator-facing azimuth, so an out-of-range value is fatal.
func (l Location) Validate() error {
	if l.Latitude < -90 || l.Latitude > 90 {
		return fmt.Errorf("location %q: latitude %v outside [-90, 90]", l.Name, l.Latitude)
	}
	return nil
}
