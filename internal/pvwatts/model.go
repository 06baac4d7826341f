// Package pvwatts defines the physics collaborator driven hour by hour
// by the simulation engine, and provides a default fixed-tilt
// crystalline-silicon model in the NREL PVWatts v1 form.
package pvwatts

// SunPosition is the solar geometry for one hour. Azimuth is clockwise
// from true north; zenith and altitude are complementary.
type SunPosition struct {
	ZenithDeg   float64
	AzimuthDeg  float64
	AltitudeDeg float64
}

// POA is the plane-of-array irradiance decomposition for one hour, in
// Wh/m2, plus the angle of incidence between the sun vector and the
// array normal.
type POA struct {
	Total           float64
	Beam            float64
	SkyDiffuse      float64
	GroundReflected float64
	AOIDeg          float64
}

// Model is the physics function set consumed by the simulation engine.
// Implementations are synchronous pure functions; any error aborts the
// whole run.
type Model interface {
	// SunPosition computes the solar geometry for the given civil time.
	// hour is the hour of day in [0, 24).
	SunPosition(latitude, longitude, timeZone float64, year, month, day int, hour float64) (SunPosition, error)

	// POAIrradiance decomposes DNI/DHI (Wh/m2) onto the array plane.
	POAIrradiance(sun SunPosition, tiltDeg, azimuthDeg, dni, dhi, albedo float64) (POA, error)

	// Power runs the thermal and electrical model for one hour,
	// returning module temperature, cell temperature (°C) and AC power
	// (kW). dni and dhi are the raw horizontal-reference values.
	Power(nameplateKW, derateFactor float64, poa POA, moduleType int, ambientC, windMS, dni, dhi float64) (moduleC, cellC, acKW float64, err error)
}
