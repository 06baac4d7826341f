package pvwatts

import "math"

const degToRad = math.Pi / 180

// NREL is the default physics model: NREL sun position, isotropic-sky
// POA decomposition and the PVWatts v1 power/thermal chain with Sandia
// module-temperature coefficients.
type NREL struct{}

var _ Model = NREL{}

// gammaPdc is the crystalline-silicon maximum-power temperature
// coefficient, 1/°C.
const gammaPdc = -0.005

// cellTempRef is the STC cell temperature, °C.
const cellTempRef = 25.0

var cumDaysBeforeMonth = [12]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

// SunPosition computes solar zenith, azimuth and altitude from the
// declination, equation of time and hour angle. The hour is shifted to
// the middle of the interval so each hourly irradiance value is paired
// with its mean sun position.
func (NREL) SunPosition(latitude, longitude, timeZone float64, year, month, day int, hour float64) (SunPosition, error) {
	n := float64(cumDaysBeforeMonth[month-1] + day)

	// Declination (Cooper) and equation of time, degrees and minutes.
	decl := 23.45 * math.Sin(2*math.Pi*(284+n)/365) * degToRad
	b := 2 * math.Pi * (n - 81) / 364
	eot := 9.87*math.Sin(2*b) - 7.53*math.Cos(b) - 1.5*math.Sin(b)

	// Local solar time at the middle of the hour.
	solarTime := hour + 0.5 + (4*(longitude-15*timeZone)+eot)/60
	hourAngle := 15 * (solarTime - 12) * degToRad

	lat := latitude * degToRad
	sinAlt := math.Sin(lat)*math.Sin(decl) + math.Cos(lat)*math.Cos(decl)*math.Cos(hourAngle)
	altitude := math.Asin(clamp(sinAlt, -1, 1))

	// Azimuth clockwise from true north.
	cosAlt := math.Cos(altitude)
	var azimuth float64
	if cosAlt > 1e-9 {
		sinAz := -math.Cos(decl) * math.Sin(hourAngle) / cosAlt
		cosAz := (math.Sin(decl)*math.Cos(lat) - math.Cos(decl)*math.Sin(lat)*math.Cos(hourAngle)) / cosAlt
		// This sign convention yields the angle clockwise from true
		// north directly: east of north is positive sinAz.
		azimuth = math.Atan2(sinAz, cosAz) / degToRad
		azimuth = math.Mod(azimuth+360, 360)
	}

	altDeg := altitude / degToRad
	return SunPosition{
		ZenithDeg:   90 - altDeg,
		AzimuthDeg:  azimuth,
		AltitudeDeg: altDeg,
	}, nil
}

// POAIrradiance decomposes irradiance onto the array plane: beam by the
// angle of incidence, sky diffuse with an isotropic sky, and ground
// reflection from global horizontal via the albedo.
func (NREL) POAIrradiance(sun SunPosition, tiltDeg, azimuthDeg, dni, dhi, albedo float64) (POA, error) {
	zen := sun.ZenithDeg * degToRad
	tilt := tiltDeg * degToRad

	cosAOI := math.Cos(zen)*math.Cos(tilt) +
		math.Sin(zen)*math.Sin(tilt)*math.Cos((sun.AzimuthDeg-azimuthDeg)*degToRad)
	cosAOI = clamp(cosAOI, -1, 1)
	aoi := math.Acos(cosAOI) / degToRad

	var beam float64
	if cosAOI > 0 && sun.ZenithDeg < 90 {
		beam = dni * cosAOI
	}

	skyDiffuse := dhi * (1 + math.Cos(tilt)) / 2

	ghi := dni*math.Max(math.Cos(zen), 0) + dhi
	groundReflected := ghi * albedo * (1 - math.Cos(tilt)) / 2

	return POA{
		Total:           beam + skyDiffuse + groundReflected,
		Beam:            beam,
		SkyDiffuse:      skyDiffuse,
		GroundReflected: groundReflected,
		AOIDeg:          aoi,
	}, nil
}

// Power runs the Sandia module-temperature model and the PVWatts DC/AC
// chain. With no plane-of-array irradiance the module sits at ambient
// temperature and produces nothing.
func (NREL) Power(nameplateKW, derateFactor float64, poa POA, moduleType int, ambientC, windMS, dni, dhi float64) (float64, float64, float64, error) {
	tp, err := thermalFor(moduleType)
	if err != nil {
		return 0, 0, 0, err
	}

	if poa.Total <= 0 {
		return ambientC, ambientC, 0, nil
	}

	moduleC := poa.Total*math.Exp(tp.a+tp.b*windMS) + ambientC
	cellC := moduleC + (poa.Total/1000)*tp.deltaT

	dcKW := (poa.Total / 1000) * nameplateKW * (1 + gammaPdc*(cellC-cellTempRef))
	acKW := dcKW * derateFactor
	if acKW < 0 {
		acKW = 0
	}
	return moduleC, cellC, acKW, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
