package surface

// Params are the percentage/efficiency knobs applied during resolution.
// Values outside their domain (including the -1 "not supplied" flag
// default) fall back to the documented defaults.
type Params struct {
	SurfacePercent    float64 // share of the surface covered by modules, [0,100]
	ActiveAreaPercent float64 // module area minus framing and cell gaps, [0,100]
	ModuleEfficiency  float64 // percent, [0,100]
	DerateFactor      float64 // DC-to-AC losses, [0,1]
	ModuleType        int     // mounting/construction category, 0-3
	// UnitAreaConversion converts the host model's area units to m2.
	// 1 when areas are already metric.
	UnitAreaConversion float64
}

// Defaults used when a parameter is absent or out of its domain.
const (
	DefaultSurfacePercent    = 100.0
	DefaultActiveAreaPercent = 90.0
	DefaultModuleEfficiency  = 15.0 // crystalline silicon
	DefaultDerateFactor      = 0.85
	DefaultModuleType        = 0
)

func (p Params) normalized() Params {
	if p.SurfacePercent < 0 || p.SurfacePercent > 100 {
		p.SurfacePercent = DefaultSurfacePercent
	}
	if p.ActiveAreaPercent < 0 || p.ActiveAreaPercent > 100 {
		p.ActiveAreaPercent = DefaultActiveAreaPercent
	}
	if p.ModuleEfficiency < 0 || p.ModuleEfficiency > 100 {
		p.ModuleEfficiency = DefaultModuleEfficiency
	}
	if p.DerateFactor < 0 || p.DerateFactor > 1 {
		p.DerateFactor = DefaultDerateFactor
	}
	if p.ModuleType < 0 || p.ModuleType > 3 {
		p.ModuleType = DefaultModuleType
	}
	if p.UnitAreaConversion <= 0 {
		p.UnitAreaConversion = 1
	}
	return p
}

// Resolved carries the normalized surface quantities. All values are
// non-negative; Params holds the validated/defaulted inputs.
type Resolved struct {
	SurfaceArea float64 // m2
	ActiveArea  float64 // m2
	NameplateKW float64 // DC rating at standard test conditions
	Params      Params
}

// Resolve derives area and nameplate power from the surface variant.
// Pure function of its inputs.
func Resolve(spec Spec, params Params) (Resolved, error) {
	p := params.normalized()

	switch spec.kind {
	case KindGeometry:
		if n := spec.geom.FaceCount(); n > 1 {
			return Resolved{}, &NotASurfaceError{Faces: n}
		}
		return fromArea(spec.geom.FaceArea(), p), nil
	case KindArea:
		return fromArea(spec.area, p), nil
	default: // KindPowerRating
		nameplate := spec.powerKW * (p.SurfacePercent / 100)
		active := nameplate / (p.ModuleEfficiency / 100)
		return Resolved{
			SurfaceArea: active / (p.ActiveAreaPercent / 100),
			ActiveArea:  active,
			NameplateKW: nameplate,
			Params:      p,
		}, nil
	}
}

func fromArea(faceArea float64, p Params) Resolved {
	srfArea := faceArea * (p.SurfacePercent / 100) * p.UnitAreaConversion
	active := srfArea * (p.ActiveAreaPercent / 100)
	return Resolved{
		SurfaceArea: srfArea,
		ActiveArea:  active,
		NameplateKW: active * (p.ModuleEfficiency / 100),
		Params:      p,
	}
}
