package pvwatts

import "fmt"

// ModuleTypeNames labels the four mounting/construction categories
// selectable as moduleType 0-3.
var ModuleTypeNames = [4]string{
	"Glass/cell/glass, Close (flush) roof mount",
	"Glass/cell/polymer sheet, Insulated back",
	"Glass/cell/polymer sheet, Open rack",
	"Glass/cell/glass, Open rack",
}

// thermalParams are the Sandia module-temperature coefficients:
// Tm = Epoa * exp(a + b*ws) + Ta, Tcell = Tm + (Epoa/1000) * deltaT.
type thermalParams struct {
	a      float64
	b      float64
	deltaT float64 // conduction temperature rise at 1000 W/m2, °C
}

var moduleThermal = [4]thermalParams{
	{a: -2.98, b: -0.0471, deltaT: 1}, // glass/cell/glass, close roof mount
	{a: -2.81, b: -0.0455, deltaT: 0}, // glass/cell/polymer, insulated back
	{a: -3.56, b: -0.0750, deltaT: 3}, // glass/cell/polymer, open rack
	{a: -3.47, b: -0.0594, deltaT: 3}, // glass/cell/glass, open rack
}

func thermalFor(moduleType int) (thermalParams, error) {
	if moduleType < 0 || moduleType >= len(moduleThermal) {
		return thermalParams{}, fmt.Errorf("module type %d outside 0-%d", moduleType, len(moduleThermal)-1)
	}
	return moduleThermal[moduleType], nil
}
