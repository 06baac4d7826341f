package ws

import (
	"encoding/json"

	"pv_simulator/internal/simulator"
)

// Envelope wraps all WebSocket messages with a type discriminator.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Message type constants
const (
	// Client -> Server
	TypeRunStart = "run:start"

	// Server -> Client
	TypeRunAccepted = "run:accepted"
	TypeRunProgress = "run:progress"
	TypeRunComplete = "run:complete"
	TypeRunError    = "run:error"
)

// Client -> Server messages

// RunStartPayload carries the run parameters. The weather year is loaded
// server side; only the array description travels over the wire. Every
// optional knob is a pointer so an omitted field stays distinguishable
// from an explicit zero and falls back to its documented default.
type RunStartPayload struct {
	Surface           string   `json:"surface"`
	SurfacePercent    *float64 `json:"surface_percent,omitempty"`
	ActiveAreaPercent *float64 `json:"active_area_percent,omitempty"`
	ModuleEfficiency  *float64 `json:"module_efficiency,omitempty"`
	ModuleType        *int     `json:"module_type,omitempty"`
	DerateFactor      *float64 `json:"derate_factor,omitempty"`
	TiltDeg           *float64 `json:"tilt_deg,omitempty"`
	AzimuthDeg        *float64 `json:"azimuth_deg,omitempty"`
	NorthDeg          *float64 `json:"north_deg,omitempty"`
	Albedo            *float64 `json:"albedo,omitempty"`
	Condition         string   `json:"condition,omitempty"`
}

// Server -> Client messages

// RunAcceptedPayload restates the resolved array before the hourly loop
// starts.
type RunAcceptedPayload struct {
	SurfaceArea float64 `json:"surface_area_m2"`
	ActiveArea  float64 `json:"active_area_m2"`
	NameplateKW float64 `json:"nameplate_kw"`
	TiltDeg     float64 `json:"tilt_deg"`
	AzimuthDeg  float64 `json:"azimuth_deg"`
	Condition   string  `json:"condition"`
}

// RunProgressPayload is one sampled frame of a running simulation.
type RunProgressPayload struct {
	Day              int     `json:"day"`
	Month            int     `json:"month"`
	CumulativeACKWh  float64 `json:"cumulative_ac_kwh"`
	CumulativePOAKWh float64 `json:"cumulative_poa_kwh_m2"`
}

// RunCompletePayload is the final summary of a run.
type RunCompletePayload struct {
	MonthlyACKWh     [12]float64 `json:"monthly_ac_kwh"`
	AnnualACKWh      float64     `json:"annual_ac_kwh"`
	MonthlyPOAKWhM2  [12]float64 `json:"monthly_poa_kwh_m2"`
	AnnualPOAKWhM2   float64     `json:"annual_poa_kwh_m2"`
	AvgDailyPOAKWhM2 float64     `json:"avg_daily_poa_kwh_m2"`
}

type RunErrorPayload struct {
	Error string `json:"error"`
}

func NewEnvelope(msgType string, payload any) ([]byte, error) {
	var raw json.RawMessage
	if payload != nil {
		var err error
		raw, err = json.Marshal(payload)
		if err != nil {
			return nil, err
		}
	}
	return json.Marshal(Envelope{Type: msgType, Payload: raw})
}

// RunCompleteFromResult projects a finished result onto the wire payload.
func RunCompleteFromResult(res *simulator.Result) RunCompletePayload {
	return RunCompletePayload{
		MonthlyACKWh:     res.MonthlyACKWh,
		AnnualACKWh:      res.AnnualACKWh,
		MonthlyPOAKWhM2:  res.MonthlyPOAKWhM2,
		AnnualPOAKWhM2:   res.AnnualPOAKWhM2,
		AvgDailyPOAKWhM2: res.AvgDailyPOAKWhM2Year,
	}
}
