package ws

import (
	"log"

	"pv_simulator/internal/simulator"
)

// Bridge implements simulator.Callback and broadcasts sampled progress
// to the WebSocket hub. Per-hour frames are folded into one message per
// simulated day to keep the stream small.
type Bridge struct {
	hub *Hub

	hoursInDay int
	day        int
	month      int
	cumAC      float64
	cumPOA     float64
}

func NewBridge(hub *Hub) *Bridge {
	return &Bridge{hub: hub}
}

// Reset clears the accumulators before a new run.
func (b *Bridge) Reset() {
	b.hoursInDay = 0
	b.day = 0
	b.month = 0
	b.cumAC = 0
	b.cumPOA = 0
}

func (b *Bridge) OnHour(frame simulator.HourFrame) {
	b.cumAC += frame.ACKWh
	b.cumPOA += frame.POAKWhM2
	b.month = frame.Month
	b.hoursInDay++
	if b.hoursInDay < 24 {
		return
	}
	b.hoursInDay = 0
	b.day++

	err := b.hub.BroadcastEnvelope(TypeRunProgress, RunProgressPayload{
		Day:              b.day,
		Month:            b.month,
		CumulativeACKWh:  b.cumAC,
		CumulativePOAKWh: b.cumPOA,
	})
	if err != nil {
		log.Printf("Error broadcasting run progress: %v", err)
	}
}

func (b *Bridge) OnComplete(res *simulator.Result) {
	if err := b.hub.BroadcastEnvelope(TypeRunComplete, RunCompleteFromResult(res)); err != nil {
		log.Printf("Error broadcasting run summary: %v", err)
	}
}
