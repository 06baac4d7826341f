package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"pv_simulator/internal/condition"
	"pv_simulator/internal/geometry"
	"pv_simulator/internal/ingest"
	"pv_simulator/internal/model"
	"pv_simulator/internal/pipeline"
	"pv_simulator/internal/surface"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler manages WebSocket connections and routes run requests to the
// pipeline. The weather year and auxiliary datasets are loaded once at
// startup; clients only send array parameters.
type Handler struct {
	hub      *Hub
	pipe     *pipeline.Pipeline
	bridge   *Bridge
	location model.Location
	weather  *ingest.RawWeather
	datasets []condition.Dataset

	mu      sync.Mutex
	running bool
}

func NewHandler(hub *Hub, pipe *pipeline.Pipeline, loc model.Location, weather *ingest.RawWeather, datasets []condition.Dataset) *Handler {
	bridge := NewBridge(hub)
	pipe.SetCallback(bridge)
	return &Handler{
		hub:      hub,
		pipe:     pipe,
		bridge:   bridge,
		location: loc,
		weather:  weather,
		datasets: datasets,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	client := &Client{
		hub:  h.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	h.hub.Register(client)
	go client.writePump()

	h.readPump(client)
}

func (h *Handler) readPump(c *Client) {
	defer func() {
		h.hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}

		h.handleMessage(msg)
	}
}

func (h *Handler) handleMessage(msg []byte) {
	var env Envelope
	if err := json.Unmarshal(msg, &env); err != nil {
		log.Printf("Invalid message: %v", err)
		return
	}

	switch env.Type {
	case TypeRunStart:
		var p RunStartPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			log.Printf("Invalid run:start payload: %v", err)
			return
		}
		h.startRun(p)

	default:
		log.Printf("Unknown message type: %s", env.Type)
	}
}

// startRun validates the request, restates the resolved array and kicks
// off the hourly loop in the background. One run at a time.
func (h *Handler) startRun(p RunStartPayload) {
	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		h.broadcastError("a run is already in progress")
		return
	}
	h.running = true
	h.mu.Unlock()

	req, err := h.buildRequest(p)
	if err != nil {
		h.finishRun()
		h.broadcastError(err.Error())
		return
	}

	// Dry resolution first so clients see the restated inputs before the
	// hourly frames start arriving.
	dry := req
	dry.Simulate = false
	out, err := h.pipe.Run(dry)
	if err != nil {
		h.finishRun()
		h.broadcastError(err.Error())
		return
	}
	err = h.hub.BroadcastEnvelope(TypeRunAccepted, RunAcceptedPayload{
		SurfaceArea: out.Resolved.SurfaceArea,
		ActiveArea:  out.Resolved.ActiveArea,
		NameplateKW: out.Resolved.NameplateKW,
		TiltDeg:     out.Angles.TiltDeg,
		AzimuthDeg:  out.Angles.AzimuthDeg,
		Condition:   out.Condition,
	})
	if err != nil {
		h.finishRun()
		log.Printf("Error broadcasting run:accepted: %v", err)
		return
	}

	go func() {
		defer h.finishRun()
		h.bridge.Reset()
		if _, err := h.pipe.Run(req); err != nil {
			h.broadcastError(err.Error())
		}
	}()
}

func (h *Handler) buildRequest(p RunStartPayload) (pipeline.Request, error) {
	spec, err := surface.Parse(p.Surface)
	if err != nil {
		return pipeline.Request{}, err
	}

	cfg := geometry.Config{TiltDeg: p.TiltDeg, AzimuthDeg: p.AzimuthDeg}
	if p.NorthDeg != nil {
		north, err := geometry.NorthFromDegrees(*p.NorthDeg)
		if err != nil {
			return pipeline.Request{}, err
		}
		cfg.North = &north
	}

	// Datasets only accompany a condition; a bare condition or bare
	// datasets would be rejected downstream.
	var datasets []condition.Dataset
	if p.Condition != "" {
		datasets = h.datasets
	}

	return pipeline.Request{
		Location: h.location,
		Surface:  spec,
		SurfaceParams: surface.Params{
			SurfacePercent:    knobValue(p.SurfacePercent),
			ActiveAreaPercent: knobValue(p.ActiveAreaPercent),
			ModuleEfficiency:  knobValue(p.ModuleEfficiency),
			DerateFactor:      knobValue(p.DerateFactor),
			ModuleType:        moduleTypeValue(p.ModuleType),
		},
		AngleConfig: cfg,
		Albedo:      knobValue(p.Albedo),
		Weather:     h.weather,
		Condition:   p.Condition,
		Datasets:    datasets,
		Simulate:    true,
	}, nil
}

// knobValue maps an omitted payload field to -1, the out-of-domain flag
// the resolver substitutes defaults for. A JSON zero value would land
// inside most domains and silently override the default.
func knobValue(v *float64) float64 {
	if v == nil {
		return -1
	}
	return *v
}

func moduleTypeValue(v *int) int {
	if v == nil {
		return -1
	}
	return *v
}

func (h *Handler) finishRun() {
	h.mu.Lock()
	h.running = false
	h.mu.Unlock()
}

func (h *Handler) broadcastError(errMsg string) {
	if err := h.hub.BroadcastEnvelope(TypeRunError, RunErrorPayload{Error: errMsg}); err != nil {
		log.Printf("Error broadcasting run:error: %v", err)
	}
}
