package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/df07/go-mirror-raytracer/pkg/background"
	"github.com/df07/go-mirror-raytracer/pkg/config"
	"github.com/df07/go-mirror-raytracer/pkg/core"
	"github.com/df07/go-mirror-raytracer/pkg/renderer"
	"github.com/df07/go-mirror-raytracer/pkg/scene"
)

// Limits for web render requests
const (
	DefaultTileSize = 64
	MaxWebDimension = 4096
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Width    int
	Height   int
	Samples  int
	Depth    int
	Seed     float64
	TileSize int
	Order    renderer.Order
	Workers  int
	Scene    scene.Options
}

// StartEvent is sent once before the first tile
type StartEvent struct {
	RenderID   string `json:"renderId"`
	Scene      string `json:"scene"`
	Spheres    int    `json:"spheres"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	TotalTiles int    `json:"totalTiles"`
	Workers    int    `json:"workers"`
}

// TileEvent carries one finished tile. Pixels is raw row-major RGB, which
// the JSON encoder writes as base64.
type TileEvent struct {
	RenderID   string `json:"renderId"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	TileNumber int    `json:"tileNumber"` // 1-based, in emission order
	TotalTiles int    `json:"totalTiles"`
	Pixels     []byte `json:"pixels"`
}

// CompleteEvent is sent once after the last tile
type CompleteEvent struct {
	RenderID       string  `json:"renderId"`
	TotalTiles     int     `json:"totalTiles"`
	TotalPixels    int     `json:"totalPixels"`
	TotalSamples   int     `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
	Workers        int     `json:"workers"`
	ElapsedMs      int64   `json:"elapsedMs"`
}

// ErrorEvent reports a failed request or render
type ErrorEvent struct {
	Message string `json:"message"`
}

// SSEEvent represents a unified SSE event for single-writer output
type SSEEvent struct {
	Type string // "start", "console", "tile", "complete", "error"
	Data string // JSON-encoded data
}

// handleRender renders a preset and streams tiles to the client via SSE as
// they finish. A client disconnect cancels the render.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	// Set SSE headers
	s.setSSEHeaders(w)

	ctx := r.Context()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.writeSSEEvent(w, "error", s.encode(ErrorEvent{Message: fmt.Sprintf("Invalid request: %v", err)}))
		return
	}

	// The render goroutine owns the channel and closes it when done; this
	// goroutine is the only writer of w
	events := make(chan SSEEvent, 100)
	go s.runRender(ctx, req, uuid.NewString(), events)
	s.writeSSEEvents(w, ctx, events)
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// writeSSEEvents writes events until the channel closes or the client leaves
func (s *Server) writeSSEEvents(w http.ResponseWriter, ctx context.Context, events <-chan SSEEvent) {
	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := s.writeSSEEvent(w, event.Type, event.Data); err != nil {
				// Client disconnected during write
				return
			}
		case <-ctx.Done():
			// Client disconnected
			return
		}
	}
}

// writeSSEEvent writes a single event and flushes it
func (s *Server) writeSSEEvent(w http.ResponseWriter, eventType, data string) error {
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", eventType, data); err != nil {
		return err
	}
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
	return nil
}

// encode marshals an event payload. Payload types are plain structs, so a
// failure here is a programming error and is only logged.
func (s *Server) encode(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Errorf("Error marshaling event: %v", err)
		return "{}"
	}
	return string(data)
}

// emit queues an event, giving up when the client is gone
func (s *Server) emit(ctx context.Context, events chan<- SSEEvent, eventType string, v any) {
	select {
	case events <- SSEEvent{Type: eventType, Data: s.encode(v)}:
	case <-ctx.Done():
	}
}

// runRender renders req and turns the results into events. It closes events
// when nothing more will be sent.
func (s *Server) runRender(ctx context.Context, req *RenderRequest, renderID string, events chan SSEEvent) {
	defer close(events)

	consoleChan := make(chan ConsoleMessage, 50)
	var forwarding sync.WaitGroup
	forwarding.Add(1)
	go func() {
		defer forwarding.Done()
		s.streamConsoleMessages(ctx, consoleChan, events)
	}()
	defer forwarding.Wait()
	defer close(consoleChan)

	webLogger := NewWebLogger(renderID, consoleChan, s.logger)
	sc := scene.NewPreset(req.Scene)
	pr := renderer.NewProgressiveRaytracer(sc, req.Width, req.Height, req.progressiveConfig(), webLogger)

	s.emit(ctx, events, "start", StartEvent{
		RenderID:   renderID,
		Scene:      sc.Name,
		Spheres:    sc.GetPrimitiveCount(),
		Width:      req.Width,
		Height:     req.Height,
		TotalTiles: pr.Grid().Len(),
		Workers:    pr.GetNumWorkers(),
	})

	startTime := time.Now()
	complete := func(stats renderer.RenderStats) {
		s.emit(ctx, events, "complete", CompleteEvent{
			RenderID:       renderID,
			TotalTiles:     stats.TotalTiles,
			TotalPixels:    stats.TotalPixels,
			TotalSamples:   stats.TotalSamples,
			AverageSamples: stats.AverageSamples,
			Workers:        stats.Workers,
			ElapsedMs:      time.Since(startTime).Milliseconds(),
		})
	}
	sink := renderer.SinkFuncs{
		OnTile: func(update renderer.TileUpdate) {
			s.emit(ctx, events, "tile", TileEvent{
				RenderID:   renderID,
				X:          update.X,
				Y:          update.Y,
				Width:      update.Width,
				Height:     update.Height,
				TileNumber: update.TileNumber,
				TotalTiles: update.TotalTiles,
				Pixels:     update.Pixels,
			})
		},
		OnComplete: complete,
	}

	var (
		fb  *renderer.Framebuffer
		err error
	)
	if req.Workers == 1 {
		// Configured tile order with the sequence carried across tiles; not cancelable
		fb, _ = pr.RenderProgressive(sink)
	} else {
		fb, _, err = pr.RenderParallel(ctx, sink)
	}
	switch {
	case err != nil:
		s.logger.Infof("[%s] render stopped: %v", renderID, err)
		s.emit(ctx, events, "error", ErrorEvent{Message: fmt.Sprintf("Rendering failed: %v", err)})
	case fb == nil:
		// Empty image: the renderer makes no sink calls
		complete(renderer.RenderStats{})
	}
}

// streamConsoleMessages forwards console messages as SSE events until the
// console channel closes
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan <-chan ConsoleMessage, events chan<- SSEEvent) {
	for msg := range consoleChan {
		// Skip message to avoid blocking when the writer is behind
		select {
		case events <- SSEEvent{Type: "console", Data: s.encode(msg)}:
		case <-ctx.Done():
		default:
		}
	}
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{}

	var err error
	if req.Width, err = parseIntParam(query, "width", 640, 0, MaxWebDimension); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 360, 0, MaxWebDimension); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(query, "samples", 4, 1, 1000); err != nil {
		return nil, err
	}
	if req.Depth, err = parseIntParam(query, "depth", 100, 1, 1000); err != nil {
		return nil, err
	}
	if req.Seed, err = parseFloatParam(query, "seed", core.DefaultSeed, 0, 1); err != nil {
		return nil, err
	}
	if req.TileSize, err = parseIntParam(query, "tile", DefaultTileSize, 8, 512); err != nil {
		return nil, err
	}
	if req.Workers, err = parseIntParam(query, "workers", 0, 0, 256); err != nil {
		return nil, err
	}

	req.Order = renderer.Spiral
	if order := query.Get("order"); order != "" {
		if req.Order, err = renderer.ParseOrder(order); err != nil {
			return nil, err
		}
	}

	// Unknown preset and background codes fall back to the defaults
	if req.Scene.Preset, err = parseIntParam(query, "preset", 0, 0, 255); err != nil {
		return nil, err
	}
	bg, err := parseIntParam(query, "background", int(background.Gradient), 0, 255)
	if err != nil {
		return nil, err
	}
	req.Scene.Background = background.Kind(bg)

	var colors []string
	color1, color2 := query.Get("color1"), query.Get("color2")
	switch {
	case color2 != "" && color1 == "":
		return nil, errors.New("color2 requires color1")
	case color2 != "":
		colors = []string{color1, color2}
	case color1 != "":
		colors = []string{color1}
	}
	if req.Scene.Colors, err = config.ParseColors(colors); err != nil {
		return nil, err
	}

	// Performance warning
	if req.Width*req.Height > 1920*1080 && req.Samples > 50 {
		s.logger.Warningf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}

func (req *RenderRequest) progressiveConfig() renderer.ProgressiveConfig {
	return renderer.ProgressiveConfig{
		TileSize:        req.TileSize,
		SamplesPerPixel: req.Samples,
		MaxDepth:        req.Depth,
		Seed:            req.Seed,
		Order:           req.Order,
		NumWorkers:      req.Workers,
	}
}
