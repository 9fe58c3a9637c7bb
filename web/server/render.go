package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/output"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "row", "image", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// RowUpdate carries one finished image row
type RowUpdate struct {
	RenderID string `json:"renderId"`
	Row      int    `json:"row"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Pixels   []byte `json:"pixels"` // 8-bit RGB triplets, base64 in JSON
}

// ImageUpdate carries the finished image
type ImageUpdate struct {
	RenderID  string `json:"renderId"`
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Stats     Stats  `json:"stats"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// Stats represents render statistics
type Stats struct {
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	Workers          int     `json:"workers"`
	SamplesPerWorker int     `json:"samplesPerWorker"`
	TotalSamples     int     `json:"totalSamples"`
	MeanLuminance    float64 `json:"meanLuminance"`
	LuminanceStdDev  float64 `json:"luminanceStdDev"`
}

// handleRender renders a scene and streams row progress and the final image via SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	renderID := uuid.New().String()
	w.Header().Set("X-Render-Id", renderID)
	s.setSSEHeaders(w)

	ctx := r.Context()

	// Single writer goroutine; the handler waits for it before returning
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		s.writeSSEEvents(ctx, w, sseEventChan)
		close(writerDone)
	}()
	defer func() {
		close(sseEventChan)
		<-writerDone
	}()

	req, err := parseRenderRequest(r)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	consoleChan := make(chan ConsoleMessage, 50)
	consoleDone := make(chan struct{})
	go func() {
		s.streamConsoleMessages(ctx, consoleChan, sseEventChan)
		close(consoleDone)
	}()
	webLogger := NewWebLogger(renderID, consoleChan)

	startTime := time.Now()
	imageData, stats, err := s.renderScene(ctx, req, renderID, webLogger, sseEventChan)

	close(consoleChan)
	<-consoleDone

	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Render error: %v", err))
		return
	}

	update := ImageUpdate{
		RenderID:  renderID,
		ImageData: imageData,
		Stats: Stats{
			Width:            stats.Width,
			Height:           stats.Height,
			Workers:          stats.Workers,
			SamplesPerWorker: stats.SamplesPerWorker,
			TotalSamples:     stats.TotalSamples,
			MeanLuminance:    stats.MeanLuminance,
			LuminanceStdDev:  stats.LuminanceStdDev,
		},
		ElapsedMs: time.Since(startTime).Milliseconds(),
	}
	s.sendEvent(ctx, sseEventChan, "image", update)
	s.sendRaw(ctx, sseEventChan, SSEEvent{Type: "complete", Data: "Rendering completed"})
}

// renderScene builds the requested scene, renders it and returns the PNG as base64
func (s *Server) renderScene(ctx context.Context, req *RenderRequest, renderID string, logger core.Logger, sseEventChan chan SSEEvent) (string, renderer.RenderStats, error) {
	opts := scene.Options{
		Camera: geometry.CameraConfig{Width: req.Width},
		Seed:   req.Seed,
	}
	sceneObj, file, err := scene.Resolve(req.Scene, s.scenesDir, opts)
	if err != nil {
		return "", renderer.RenderStats{}, err
	}

	config := renderer.DefaultConfig()
	if sceneObj.SamplingConfig.SamplesPerPixel > 0 {
		config.SamplesPerPixel = sceneObj.SamplingConfig.SamplesPerPixel
	}
	if sceneObj.SamplingConfig.MaxDepth > 0 {
		config.MaxDepth = sceneObj.SamplingConfig.MaxDepth
	}
	if file != nil {
		config.NumWorkers = file.Render.Workers
		config.Seed = file.Render.Seed
	}
	if req.Samples > 0 {
		config.SamplesPerPixel = req.Samples
	}
	if req.Workers > 0 {
		config.NumWorkers = req.Workers
	}
	if req.MaxDepth > 0 {
		config.MaxDepth = req.MaxDepth
	}
	if req.Seed != 0 {
		config.Seed = req.Seed
	}

	logger.Printf("Using %s scene (%d spheres)\n", sceneObj.Name, sceneObj.World.Len())

	width, height := sceneObj.Camera.Width(), sceneObj.Camera.Height()
	var buf bytes.Buffer
	pngWriter := output.NewPNGWriter(&buf)
	progress := output.RowFunc(func(y int, row []core.RGB) error {
		pixels := make([]byte, 0, 3*len(row))
		for _, px := range row {
			pixels = append(pixels, clamp8(px.R), clamp8(px.G), clamp8(px.B))
		}
		return s.sendEvent(ctx, sseEventChan, "row", RowUpdate{
			RenderID: renderID,
			Row:      y,
			Width:    width,
			Height:   height,
			Pixels:   pixels,
		})
	})

	r := renderer.NewRenderer(sceneObj.World, sceneObj.Camera, config, logger)
	stats, err := r.Render(ctx, output.NewMultiWriter(pngWriter, progress))
	if err != nil {
		return "", renderer.RenderStats{}, err
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), stats, nil
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// writeSSEEvents handles writing all SSE events in a single goroutine (thread-safe).
// After a failed write it keeps draining so senders never block.
func (s *Server) writeSSEEvents(ctx context.Context, w http.ResponseWriter, sseEventChan chan SSEEvent) {
	flusher, canFlush := w.(http.Flusher)
	failed := false

	for {
		select {
		case event, ok := <-sseEventChan:
			if !ok {
				return
			}
			if failed {
				continue
			}

			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
				failed = true
				continue
			}
			if canFlush {
				flusher.Flush()
			}
		case <-ctx.Done():
			return
		}
	}
}

// streamConsoleMessages forwards console messages until consoleChan is closed
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan chan ConsoleMessage, sseEventChan chan SSEEvent) {
	for {
		select {
		case consoleMsg, ok := <-consoleChan:
			if !ok {
				return
			}
			s.sendEvent(ctx, sseEventChan, "console", consoleMsg)
		case <-ctx.Done():
			return
		}
	}
}

// sendEvent JSON-encodes data and queues it for the writer
func (s *Server) sendEvent(ctx context.Context, sseEventChan chan SSEEvent, eventType string, data interface{}) error {
	encoded, err := json.Marshal(data)
	if err != nil {
		return errors.Wrapf(err, "encode %s event", eventType)
	}
	return s.sendRaw(ctx, sseEventChan, SSEEvent{Type: eventType, Data: string(encoded)})
}

func (s *Server) sendRaw(ctx context.Context, sseEventChan chan SSEEvent, event SSEEvent) error {
	select {
	case sseEventChan <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// handleError sends an error event to the client
func (s *Server) handleError(ctx context.Context, sseEventChan chan SSEEvent, message string) {
	s.sendRaw(ctx, sseEventChan, SSEEvent{Type: "error", Data: message})
}

func clamp8(v uint16) uint8 {
	if v > 255 {
		return 255
	}
	return uint8(v)
}
