package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkg/errors"

	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// Request limits
const (
	minWidth   = 16
	maxWidth   = 2000
	maxSamples = 10000
	maxWorkers = 256
	maxDepth   = 1000
)

// Server handles web requests for the path tracer
type Server struct {
	port      int
	scenesDir string
	mux       *http.ServeMux
}

// NewServer creates a new web server. Scene files are looked up in scenesDir.
func NewServer(port int, scenesDir string) *Server {
	s := &Server{
		port:      port,
		scenesDir: scenesDir,
		mux:       http.NewServeMux(),
	}

	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/scenes", s.handleScenes)
	s.mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	s.mux.HandleFunc("/api/inspect", s.handleInspect)

	return s
}

// Handler returns the HTTP handler serving every endpoint
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.mux)
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene    string `json:"scene"`    // Built-in name or "file:<name>"
	Width    int    `json:"width"`    // Image width, 0 = scene default
	Samples  int    `json:"samples"`  // Samples per pixel, 0 = scene default
	Workers  int    `json:"workers"`  // Parallel workers, 0 = CPU count
	MaxDepth int    `json:"maxDepth"` // Bounce limit, 0 = scene default
	Seed     int64  `json:"seed"`     // Base random seed
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in scenes and scene files
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = "default"
	}

	sceneObj, _, err := scene.Resolve(sceneName, s.scenesDir, scene.Options{})
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	response := map[string]interface{}{
		"scene": sceneName,
		"defaults": map[string]interface{}{
			"width":           sceneObj.Camera.Width(),
			"height":          sceneObj.Camera.Height(),
			"samplesPerPixel": sceneObj.SamplingConfig.SamplesPerPixel,
			"maxDepth":        sceneObj.SamplingConfig.MaxDepth,
			"spheres":         sceneObj.World.Len(),
		},
		"limits": map[string]interface{}{
			"width":    map[string]int{"min": minWidth, "max": maxWidth},
			"samples":  map[string]int{"min": 1, "max": maxSamples},
			"workers":  map[string]int{"min": 0, "max": maxWorkers},
			"maxDepth": map[string]int{"min": 1, "max": maxDepth},
		},
	}
	writeJSON(w, http.StatusOK, response)
}

// parseRenderRequest parses request parameters
func parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: query.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, minWidth, maxWidth); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(query, "samples", 0, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.Workers, err = parseIntParam(query, "workers", 0, 0, maxWorkers); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "maxDepth", 0, 1, maxDepth); err != nil {
		return nil, err
	}
	if value := query.Get("seed"); value != "" {
		if req.Seed, err = strconv.ParseInt(value, 10, 64); err != nil {
			return nil, errors.Errorf("invalid seed: %s", value)
		}
	}

	// Performance warning
	if req.Width > 1200 && req.Samples > 500 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, errors.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, errors.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
