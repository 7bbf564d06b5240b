package server

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-json-experiment/json"
	"github.com/pkg/errors"

	"github.com/df07/go-mirror-raytracer/pkg/background"
	"github.com/df07/go-mirror-raytracer/pkg/log"
	"github.com/df07/go-mirror-raytracer/pkg/scene"
)

// Server handles web requests for the progressive raytracer
type Server struct {
	port      int
	staticDir string
	logger    log.Logger
}

// NewServer creates a new web server serving static files from staticDir
func NewServer(port int, staticDir string) *Server {
	return &Server{
		port:      port,
		staticDir: staticDir,
		logger:    log.New("web"),
	}
}

// Handler returns the routes of the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Serve static files
	mux.Handle("/", http.FileServer(http.Dir(s.staticDir)))

	// API endpoints
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/presets", s.handlePresets)
	mux.HandleFunc("/api/health", s.handleHealth)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Noticef("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// writeJSON encodes v as the response body
func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Errorf("Error marshaling response: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"})
}

// BackgroundInfo describes a background for listings
type BackgroundInfo struct {
	Code int    `json:"code"`
	Name string `json:"name"`
}

// PresetsResponse lists everything a client can put in a render request
type PresetsResponse struct {
	Presets     []scene.PresetInfo `json:"presets"`
	Backgrounds []BackgroundInfo   `json:"backgrounds"`
}

// handlePresets lists scene presets and backgrounds
func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	resp := PresetsResponse{Presets: scene.Presets()}
	for _, kind := range background.Kinds() {
		resp.Backgrounds = append(resp.Backgrounds, BackgroundInfo{Code: int(kind), Name: kind.String()})
	}
	s.writeJSON(w, resp)
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

// parseFloatParam parses a float parameter from URL query with validation.
// The upper bound is exclusive.
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, errors.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed >= max {
			return 0, errors.Errorf("%s must be in [%g, %g), got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}
