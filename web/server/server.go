package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-kd-raytracer/pkg/log"
	"github.com/df07/go-kd-raytracer/pkg/scene"
)

var logger = log.New("server")

// Server handles web requests for rendering and inspecting scenes
type Server struct {
	port      int
	sceneDirs []string
	mux       *http.ServeMux
}

// NewServer creates a new web server. Scene files are discovered in
// sceneDirs, or in the default scene directories when none are given.
func NewServer(port int, sceneDirs ...string) *Server {
	s := &Server{
		port:      port,
		sceneDirs: sceneDirs,
		mux:       http.NewServeMux(),
	}

	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/scenes", s.handleScenes)
	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/inspect", s.handleInspect)
	return s
}

// Handler returns the server's request handler with request logging
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		s.mux.ServeHTTP(w, r)
		logger.Infof("%s %s (%v)", r.Method, r.URL.RequestURI(), time.Since(start))
	})
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	logger.Noticef("starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in and discovered scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes(s.sceneDirs...)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// loadScene resolves a scene by built-in ID or discovered file name. Paths
// are not accepted over HTTP.
func (s *Server) loadScene(name string) (*scene.Scene, int, error) {
	if name == "" {
		name = "default"
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return nil, http.StatusBadRequest, fmt.Errorf("invalid scene name: %s", name)
	}

	sc, err := scene.Resolve(name, s.sceneDirs...)
	switch {
	case err == nil:
		return sc, http.StatusOK, nil
	case errors.Is(err, scene.ErrUnknownScene):
		return nil, http.StatusNotFound, err
	case errors.Is(err, scene.ErrParse):
		return nil, http.StatusBadRequest, err
	default:
		return nil, http.StatusInternalServerError, err
	}
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// writeJSON sends v as a JSON response
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warningf("failed to encode response: %v", err)
	}
}

// writeError sends an error message as JSON
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
