package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-kd-raytracer/pkg/accel"
	"github.com/df07/go-kd-raytracer/pkg/integrator"
	"github.com/df07/go-kd-raytracer/pkg/output"
	"github.com/df07/go-kd-raytracer/pkg/renderer"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene  string                // Scene name (e.g., "cornell")
	Width  int                   // Image width (0 = scene value)
	Height int                   // Image height (0 = scene value)
	Accel  accel.Kind            // Query structure
	Shadow integrator.ShadowMode // Shadow gate
}

// parseRenderRequest parses request parameters
func parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: query.Get("scene")}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, 1, 2000); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 0, 1, 2000); err != nil {
		return nil, err
	}
	if req.Accel, err = accel.ParseKind(query.Get("accel")); err != nil {
		return nil, err
	}
	if req.Shadow, err = integrator.ParseShadowMode(query.Get("shadow")); err != nil {
		return nil, err
	}
	return req, nil
}

// handleRender renders a scene and responds with a PNG image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sc, status, err := s.loadScene(req.Scene)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}
	if req.Width > 0 {
		sc.Camera.Width = req.Width
	}
	if req.Height > 0 {
		sc.Camera.Height = req.Height
	}

	config := renderer.DefaultConfig()
	config.Accel = req.Accel
	config.Shadow = req.Shadow

	// Request context cancels the render when the client disconnects
	img, stats, err := renderer.NewRaytracer(sc, config).Render(r.Context())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, r.Context().Err()) {
			status = http.StatusServiceUnavailable
		}
		writeError(w, status, fmt.Sprintf("Render error: %v", err))
		return
	}

	var buf bytes.Buffer
	if err := output.WritePNG(&buf, img); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Render-Time", stats.RenderTime.String())
	w.Header().Set("X-Render-Rays", strconv.FormatInt(stats.Rays, 10))
	w.Header().Set("X-Render-Shadow-Rays", strconv.FormatInt(stats.ShadowRays, 10))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Warningf("failed to write image: %v", err)
	}
}
