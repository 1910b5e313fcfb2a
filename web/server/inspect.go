package server

import (
	"fmt"
	"net/http"

	"github.com/df07/go-kd-raytracer/pkg/accel"
	"github.com/df07/go-kd-raytracer/pkg/renderer"
)

// InspectResponse represents the JSON response for pixel inspection
type InspectResponse struct {
	Scene string `json:"scene"`
	renderer.PixelReport
}

// handleInspect reports what the primary ray through one pixel hits
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	sc, status, err := s.loadScene(query.Get("scene"))
	if err != nil {
		writeError(w, status, err.Error())
		return
	}

	x, err := parseIntParam(query, "x", -1, 0, 1<<16)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	y, err := parseIntParam(query, "y", -1, 0, 1<<16)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if x < 0 || y < 0 {
		writeError(w, http.StatusBadRequest, "x and y are required")
		return
	}

	// Inspect uses the same screen as a render of the same size
	if sc.Camera.Width, err = parseIntParam(query, "width", sc.Camera.Width, 1, 2000); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if sc.Camera.Height, err = parseIntParam(query, "height", sc.Camera.Height, 1, 2000); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	kind, err := accel.ParseKind(query.Get("accel"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	config := renderer.DefaultConfig()
	config.Accel = kind
	report, err := renderer.NewRaytracer(sc, config).Inspect(x, y)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Inspect error: %v", err))
		return
	}

	writeJSON(w, http.StatusOK, InspectResponse{Scene: sc.Name, PixelReport: report})
}
