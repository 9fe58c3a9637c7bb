package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties"`
}

// extractMaterialInfo extracts detailed material information with type assertions
func extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Diffuse:
		properties["albedo"] = [3]float64{m.Albedo.R, m.Albedo.G, m.Albedo.B}
		properties["color"] = hexColor(m.Albedo.R, m.Albedo.G, m.Albedo.B)
		return "diffuse", properties

	case *material.Metal:
		properties["albedo"] = [3]float64{m.Albedo.R, m.Albedo.G, m.Albedo.B}
		properties["color"] = hexColor(m.Albedo.R, m.Albedo.G, m.Albedo.B)
		properties["fuzzness"] = m.Fuzzness
		return "metal", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["color"] = "#ffffff" // Clear glass
		return "dielectric", properties

	default:
		return "unknown", properties
	}
}

// inspectPixel casts the jitter-free ray through a pixel center and returns
// the nearest hit
func inspectPixel(sceneObj *scene.Scene, pixelX, pixelY int) (geometry.Hit, core.HitRecord, bool) {
	ray := sceneObj.Camera.CenterRay(pixelX, pixelY)
	hit, isHit := sceneObj.World.Hit(ray, geometry.TMin, geometry.TMax)
	if !isHit {
		return geometry.Hit{}, core.HitRecord{}, false
	}
	return hit, hit.Record(ray), true
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	sceneName := query.Get("scene")
	if sceneName == "" {
		sceneName = "default"
	}
	width, err := parseIntParam(query, "width", 0, minWidth, maxWidth)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	pixelX, err := strconv.Atoi(query.Get("x"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
		return
	}
	pixelY, err := strconv.Atoi(query.Get("y"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
		return
	}

	opts := scene.Options{Camera: geometry.CameraConfig{Width: width}}
	sceneObj, _, err := scene.Resolve(sceneName, s.scenesDir, opts)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if pixelX < 0 || pixelX >= sceneObj.Camera.Width() || pixelY < 0 || pixelY >= sceneObj.Camera.Height() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Pixel coordinates out of bounds"})
		return
	}

	hit, record, isHit := inspectPixel(sceneObj, pixelX, pixelY)
	if !isHit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	materialType, materialProps := extractMaterialInfo(hit.Material)

	response := InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		Point:        [3]float64{record.Point.X, record.Point.Y, record.Point.Z},
		Normal:       [3]float64{record.Normal.X, record.Normal.Y, record.Normal.Z},
		Distance:     record.T,
		FrontFace:    record.FrontFace,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": map[string]interface{}{
				"center": [3]float64{hit.Sphere.Center.X, hit.Sphere.Center.Y, hit.Sphere.Center.Z},
				"radius": hit.Sphere.Radius,
			},
		},
	}
	writeJSON(w, http.StatusOK, response)
}

func hexColor(r, g, b float64) string {
	return fmt.Sprintf("#%02x%02x%02x", channel8(r), channel8(g), channel8(b))
}

func channel8(v float64) int {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return int(v * 255)
}
