// Package meta serves the static reference data used by the booking forms:
// the supported airports and the city list.
package meta

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed data/airports.json
var airportsJSON []byte

//go:embed data/cities.json
var citiesJSON []byte

// Handler serves the embedded reference data
type Handler struct{}

// NewHandler creates a new meta handler
func NewHandler() *Handler {
	return &Handler{}
}

// Airports returns the supported airports with their IATA codes
// GET /api/airports
func (h *Handler) Airports(c *gin.Context) {
	c.Data(http.StatusOK, "application/json; charset=utf-8", airportsJSON)
}

// Cities returns the supported city names
// GET /api/cities
func (h *Handler) Cities(c *gin.Context) {
	c.Data(http.StatusOK, "application/json; charset=utf-8", citiesJSON)
}

// RegisterRoutes registers the reference data endpoints
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/api/airports", h.Airports)
	r.GET("/api/cities", h.Cities)
}
