package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/UnknownOlympus/nearby/internal/models"
	"github.com/gin-gonic/gin"
)

// ProximityQuerier is the query service the handlers delegate to.
type ProximityQuerier interface {
	Nearest(ctx context.Context, query models.ProximityQuery) models.QueryResponse
	RecordMalformed()
}

// Handler serves the index view and proximity queries.
type Handler struct {
	log     *slog.Logger
	service ProximityQuerier
	campus  models.Coordinates
}

// NewHandler creates a Handler. campus is the reference point handed to the index view.
func NewHandler(log *slog.Logger, service ProximityQuerier, campus models.Coordinates) *Handler {
	return &Handler{log: log, service: service, campus: campus}
}

// Index renders the index view, or its context as JSON when the client asks for it.
func (h *Handler) Index(c *gin.Context) {
	data := indexContext{CampusLat: h.campus.Latitude, CampusLon: h.campus.Longitude}

	c.Negotiate(http.StatusOK, gin.Negotiate{
		Offered:  []string{gin.MIMEHTML, gin.MIMEJSON},
		HTMLName: indexTemplate,
		Data:     data,
	})
}

// Nearest answers POST /nearest.
func (h *Handler) Nearest(c *gin.Context) {
	var req nearestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.reject(c, err)
		return
	}

	query, err := req.toQuery()
	if err != nil {
		h.reject(c, err)
		return
	}

	c.JSON(http.StatusOK, h.service.Nearest(c.Request.Context(), query))
}

func (h *Handler) reject(c *gin.Context, err error) {
	if !errors.Is(err, models.ErrMalformedRequest) {
		err = fmt.Errorf("%w: %w", models.ErrMalformedRequest, err)
	}

	h.service.RecordMalformed()
	h.log.DebugContext(c.Request.Context(), "Rejected proximity query", "error", err)
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
