package api

import (
	"embed"
	"html/template"
	"log/slog"

	"github.com/UnknownOlympus/nearby/internal/metrics"
	"github.com/UnknownOlympus/nearby/internal/models"
	"github.com/gin-gonic/gin"
)

const indexTemplate = "index.html.tmpl"

//go:embed templates/*.tmpl
var templatesFS embed.FS

// NewRouter wires the handlers, middleware and view templates into a gin engine.
func NewRouter(
	log *slog.Logger,
	service ProximityQuerier,
	campus models.Coordinates,
	m *metrics.Metrics,
) *gin.Engine {
	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	engine.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.tmpl")))
	engine.Use(gin.Recovery(), requestLogger(log), instrument(m))

	handler := NewHandler(log, service, campus)
	engine.GET("/", handler.Index)
	engine.POST("/nearest", handler.Nearest)

	return engine
}
