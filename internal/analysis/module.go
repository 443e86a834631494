// Package analysis wires the rooftop feasibility analysis HTTP routes.
package analysis

import (
	"solar_feasibility_backend/internal/analysis/agent"
	"solar_feasibility_backend/internal/analysis/handler"
	"solar_feasibility_backend/internal/analysis/service"
	apphttp "solar_feasibility_backend/internal/http"
	"solar_feasibility_backend/platform/logger"
	"solar_feasibility_backend/platform/validator"
)

// Module bundles the analysis service behind the HTTP module interface.
type Module struct {
	handler *handler.Handler
}

// NewModule assembles the analysis module around a generator.
func NewModule(gen agent.Generator, val *validator.Validator, log *logger.Logger, maxUploadBytes int64) *Module {
	svc := service.New(gen, log)
	return &Module{handler: handler.New(svc, val, maxUploadBytes)}
}

func (m *Module) Name() string {
	return "analysis"
}

// RegisterRoutes mounts the analysis routes. The analyze endpoints sit
// behind the per-IP rate limiter because each one can hold a slot for up to
// three sequential model calls; export is local work and stays open.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/analysis")
	group.POST("/coordinates", ctx.AnalyzeRateLimiter.RateLimit(), m.handler.AnalyzeCoordinates)
	group.POST("/image", ctx.AnalyzeRateLimiter.RateLimit(), m.handler.AnalyzeImage)
	group.POST("/export", m.handler.ExportReport)
}

var _ apphttp.Module = (*Module)(nil)
