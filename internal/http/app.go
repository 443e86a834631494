// Package http provides HTTP server infrastructure including module registration.
package http

import (
	"solar_feasibility_backend/platform/config"
	"solar_feasibility_backend/platform/logger"
)

// App holds the fully initialized application dependencies.
// This is populated by main.go (the composition root) and passed to the router.
type App struct {
	// Config holds the router configuration.
	Config *config.Config
	// Logger is the structured logger.
	Logger *logger.Logger
	// Modules contains all HTTP-facing domain modules.
	Modules []Module
}
