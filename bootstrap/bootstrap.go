package bootstrap

import (
	"github.com/cdy-agency/api-sky-solutions/internal/config"
	"github.com/cdy-agency/api-sky-solutions/internal/interfaces/router"

	"github.com/gofiber/fiber/v2"
)

// New creates the Fiber app for Vercel serverless (api handler imports this package, not internal).
// The recurrence scheduler is process-scoped and only started by cmd/api.
func New() (*fiber.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	app, _, _, err := router.CreateApp(cfg)
	return app, err
}
