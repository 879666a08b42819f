package status

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/mediehuset/cueplan/internal/scheduler"
)

// Server exposes a minimal operational surface: liveness and per-task
// scheduling snapshots. It is read-only; the daemon has no interactive API.
type Server struct {
	app     *fiber.App
	port    string
	started time.Time
	log     zerolog.Logger
}

func NewServer(port, appName, appVersion string, sched *scheduler.Scheduler, log zerolog.Logger) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
	})
	app.Use(recover.New())

	s := &Server{
		app:     app,
		port:    port,
		started: time.Now(),
		log:     log,
	}

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Get("/status", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"app":     appName,
			"version": appVersion,
			"uptime":  time.Since(s.started).Round(time.Second).String(),
			"tasks":   sched.Status(),
		})
	})

	return s
}

// Listen blocks serving the status endpoints.
func (s *Server) Listen() error {
	s.log.Info().Str("port", s.port).Msg("status server listening")
	return s.app.Listen(":" + s.port)
}

// Shutdown drains the server within the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
