package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/roadbook-microservice/internal/config"
	"github.com/roadbook-microservice/internal/delivery/http/handler"
	"github.com/roadbook-microservice/internal/delivery/http/middleware"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"
)

// Server - Fiber based HTTP server
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	scheduleHandler *handler.ScheduleHandler
	legHandler      *handler.LegHandler
	exportHandler   *handler.ExportHandler
	statsHandler    *handler.StatsHandler
}

// NewServer - constructor for the HTTP server
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	scheduleHandler *handler.ScheduleHandler,
	legHandler *handler.LegHandler,
	exportHandler *handler.ExportHandler,
	statsHandler *handler.StatsHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Roadbook Microservice",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:             app,
		config:          cfg,
		logger:          logger,
		scheduleHandler: scheduleHandler,
		legHandler:      legHandler,
		exportHandler:   exportHandler,
		statsHandler:    statsHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Schedule routes
	events := api.Group("/events/:event_id")
	events.Get("/schedule", s.scheduleHandler.GetSchedule)
	events.Post("/schedule/entries", s.scheduleHandler.CreateEntry)
	events.Put("/schedule/entries/:entry_id", s.scheduleHandler.UpdateEntry)
	events.Delete("/schedule/entries/:entry_id", s.scheduleHandler.DeleteEntry)
	events.Post("/schedule/entries/:entry_id/restore", s.scheduleHandler.RestoreEntry)
	events.Get("/schedule/export.pdf", s.exportHandler.ExportPDF)
	events.Get("/vehicle-logistics", s.scheduleHandler.GetVehicleLogistics)

	// Transport leg routes
	events.Get("/legs", s.legHandler.ListLegs)
	events.Post("/legs", s.legHandler.CreateLeg)
	events.Put("/legs/:leg_id", s.legHandler.UpdateLeg)
	events.Delete("/legs/:leg_id", s.legHandler.DeleteLeg)

	// Race metadata and accommodations
	events.Get("/race-info", s.legHandler.GetRaceDayInfo)
	events.Put("/race-info", s.legHandler.UpsertRaceDayInfo)
	events.Get("/accommodations", s.legHandler.GetAccommodations)

	// Stats
	api.Get("/stats", s.statsHandler.GetStatistics)
}

// Start - start listening for HTTP requests
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown of the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": err.Error(),
			},
		})
	}
}
