// FILE: internal/transport/http/handler.go

// Package http exposes the puzzle operations over a read-only REST API.
package http

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"puzzlekit"
	"puzzlekit/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
)

// maxCount caps one request's sample size; larger exports belong in the CLI.
const maxCount = 500

type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// NewFiberApp builds the Fiber application with the full middleware stack.
func NewFiberApp(svc *service.Service) *fiber.App {
	h := NewHandler(svc)

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	})

	// Global middleware (order matters)
	app.Use(recover.New())
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Request-ID", uuid.NewString())
		return c.Next()
	})
	app.Use(logger.New(logger.Config{
		Format: "${time} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	app.Get("/health", h.Health)

	api := app.Group("/api/v1")
	api.Get("/puzzles", h.RandomPuzzles)
	api.Get("/puzzles/:id", h.PuzzleByID)
	api.Get("/themes", h.Themes)
	api.Get("/stats", h.Stats)

	return app
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// RandomPuzzles samples puzzles matching the query parameters:
// themes (comma-separated), ratingMin/ratingMax, popularityMin/popularityMax
// and count. Both ends of a range must be supplied together.
func (h *Handler) RandomPuzzles(c *fiber.Ctx) error {
	var filter puzzlekit.Filter

	if themes := c.Query("themes"); themes != "" {
		for _, t := range strings.Split(themes, ",") {
			if t = strings.TrimSpace(t); t != "" {
				filter.Themes = append(filter.Themes, t)
			}
		}
	}

	ratingRange, err := queryRange(c, "ratingMin", "ratingMax")
	if err != nil {
		return badRequest(c, err.Error())
	}
	filter.RatingRange = ratingRange

	popularityRange, err := queryRange(c, "popularityMin", "popularityMax")
	if err != nil {
		return badRequest(c, err.Error())
	}
	filter.PopularityRange = popularityRange

	filter.Count = c.QueryInt("count", 1)
	if filter.Count > maxCount {
		return badRequest(c, "count must be at most "+strconv.Itoa(maxCount))
	}

	puzzles, err := h.svc.Random(filter)
	if err != nil {
		return h.mapError(c, err)
	}

	return c.JSON(PuzzlesResponse{Puzzles: puzzles, Count: len(puzzles)})
}

func (h *Handler) PuzzleByID(c *fiber.Ctx) error {
	puzzle, err := h.svc.ByID(c.Params("id"))
	if err != nil {
		return h.mapError(c, err)
	}
	if puzzle == nil {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "puzzle not found",
			Code:    ErrPuzzleNotFound,
			Details: c.Params("id"),
		})
	}
	return c.JSON(puzzle)
}

func (h *Handler) Themes(c *fiber.Ctx) error {
	themes, err := h.svc.Themes()
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(ThemesResponse{Themes: themes, Count: len(themes)})
}

func (h *Handler) Stats(c *fiber.Ctx) error {
	stats, err := h.svc.Stats()
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(StatsResponse{Stats: *stats})
}

// queryRange parses a min/max parameter pair. Supplying only one end is a
// client error.
func queryRange(c *fiber.Ctx, minKey, maxKey string) (*puzzlekit.Range, error) {
	minStr, maxStr := c.Query(minKey), c.Query(maxKey)
	if minStr == "" && maxStr == "" {
		return nil, nil
	}
	if minStr == "" || maxStr == "" {
		return nil, errors.New(minKey + " and " + maxKey + " must be supplied together")
	}

	min, err := strconv.Atoi(minStr)
	if err != nil {
		return nil, errors.New(minKey + " must be an integer")
	}
	max, err := strconv.Atoi(maxStr)
	if err != nil {
		return nil, errors.New(maxKey + " must be an integer")
	}
	return &puzzlekit.Range{Min: min, Max: max}, nil
}

func badRequest(c *fiber.Ctx, details string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "invalid request",
		Code:    ErrInvalidRequest,
		Details: details,
	})
}

// mapError translates kit sentinel errors into HTTP responses.
func (h *Handler) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, puzzlekit.ErrInvalidArgument):
		return badRequest(c, err.Error())
	case errors.Is(err, puzzlekit.ErrDatabaseNotFound), errors.Is(err, puzzlekit.ErrDownloadFailed):
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{
			Error:   "puzzle database unavailable",
			Code:    ErrDatasetMissing,
			Details: err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "internal error",
			Code:    ErrInternalError,
			Details: err.Error(),
		})
	}
}
