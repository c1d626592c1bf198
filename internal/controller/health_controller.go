package controller

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"ai-bookchat-be/pkg/rag/index"
)

// DBPinger is the database reachability probe. Satisfied by
// database.Pinger.
type DBPinger interface {
	Ping(ctx context.Context) error
}

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
}

type healthController struct {
	idx    *index.Index
	pinger DBPinger
}

func NewHealthController(idx *index.Index, pinger DBPinger) IHealthController {
	return &healthController{idx: idx, pinger: pinger}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Health)
}

func (c *healthController) Health(ctx *fiber.Ctx) error {
	snapshot := c.idx.Load()

	status := "ok"
	dbStatus := "ok"
	code := fiber.StatusOK
	if err := c.pinger.Ping(ctx.Context()); err != nil {
		status = "degraded"
		dbStatus = "unreachable"
		code = fiber.StatusServiceUnavailable
	}

	return ctx.Status(code).JSON(fiber.Map{
		"status":       status,
		"database":     dbStatus,
		"corpus_size":  snapshot.Len(),
		"corpus_ready": snapshot.Len() > 0,
	})
}
