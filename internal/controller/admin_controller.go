package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"ai-bookchat-be/internal/dto"
	"ai-bookchat-be/internal/pkg/serverutils"
	"ai-bookchat-be/internal/service"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	Login(ctx *fiber.Ctx) error
	ListChatLogs(ctx *fiber.Ctx) error
	ListSystemLogs(ctx *fiber.Ctx) error
	Stats(ctx *fiber.Ctx) error
	ReloadCorpus(ctx *fiber.Ctx) error
}

type adminController struct {
	service   service.IAdminService
	jwtSecret string
}

func NewAdminController(service service.IAdminService, jwtSecret string) IAdminController {
	return &adminController{service: service, jwtSecret: jwtSecret}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin")
	h.Post("/login", c.Login)

	guard := serverutils.JwtMiddleware(c.jwtSecret)
	h.Get("/chat-logs", guard, c.ListChatLogs)
	h.Get("/logs", guard, c.ListSystemLogs)
	h.Get("/stats", guard, c.Stats)
	h.Post("/corpus/reload", guard, c.ReloadCorpus)
}

func (c *adminController) Login(ctx *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Login(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid credentials"))
		}
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Login successful", res))
}

func (c *adminController) ListChatLogs(ctx *fiber.Ctx) error {
	var req dto.ChatLogListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid query parameters")
	}

	res, err := c.service.ListChatLogs(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Chat logs", res))
}

func (c *adminController) ListSystemLogs(ctx *fiber.Ctx) error {
	var req dto.LogListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid query parameters")
	}

	res, err := c.service.ListSystemLogs(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("System logs", res))
}

func (c *adminController) Stats(ctx *fiber.Ctx) error {
	res, err := c.service.Stats(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Stats", res))
}

func (c *adminController) ReloadCorpus(ctx *fiber.Ctx) error {
	res, err := c.service.ReloadCorpus(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Corpus reloaded", res))
}
