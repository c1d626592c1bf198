package controller

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"ai-bookchat-be/internal/dto"
	"ai-bookchat-be/internal/pkg/logger"
	"ai-bookchat-be/internal/service"
)

type IWhatsappController interface {
	RegisterRoutes(r fiber.Router)
	Verify(ctx *fiber.Ctx) error
	Receive(ctx *fiber.Ctx) error
}

type whatsappController struct {
	chatService service.IChatService
	verifyToken string
	logger      logger.ILogger
}

func NewWhatsappController(chatService service.IChatService, verifyToken string, log logger.ILogger) IWhatsappController {
	return &whatsappController{
		chatService: chatService,
		verifyToken: verifyToken,
		logger:      log,
	}
}

func (c *whatsappController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/webhook")
	h.Get("/", c.Verify)
	h.Post("/", c.Receive)
}

// Verify answers the Meta webhook subscription handshake: echo
// hub.challenge when the verify token matches.
func (c *whatsappController) Verify(ctx *fiber.Ctx) error {
	mode := ctx.Query("hub.mode")
	token := ctx.Query("hub.verify_token")
	challenge := ctx.Query("hub.challenge")

	if mode == "subscribe" && token == c.verifyToken {
		return ctx.SendString(challenge)
	}
	return ctx.SendStatus(fiber.StatusForbidden)
}

// Receive acknowledges immediately and processes messages in the
// background. Meta retries deliveries that do not get a fast 200, which
// would duplicate slow AI calls.
func (c *whatsappController) Receive(ctx *fiber.Ctx) error {
	var payload dto.WebhookPayload
	if err := ctx.BodyParser(&payload); err != nil {
		c.logger.Warn("Webhook", "unparseable webhook body", map[string]interface{}{
			"error": err.Error(),
		})
		return ctx.SendStatus(fiber.StatusOK)
	}

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			for _, msg := range change.Value.Messages {
				m := msg
				go c.chatService.HandleIncoming(context.Background(), &m)
			}
		}
	}

	return ctx.SendStatus(fiber.StatusOK)
}
