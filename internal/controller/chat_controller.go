package controller

import (
	"ai-multichat-be/internal/dto"
	"ai-multichat-be/internal/pkg/serverutils"
	"ai-multichat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post("", c.Chat)
}

func (c *chatController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewValidationError("Request body must be valid JSON")
	}

	if req.ListConversations {
		res, err := c.service.ListConversations(ctx.Context(), req.UserEmail)
		if err != nil {
			return err
		}
		return ctx.JSON(res)
	}

	res, err := c.service.ProcessChat(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
