package controller

import (
	"bestill-chatbot-be/internal/dto"
	"bestill-chatbot-be/internal/pkg/serverutils"
	"bestill-chatbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	SendChat(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
	AnalyzeDocument(ctx *fiber.Ctx) error
	ClearSession(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{chatService: chatService}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("send", c.SendChat)
	h.Get("history", c.GetHistory)
	h.Post("analyze", c.AnalyzeDocument)
	h.Delete("session", c.ClearSession)
}

func (c *chatController) SendChat(ctx *fiber.Ctx) error {
	username := ctx.Locals("username").(string)

	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.SendChat(ctx.Context(), username, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send chat", res))
}

func (c *chatController) GetHistory(ctx *fiber.Ctx) error {
	username := ctx.Locals("username").(string)

	res, err := c.chatService.GetHistory(ctx.Context(), username)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get chat history", res))
}

func (c *chatController) AnalyzeDocument(ctx *fiber.Ctx) error {
	username := ctx.Locals("username").(string)

	var req dto.AnalyzeDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.AnalyzeDocument(ctx.Context(), username, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success analyze document", res))
}

func (c *chatController) ClearSession(ctx *fiber.Ctx) error {
	username := ctx.Locals("username").(string)

	if err := c.chatService.ClearSession(ctx.Context(), username); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success clear session", nil))
}
