package controller

import (
	"bestill-chatbot-be/internal/dto"
	"bestill-chatbot-be/internal/pkg/serverutils"
	"bestill-chatbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IJournalController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
}

type journalController struct {
	journalService service.IJournalService
}

func NewJournalController(journalService service.IJournalService) IJournalController {
	return &journalController{journalService: journalService}
}

func (c *journalController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/journal/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("", c.List)
}

func (c *journalController) Create(ctx *fiber.Ctx) error {
	username := ctx.Locals("username").(string)

	var req dto.CreateJournalEntryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.journalService.CreateEntry(ctx.Context(), username, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create journal entry", res))
}

func (c *journalController) List(ctx *fiber.Ctx) error {
	username := ctx.Locals("username").(string)

	res, err := c.journalService.GetEntries(ctx.Context(), username)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get journal entries", res))
}
