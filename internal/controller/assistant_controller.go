package controller

import (
	"ai-adoption-analyst-be/internal/dto"
	"ai-adoption-analyst-be/internal/pkg/serverutils"
	"ai-adoption-analyst-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	SelectEvidence(ctx *fiber.Ctx) error
	SynthesizeFacts(ctx *fiber.Ctx) error
	CoachQuestion(ctx *fiber.Ctx) error
	Catalog(ctx *fiber.Ctx) error
}

type assistantController struct {
	service service.IAssistantService
}

func NewAssistantController(service service.IAssistantService) IAssistantController {
	return &assistantController{service: service}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/assistant/v1")
	h.Post("/chat", c.Chat)
	h.Post("/evidence", c.SelectEvidence)
	h.Post("/facts", c.SynthesizeFacts)
	h.Post("/coach", c.CoachQuestion)
	h.Get("/catalog", c.Catalog)
}

// All POST handlers return HTTP 200 even when the external collaborator
// fails; the service substitutes deterministic fallback payloads so the UI
// never needs an error branch.

func (c *assistantController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	return ctx.JSON(c.service.Answer(ctx.Context(), &req))
}

func (c *assistantController) SelectEvidence(ctx *fiber.Ctx) error {
	var req dto.EvidenceSelectionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	return ctx.JSON(c.service.SelectEvidence(ctx.Context(), &req))
}

func (c *assistantController) SynthesizeFacts(ctx *fiber.Ctx) error {
	var req dto.FactSynthesisRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	return ctx.JSON(c.service.SynthesizeFacts(ctx.Context(), &req))
}

func (c *assistantController) CoachQuestion(ctx *fiber.Ctx) error {
	var req dto.CoachRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	return ctx.JSON(c.service.CoachQuestion(ctx.Context(), &req))
}

func (c *assistantController) Catalog(ctx *fiber.Ctx) error {
	return ctx.JSON(c.service.Catalog())
}
