package controller

import (
	"ai-chatbot-be/internal/dto"
	"ai-chatbot-be/internal/pkg/serverutils"
	"ai-chatbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IFeedbackController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	UpdateStatus(ctx *fiber.Ctx) error
}

type feedbackController struct {
	feedbackService service.IFeedbackService
}

func NewFeedbackController(feedbackService service.IFeedbackService) IFeedbackController {
	return &feedbackController{
		feedbackService: feedbackService,
	}
}

func (c *feedbackController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/feedback/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Put(":id/status", serverutils.AdminOnly, c.UpdateStatus)
}

func (c *feedbackController) Create(ctx *fiber.Ctx) error {
	userId, _ := callerIdentity(ctx)

	var req dto.CreateFeedbackRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.feedbackService.CreateFeedback(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create feedback", res))
}

func (c *feedbackController) List(ctx *fiber.Ctx) error {
	userId, role := callerIdentity(ctx)

	var req dto.FeedbackListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return err
	}

	res, err := c.feedbackService.GetFeedbacks(ctx.Context(), userId, role, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get feedbacks", res))
}

func (c *feedbackController) UpdateStatus(ctx *fiber.Ctx) error {
	feedbackId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid feedback id")
	}

	var req dto.UpdateFeedbackStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.feedbackService.UpdateStatus(ctx.Context(), feedbackId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update feedback status", res))
}
