package controller

import (
	"fmt"
	"time"

	"ai-chatbot-be/internal/pkg/serverutils"
	"ai-chatbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAnalyticsController interface {
	RegisterRoutes(r fiber.Router)
	Stats(ctx *fiber.Ctx) error
	ChatReport(ctx *fiber.Ctx) error
}

type analyticsController struct {
	analyticsService service.IAnalyticsService
}

func NewAnalyticsController(analyticsService service.IAnalyticsService) IAnalyticsController {
	return &analyticsController{
		analyticsService: analyticsService,
	}
}

func (c *analyticsController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/analytics/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Use(serverutils.AdminOnly)
	h.Get("stats", c.Stats)
	h.Get("chat-report", c.ChatReport)
}

func (c *analyticsController) Stats(ctx *fiber.Ctx) error {
	res, err := c.analyticsService.GetStats(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get stats", res))
}

func (c *analyticsController) ChatReport(ctx *fiber.Ctx) error {
	to := time.Now()
	from := to.Add(-30 * 24 * time.Hour)

	if fromStr := ctx.Query("from"); fromStr != "" {
		parsed, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid from, expected RFC3339")
		}
		from = parsed
	}
	if toStr := ctx.Query("to"); toStr != "" {
		parsed, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid to, expected RFC3339")
		}
		to = parsed
	}

	csv, err := c.analyticsService.GenerateChatReport(ctx.Context(), from, to)
	if err != nil {
		return err
	}

	filename := fmt.Sprintf("chat-report-%s.csv", time.Now().Format("2006-01-02"))
	ctx.Set("Content-Type", "text/csv")
	ctx.Set("Content-Disposition", "attachment; filename="+filename)
	return ctx.SendString(csv)
}
