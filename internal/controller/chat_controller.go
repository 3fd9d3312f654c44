package controller

import (
	"bufio"
	"encoding/json"
	"fmt"

	"ai-chatbot-be/internal/dto"
	"ai-chatbot-be/internal/entity"
	"ai-chatbot-be/internal/pkg/serverutils"
	"ai-chatbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	CreateChat(ctx *fiber.Ctx) error
	GetThreads(ctx *fiber.Ctx) error
	DeleteThread(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.CreateChat)
	h.Get("threads", c.GetThreads)
	h.Delete("threads/:id", c.DeleteThread)
}

func callerIdentity(ctx *fiber.Ctx) (uuid.UUID, entity.UserRole) {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	roleStr, _ := ctx.Locals("role").(string)
	return userId, entity.UserRole(roleStr)
}

func (c *chatController) CreateChat(ctx *fiber.Ctx) error {
	userId, _ := callerIdentity(ctx)

	var req dto.CreateChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if !req.IsStreaming {
		res, err := c.chatService.CreateChat(ctx.Context(), userId, &req)
		if err != nil {
			return err
		}
		return ctx.JSON(serverutils.SuccessResponse("Success create chat", res))
	}

	events, err := c.chatService.CreateChatStream(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	ctx.Set("Content-Type", "text/event-stream")
	ctx.Set("Cache-Control", "no-cache")
	ctx.Set("Connection", "keep-alive")

	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		for evt := range events {
			if evt.Err != nil {
				payload, _ := json.Marshal(fiber.Map{"error": evt.Err.Error()})
				fmt.Fprintf(w, "data: %s\n\n", payload)
				w.Flush()
				return
			}

			payload, _ := json.Marshal(fiber.Map{"content": evt.Content})
			fmt.Fprintf(w, "data: %s\n\n", payload)
			if err := w.Flush(); err != nil {
				// Client disconnected. Drain so the stream can still
				// finish and persist.
				for range events {
				}
				return
			}
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
		w.Flush()
	}))

	return nil
}

func (c *chatController) GetThreads(ctx *fiber.Ctx) error {
	userId, role := callerIdentity(ctx)

	var req dto.ThreadListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return err
	}

	res, err := c.chatService.GetThreads(ctx.Context(), userId, role, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get threads", res))
}

func (c *chatController) DeleteThread(ctx *fiber.Ctx) error {
	userId, role := callerIdentity(ctx)

	threadId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid thread id")
	}

	if err := c.chatService.DeleteThread(ctx.Context(), userId, role, threadId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete thread", nil))
}
