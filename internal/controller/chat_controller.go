package controller

import (
	"erp-agent-nexus/internal/dto"
	"erp-agent-nexus/internal/pkg/serverutils"
	"erp-agent-nexus/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler)
	GetAllSessions(ctx *fiber.Ctx) error
	GetActiveSession(ctx *fiber.Ctx) error
	CreateSession(ctx *fiber.Ctx) error
	SelectSession(ctx *fiber.Ctx) error
	SelectSessionByTitle(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
	DeleteSessionsByTitle(ctx *fiber.Ctx) error
	Send(ctx *fiber.Ctx) error
	QueueAutoSend(ctx *fiber.Ctx) error
	AutoSend(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{chatService: chatService}
}

func (c *chatController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler) {
	h := r.Group("/chat/v1", jwtMiddleware)
	h.Get("/sessions", c.GetAllSessions)
	h.Post("/sessions", c.CreateSession)
	h.Get("/sessions/active", c.GetActiveSession)
	h.Put("/sessions/select", c.SelectSessionByTitle)
	h.Put("/sessions/:id/select", c.SelectSession)
	h.Delete("/sessions", c.DeleteSessionsByTitle)
	h.Delete("/sessions/:id", c.DeleteSession)
	h.Post("/send", c.Send)
	h.Post("/autosend", c.QueueAutoSend)
	h.Post("/autosend/:token", c.AutoSend)
}

func userKey(ctx *fiber.Ctx) (string, error) {
	userId, ok := ctx.Locals("user_id").(string)
	if !ok || userId == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	return userId, nil
}

func requiredTitle(ctx *fiber.Ctx) (string, error) {
	title := ctx.Query("title")
	if title == "" {
		return "", fiber.NewError(fiber.StatusBadRequest, "title query parameter is required")
	}
	return title, nil
}

func (c *chatController) GetAllSessions(ctx *fiber.Ctx) error {
	user, err := userKey(ctx)
	if err != nil {
		return err
	}

	res, err := c.chatService.GetAllSessions(ctx.Context(), user)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Sessions retrieved", res))
}

func (c *chatController) GetActiveSession(ctx *fiber.Ctx) error {
	user, err := userKey(ctx)
	if err != nil {
		return err
	}

	res, err := c.chatService.GetActiveSession(ctx.Context(), user)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Active session retrieved", res))
}

func (c *chatController) CreateSession(ctx *fiber.Ctx) error {
	user, err := userKey(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateSessionRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return fiber.ErrBadRequest
		}
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.CreateSession(ctx.Context(), user, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Session created", res))
}

func (c *chatController) SelectSession(ctx *fiber.Ctx) error {
	user, err := userKey(ctx)
	if err != nil {
		return err
	}

	res, err := c.chatService.SelectSession(ctx.Context(), user, ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Session selected", res))
}

func (c *chatController) SelectSessionByTitle(ctx *fiber.Ctx) error {
	user, err := userKey(ctx)
	if err != nil {
		return err
	}
	title, err := requiredTitle(ctx)
	if err != nil {
		return err
	}

	res, err := c.chatService.SelectSessionByTitle(ctx.Context(), user, title)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Session selected", res))
}

func (c *chatController) DeleteSession(ctx *fiber.Ctx) error {
	user, err := userKey(ctx)
	if err != nil {
		return err
	}

	res, err := c.chatService.DeleteSession(ctx.Context(), user, ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Session deleted", res))
}

func (c *chatController) DeleteSessionsByTitle(ctx *fiber.Ctx) error {
	user, err := userKey(ctx)
	if err != nil {
		return err
	}
	title, err := requiredTitle(ctx)
	if err != nil {
		return err
	}

	res, err := c.chatService.DeleteSessionsByTitle(ctx.Context(), user, title)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Sessions deleted", res))
}

func (c *chatController) Send(ctx *fiber.Ctx) error {
	user, err := userKey(ctx)
	if err != nil {
		return err
	}

	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.SendChat(ctx.Context(), user, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Message sent", res))
}

func (c *chatController) QueueAutoSend(ctx *fiber.Ctx) error {
	user, err := userKey(ctx)
	if err != nil {
		return err
	}

	var req dto.AutoSendRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.QueueAutoSend(ctx.Context(), user, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Auto-send queued", res))
}

func (c *chatController) AutoSend(ctx *fiber.Ctx) error {
	user, err := userKey(ctx)
	if err != nil {
		return err
	}

	res, err := c.chatService.AutoSend(ctx.Context(), user, ctx.Params("token"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Message sent", res))
}
