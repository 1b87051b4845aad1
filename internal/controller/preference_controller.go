package controller

import (
	"erp-agent-nexus/internal/dto"
	"erp-agent-nexus/internal/pkg/serverutils"
	"erp-agent-nexus/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPreferenceController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler)
	Get(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
}

type preferenceController struct {
	service service.IPreferenceService
}

func NewPreferenceController(service service.IPreferenceService) IPreferenceController {
	return &preferenceController{service: service}
}

func (c *preferenceController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler) {
	h := r.Group("/preferences/v1", jwtMiddleware)
	h.Get("/", c.Get)
	h.Put("/", c.Update)
}

func (c *preferenceController) Get(ctx *fiber.Ctx) error {
	user, err := userKey(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Get(ctx.Context(), user)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Preferences retrieved", res))
}

func (c *preferenceController) Update(ctx *fiber.Ctx) error {
	user, err := userKey(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdatePreferencesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.ErrBadRequest
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.Context(), user, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Preferences updated", res))
}
