package controller

import (
	"erp-agent-nexus/internal/pkg/serverutils"
	"erp-agent-nexus/pkg/agents"

	"github.com/gofiber/fiber/v2"
)

type IAgentController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler)
	List(ctx *fiber.Ctx) error
	Get(ctx *fiber.Ctx) error
}

type agentController struct{}

func NewAgentController() IAgentController {
	return &agentController{}
}

func (c *agentController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler) {
	h := r.Group("/agents/v1", jwtMiddleware)
	h.Get("/", c.List)
	h.Get("/:id", c.Get)
}

func (c *agentController) List(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Agents retrieved", agents.All()))
}

// Get does not fall back to the orchestrator: unknown ids are a 404 here.
func (c *agentController) Get(ctx *fiber.Ctx) error {
	agent, ok := agents.Find(ctx.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Agent not found")
	}
	return ctx.JSON(serverutils.SuccessResponse("Agent retrieved", agent))
}
