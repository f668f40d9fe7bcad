package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/praxishq/praxis/internal/agents"
	"github.com/praxishq/praxis/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// serviceError maps the service error taxonomy onto HTTP responses. Stage
// failures carry the failing stage and persona for diagnosis.
func serviceError(c *fiber.Ctx, err error) error {
	var stageError *services.StageError
	switch {
	case errors.Is(err, services.ErrValidation):
		return apiError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		return apiError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrGenerationInFlight):
		return apiError(c, fiber.StatusConflict, "plan generation already in progress")
	case errors.As(err, &stageError):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":   "plan generation failed",
			"stage":   stageError.Stage,
			"persona": string(stageError.Persona),
		})
	case errors.Is(err, agents.ErrAgentNotConfigured):
		return apiError(c, fiber.StatusBadGateway, err.Error())
	default:
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
}
