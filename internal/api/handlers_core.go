package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/praxishq/praxis/internal/models"
	"github.com/praxishq/praxis/internal/services"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// ListStruggles serves the fixed questionnaire catalog, grouped by the virtue
// each struggle signals.
func (handler *Handler) ListStruggles(c *fiber.Ctx) error {
	catalog := services.StruggleCatalog()
	grouped := make([]fiber.Map, 0, len(models.VirtueOrder))
	for _, virtue := range models.VirtueOrder {
		grouped = append(grouped, fiber.Map{
			"virtue":    virtue,
			"struggles": catalog[virtue],
		})
	}
	return c.JSON(fiber.Map{"virtues": grouped})
}

func (handler *Handler) GenerateIfThenPlans(c *fiber.Ctx) error {
	if _, ok := currentUserID(c); !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input services.AssessmentInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	plans, err := handler.planService.GenerateIfThenPlans(c.UserContext(), input)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"if_then_plans": plans})
}
