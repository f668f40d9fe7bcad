package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/praxishq/praxis/internal/services"
)

func (handler *Handler) GeneratePlan(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input services.AssessmentInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	plan, err := handler.planService.GeneratePlan(c.UserContext(), userID, input)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(plan)
}

func (handler *Handler) GetPlan(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	plan, err := handler.planService.GetPlan(userID, c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(plan)
}

func (handler *Handler) ListPlans(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	plans, err := handler.planService.ListPlans(userID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"plans": plans})
}
