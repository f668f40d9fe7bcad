package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/praxishq/praxis/internal/services"
)

// UpdateProgress applies a batch of day-completion events. The response keeps
// the success/error envelope the program clients already speak.
func (handler *Handler) UpdateProgress(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var request progressUpdateRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid payload"})
	}
	updates, err := validateProgressRequest(request)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	record, err := handler.planService.UpdateProgress(userID, request.PlanID, updates)
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, services.ErrNotFound) {
			status = fiber.StatusNotFound
		}
		return c.Status(status).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	return c.JSON(fiber.Map{"success": true, "progress": record})
}

func (handler *Handler) GetProgress(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	record, err := handler.planService.GetProgress(userID, c.Params("planId"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(record)
}
