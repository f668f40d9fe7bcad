package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")
	api.Get("/struggles", handler.ListStruggles)

	plans := api.Group("/plans", handler.AuthRequired)
	plans.Post("/generate", handler.GeneratePlan)
	plans.Get("", handler.ListPlans)
	plans.Get("/:id", handler.GetPlan)

	progress := api.Group("/progress", handler.AuthRequired)
	progress.Post("/update", handler.UpdateProgress)
	progress.Get("/:planId", handler.GetProgress)

	ifthen := api.Group("/ifthen", handler.AuthRequired)
	ifthen.Post("/generate", handler.GenerateIfThenPlans)
}
