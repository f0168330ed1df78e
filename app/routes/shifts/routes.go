package shifts

import (
	"github.com/gofiber/fiber/v2"

	"github.com/netarcx/Mentor-Manager-sub001/app/routes/auth"
)

func SetupShiftRoutes(app *fiber.App) {
	api := app.Group("/api/shifts")
	api.Use(auth.AuthMiddleware)

	api.Get("/", GetShiftsAPI)
	api.Post("/", CreateShiftAPI)
	api.Post("/generate", GenerateShiftsAPI)
	api.Get("/:id", GetShiftAPI)
	api.Put("/:id", UpdateShiftAPI)
	api.Post("/:id/cancel", CancelShiftAPI)
	api.Delete("/:id", DeleteShiftAPI)

	templates := app.Group("/api/templates")
	templates.Use(auth.AuthMiddleware)

	templates.Get("/", GetTemplatesAPI)
	templates.Post("/", CreateTemplateAPI)
	templates.Put("/:id", UpdateTemplateAPI)
	templates.Delete("/:id", DeleteTemplateAPI)
}
