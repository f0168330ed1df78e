package mentors

import (
	"github.com/gofiber/fiber/v2"

	"github.com/netarcx/Mentor-Manager-sub001/app/routes/auth"
)

func SetupMentorRoutes(app *fiber.App) {
	api := app.Group("/api/mentors")
	api.Use(auth.AuthMiddleware)

	api.Get("/", GetAllMentorsAPI)
	api.Post("/", CreateMentorAPI)
	api.Get("/:id", GetMentorAPI)
	api.Put("/:id", UpdateMentorAPI)
	api.Delete("/:id", DeleteMentorAPI)

	api.Get("/:id/adjustments", GetMentorAdjustmentsAPI)
	api.Post("/:id/adjustments", CreateAdjustmentAPI)
	api.Delete("/adjustments/:adjustmentId", DeleteAdjustmentAPI)
}
