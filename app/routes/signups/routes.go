package signups

import (
	"github.com/gofiber/fiber/v2"

	"github.com/netarcx/Mentor-Manager-sub001/app/routes/auth"
)

func SetupSignupRoutes(app *fiber.App) {
	api := app.Group("/api/signups")
	api.Use(auth.AuthMiddleware)

	api.Post("/", CreateSignupAPI)
	api.Put("/:id", UpdateSignupAPI)
	api.Delete("/:id", DeleteSignupAPI)
	api.Post("/:id/checkin", CheckInAPI)
	api.Post("/:id/checkout", CheckOutAPI)

	// Kiosk endpoints for the workshop tablet: no admin session, guarded
	// by a shared token instead.
	kiosk := app.Group("/api/kiosk")
	kiosk.Use(KioskMiddleware)
	kiosk.Post("/checkin", KioskCheckInAPI)
	kiosk.Post("/checkout", KioskCheckOutAPI)
}
