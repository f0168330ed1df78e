package notifications

import (
	"github.com/gofiber/fiber/v2"

	"github.com/netarcx/Mentor-Manager-sub001/app/routes/auth"
)

func SetupNotificationRoutes(app *fiber.App) {
	api := app.Group("/api/notifications")

	// Triggers accept an admin session or the shared secret so an
	// external cron can drive them.
	api.Post("/remind", TriggerAuthMiddleware, TriggerReminderAPI)
	api.Post("/digest", TriggerAuthMiddleware, TriggerDigestAPI)

	settings := api.Group("/settings", auth.AuthMiddleware)
	settings.Get("/", GetReminderSettingsAPI)
	settings.Post("/", UpdateReminderSettingsAPI)

	digest := api.Group("/digest/settings", auth.AuthMiddleware)
	digest.Get("/", GetDigestSettingsAPI)
	digest.Post("/", UpdateDigestSettingsAPI)
}
