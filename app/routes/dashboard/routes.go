package dashboard

import (
	"github.com/gofiber/fiber/v2"
)

// The dashboard is the one public surface: a status page for the
// workshop TV and its backing JSON.
func SetupDashboardRoutes(app *fiber.App) {
	app.Get("/", DashboardPage)
	app.Get("/api/dashboard", GetDashboardAPI)
}
