package leaderboard

import (
	"github.com/gofiber/fiber/v2"

	"github.com/netarcx/Mentor-Manager-sub001/app/routes/auth"
)

func SetupLeaderboardRoutes(app *fiber.App) {
	api := app.Group("/api/leaderboard")
	api.Use(auth.AuthMiddleware)

	api.Get("/", GetLeaderboardAPI)
}
