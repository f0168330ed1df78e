package main

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"

	"github.com/netarcx/Mentor-Manager-sub001/app/config"
	"github.com/netarcx/Mentor-Manager-sub001/app/database"
	"github.com/netarcx/Mentor-Manager-sub001/app/routes/auth"
	"github.com/netarcx/Mentor-Manager-sub001/app/routes/dashboard"
	"github.com/netarcx/Mentor-Manager-sub001/app/routes/leaderboard"
	"github.com/netarcx/Mentor-Manager-sub001/app/routes/mentors"
	"github.com/netarcx/Mentor-Manager-sub001/app/routes/notifications"
	"github.com/netarcx/Mentor-Manager-sub001/app/routes/settings"
	"github.com/netarcx/Mentor-Manager-sub001/app/routes/shifts"
	"github.com/netarcx/Mentor-Manager-sub001/app/routes/signups"
	"github.com/netarcx/Mentor-Manager-sub001/app/routes/students"
	"github.com/netarcx/Mentor-Manager-sub001/app/services"
)

// customErrorHandler converts errors into JSON for API requests and a
// rendered page for everything else. Internal detail is logged, never
// returned to the client.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}
	if code == fiber.StatusInternalServerError {
		log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
		message = "Internal server error"
	}

	if strings.HasPrefix(c.Path(), "/api") {
		return c.Status(code).JSON(fiber.Map{
			"success": false,
			"error":   message,
			"code":    code,
		})
	}

	return c.Status(code).Render("error", fiber.Map{
		"Title":        "Error",
		"ErrorCode":    code,
		"ErrorMessage": message,
	})
}

func main() {
	if err := config.Load(); err != nil {
		log.Fatal(err)
	}
	defer config.GetDB().Close()

	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	engine := html.New("./app/templates", ".html")

	app := fiber.New(fiber.Config{
		Views:        engine,
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	app.Static("/static", "./static")

	dashboard.SetupDashboardRoutes(app)
	auth.SetupAuthRoutes(app)
	mentors.SetupMentorRoutes(app)
	students.SetupStudentRoutes(app)
	shifts.SetupShiftRoutes(app)
	signups.SetupSignupRoutes(app)
	leaderboard.SetupLeaderboardRoutes(app)
	notifications.SetupNotificationRoutes(app)
	settings.SetupSettingsRoutes(app)

	if config.AppConfig.CronEnabled {
		c := services.StartCron(config.GetDB(), services.NewWebhookDispatcher(), config.GetLocation())
		defer c.Stop()
	}

	log.Printf("Listening on %s", config.AppConfig.ListenAddr)
	log.Fatal(app.Listen(config.AppConfig.ListenAddr))
}
