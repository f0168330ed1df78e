package notifications

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/netarcx/Mentor-Manager-sub001/app/config"
	"github.com/netarcx/Mentor-Manager-sub001/app/database"
	"github.com/netarcx/Mentor-Manager-sub001/app/models"
	"github.com/netarcx/Mentor-Manager-sub001/app/routes/auth"
	"github.com/netarcx/Mentor-Manager-sub001/app/services"
)

// dispatcher is package-level so both triggers share one HTTP client.
var dispatcher services.Dispatcher = services.NewWebhookDispatcher()

// TriggerAuthMiddleware admits either the shared-secret header (used by
// the external cron) or a valid admin session. Only a session caller is
// treated as an operator, so `manual=true` requires one.
func TriggerAuthMiddleware(c *fiber.Ctx) error {
	secret := config.AppConfig.NotifySecret
	if secret != "" && c.Get("X-Notify-Secret") == secret {
		c.Locals("trigger_operator", false)
		return c.Next()
	}

	tokenString := c.Cookies("jwt_token")
	if tokenString == "" {
		header := c.Get("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			tokenString = strings.TrimPrefix(header, "Bearer ")
		}
	}
	if tokenString != "" {
		if _, err := auth.ValidateJWT(tokenString); err == nil {
			c.Locals("trigger_operator", true)
			return c.Next()
		}
	}

	return c.Status(401).JSON(fiber.Map{"error": "Admin session or notify secret required"})
}

func isManualTrigger(c *fiber.Ctx) bool {
	operator, _ := c.Locals("trigger_operator").(bool)
	return operator && c.QueryBool("manual", false)
}

// classifyTriggerError maps a trigger failure to a response. Delivery
// failures are a gateway problem and keep their detail; anything else
// (settings load, shift queries, last-sent persistence) is internal and
// must not leak storage detail to the client.
func classifyTriggerError(err error) (int, string) {
	if errors.Is(err, services.ErrDispatch) {
		return 502, err.Error()
	}
	return 500, "Internal server error"
}

func TriggerReminderAPI(c *fiber.Ctx) error {
	now := time.Now().In(config.GetLocation())

	result, err := services.RunReminder(c.Context(), config.GetDB(), dispatcher, now, isManualTrigger(c))
	if err != nil {
		log.Printf("Reminder trigger failed: %v", err)
		status, message := classifyTriggerError(err)
		return c.Status(status).JSON(fiber.Map{"ok": false, "error": message})
	}
	return c.JSON(result)
}

func TriggerDigestAPI(c *fiber.Ctx) error {
	now := time.Now().In(config.GetLocation())

	result, err := services.RunDigest(c.Context(), config.GetDB(), dispatcher, now, isManualTrigger(c))
	if err != nil {
		log.Printf("Digest trigger failed: %v", err)
		status, message := classifyTriggerError(err)
		return c.Status(status).JSON(fiber.Map{"ok": false, "error": message})
	}
	return c.JSON(result)
}

func GetReminderSettingsAPI(c *fiber.Ctx) error {
	settings, err := database.LoadNotificationSettings(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load notification settings"})
	}
	return c.JSON(settings)
}

func UpdateReminderSettingsAPI(c *fiber.Ctx) error {
	type SettingsRequest struct {
		Enabled       bool     `json:"enabled"`
		Day           string   `json:"day"`
		Time          string   `json:"time"`
		LookAheadDays int      `json:"lookAheadDays"`
		Endpoints     []string `json:"endpoints"`
	}

	var req SettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if !validDayOfWeek(req.Day) {
		return c.Status(400).JSON(fiber.Map{"error": "day must be a day-of-week between 0 and 6"})
	}
	if !validClock(req.Time) {
		return c.Status(400).JSON(fiber.Map{"error": "time must be HH:MM in 24-hour format"})
	}

	settings := &models.NotificationSettings{
		Enabled:       req.Enabled,
		ReminderDay:   req.Day,
		ReminderTime:  req.Time,
		LookAheadDays: services.ClampLookAhead(req.LookAheadDays),
		Endpoints:     req.Endpoints,
	}
	if err := database.SaveNotificationSettings(config.GetDB(), settings); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save notification settings"})
	}

	return c.JSON(settings)
}

func GetDigestSettingsAPI(c *fiber.Ctx) error {
	settings, err := database.LoadDigestSettings(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load digest settings"})
	}
	return c.JSON(settings)
}

func UpdateDigestSettingsAPI(c *fiber.Ctx) error {
	type DigestRequest struct {
		Enabled   bool     `json:"enabled"`
		Frequency string   `json:"frequency"`
		Day       string   `json:"day"`
		Time      string   `json:"time"`
		Endpoints []string `json:"endpoints"`
	}

	var req DigestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	frequency := models.DigestFrequency(req.Frequency)
	if frequency != models.DigestWeekly && frequency != models.DigestMonthly {
		return c.Status(400).JSON(fiber.Map{"error": "frequency must be weekly or monthly"})
	}
	if frequency == models.DigestWeekly && !validDayOfWeek(req.Day) {
		return c.Status(400).JSON(fiber.Map{"error": "day must be a day-of-week between 0 and 6"})
	}
	if frequency == models.DigestMonthly && !validDayOfMonth(req.Day) {
		return c.Status(400).JSON(fiber.Map{"error": "day must be a day-of-month between 1 and 31"})
	}
	if !validClock(req.Time) {
		return c.Status(400).JSON(fiber.Map{"error": "time must be HH:MM in 24-hour format"})
	}

	settings := &models.DigestSettings{
		Enabled:   req.Enabled,
		Frequency: frequency,
		Day:       req.Day,
		Time:      req.Time,
		Endpoints: req.Endpoints,
	}
	if err := database.SaveDigestSettings(config.GetDB(), settings); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save digest settings"})
	}

	return c.JSON(settings)
}

func validDayOfWeek(day string) bool {
	return len(day) == 1 && day[0] >= '0' && day[0] <= '6'
}

func validDayOfMonth(day string) bool {
	n := 0
	for _, r := range day {
		if r < '0' || r > '9' {
			return false
		}
		n = n*10 + int(r-'0')
	}
	return n >= 1 && n <= 31
}

func validClock(value string) bool {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return false
	}
	for _, s := range []string{parts[0], parts[1]} {
		for _, r := range s {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	h := int(parts[0][0]-'0')*10 + int(parts[0][1]-'0')
	m := int(parts[1][0]-'0')*10 + int(parts[1][1]-'0')
	return h <= 23 && m <= 59
}
