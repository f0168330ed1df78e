package settings

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/netarcx/Mentor-Manager-sub001/app/config"
	"github.com/netarcx/Mentor-Manager-sub001/app/database"
)

// The settings API exposes the raw key/value store used for branding
// and feature toggles (team name, logo URL, colors, public dashboard
// toggle). Notification configuration has its own typed endpoints and
// its keys are hidden here.

func GetSettingsAPI(c *fiber.Ctx) error {
	all, err := database.GetAllSettings(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load settings"})
	}

	filtered := make(map[string]string)
	for k, v := range all {
		if strings.HasPrefix(k, "notifications.") {
			continue
		}
		filtered[k] = v
	}

	return c.JSON(fiber.Map{"settings": filtered})
}

func UpdateSettingsAPI(c *fiber.Ctx) error {
	var pairs map[string]string
	if err := c.BodyParser(&pairs); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if len(pairs) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "No settings provided"})
	}

	for k, v := range pairs {
		if k == "" {
			return c.Status(400).JSON(fiber.Map{"error": "Setting key cannot be empty"})
		}
		if strings.HasPrefix(k, "notifications.") {
			return c.Status(400).JSON(fiber.Map{"error": "Use the notification settings endpoints for key " + k})
		}
		if err := database.SetSetting(config.GetDB(), k, v); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to save setting " + k})
		}
	}

	return c.JSON(fiber.Map{"message": "Settings saved", "count": len(pairs)})
}
