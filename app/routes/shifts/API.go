package shifts

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/netarcx/Mentor-Manager-sub001/app/config"
	"github.com/netarcx/Mentor-Manager-sub001/app/database"
	"github.com/netarcx/Mentor-Manager-sub001/app/models"
	"github.com/netarcx/Mentor-Manager-sub001/app/services"
)

var validate = validator.New()

// GetShiftsAPI lists shifts in a date range (default: the next four
// weeks), each with its signups attached.
func GetShiftsAPI(c *fiber.Ctx) error {
	loc := config.GetLocation()
	now := time.Now().In(loc)
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	to := from.AddDate(0, 0, 28)

	if s := c.Query("start"); s != "" {
		parsed, err := time.ParseInLocation("2006-01-02", s, loc)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid start date. Use YYYY-MM-DD"})
		}
		from = parsed
	}
	if s := c.Query("end"); s != "" {
		parsed, err := time.ParseInLocation("2006-01-02", s, loc)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid end date. Use YYYY-MM-DD"})
		}
		to = parsed
	}

	shifts, err := database.GetShiftsInRange(config.GetDB(), from, to)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch shifts"})
	}

	for _, s := range shifts {
		signups, err := database.GetSignupsByShift(config.GetDB(), s.ID)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch signups"})
		}
		s.Signups = signups
	}

	return c.JSON(fiber.Map{
		"shifts": shifts,
		"count":  len(shifts),
	})
}

func GetShiftAPI(c *fiber.Ctx) error {
	shift, err := database.GetShiftByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Shift not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch shift"})
	}

	signups, err := database.GetSignupsByShift(config.GetDB(), shift.ID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch signups"})
	}
	shift.Signups = signups

	return c.JSON(fiber.Map{"shift": shift})
}

type shiftRequest struct {
	Date      string `json:"date" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
	Label     string `json:"label"`
	Cancelled bool   `json:"cancelled"`
}

func CreateShiftAPI(c *fiber.Ctx) error {
	var req shiftRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "date, start_time and end_time are required"})
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, config.GetLocation())
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date format. Use YYYY-MM-DD"})
	}

	exists, err := database.ShiftExists(config.GetDB(), date, req.StartTime, req.EndTime)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to check existing shifts"})
	}
	if exists {
		return c.Status(409).JSON(fiber.Map{"error": "A shift with the same date and times already exists"})
	}

	shift := &models.Shift{
		Date:      date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Label:     req.Label,
	}
	if err := database.CreateShift(config.GetDB(), shift); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return c.Status(409).JSON(fiber.Map{"error": "A shift with the same date and times already exists"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create shift"})
	}

	return c.Status(201).JSON(fiber.Map{"shift": shift})
}

func UpdateShiftAPI(c *fiber.Ctx) error {
	var req shiftRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "date, start_time and end_time are required"})
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, config.GetLocation())
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date format. Use YYYY-MM-DD"})
	}

	shift := &models.Shift{
		ID:        c.Params("id"),
		Date:      date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Label:     req.Label,
		Cancelled: req.Cancelled,
	}
	if err := database.UpdateShift(config.GetDB(), shift); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Shift not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update shift"})
	}

	return c.JSON(fiber.Map{"shift": shift})
}

func CancelShiftAPI(c *fiber.Ctx) error {
	if err := database.CancelShift(config.GetDB(), c.Params("id")); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Shift not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to cancel shift"})
	}
	return c.JSON(fiber.Map{"message": "Shift cancelled"})
}

func DeleteShiftAPI(c *fiber.Ctx) error {
	err := database.DeleteShift(config.GetDB(), c.Params("id"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Shift not found"})
		}
		if errors.Is(err, database.ErrHasSignups) {
			return c.Status(409).JSON(fiber.Map{"error": "Shift has signups and cannot be deleted; cancel it instead"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete shift"})
	}
	return c.SendStatus(204)
}

// GenerateShiftsAPI expands the weekly templates into concrete shifts
// for the coming weeks. Re-running the same window creates nothing new.
func GenerateShiftsAPI(c *fiber.Ctx) error {
	type GenerateRequest struct {
		WeeksAhead int `json:"weeksAhead"`
	}

	req := GenerateRequest{WeeksAhead: services.DefaultGenerateWeeks}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
		}
	}
	if req.WeeksAhead < 0 || req.WeeksAhead > 52 {
		return c.Status(400).JSON(fiber.Map{"error": "weeksAhead must be between 1 and 52"})
	}

	now := time.Now().In(config.GetLocation())
	created, err := services.GenerateShifts(config.GetDB(), now, req.WeeksAhead)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to generate shifts"})
	}

	return c.JSON(fiber.Map{"generated": created})
}

// --- Templates ---

func GetTemplatesAPI(c *fiber.Ctx) error {
	templates, err := database.GetAllTemplates(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch templates"})
	}
	return c.JSON(fiber.Map{
		"templates": templates,
		"count":     len(templates),
	})
}

func CreateTemplateAPI(c *fiber.Ctx) error {
	var tmpl models.ShiftTemplate
	if err := c.BodyParser(&tmpl); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(&tmpl); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed: " + err.Error()})
	}

	if err := database.CreateTemplate(config.GetDB(), &tmpl); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create template"})
	}
	return c.Status(201).JSON(fiber.Map{"template": tmpl})
}

// UpdateTemplateAPI edits a template. Already-generated shifts keep the
// values they were created with.
func UpdateTemplateAPI(c *fiber.Ctx) error {
	var tmpl models.ShiftTemplate
	if err := c.BodyParser(&tmpl); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	tmpl.ID = c.Params("id")
	if err := validate.Struct(&tmpl); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed: " + err.Error()})
	}

	if err := database.UpdateTemplate(config.GetDB(), &tmpl); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Template not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update template"})
	}
	return c.JSON(fiber.Map{"template": tmpl})
}

func DeleteTemplateAPI(c *fiber.Ctx) error {
	if err := database.DeleteTemplate(config.GetDB(), c.Params("id")); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Template not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete template"})
	}
	return c.SendStatus(204)
}
