package signups

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/netarcx/Mentor-Manager-sub001/app/config"
	"github.com/netarcx/Mentor-Manager-sub001/app/database"
	"github.com/netarcx/Mentor-Manager-sub001/app/models"
)

var validate = validator.New()

// Store calls go through these so tests can stand in fakes.
var (
	getShiftByID  = database.GetShiftByID
	getMentorByID = database.GetMentorByID
	createSignup  = database.CreateSignup
)

func CreateSignupAPI(c *fiber.Ctx) error {
	type SignupRequest struct {
		MentorID    string  `json:"mentor_id" validate:"required,uuid"`
		ShiftID     string  `json:"shift_id" validate:"required,uuid"`
		CustomStart *string `json:"custom_start"`
		CustomEnd   *string `json:"custom_end"`
		Note        string  `json:"note"`
	}

	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "mentor_id and shift_id are required UUIDs"})
	}

	db := config.GetDB()

	shift, err := getShiftByID(db, req.ShiftID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Shift not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch shift"})
	}
	if shift.Cancelled {
		return c.Status(400).JSON(fiber.Map{"error": "Cannot sign up for a cancelled shift"})
	}

	if _, err := getMentorByID(db, req.MentorID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Mentor not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch mentor"})
	}

	signup := &models.Signup{
		MentorID:    req.MentorID,
		ShiftID:     req.ShiftID,
		CustomStart: req.CustomStart,
		CustomEnd:   req.CustomEnd,
		Note:        req.Note,
	}
	if err := createSignup(db, signup); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return c.Status(409).JSON(fiber.Map{"error": "Mentor is already signed up for this shift"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create signup"})
	}

	return c.Status(201).JSON(fiber.Map{"signup": signup})
}

func UpdateSignupAPI(c *fiber.Ctx) error {
	type UpdateRequest struct {
		CustomStart *string `json:"custom_start"`
		CustomEnd   *string `json:"custom_end"`
		Note        string  `json:"note"`
	}

	var req UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	signup := &models.Signup{
		ID:          c.Params("id"),
		CustomStart: req.CustomStart,
		CustomEnd:   req.CustomEnd,
		Note:        req.Note,
	}
	if err := database.UpdateSignup(config.GetDB(), signup); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Signup not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update signup"})
	}
	return c.JSON(fiber.Map{"signup": signup})
}

func DeleteSignupAPI(c *fiber.Ctx) error {
	if err := database.DeleteSignup(config.GetDB(), c.Params("id")); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Signup not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete signup"})
	}
	return c.SendStatus(204)
}

func CheckInAPI(c *fiber.Ctx) error {
	now := time.Now().In(config.GetLocation())
	if err := database.CheckInSignup(config.GetDB(), c.Params("id"), now); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Signup not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to check in"})
	}
	return c.JSON(fiber.Map{"message": "Checked in", "checked_in_at": now})
}

func CheckOutAPI(c *fiber.Ctx) error {
	now := time.Now().In(config.GetLocation())
	if err := database.CheckOutSignup(config.GetDB(), c.Params("id"), now); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Signup not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to check out"})
	}
	return c.JSON(fiber.Map{"message": "Checked out", "checked_out_at": now})
}

// KioskMiddleware guards the workshop-tablet endpoints with the shared
// kiosk token.
func KioskMiddleware(c *fiber.Ctx) error {
	token := config.AppConfig.KioskToken
	if token == "" || c.Get("X-Kiosk-Token") != token {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid kiosk token"})
	}
	return c.Next()
}

// KioskCheckInAPI checks a mentor into today's shift they are signed up
// for, identified by mentor id alone.
func KioskCheckInAPI(c *fiber.Ctx) error {
	return kioskStamp(c, true)
}

func KioskCheckOutAPI(c *fiber.Ctx) error {
	return kioskStamp(c, false)
}

func kioskStamp(c *fiber.Ctx, checkIn bool) error {
	type KioskRequest struct {
		MentorID string `json:"mentor_id" validate:"required,uuid"`
	}

	var req KioskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "mentor_id is required and must be a UUID"})
	}

	db := config.GetDB()
	loc := config.GetLocation()
	now := time.Now().In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	records, err := database.GetSignupRecordsInRange(db, today, today)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch signups"})
	}

	for _, r := range records {
		if r.MentorID != req.MentorID {
			continue
		}
		if checkIn {
			if err := database.CheckInSignup(db, r.SignupID, now); err != nil {
				return c.Status(500).JSON(fiber.Map{"error": "Failed to check in"})
			}
			return c.JSON(fiber.Map{"message": "Checked in", "signup_id": r.SignupID})
		}
		if err := database.CheckOutSignup(db, r.SignupID, now); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to check out"})
		}
		return c.JSON(fiber.Map{"message": "Checked out", "signup_id": r.SignupID})
	}

	return c.Status(404).JSON(fiber.Map{"error": "No signup for this mentor today"})
}
