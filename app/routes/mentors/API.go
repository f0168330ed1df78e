package mentors

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

func GetAllMentorsAPI(c *fiber.Ctx) error {
	activeOnly := c.QueryBool("active", false)

	mentors, err := database.GetAllMentors(config.GetDB(), activeOnly)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch mentors"})
	}

	return c.JSON(fiber.Map{
		"mentors": mentors,
		"count":   len(mentors),
	})
}

func GetMentorAPI(c *fiber.Ctx) error {
	mentor, err := database.GetMentorByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Mentor not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch mentor"})
	}
	return c.JSON(fiber.Map{"mentor": mentor})
}

func CreateMentorAPI(c *fiber.Ctx) error {
	var mentor models.Mentor
	if err := c.BodyParser(&mentor); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(&mentor); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed: " + err.Error()})
	}

	if err := database.CreateMentor(config.GetDB(), &mentor); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create mentor"})
	}

	return c.Status(201).JSON(fiber.Map{"mentor": mentor})
}

func UpdateMentorAPI(c *fiber.Ctx) error {
	var mentor models.Mentor
	if err := c.BodyParser(&mentor); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	mentor.ID = c.Params("id")
	if err := validate.Struct(&mentor); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed: " + err.Error()})
	}

	if err := database.UpdateMentor(config.GetDB(), &mentor); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Mentor not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update mentor"})
	}

	return c.JSON(fiber.Map{"mentor": mentor})
}

func DeleteMentorAPI(c *fiber.Ctx) error {
	if err := database.DeleteMentor(config.GetDB(), c.Params("id")); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Mentor not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete mentor"})
	}
	return c.SendStatus(204)
}

func GetMentorAdjustmentsAPI(c *fiber.Ctx) error {
	adjustments, err := database.GetAdjustmentsByMentor(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch adjustments"})
	}
	return c.JSON(fiber.Map{
		"adjustments": adjustments,
		"count":       len(adjustments),
	})
}

func CreateAdjustmentAPI(c *fiber.Ctx) error {
	type AdjustmentRequest struct {
		Delta  float64 `json:"delta" validate:"required"`
		Reason string  `json:"reason" validate:"required"`
		Date   string  `json:"date"`
	}

	var req AdjustmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed: " + err.Error()})
	}

	mentorID := c.Params("id")
	if _, err := database.GetMentorByID(config.GetDB(), mentorID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Mentor not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch mentor"})
	}

	date := time.Now().In(config.GetLocation())
	if req.Date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", req.Date, config.GetLocation())
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid date format. Use YYYY-MM-DD"})
		}
		date = parsed
	}

	adjustment := &models.HourAdjustment{
		MentorID: mentorID,
		Delta:    req.Delta,
		Reason:   req.Reason,
		Date:     date,
	}
	if err := database.CreateAdjustment(config.GetDB(), adjustment); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create adjustment"})
	}

	return c.Status(201).JSON(fiber.Map{"adjustment": adjustment})
}

func DeleteAdjustmentAPI(c *fiber.Ctx) error {
	if err := database.DeleteAdjustment(config.GetDB(), c.Params("adjustmentId")); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Adjustment not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete adjustment"})
	}
	return c.SendStatus(204)
}
