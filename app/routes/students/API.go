package students

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

func GetAllStudentsAPI(c *fiber.Ctx) error {
	activeOnly := c.QueryBool("active", false)

	students, err := database.GetAllStudents(config.GetDB(), activeOnly)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch students"})
	}

	return c.JSON(fiber.Map{
		"students": students,
		"count":    len(students),
	})
}

func GetStudentAPI(c *fiber.Ctx) error {
	student, err := database.GetStudentByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch student"})
	}
	return c.JSON(fiber.Map{"student": student})
}

func CreateStudentAPI(c *fiber.Ctx) error {
	var student models.Student
	if err := c.BodyParser(&student); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(&student); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed: " + err.Error()})
	}

	if err := database.CreateStudent(config.GetDB(), &student); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create student"})
	}

	return c.Status(201).JSON(fiber.Map{"student": student})
}

func UpdateStudentAPI(c *fiber.Ctx) error {
	var student models.Student
	if err := c.BodyParser(&student); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	student.ID = c.Params("id")
	if err := validate.Struct(&student); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed: " + err.Error()})
	}

	if err := database.UpdateStudent(config.GetDB(), &student); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update student"})
	}

	return c.JSON(fiber.Map{"student": student})
}

func DeleteStudentAPI(c *fiber.Ctx) error {
	if err := database.DeleteStudent(config.GetDB(), c.Params("id")); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete student"})
	}
	return c.SendStatus(204)
}

func GetAttendanceByDateAPI(c *fiber.Ctx) error {
	dateStr := c.Params("date")
	date, err := time.ParseInLocation("2006-01-02", dateStr, config.GetLocation())
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date format. Use YYYY-MM-DD"})
	}

	records, err := database.GetAttendanceByDate(config.GetDB(), date)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch attendance records"})
	}

	return c.JSON(fiber.Map{
		"attendance": records,
		"count":      len(records),
		"date":       dateStr,
	})
}

func CheckInStudentAPI(c *fiber.Ctx) error {
	type CheckInRequest struct {
		StudentID string `json:"student_id" validate:"required,uuid"`
	}

	var req CheckInRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "student_id is required and must be a UUID"})
	}

	if _, err := database.GetStudentByID(config.GetDB(), req.StudentID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch student"})
	}

	now := time.Now().In(config.GetLocation())
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if err := database.CheckInStudent(config.GetDB(), req.StudentID, day, now); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to record check-in"})
	}

	return c.JSON(fiber.Map{"message": "Checked in", "student_id": req.StudentID})
}

func CheckOutStudentAPI(c *fiber.Ctx) error {
	type CheckOutRequest struct {
		StudentID string `json:"student_id" validate:"required,uuid"`
	}

	var req CheckOutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "student_id is required and must be a UUID"})
	}

	now := time.Now().In(config.GetLocation())
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if err := database.CheckOutStudent(config.GetDB(), req.StudentID, day, now); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "No check-in found for today"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to record check-out"})
	}

	return c.JSON(fiber.Map{"message": "Checked out", "student_id": req.StudentID})
}

// GetAttendanceStatsAPI aggregates student hours and attendance rates,
// optionally scoped to an inclusive date range (e.g. a season).
func GetAttendanceStatsAPI(c *fiber.Ctx) error {
	now := time.Now().In(config.GetLocation())

	from, to, err := parseRange(c.Query("start"), c.Query("end"), now)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	records, err := database.GetAttendanceRecordsInRange(config.GetDB(), from, to)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch attendance records"})
	}

	timeRecords := make([]services.TimeRecord, 0, len(records))
	for _, r := range records {
		timeRecords = append(timeRecords, services.TimeRecord{
			SubjectID:   r.StudentID,
			SubjectName: r.StudentName,
			Date:        r.Date,
			Start:       r.CheckedInAt,
			End:         r.CheckedOutAt,
		})
	}

	stats := services.AggregateHours(timeRecords, now)

	return c.JSON(fiber.Map{
		"stats": stats,
		"start": from.Format("2006-01-02"),
		"end":   to.Format("2006-01-02"),
	})
}

func parseRange(startStr, endStr string, now time.Time) (time.Time, time.Time, error) {
	// Default range: the season so far, approximated as the past year.
	from := now.AddDate(-1, 0, 0)
	to := now

	loc := now.Location()
	if startStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", startStr, loc)
		if err != nil {
			return from, to, errors.New("Invalid start date. Use YYYY-MM-DD")
		}
		from = parsed
	}
	if endStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", endStr, loc)
		if err != nil {
			return from, to, errors.New("Invalid end date. Use YYYY-MM-DD")
		}
		to = parsed
	}
	return from, to, nil
}
