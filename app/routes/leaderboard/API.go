package leaderboard

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/netarcx/Mentor-Manager-sub001/app/config"
	"github.com/netarcx/Mentor-Manager-sub001/app/database"
	"github.com/netarcx/Mentor-Manager-sub001/app/services"
)

// GetLeaderboardAPI aggregates mentor hours from checked-in signups
// plus manual adjustments, optionally scoped to an inclusive date
// range (e.g. a season's start and end).
func GetLeaderboardAPI(c *fiber.Ctx) error {
	loc := config.GetLocation()
	now := time.Now().In(loc)

	// Default range: the past year.
	from := now.AddDate(-1, 0, 0)
	to := now

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

	db := config.GetDB()

	records, err := database.GetSignupRecordsInRange(db, from, to)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch signup records"})
	}

	adjustments, err := database.GetAdjustmentTotalsInRange(db, from, to)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch adjustments"})
	}

	timeRecords := make([]services.TimeRecord, 0, len(records))
	for _, r := range records {
		timeRecords = append(timeRecords, services.TimeRecord{
			SubjectID:   r.MentorID,
			SubjectName: r.MentorName,
			Date:        r.ShiftDate,
			Start:       r.CheckedInAt,
			End:         r.CheckedOutAt,
		})
	}

	summary := services.BuildLeaderboard(timeRecords, adjustments, now)

	return c.JSON(fiber.Map{
		"leaderboard": summary,
		"start":       from.Format("2006-01-02"),
		"end":         to.Format("2006-01-02"),
	})
}
