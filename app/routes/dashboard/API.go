package dashboard

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/netarcx/Mentor-Manager-sub001/app/config"
	"github.com/netarcx/Mentor-Manager-sub001/app/database"
)

func DashboardPage(c *fiber.Ctx) error {
	settings, err := database.GetAllSettings(config.GetDB())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load settings")
	}

	teamName := settings["branding.team_name"]
	if teamName == "" {
		teamName = "Workshop"
	}

	return c.Render("dashboard/index", fiber.Map{
		"Title":    teamName + " - Workshop Status",
		"TeamName": teamName,
		"LogoURL":  settings["branding.logo_url"],
	})
}

// GetDashboardAPI returns today's shifts with their signups plus who is
// currently checked in.
func GetDashboardAPI(c *fiber.Ctx) error {
	db := config.GetDB()
	loc := config.GetLocation()
	now := time.Now().In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	shifts, err := database.GetShiftsInRange(db, today, today)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch shifts"})
	}

	checkedIn := 0
	for _, s := range shifts {
		signups, err := database.GetSignupsByShift(db, s.ID)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch signups"})
		}
		s.Signups = signups
		for _, su := range signups {
			if su.CheckedInAt != nil && su.CheckedOutAt == nil {
				checkedIn++
			}
		}
	}

	attendance, err := database.GetAttendanceByDate(db, today)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch attendance"})
	}
	studentsPresent := 0
	for _, a := range attendance {
		if a.CheckedInAt != nil && a.CheckedOutAt == nil {
			studentsPresent++
		}
	}

	return c.JSON(fiber.Map{
		"date":             today.Format("2006-01-02"),
		"shifts":           shifts,
		"mentors_present":  checkedIn,
		"students_present": studentsPresent,
		"attendance_count": len(attendance),
	})
}
