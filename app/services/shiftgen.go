package services

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/netarcx/Mentor-Manager-sub001/app/database"
	"github.com/netarcx/Mentor-Manager-sub001/app/models"
)

// DefaultGenerateWeeks is the rolling window materialized when the
// caller does not override it.
const DefaultGenerateWeeks = 4

// PlannedShift is a shift the generator wants to create.
type PlannedShift struct {
	Date       time.Time
	StartTime  string
	EndTime    string
	Label      string
	TemplateID string
}

// PlanShifts walks each day in [from, from+weeks*7) and, for every
// template matching that weekday, plans a shift unless one already
// occupies the same date+start+end. Templates with a day-of-week
// outside 0-6 are skipped rather than failing the batch.
func PlanShifts(templates []*models.ShiftTemplate, existing map[string]bool, from time.Time, weeks int) []PlannedShift {
	if weeks <= 0 {
		weeks = DefaultGenerateWeeks
	}
	if existing == nil {
		existing = make(map[string]bool)
	}

	byDay := make(map[int][]*models.ShiftTemplate)
	for _, t := range templates {
		if t.DayOfWeek < 0 || t.DayOfWeek > 6 {
			log.Printf("Skipping template %s with invalid day of week %d", t.ID, t.DayOfWeek)
			continue
		}
		byDay[t.DayOfWeek] = append(byDay[t.DayOfWeek], t)
	}

	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	planned := make([]PlannedShift, 0)
	for i := 0; i < weeks*7; i++ {
		day := start.AddDate(0, 0, i)
		for _, t := range byDay[int(day.Weekday())] {
			key := ShiftKey(day, t.StartTime, t.EndTime)
			if existing[key] {
				continue
			}
			existing[key] = true
			planned = append(planned, PlannedShift{
				Date:       day,
				StartTime:  t.StartTime,
				EndTime:    t.EndTime,
				Label:      t.Label,
				TemplateID: t.ID,
			})
		}
	}
	return planned
}

// ShiftKey is the generator's idempotency key for one concrete shift.
func ShiftKey(date time.Time, startTime, endTime string) string {
	return fmt.Sprintf("%s|%s|%s", date.Format("2006-01-02"), startTime, endTime)
}

// GenerateShifts materializes concrete shifts for the next `weeks`
// weeks from the stored templates. Safe to run repeatedly: a window
// already covered produces zero new shifts. Returns the count created.
func GenerateShifts(db *sql.DB, from time.Time, weeks int) (int, error) {
	if weeks <= 0 {
		weeks = DefaultGenerateWeeks
	}
	// Existing shifts carry midnight dates; a mid-day `from` would
	// miss today's rows in the prefetch.
	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())

	templates, err := database.GetAllTemplates(db)
	if err != nil {
		return 0, err
	}

	windowEnd := from.AddDate(0, 0, weeks*7)
	shifts, err := database.GetShiftsInRange(db, from, windowEnd)
	if err != nil {
		return 0, err
	}
	existing := make(map[string]bool, len(shifts))
	for _, s := range shifts {
		existing[ShiftKey(s.Date, s.StartTime, s.EndTime)] = true
	}

	created := 0
	for _, p := range PlanShifts(templates, existing, from, weeks) {
		templateID := p.TemplateID
		shift := &models.Shift{
			Date:       p.Date,
			StartTime:  p.StartTime,
			EndTime:    p.EndTime,
			Label:      p.Label,
			TemplateID: &templateID,
		}
		if err := database.CreateShift(db, shift); err != nil {
			// A concurrent run may have created the same slot
			// between planning and insert.
			if errors.Is(err, database.ErrDuplicate) {
				continue
			}
			return created, err
		}
		created++
	}
	return created, nil
}
