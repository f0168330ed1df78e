package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netarcx/Mentor-Manager-sub001/app/models"
)

func TestPlanShifts(t *testing.T) {
	// Monday March 10 2025.
	from := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

	templates := []*models.ShiftTemplate{
		{ID: "t1", DayOfWeek: 1, StartTime: "18:00", EndTime: "21:00", Label: "Build night"},
		{ID: "t2", DayOfWeek: 6, StartTime: "09:00", EndTime: "13:00", Label: "Saturday"},
	}

	planned := PlanShifts(templates, map[string]bool{}, from, 2)

	// 2 Mondays (incl. the start day) + 2 Saturdays in a 14-day window.
	require.Len(t, planned, 4)
	assert.Equal(t, "18:00", planned[0].StartTime)
	assert.Equal(t, time.Monday, planned[0].Date.Weekday())
	assert.Equal(t, time.Saturday, planned[1].Date.Weekday())

	for _, p := range planned {
		assert.Equal(t, 0, p.Date.Hour(), "planned dates are midnight-normalized")
	}
}

func TestPlanShiftsIdempotent(t *testing.T) {
	from := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	templates := []*models.ShiftTemplate{
		{ID: "t1", DayOfWeek: 1, StartTime: "18:00", EndTime: "21:00"},
	}

	existing := map[string]bool{}
	first := PlanShifts(templates, existing, from, 4)
	require.Len(t, first, 4)

	// Re-planning against the index the first run populated creates
	// nothing new.
	second := PlanShifts(templates, existing, from, 4)
	assert.Empty(t, second)
}

func TestPlanShiftsSkipsExistingWindow(t *testing.T) {
	from := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	templates := []*models.ShiftTemplate{
		{ID: "t1", DayOfWeek: 1, StartTime: "18:00", EndTime: "21:00"},
	}

	// The first Monday already has a shift with the same window.
	existing := map[string]bool{
		ShiftKey(from, "18:00", "21:00"): true,
	}

	planned := PlanShifts(templates, existing, from, 2)
	require.Len(t, planned, 1)
	assert.Equal(t, from.AddDate(0, 0, 7), planned[0].Date)
}

func TestPlanShiftsMidDayStartSkipsTodaysExisting(t *testing.T) {
	// A mid-afternoon run must still recognize today's existing shift,
	// which is stored under a midnight date.
	from := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)
	midnight := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	templates := []*models.ShiftTemplate{
		{ID: "t1", DayOfWeek: 1, StartTime: "18:00", EndTime: "21:00"},
	}

	existing := map[string]bool{
		ShiftKey(midnight, "18:00", "21:00"): true,
	}

	planned := PlanShifts(templates, existing, from, 1)
	assert.Empty(t, planned)
}

func TestPlanShiftsInvalidDayOfWeekSkipped(t *testing.T) {
	from := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	templates := []*models.ShiftTemplate{
		{ID: "bad", DayOfWeek: 9, StartTime: "10:00", EndTime: "12:00"},
		{ID: "neg", DayOfWeek: -1, StartTime: "10:00", EndTime: "12:00"},
		{ID: "ok", DayOfWeek: 2, StartTime: "18:00", EndTime: "20:00"},
	}

	planned := PlanShifts(templates, map[string]bool{}, from, 1)

	// Only the valid Tuesday template produced anything.
	require.Len(t, planned, 1)
	assert.Equal(t, time.Tuesday, planned[0].Date.Weekday())
}

func TestPlanShiftsDefaultWeeks(t *testing.T) {
	from := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	templates := []*models.ShiftTemplate{
		{ID: "t1", DayOfWeek: 1, StartTime: "18:00", EndTime: "21:00"},
	}

	planned := PlanShifts(templates, map[string]bool{}, from, 0)
	assert.Len(t, planned, DefaultGenerateWeeks)
}

func TestPlanShiftsTwoTemplatesSameDay(t *testing.T) {
	from := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	templates := []*models.ShiftTemplate{
		{ID: "am", DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00"},
		{ID: "pm", DayOfWeek: 1, StartTime: "18:00", EndTime: "21:00"},
	}

	planned := PlanShifts(templates, map[string]bool{}, from, 1)
	assert.Len(t, planned, 2)
}
