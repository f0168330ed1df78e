package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netarcx/Mentor-Manager-sub001/app/models"
)

// Wednesday March 12 2025, 09:15 local.
var wednesday0915 = time.Date(2025, 3, 12, 9, 15, 0, 0, time.UTC)

func TestCheckScheduleGuardOrder(t *testing.T) {
	sentEarlierToday := time.Date(2025, 3, 12, 6, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		enabled  bool
		monthly  bool
		day      string
		time     string
		lastSent *time.Time
		now      time.Time
		manual   bool
		wantDue  bool
		reason   string
	}{
		{
			name:    "disabled skips even on a perfect match",
			enabled: false, day: "3", time: "09:00", now: wednesday0915,
			reason: "Notifications are disabled",
		},
		{
			name:    "disabled beats manual",
			enabled: false, day: "3", time: "09:00", now: wednesday0915, manual: true,
			reason: "Notifications are disabled",
		},
		{
			name:    "day mismatch skips before time is considered",
			enabled: true, day: "4", time: "23:59", now: wednesday0915,
			reason: "Not the scheduled day",
		},
		{
			name:    "within the window fires",
			enabled: true, day: "3", time: "09:00", now: wednesday0915,
			wantDue: true,
		},
		{
			name:    "thirty minutes out still fires",
			enabled: true, day: "3", time: "09:45", now: wednesday0915,
			wantDue: true,
		},
		{
			name:    "thirty-one minutes out skips",
			enabled: true, day: "3", time: "09:46", now: wednesday0915,
			reason: "Outside the scheduled window",
		},
		{
			name:    "already sent today skips regardless of match",
			enabled: true, day: "3", time: "09:00", now: wednesday0915,
			lastSent: &sentEarlierToday,
			reason:   "Already sent today",
		},
		{
			name:    "sent yesterday does not block",
			enabled: true, day: "3", time: "09:00", now: wednesday0915,
			lastSent: ts(wednesday0915.AddDate(0, 0, -1)),
			wantDue:  true,
		},
		{
			name:    "manual bypasses day, time and last-sent",
			enabled: true, day: "0", time: "23:00", now: wednesday0915,
			lastSent: &sentEarlierToday, manual: true,
			wantDue: true,
		},
		{
			name:    "monthly matches day of month",
			enabled: true, monthly: true, day: "12", time: "09:00", now: wednesday0915,
			wantDue: true,
		},
		{
			name:    "monthly mismatch",
			enabled: true, monthly: true, day: "13", time: "09:00", now: wednesday0915,
			reason: "Not the scheduled day of month",
		},
		{
			name:    "unparseable day never fires",
			enabled: true, day: "wednesday", time: "09:00", now: wednesday0915,
			reason: `Invalid scheduled day "wednesday"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckSchedule(tt.enabled, tt.monthly, tt.day, tt.time, tt.lastSent, tt.now, tt.manual)
			assert.Equal(t, tt.wantDue, got.Due)
			if !tt.wantDue {
				assert.Equal(t, tt.reason, got.Reason)
			}
		})
	}
}

// The scheduling window is an absolute minutes-since-midnight
// difference and does not wrap at midnight: a 23:50 target checked at
// 00:05 the next day measures 1425 minutes apart, not 15. Known
// limitation, kept on purpose.
func TestCheckScheduleNoMidnightWraparound(t *testing.T) {
	fridayJustPastMidnight := time.Date(2025, 3, 14, 0, 5, 0, 0, time.UTC)

	got := CheckSchedule(true, false, "5", "23:50", nil, fridayJustPastMidnight, false)
	assert.False(t, got.Due)
	assert.Equal(t, "Outside the scheduled window", got.Reason)
}

func TestClampLookAhead(t *testing.T) {
	assert.Equal(t, 1, ClampLookAhead(0))
	assert.Equal(t, 1, ClampLookAhead(-5))
	assert.Equal(t, 30, ClampLookAhead(45))
	assert.Equal(t, 7, ClampLookAhead(7))
	assert.Equal(t, 1, ClampLookAhead(1))
	assert.Equal(t, 30, ClampLookAhead(30))
}

func TestComposeReminder(t *testing.T) {
	day := time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC)
	shifts := []*models.Shift{
		{Date: day, StartTime: "18:00", EndTime: "21:00", Label: "Build night"},
	}
	mentors := []*models.Mentor{
		{ID: "a", FirstName: "Ada", LastName: "Lovelace"},
		{ID: "b", FirstName: "Grace", LastName: "Hopper"},
		{ID: "c", FirstName: "Mary", LastName: "Jackson"},
	}
	signedUp := map[string]bool{"b": true}

	title, body, needed := ComposeReminder(shifts, mentors, signedUp, 7)

	assert.Equal(t, "Workshop signup reminder", title)
	require.Len(t, needed, 2)
	assert.Equal(t, []string{"Ada Lovelace", "Mary Jackson"}, needed)
	assert.Contains(t, body, "Build night")
	assert.Contains(t, body, "Ada Lovelace")
	assert.NotContains(t, body, "Grace Hopper")
}

func TestComposeReminderEveryoneCovered(t *testing.T) {
	mentors := []*models.Mentor{{ID: "a", FirstName: "Ada"}}
	signedUp := map[string]bool{"a": true}

	_, body, needed := ComposeReminder(nil, mentors, signedUp, 7)

	assert.Empty(t, needed)
	assert.Contains(t, body, "(none scheduled)")
	assert.Contains(t, body, "Every mentor has an upcoming signup")
}

func TestComposeDigest(t *testing.T) {
	now := time.Date(2025, 3, 12, 18, 0, 0, 0, time.UTC)
	stats := []SubjectStats{
		{SubjectID: "a", Hours: 4.5},
		{SubjectID: "b", Hours: 2.0},
	}
	upcoming := []*models.Shift{
		{ID: "s1", Signups: []*models.Signup{{ID: "x"}}},
		{ID: "s2"},
	}

	title, body := ComposeDigest(stats, upcoming, now)

	assert.Equal(t, "Workshop activity digest", title)
	assert.Contains(t, body, "6.5 across 2 mentors")
	assert.Contains(t, body, "1 of 2")
}
