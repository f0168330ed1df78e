package services

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/netarcx/Mentor-Manager-sub001/app/database"
	"github.com/netarcx/Mentor-Manager-sub001/app/models"
)

// scheduleWindowMinutes is how far either side of the configured
// time-of-day a trigger still counts as on schedule.
const scheduleWindowMinutes = 30

// ScheduleCheck is the outcome of evaluating the notification guards.
type ScheduleCheck struct {
	Due    bool
	Reason string
}

func skip(reason string) ScheduleCheck { return ScheduleCheck{Reason: reason} }

// CheckSchedule evaluates the guards in order, short-circuiting on the
// first failure:
//
//  1. feature enabled
//  2. current day matches the target (weekly: day-of-week 0=Sunday..6,
//     monthly: day-of-month)
//  3. current time-of-day within +/-30 minutes of the target. The
//     comparison is an absolute difference of minutes-since-midnight,
//     so a window straddling midnight is not matched from the other
//     side (a known limitation).
//  4. not already sent on today's local calendar date
//
// Manual (operator-invoked) runs bypass guards 2-4; the enabled flag
// always applies. `now` must already be in the deployment's local zone.
func CheckSchedule(enabled bool, monthly bool, day, timeOfDay string, lastSent *time.Time, now time.Time, manual bool) ScheduleCheck {
	if !enabled {
		return skip("Notifications are disabled")
	}
	if manual {
		return ScheduleCheck{Due: true}
	}

	target, err := strconv.Atoi(day)
	if err != nil {
		return skip(fmt.Sprintf("Invalid scheduled day %q", day))
	}
	if monthly {
		if now.Day() != target {
			return skip("Not the scheduled day of month")
		}
	} else if int(now.Weekday()) != target {
		return skip("Not the scheduled day")
	}

	targetMinutes, err := parseClockMinutes(timeOfDay)
	if err != nil {
		return skip(fmt.Sprintf("Invalid scheduled time %q", timeOfDay))
	}
	nowMinutes := now.Hour()*60 + now.Minute()
	diff := nowMinutes - targetMinutes
	if diff < 0 {
		diff = -diff
	}
	if diff > scheduleWindowMinutes {
		return skip("Outside the scheduled window")
	}

	if lastSent != nil && sameDay(lastSent.In(now.Location()), now) {
		return skip("Already sent today")
	}

	return ScheduleCheck{Due: true}
}

func parseClockMinutes(value string) (int, error) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed time %q", value)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("bad hour in %q", value)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("bad minute in %q", value)
	}
	return h*60 + m, nil
}

// ClampLookAhead bounds the look-ahead window to 1-30 days.
func ClampLookAhead(days int) int {
	if days < 1 {
		return 1
	}
	if days > 30 {
		return 30
	}
	return days
}

// ComposeReminder builds the reminder payload: upcoming non-cancelled
// shifts in the look-ahead window, and which mentors have no signup on
// any of them.
func ComposeReminder(shifts []*models.Shift, mentors []*models.Mentor, signedUp map[string]bool, lookAheadDays int) (title, body string, needed []string) {
	title = "Workshop signup reminder"

	for _, m := range mentors {
		if !signedUp[m.ID] {
			needed = append(needed, m.FullName())
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Shifts in the next %d days:\n", lookAheadDays)
	if len(shifts) == 0 {
		b.WriteString("  (none scheduled)\n")
	}
	for _, s := range shifts {
		label := s.Label
		if label != "" {
			label = " " + label
		}
		fmt.Fprintf(&b, "  %s %s-%s%s\n", s.Date.Format("Mon Jan 2"), s.StartTime, s.EndTime, label)
	}

	if len(needed) == 0 {
		b.WriteString("\nEvery mentor has an upcoming signup. Nice.")
	} else {
		fmt.Fprintf(&b, "\nMentors without an upcoming signup (%d):\n", len(needed))
		for _, name := range needed {
			fmt.Fprintf(&b, "  %s\n", name)
		}
	}

	return title, b.String(), needed
}

// ComposeDigest builds the periodic activity summary.
func ComposeDigest(stats []SubjectStats, upcoming []*models.Shift, now time.Time) (title, body string) {
	title = "Workshop activity digest"

	var total float64
	for _, s := range stats {
		total += s.Hours
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Mentor hours this past week: %.1f across %d mentors.\n", roundTenths(total), len(stats))
	fmt.Fprintf(&b, "Upcoming shifts on the calendar: %d.\n", len(upcoming))
	covered := 0
	for _, s := range upcoming {
		if len(s.Signups) > 0 {
			covered++
		}
	}
	if len(upcoming) > 0 {
		fmt.Fprintf(&b, "Shifts with at least one mentor signed up: %d of %d.\n", covered, len(upcoming))
	}
	return title, b.String()
}

// TriggerResult is what a reminder/digest trigger reports back.
type TriggerResult struct {
	Success       bool     `json:"success,omitempty"`
	Skipped       bool     `json:"skipped,omitempty"`
	Reason        string   `json:"reason,omitempty"`
	Endpoints     int      `json:"endpoints,omitempty"`
	MentorsNeeded []string `json:"mentors_needed,omitempty"`
}

// RunReminder evaluates the reminder schedule and, when due, composes
// and dispatches it. The last-sent timestamp is persisted only after a
// successful dispatch so a failed delivery retries in the next eligible
// window. Two concurrent callers inside one window can both pass the
// guards before either records last-sent; the settings store offers
// single-key atomicity only, so that double-send race is accepted.
func RunReminder(ctx context.Context, db *sql.DB, dispatcher Dispatcher, now time.Time, manual bool) (*TriggerResult, error) {
	settings, err := database.LoadNotificationSettings(db)
	if err != nil {
		return nil, err
	}

	check := CheckSchedule(settings.Enabled, false, settings.ReminderDay, settings.ReminderTime,
		settings.LastReminderSent, now, manual)
	if !check.Due {
		return &TriggerResult{Skipped: true, Reason: check.Reason}, nil
	}

	lookAhead := ClampLookAhead(settings.LookAheadDays)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	windowEnd := today.AddDate(0, 0, lookAhead)

	shifts, err := database.GetShiftsInRange(db, today, windowEnd)
	if err != nil {
		return nil, err
	}
	active := shifts[:0]
	for _, s := range shifts {
		if !s.Cancelled {
			active = append(active, s)
		}
	}

	mentors, err := database.GetAllMentors(db, true)
	if err != nil {
		return nil, err
	}
	signedUp, err := database.GetMentorIDsWithUpcomingSignup(db, today, windowEnd)
	if err != nil {
		return nil, err
	}

	title, body, needed := ComposeReminder(active, mentors, signedUp, lookAhead)

	severity := SeverityInfo
	if len(needed) > 0 {
		severity = SeverityWarning
	}
	if err := dispatcher.Dispatch(ctx, settings.Endpoints, title, body, severity); err != nil {
		return nil, fmt.Errorf("reminder %w: %v", ErrDispatch, err)
	}

	if err := database.SetReminderLastSent(db, now); err != nil {
		return nil, err
	}

	return &TriggerResult{
		Success:       true,
		Endpoints:     len(settings.Endpoints),
		MentorsNeeded: needed,
	}, nil
}

// RunDigest evaluates the digest schedule and, when due, composes and
// dispatches the activity summary. Same last-sent semantics as
// RunReminder.
func RunDigest(ctx context.Context, db *sql.DB, dispatcher Dispatcher, now time.Time, manual bool) (*TriggerResult, error) {
	settings, err := database.LoadDigestSettings(db)
	if err != nil {
		return nil, err
	}

	monthly := settings.Frequency == models.DigestMonthly
	check := CheckSchedule(settings.Enabled, monthly, settings.Day, settings.Time,
		settings.LastDigestSent, now, manual)
	if !check.Due {
		return &TriggerResult{Skipped: true, Reason: check.Reason}, nil
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekAgo := today.AddDate(0, 0, -7)
	weekAhead := today.AddDate(0, 0, 7)

	records, err := database.GetSignupRecordsInRange(db, weekAgo, today)
	if err != nil {
		return nil, err
	}
	stats := AggregateHours(signupRecordsToTimeRecords(records), now)

	upcoming, err := database.GetShiftsInRange(db, today, weekAhead)
	if err != nil {
		return nil, err
	}
	for _, s := range upcoming {
		signups, err := database.GetSignupsByShift(db, s.ID)
		if err != nil {
			return nil, err
		}
		s.Signups = signups
	}

	title, body := ComposeDigest(stats, upcoming, now)

	if err := dispatcher.Dispatch(ctx, settings.Endpoints, title, body, SeverityInfo); err != nil {
		return nil, fmt.Errorf("digest %w: %v", ErrDispatch, err)
	}

	if err := database.SetDigestLastSent(db, now); err != nil {
		return nil, err
	}

	return &TriggerResult{Success: true, Endpoints: len(settings.Endpoints)}, nil
}

func signupRecordsToTimeRecords(records []database.SignupRecord) []TimeRecord {
	out := make([]TimeRecord, 0, len(records))
	for _, r := range records {
		out = append(out, TimeRecord{
			SubjectID:   r.MentorID,
			SubjectName: r.MentorName,
			Date:        r.ShiftDate,
			Start:       r.CheckedInAt,
			End:         r.CheckedOutAt,
		})
	}
	return out
}
