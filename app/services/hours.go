package services

import (
	"math"
	"sort"
	"time"
)

// TimeRecord is one check-in/check-out pair for a subject (mentor or
// student) on a calendar day. Start and End are nil until the
// corresponding event happens.
type TimeRecord struct {
	SubjectID   string
	SubjectName string
	Date        time.Time
	Start       *time.Time
	End         *time.Time
}

// RecordDuration computes how much time a single record contributes.
//
//   - start and end present: end-start, floored at zero (clock skew is
//     never allowed to produce negative time)
//   - start only, dated today: counted up to now (session in progress)
//   - start only, dated in the past: zero, because the duration is
//     unknowable and is never estimated
func RecordDuration(rec TimeRecord, now time.Time) time.Duration {
	if rec.Start == nil {
		return 0
	}
	if rec.End != nil {
		d := rec.End.Sub(*rec.Start)
		if d < 0 {
			return 0
		}
		return d
	}
	if sameDay(rec.Date, now) {
		d := now.Sub(*rec.Start)
		if d < 0 {
			return 0
		}
		return d
	}
	return 0
}

// RoundHours converts a duration to hours rounded half-up at the tenths
// digit.
func RoundHours(d time.Duration) float64 {
	return roundTenths(d.Hours())
}

func roundTenths(h float64) float64 {
	return math.Floor(h*10+0.5) / 10
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// SubjectStats is the per-subject aggregate over a set of records.
type SubjectStats struct {
	SubjectID      string  `json:"subject_id"`
	Name           string  `json:"name"`
	Hours          float64 `json:"hours"`
	Sessions       int     `json:"sessions"`
	DaysPresent    int     `json:"days_present"`
	AttendanceRate int     `json:"attendance_rate"`
}

// AggregateHours folds records into per-subject hour totals and
// attendance rates. The attendance rate denominator is the number of
// distinct days on which ANY subject in the cohort has a record; zero
// cohort days yields rate 0 for everyone.
func AggregateHours(records []TimeRecord, now time.Time) []SubjectStats {
	type acc struct {
		name     string
		total    time.Duration
		sessions int
		days     map[string]bool
	}

	bySubject := make(map[string]*acc)
	order := make([]string, 0)
	cohortDays := make(map[string]bool)

	for _, rec := range records {
		a, ok := bySubject[rec.SubjectID]
		if !ok {
			a = &acc{name: rec.SubjectName, days: make(map[string]bool)}
			bySubject[rec.SubjectID] = a
			order = append(order, rec.SubjectID)
		}

		day := rec.Date.Format("2006-01-02")
		a.days[day] = true
		cohortDays[day] = true
		a.sessions++
		a.total += RecordDuration(rec, now)
	}

	stats := make([]SubjectStats, 0, len(order))
	for _, id := range order {
		a := bySubject[id]
		rate := 0
		if len(cohortDays) > 0 {
			rate = int(math.Round(float64(len(a.days)) / float64(len(cohortDays)) * 100))
		}
		stats = append(stats, SubjectStats{
			SubjectID:      id,
			Name:           a.name,
			Hours:          RoundHours(a.total),
			Sessions:       a.sessions,
			DaysPresent:    len(a.days),
			AttendanceRate: rate,
		})
	}
	return stats
}

// LeaderboardEntry is one mentor's line on the hours leaderboard.
type LeaderboardEntry struct {
	MentorID   string  `json:"mentor_id"`
	Name       string  `json:"name"`
	ShiftHours float64 `json:"shift_hours"`
	Adjustment float64 `json:"adjustment"`
	TotalHours float64 `json:"total_hours"`
	ShiftCount int     `json:"shift_count"`
}

// LeaderboardSummary is the cohort-level rollup.
type LeaderboardSummary struct {
	Entries      []LeaderboardEntry `json:"entries"`
	TotalHours   float64            `json:"total_hours"`
	ShiftCount   int                `json:"shift_count"`
	MentorCount  int                `json:"mentor_count"`
	AverageHours float64            `json:"average_hours"`
}

// BuildLeaderboard aggregates mentor signup records and folds in manual
// hour adjustments. Adjustments apply algebraically, so a mentor's
// total can drop below their checked-in hours. Mentors present only in
// the adjustments map still get an entry. Entries come back sorted by
// total hours descending.
func BuildLeaderboard(records []TimeRecord, adjustments map[string]float64, now time.Time) LeaderboardSummary {
	stats := AggregateHours(records, now)

	seen := make(map[string]bool, len(stats))
	entries := make([]LeaderboardEntry, 0, len(stats))
	for _, s := range stats {
		seen[s.SubjectID] = true
		adj := roundTenths(adjustments[s.SubjectID])
		entries = append(entries, LeaderboardEntry{
			MentorID:   s.SubjectID,
			Name:       s.Name,
			ShiftHours: s.Hours,
			Adjustment: adj,
			TotalHours: roundTenths(s.Hours + adj),
			ShiftCount: s.Sessions,
		})
	}
	for mentorID, adj := range adjustments {
		if seen[mentorID] {
			continue
		}
		adj = roundTenths(adj)
		entries = append(entries, LeaderboardEntry{
			MentorID:   mentorID,
			Adjustment: adj,
			TotalHours: adj,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].TotalHours != entries[j].TotalHours {
			return entries[i].TotalHours > entries[j].TotalHours
		}
		return entries[i].Name < entries[j].Name
	})

	summary := LeaderboardSummary{Entries: entries, MentorCount: len(entries)}
	for _, e := range entries {
		summary.TotalHours += e.TotalHours
		summary.ShiftCount += e.ShiftCount
	}
	summary.TotalHours = roundTenths(summary.TotalHours)
	if summary.MentorCount > 0 {
		summary.AverageHours = roundTenths(summary.TotalHours / float64(summary.MentorCount))
	}
	return summary
}
