package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(t time.Time) *time.Time { return &t }

func TestRecordDuration(t *testing.T) {
	now := time.Date(2025, 3, 12, 11, 5, 0, 0, time.UTC)
	today := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)

	tests := []struct {
		name string
		rec  TimeRecord
		want time.Duration
	}{
		{
			name: "completed pair",
			rec: TimeRecord{
				Date:  today,
				Start: ts(time.Date(2025, 3, 12, 9, 5, 0, 0, time.UTC)),
				End:   ts(time.Date(2025, 3, 12, 11, 5, 0, 0, time.UTC)),
			},
			want: 2 * time.Hour,
		},
		{
			name: "equal timestamps yield zero",
			rec: TimeRecord{
				Date:  today,
				Start: ts(time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC)),
				End:   ts(time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC)),
			},
			want: 0,
		},
		{
			name: "checkout before checkin is floored at zero",
			rec: TimeRecord{
				Date:  today,
				Start: ts(time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)),
				End:   ts(time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC)),
			},
			want: 0,
		},
		{
			name: "in-progress session today counts up to now",
			rec: TimeRecord{
				Date:  today,
				Start: ts(time.Date(2025, 3, 12, 10, 35, 0, 0, time.UTC)),
			},
			want: 30 * time.Minute,
		},
		{
			name: "open record on a past date contributes nothing",
			rec: TimeRecord{
				Date:  yesterday,
				Start: ts(time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC)),
			},
			want: 0,
		},
		{
			name: "no checkin at all",
			rec:  TimeRecord{Date: today},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RecordDuration(tt.rec, now))
		})
	}
}

func TestRoundHours(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want float64
	}{
		{"two hours exact", 2 * time.Hour, 2.0},
		{"half-up at tenths", 75*time.Minute + 30*time.Second, 1.3}, // 1.2583h -> 1.3
		{"rounds down below the midpoint", 74 * time.Minute, 1.2},   // 1.2333h
		{"midpoint rounds up", 2*time.Hour + 3*time.Minute, 2.1},    // 2.05h
		{"zero", 0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, RoundHours(tt.d), 1e-9)
		})
	}
}

func TestAggregateHours(t *testing.T) {
	now := time.Date(2025, 3, 12, 18, 0, 0, 0, time.UTC)
	day1 := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)

	records := []TimeRecord{
		{SubjectID: "a", SubjectName: "Ada", Date: day1,
			Start: ts(day1.Add(9 * time.Hour)), End: ts(day1.Add(11 * time.Hour))},
		{SubjectID: "a", SubjectName: "Ada", Date: day2,
			Start: ts(day2.Add(9 * time.Hour)), End: ts(day2.Add(10 * time.Hour))},
		{SubjectID: "b", SubjectName: "Grace", Date: day1,
			Start: ts(day1.Add(9 * time.Hour)), End: ts(day1.Add(12 * time.Hour))},
	}

	stats := AggregateHours(records, now)
	require.Len(t, stats, 2)

	byID := map[string]SubjectStats{}
	for _, s := range stats {
		byID[s.SubjectID] = s
	}

	assert.InDelta(t, 3.0, byID["a"].Hours, 1e-9)
	assert.Equal(t, 2, byID["a"].DaysPresent)
	assert.Equal(t, 100, byID["a"].AttendanceRate)

	assert.InDelta(t, 3.0, byID["b"].Hours, 1e-9)
	assert.Equal(t, 1, byID["b"].DaysPresent)
	assert.Equal(t, 50, byID["b"].AttendanceRate)
}

func TestAggregateHoursEmpty(t *testing.T) {
	now := time.Now()

	stats := AggregateHours(nil, now)
	assert.Empty(t, stats)

	// A subject with no completed records still aggregates to zero
	// hours and zero rate rather than erroring.
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	stats = AggregateHours([]TimeRecord{{SubjectID: "a", Date: day}}, now)
	require.Len(t, stats, 1)
	assert.Zero(t, stats[0].Hours)
	assert.Equal(t, 100, stats[0].AttendanceRate) // own day is the only cohort day
}

func TestBuildLeaderboard(t *testing.T) {
	now := time.Date(2025, 3, 12, 18, 0, 0, 0, time.UTC)
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	records := []TimeRecord{
		{SubjectID: "a", SubjectName: "Ada", Date: day,
			Start: ts(day.Add(8 * time.Hour)), End: ts(day.Add(18 * time.Hour))}, // 10h
		{SubjectID: "b", SubjectName: "Grace", Date: day,
			Start: ts(day.Add(9 * time.Hour)), End: ts(day.Add(14 * time.Hour))}, // 5h
	}
	adjustments := map[string]float64{"a": 2, "b": -1}

	summary := BuildLeaderboard(records, adjustments, now)

	require.Equal(t, 2, summary.MentorCount)
	byID := map[string]LeaderboardEntry{}
	for _, e := range summary.Entries {
		byID[e.MentorID] = e
	}

	assert.InDelta(t, 12.0, byID["a"].TotalHours, 1e-9)
	assert.InDelta(t, 4.0, byID["b"].TotalHours, 1e-9)
	assert.InDelta(t, 16.0, summary.TotalHours, 1e-9)
	assert.InDelta(t, 8.0, summary.AverageHours, 1e-9)
	assert.Equal(t, 2, summary.ShiftCount)
}

func TestBuildLeaderboardAdjustmentOnlyMentor(t *testing.T) {
	now := time.Now()

	summary := BuildLeaderboard(nil, map[string]float64{"c": 3.5}, now)

	require.Equal(t, 1, summary.MentorCount)
	assert.InDelta(t, 3.5, summary.Entries[0].TotalHours, 1e-9)
	assert.InDelta(t, 3.5, summary.AverageHours, 1e-9)
	assert.Zero(t, summary.ShiftCount)
}

func TestBuildLeaderboardEmpty(t *testing.T) {
	summary := BuildLeaderboard(nil, nil, time.Now())

	assert.Zero(t, summary.MentorCount)
	assert.Zero(t, summary.TotalHours)
	assert.Zero(t, summary.AverageHours)
}
