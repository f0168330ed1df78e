package models

import "time"

// DigestFrequency selects how the digest target day is interpreted.
type DigestFrequency string

const (
	DigestWeekly  DigestFrequency = "weekly"  // Day is a day-of-week, 0=Sunday..6
	DigestMonthly DigestFrequency = "monthly" // Day is a day-of-month, 1..31
)

// NotificationSettings configures the weekly signup reminder. Day and
// Time are stored as strings because the underlying settings table is a
// generic key/value store; parsing happens at the scheduling boundary.
type NotificationSettings struct {
	Enabled          bool       `json:"enabled"`
	ReminderDay      string     `json:"day"`  // day-of-week, "0".."6"
	ReminderTime     string     `json:"time"` // "HH:MM" 24-hour local
	LookAheadDays    int        `json:"lookAheadDays"`
	LastReminderSent *time.Time `json:"lastReminderSent,omitempty"`
	Endpoints        []string   `json:"endpoints"`
}

// DigestSettings configures the periodic activity digest.
type DigestSettings struct {
	Enabled        bool            `json:"enabled"`
	Frequency      DigestFrequency `json:"frequency"`
	Day            string          `json:"day"`
	Time           string          `json:"time"`
	LastDigestSent *time.Time      `json:"lastDigestSent,omitempty"`
	Endpoints      []string        `json:"endpoints"`
}
