package models

import "time"

// ShiftTemplate is a recurring weekly pattern used to generate concrete
// shifts. Editing a template never retroactively alters shifts already
// generated from it.
type ShiftTemplate struct {
	ID        string    `json:"id"`
	DayOfWeek int       `json:"day_of_week" validate:"min=0,max=6"` // 0=Sunday .. 6=Saturday
	StartTime string    `json:"start_time" validate:"required"`     // "HH:MM" 24-hour local
	EndTime   string    `json:"end_time" validate:"required"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Shift is a scheduled block of workshop time on a specific date that
// mentors can sign up for. Times are wall-clock in the deployment's zone.
type Shift struct {
	ID         string    `json:"id"`
	Date       time.Time `json:"date"`
	StartTime  string    `json:"start_time"`
	EndTime    string    `json:"end_time"`
	Label      string    `json:"label"`
	Cancelled  bool      `json:"cancelled"`
	TemplateID *string   `json:"template_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Signups []*Signup `json:"signups,omitempty"`
}

// Signup is a mentor's claim on a shift. Custom start/end times, when
// set, override the shift's default window for that mentor.
type Signup struct {
	ID           string     `json:"id"`
	MentorID     string     `json:"mentor_id" validate:"required,uuid"`
	ShiftID      string     `json:"shift_id" validate:"required,uuid"`
	CustomStart  *string    `json:"custom_start,omitempty"`
	CustomEnd    *string    `json:"custom_end,omitempty"`
	CheckedInAt  *time.Time `json:"checked_in_at,omitempty"`
	CheckedOutAt *time.Time `json:"checked_out_at,omitempty"`
	Note         string     `json:"note"`
	CreatedAt    time.Time  `json:"created_at"`

	Mentor *Mentor `json:"mentor,omitempty"`
	Shift  *Shift  `json:"shift,omitempty"`
}
