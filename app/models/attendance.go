package models

import "time"

// Attendance is a student's check-in/check-out pair for a workshop day.
// A past-dated record with a null check-out has an unknowable duration
// and contributes zero hours to any total.
type Attendance struct {
	ID           string     `json:"id"`
	StudentID    string     `json:"student_id" validate:"required,uuid"`
	Date         time.Time  `json:"date"`
	CheckedInAt  *time.Time `json:"checked_in_at,omitempty"`
	CheckedOutAt *time.Time `json:"checked_out_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	Student *Student `json:"student,omitempty"`
}

// HourAdjustment is a manual correction to a mentor's total hours,
// positive or negative, independent of any signup.
type HourAdjustment struct {
	ID        string    `json:"id"`
	MentorID  string    `json:"mentor_id" validate:"required,uuid"`
	Delta     float64   `json:"delta" validate:"required"`
	Reason    string    `json:"reason" validate:"required"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`

	Mentor *Mentor `json:"mentor,omitempty"`
}
