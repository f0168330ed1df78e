package database

import (
	"database/sql"
	"time"

	"github.com/netarcx/Mentor-Manager-sub001/app/models"
)

// CreateSignup inserts a mentor's claim on a shift. The duplicate check
// runs inside the same transaction as the insert; the unique index on
// (mentor_id, shift_id) remains as a backstop for anything that slips
// between concurrent transactions.
func CreateSignup(db *sql.DB, s *models.Signup) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM signups WHERE mentor_id = $1 AND shift_id = $2)`,
		s.MentorID, s.ShiftID).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicate
	}

	query := `INSERT INTO signups (mentor_id, shift_id, custom_start, custom_end, note)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, created_at`
	err = tx.QueryRow(query, s.MentorID, s.ShiftID, s.CustomStart, s.CustomEnd, s.Note).
		Scan(&s.ID, &s.CreatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return err
	}

	return tx.Commit()
}

func GetSignupByID(db *sql.DB, id string) (*models.Signup, error) {
	s := &models.Signup{}
	query := `SELECT id, mentor_id, shift_id, custom_start, custom_end, checked_in_at, checked_out_at, note, created_at
			  FROM signups WHERE id = $1`

	err := db.QueryRow(query, id).Scan(&s.ID, &s.MentorID, &s.ShiftID, &s.CustomStart,
		&s.CustomEnd, &s.CheckedInAt, &s.CheckedOutAt, &s.Note, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func GetSignupsByShift(db *sql.DB, shiftID string) ([]*models.Signup, error) {
	query := `SELECT s.id, s.mentor_id, s.shift_id, s.custom_start, s.custom_end,
			  s.checked_in_at, s.checked_out_at, s.note, s.created_at,
			  m.first_name, m.last_name
			  FROM signups s
			  JOIN mentors m ON s.mentor_id = m.id
			  WHERE s.shift_id = $1
			  ORDER BY m.first_name, m.last_name`

	rows, err := db.Query(query, shiftID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	signups := make([]*models.Signup, 0)
	for rows.Next() {
		s := &models.Signup{}
		var firstName, lastName string
		err := rows.Scan(&s.ID, &s.MentorID, &s.ShiftID, &s.CustomStart, &s.CustomEnd,
			&s.CheckedInAt, &s.CheckedOutAt, &s.Note, &s.CreatedAt, &firstName, &lastName)
		if err != nil {
			return nil, err
		}
		s.Mentor = &models.Mentor{ID: s.MentorID, FirstName: firstName, LastName: lastName}
		signups = append(signups, s)
	}
	return signups, rows.Err()
}

// SignupRecord is the flattened view of a signup joined with its shift,
// shaped for the hours engine.
type SignupRecord struct {
	SignupID     string
	MentorID     string
	MentorName   string
	ShiftDate    time.Time
	CheckedInAt  *time.Time
	CheckedOutAt *time.Time
}

// GetSignupRecordsInRange returns signup/shift pairs for shifts dated
// in [from, to] inclusive, across all mentors.
func GetSignupRecordsInRange(db *sql.DB, from, to time.Time) ([]SignupRecord, error) {
	query := `SELECT s.id, s.mentor_id, m.first_name || ' ' || m.last_name,
			  sh.date, s.checked_in_at, s.checked_out_at
			  FROM signups s
			  JOIN shifts sh ON s.shift_id = sh.id
			  JOIN mentors m ON s.mentor_id = m.id
			  WHERE sh.date >= $1 AND sh.date <= $2
			  ORDER BY sh.date`

	rows, err := db.Query(query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]SignupRecord, 0)
	for rows.Next() {
		var r SignupRecord
		err := rows.Scan(&r.SignupID, &r.MentorID, &r.MentorName, &r.ShiftDate,
			&r.CheckedInAt, &r.CheckedOutAt)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// GetMentorIDsWithUpcomingSignup returns the distinct mentors holding at
// least one signup on a non-cancelled shift dated in [from, to].
func GetMentorIDsWithUpcomingSignup(db *sql.DB, from, to time.Time) (map[string]bool, error) {
	query := `SELECT DISTINCT s.mentor_id
			  FROM signups s
			  JOIN shifts sh ON s.shift_id = sh.id
			  WHERE sh.date >= $1 AND sh.date <= $2 AND sh.cancelled = false`

	rows, err := db.Query(query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = true
	}
	return ids, rows.Err()
}

func CheckInSignup(db *sql.DB, id string, at time.Time) error {
	result, err := db.Exec(`UPDATE signups SET checked_in_at = $1 WHERE id = $2`, at, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func CheckOutSignup(db *sql.DB, id string, at time.Time) error {
	result, err := db.Exec(`UPDATE signups SET checked_out_at = $1 WHERE id = $2`, at, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func UpdateSignup(db *sql.DB, s *models.Signup) error {
	query := `UPDATE signups SET custom_start = $1, custom_end = $2, note = $3 WHERE id = $4`
	result, err := db.Exec(query, s.CustomStart, s.CustomEnd, s.Note, s.ID)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func DeleteSignup(db *sql.DB, id string) error {
	result, err := db.Exec(`DELETE FROM signups WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
