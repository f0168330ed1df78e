package database

import (
	"database/sql"
	"time"

	"github.com/netarcx/Mentor-Manager-sub001/app/models"
)

// --- Shift templates ---

func GetAllTemplates(db *sql.DB) ([]*models.ShiftTemplate, error) {
	query := `SELECT id, day_of_week, start_time, end_time, label, created_at, updated_at
			  FROM shift_templates ORDER BY day_of_week, start_time`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := make([]*models.ShiftTemplate, 0)
	for rows.Next() {
		t := &models.ShiftTemplate{}
		err := rows.Scan(&t.ID, &t.DayOfWeek, &t.StartTime, &t.EndTime, &t.Label,
			&t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

func CreateTemplate(db *sql.DB, t *models.ShiftTemplate) error {
	query := `INSERT INTO shift_templates (day_of_week, start_time, end_time, label)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, created_at, updated_at`
	return db.QueryRow(query, t.DayOfWeek, t.StartTime, t.EndTime, t.Label).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func UpdateTemplate(db *sql.DB, t *models.ShiftTemplate) error {
	query := `UPDATE shift_templates
			  SET day_of_week = $1, start_time = $2, end_time = $3, label = $4, updated_at = NOW()
			  WHERE id = $5`
	result, err := db.Exec(query, t.DayOfWeek, t.StartTime, t.EndTime, t.Label, t.ID)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func DeleteTemplate(db *sql.DB, id string) error {
	result, err := db.Exec(`DELETE FROM shift_templates WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Shifts ---

func GetShiftByID(db *sql.DB, id string) (*models.Shift, error) {
	s := &models.Shift{}
	query := `SELECT id, date, start_time, end_time, label, cancelled, template_id, created_at, updated_at
			  FROM shifts WHERE id = $1`

	err := db.QueryRow(query, id).Scan(&s.ID, &s.Date, &s.StartTime, &s.EndTime,
		&s.Label, &s.Cancelled, &s.TemplateID, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetShiftsInRange returns shifts with date in [from, to] inclusive,
// cancelled ones included so callers can flag stale signups.
func GetShiftsInRange(db *sql.DB, from, to time.Time) ([]*models.Shift, error) {
	query := `SELECT id, date, start_time, end_time, label, cancelled, template_id, created_at, updated_at
			  FROM shifts WHERE date >= $1 AND date <= $2
			  ORDER BY date, start_time`

	rows, err := db.Query(query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := make([]*models.Shift, 0)
	for rows.Next() {
		s := &models.Shift{}
		err := rows.Scan(&s.ID, &s.Date, &s.StartTime, &s.EndTime, &s.Label,
			&s.Cancelled, &s.TemplateID, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, s)
	}
	return shifts, rows.Err()
}

// ShiftExists reports whether a shift already occupies the given
// date+start+end window. This is the generator's idempotency key.
func ShiftExists(db *sql.DB, date time.Time, startTime, endTime string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM shifts WHERE date = $1 AND start_time = $2 AND end_time = $3)`
	err := db.QueryRow(query, date, startTime, endTime).Scan(&exists)
	return exists, err
}

func CreateShift(db *sql.DB, s *models.Shift) error {
	query := `INSERT INTO shifts (date, start_time, end_time, label, template_id)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, cancelled, created_at, updated_at`
	err := db.QueryRow(query, s.Date, s.StartTime, s.EndTime, s.Label, s.TemplateID).
		Scan(&s.ID, &s.Cancelled, &s.CreatedAt, &s.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func UpdateShift(db *sql.DB, s *models.Shift) error {
	query := `UPDATE shifts
			  SET date = $1, start_time = $2, end_time = $3, label = $4, cancelled = $5, updated_at = NOW()
			  WHERE id = $6`
	result, err := db.Exec(query, s.Date, s.StartTime, s.EndTime, s.Label, s.Cancelled, s.ID)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// CancelShift flags a shift cancelled without touching its signups, so
// affected mentors can be shown a stale signup instead of it vanishing.
func CancelShift(db *sql.DB, id string) error {
	result, err := db.Exec(`UPDATE shifts SET cancelled = true, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteShift removes a shift only when no signups reference it.
func DeleteShift(db *sql.DB, id string) error {
	var signupCount int
	err := db.QueryRow(`SELECT COUNT(*) FROM signups WHERE shift_id = $1`, id).Scan(&signupCount)
	if err != nil {
		return err
	}
	if signupCount > 0 {
		return ErrHasSignups
	}

	result, err := db.Exec(`DELETE FROM shifts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
