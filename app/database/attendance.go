package database

import (
	"database/sql"
	"time"

	"github.com/netarcx/Mentor-Manager-sub001/app/models"
)

// CheckInStudent records a student's arrival for the given day,
// creating the day's attendance row if needed. An existing check-in for
// the day is left untouched.
func CheckInStudent(db *sql.DB, studentID string, date time.Time, at time.Time) error {
	query := `INSERT INTO attendance (student_id, date, checked_in_at)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (student_id, date)
			  DO UPDATE SET checked_in_at = COALESCE(attendance.checked_in_at, EXCLUDED.checked_in_at),
			                updated_at = NOW()`
	_, err := db.Exec(query, studentID, date, at)
	return err
}

// CheckOutStudent stamps the student's departure. Returns ErrNotFound
// when there is no attendance row for the day to close.
func CheckOutStudent(db *sql.DB, studentID string, date time.Time, at time.Time) error {
	result, err := db.Exec(
		`UPDATE attendance SET checked_out_at = $1, updated_at = NOW()
		 WHERE student_id = $2 AND date = $3`,
		at, studentID, date)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func GetAttendanceByDate(db *sql.DB, date time.Time) ([]*models.Attendance, error) {
	query := `SELECT a.id, a.student_id, a.date, a.checked_in_at, a.checked_out_at,
			  a.created_at, a.updated_at, s.first_name, s.last_name
			  FROM attendance a
			  JOIN students s ON a.student_id = s.id
			  WHERE a.date = $1
			  ORDER BY s.first_name, s.last_name`

	rows, err := db.Query(query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*models.Attendance, 0)
	for rows.Next() {
		a := &models.Attendance{}
		var firstName, lastName string
		err := rows.Scan(&a.ID, &a.StudentID, &a.Date, &a.CheckedInAt, &a.CheckedOutAt,
			&a.CreatedAt, &a.UpdatedAt, &firstName, &lastName)
		if err != nil {
			return nil, err
		}
		a.Student = &models.Student{ID: a.StudentID, FirstName: firstName, LastName: lastName}
		records = append(records, a)
	}
	return records, rows.Err()
}

// AttendanceRecord is the flattened attendance row shaped for the hours
// engine.
type AttendanceRecord struct {
	StudentID    string
	StudentName  string
	Date         time.Time
	CheckedInAt  *time.Time
	CheckedOutAt *time.Time
}

func GetAttendanceRecordsInRange(db *sql.DB, from, to time.Time) ([]AttendanceRecord, error) {
	query := `SELECT a.student_id, s.first_name || ' ' || s.last_name,
			  a.date, a.checked_in_at, a.checked_out_at
			  FROM attendance a
			  JOIN students s ON a.student_id = s.id
			  WHERE a.date >= $1 AND a.date <= $2
			  ORDER BY a.date`

	rows, err := db.Query(query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]AttendanceRecord, 0)
	for rows.Next() {
		var r AttendanceRecord
		err := rows.Scan(&r.StudentID, &r.StudentName, &r.Date, &r.CheckedInAt, &r.CheckedOutAt)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
