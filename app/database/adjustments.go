package database

import (
	"database/sql"
	"time"

	"github.com/netarcx/Mentor-Manager-sub001/app/models"
)

func CreateAdjustment(db *sql.DB, a *models.HourAdjustment) error {
	query := `INSERT INTO hour_adjustments (mentor_id, delta, reason, date)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, created_at`
	return db.QueryRow(query, a.MentorID, a.Delta, a.Reason, a.Date).
		Scan(&a.ID, &a.CreatedAt)
}

func GetAdjustmentsByMentor(db *sql.DB, mentorID string) ([]*models.HourAdjustment, error) {
	query := `SELECT id, mentor_id, delta, reason, date, created_at
			  FROM hour_adjustments WHERE mentor_id = $1 ORDER BY date DESC`

	rows, err := db.Query(query, mentorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	adjustments := make([]*models.HourAdjustment, 0)
	for rows.Next() {
		a := &models.HourAdjustment{}
		err := rows.Scan(&a.ID, &a.MentorID, &a.Delta, &a.Reason, &a.Date, &a.CreatedAt)
		if err != nil {
			return nil, err
		}
		adjustments = append(adjustments, a)
	}
	return adjustments, rows.Err()
}

// GetAdjustmentTotalsInRange sums adjustment deltas per mentor for
// dates in [from, to] inclusive.
func GetAdjustmentTotalsInRange(db *sql.DB, from, to time.Time) (map[string]float64, error) {
	query := `SELECT mentor_id, COALESCE(SUM(delta), 0)
			  FROM hour_adjustments
			  WHERE date >= $1 AND date <= $2
			  GROUP BY mentor_id`

	rows, err := db.Query(query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[string]float64)
	for rows.Next() {
		var mentorID string
		var total float64
		if err := rows.Scan(&mentorID, &total); err != nil {
			return nil, err
		}
		totals[mentorID] = total
	}
	return totals, rows.Err()
}

func DeleteAdjustment(db *sql.DB, id string) error {
	result, err := db.Exec(`DELETE FROM hour_adjustments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
