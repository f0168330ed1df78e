package database

import (
	"database/sql"

	"github.com/netarcx/Mentor-Manager-sub001/app/models"
)

func GetAllMentors(db *sql.DB, activeOnly bool) ([]*models.Mentor, error) {
	query := `SELECT id, first_name, last_name, email, phone, is_active, created_at, updated_at
			  FROM mentors`
	if activeOnly {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY first_name, last_name`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	mentors := make([]*models.Mentor, 0)
	for rows.Next() {
		m := &models.Mentor{}
		err := rows.Scan(&m.ID, &m.FirstName, &m.LastName, &m.Email, &m.Phone,
			&m.IsActive, &m.CreatedAt, &m.UpdatedAt)
		if err != nil {
			return nil, err
		}
		mentors = append(mentors, m)
	}
	return mentors, rows.Err()
}

func GetMentorByID(db *sql.DB, id string) (*models.Mentor, error) {
	m := &models.Mentor{}
	query := `SELECT id, first_name, last_name, email, phone, is_active, created_at, updated_at
			  FROM mentors WHERE id = $1`

	err := db.QueryRow(query, id).Scan(&m.ID, &m.FirstName, &m.LastName, &m.Email,
		&m.Phone, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func CreateMentor(db *sql.DB, m *models.Mentor) error {
	query := `INSERT INTO mentors (first_name, last_name, email, phone, is_active)
			  VALUES ($1, $2, $3, $4, true)
			  RETURNING id, is_active, created_at, updated_at`
	return db.QueryRow(query, m.FirstName, m.LastName, m.Email, m.Phone).
		Scan(&m.ID, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
}

func UpdateMentor(db *sql.DB, m *models.Mentor) error {
	query := `UPDATE mentors
			  SET first_name = $1, last_name = $2, email = $3, phone = $4, is_active = $5, updated_at = NOW()
			  WHERE id = $6`
	result, err := db.Exec(query, m.FirstName, m.LastName, m.Email, m.Phone, m.IsActive, m.ID)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func DeleteMentor(db *sql.DB, id string) error {
	result, err := db.Exec(`DELETE FROM mentors WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
