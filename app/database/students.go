package database

import (
	"database/sql"

	"github.com/netarcx/Mentor-Manager-sub001/app/models"
)

func GetAllStudents(db *sql.DB, activeOnly bool) ([]*models.Student, error) {
	query := `SELECT id, first_name, last_name, grade, is_active, created_at, updated_at
			  FROM students`
	if activeOnly {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY first_name, last_name`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := make([]*models.Student, 0)
	for rows.Next() {
		s := &models.Student{}
		err := rows.Scan(&s.ID, &s.FirstName, &s.LastName, &s.Grade,
			&s.IsActive, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

func GetStudentByID(db *sql.DB, id string) (*models.Student, error) {
	s := &models.Student{}
	query := `SELECT id, first_name, last_name, grade, is_active, created_at, updated_at
			  FROM students WHERE id = $1`

	err := db.QueryRow(query, id).Scan(&s.ID, &s.FirstName, &s.LastName, &s.Grade,
		&s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func CreateStudent(db *sql.DB, s *models.Student) error {
	query := `INSERT INTO students (first_name, last_name, grade, is_active)
			  VALUES ($1, $2, $3, true)
			  RETURNING id, is_active, created_at, updated_at`
	return db.QueryRow(query, s.FirstName, s.LastName, s.Grade).
		Scan(&s.ID, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
}

func UpdateStudent(db *sql.DB, s *models.Student) error {
	query := `UPDATE students
			  SET first_name = $1, last_name = $2, grade = $3, is_active = $4, updated_at = NOW()
			  WHERE id = $5`
	result, err := db.Exec(query, s.FirstName, s.LastName, s.Grade, s.IsActive, s.ID)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func DeleteStudent(db *sql.DB, id string) error {
	result, err := db.Exec(`DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
