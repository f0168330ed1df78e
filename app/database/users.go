package database

import (
	"database/sql"

	"github.com/netarcx/Mentor-Manager-sub001/app/models"
)

func GetAdminByEmail(db *sql.DB, email string) (*models.AdminUser, error) {
	user := &models.AdminUser{}
	query := `SELECT id, email, password_hash, first_name, last_name, is_active, created_at, updated_at
			  FROM admin_users WHERE email = $1 AND is_active = true`

	err := db.QueryRow(query, email).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.FirstName,
		&user.LastName, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func GetAdminByID(db *sql.DB, id string) (*models.AdminUser, error) {
	user := &models.AdminUser{}
	query := `SELECT id, email, password_hash, first_name, last_name, is_active, created_at, updated_at
			  FROM admin_users WHERE id = $1 AND is_active = true`

	err := db.QueryRow(query, id).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.FirstName,
		&user.LastName, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func CreateAdmin(db *sql.DB, user *models.AdminUser) error {
	query := `INSERT INTO admin_users (email, password_hash, first_name, last_name)
			  VALUES ($1, $2, $3, $4) RETURNING id, created_at, updated_at`

	err := db.QueryRow(query, user.Email, user.PasswordHash, user.FirstName, user.LastName).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func UpdateAdminPassword(db *sql.DB, id, passwordHash string) error {
	result, err := db.Exec(`UPDATE admin_users SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		passwordHash, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
