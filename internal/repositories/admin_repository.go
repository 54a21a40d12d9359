package repositories

import (
	"database/sql"

	intconfig "chitfund/internal/config"
	"chitfund/internal/domain/models"
)

type AdminRepository struct {
	DB *sql.DB
}

func (r AdminRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetByUsername fetches an admin row; sql.ErrNoRows passes through so the
// caller can treat unknown usernames as bad credentials.
func (r AdminRepository) GetByUsername(username string) (models.Admin, error) {
	var a models.Admin
	err := r.db().QueryRow(`
		SELECT id,
		       username,
		       password_hash,
		       COALESCE(DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s'), '')
		FROM admins
		WHERE username = ?
		LIMIT 1
	`, username).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		return models.Admin{}, err
	}
	return a, nil
}
