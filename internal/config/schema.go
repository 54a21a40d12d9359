package config

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS admins (
		id INT AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(50) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS members (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		phone VARCHAR(20) NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS payments (
		id INT AUTO_INCREMENT PRIMARY KEY,
		member_id INT NOT NULL,
		week_no INT NOT NULL,
		week_start_date DATE NOT NULL,
		amount DECIMAL(10,2) NOT NULL DEFAULT 10.00,
		payment_mode ENUM('UPI','CASH') NOT NULL DEFAULT 'UPI',
		utr_no VARCHAR(100) NULL,
		status ENUM('PENDING','SUBMITTED','PAID','REJECTED') NOT NULL DEFAULT 'PENDING',
		submitted_at DATETIME NULL,
		paid_date DATETIME NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_member_week (member_id, week_no),
		CONSTRAINT fk_payments_member FOREIGN KEY (member_id)
			REFERENCES members(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates the three tables when missing. The unique key on
// (member_id, week_no) is the only guard against concurrent duplicate
// submissions, so it must exist before the server accepts traffic.
func EnsureSchema(db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// SeedAdmin creates the operator account when absent. When a seed password
// is configured it also resets the stored hash, mirroring the deploy flow
// where the password is rotated via environment.
func SeedAdmin(db *sql.DB, username, password string) error {
	var id int64
	err := db.QueryRow(`SELECT id FROM admins WHERE username = ?`, username).Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if password == "" {
			password = "changeme"
			log.Printf("admin %q seeded with default password; set ADMIN_PASSWORD", username)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}
		if _, err := db.Exec(`INSERT INTO admins (username, password_hash) VALUES (?, ?)`, username, string(hash)); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		log.Printf("default admin created: username=%s", username)
		return nil
	case err != nil:
		return fmt.Errorf("lookup admin: %w", err)
	}

	if password == "" {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	if _, err := db.Exec(`UPDATE admins SET password_hash = ? WHERE id = ?`, string(hash), id); err != nil {
		return fmt.Errorf("reset admin password: %w", err)
	}
	log.Printf("admin password reset: username=%s", username)
	return nil
}
