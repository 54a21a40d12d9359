package repositories

import (
	"database/sql"

	intconfig "chitfund/internal/config"
	intdb "chitfund/internal/db"
	"chitfund/internal/domain/models"
)

type MemberRepository struct {
	DB *sql.DB
}

func (r MemberRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const memberColumns = `
	id,
	name,
	COALESCE(phone, ''),
	COALESCE(DATE_FORMAT(created_at, '%Y-%m-%d %H:%i:%s'), '')`

// List returns all members ordered by name.
func (r MemberRepository) List() ([]models.Member, error) {
	rows, err := r.db().Query(`SELECT` + memberColumns + ` FROM members ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []models.Member{}
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Phone, &m.CreatedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r MemberRepository) GetByID(id int64) (models.Member, error) {
	var m models.Member
	err := r.db().QueryRow(`SELECT`+memberColumns+` FROM members WHERE id = ? LIMIT 1`, id).
		Scan(&m.ID, &m.Name, &m.Phone, &m.CreatedAt)
	if err != nil {
		return models.Member{}, err
	}
	return m, nil
}

func (r MemberRepository) Insert(name, phone string) (int64, error) {
	res, err := r.db().Exec(`INSERT INTO members (name, phone) VALUES (?, ?)`,
		name, intdb.NullIfEmpty(phone))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r MemberRepository) Update(id int64, name, phone string) error {
	_, err := r.db().Exec(`UPDATE members SET name = ?, phone = ? WHERE id = ?`,
		name, intdb.NullIfEmpty(phone), id)
	return err
}

func (r MemberRepository) Delete(id int64) error {
	_, err := r.db().Exec(`DELETE FROM members WHERE id = ?`, id)
	return err
}

func (r MemberRepository) Count() (int, error) {
	var n int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM members`).Scan(&n)
	return n, err
}
