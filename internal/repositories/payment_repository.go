package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "chitfund/internal/config"
	intdb "chitfund/internal/db"
	"chitfund/internal/domain/models"
)

type PaymentRepository struct {
	DB *sql.DB
}

func (r PaymentRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const paymentColumns = `
	p.id,
	p.member_id,
	p.week_no,
	DATE_FORMAT(p.week_start_date, '%Y-%m-%d'),
	p.amount,
	p.payment_mode,
	COALESCE(p.utr_no, ''),
	p.status,
	COALESCE(DATE_FORMAT(p.submitted_at, '%Y-%m-%d %H:%i:%s'), ''),
	COALESCE(DATE_FORMAT(p.paid_date, '%Y-%m-%d %H:%i:%s'), ''),
	COALESCE(DATE_FORMAT(p.created_at, '%Y-%m-%d %H:%i:%s'), '')`

func scanPayment(row interface{ Scan(...any) error }, p *models.Payment) error {
	return row.Scan(
		&p.ID,
		&p.MemberID,
		&p.WeekNo,
		&p.WeekStartDate,
		&p.Amount,
		&p.PaymentMode,
		&p.UTRNo,
		&p.Status,
		&p.SubmittedAt,
		&p.PaidDate,
		&p.CreatedAt,
	)
}

// ListByMember returns the member's week records ordered by week number.
func (r PaymentRepository) ListByMember(memberID int64) ([]models.Payment, error) {
	rows, err := r.db().Query(`
		SELECT`+paymentColumns+`
		FROM payments p
		WHERE p.member_id = ?
		ORDER BY p.week_no ASC
	`, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		var p models.Payment
		if err := scanPayment(rows, &p); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// ListAllWithMembers returns every week record with its owning member joined.
func (r PaymentRepository) ListAllWithMembers() ([]models.PaymentWithMember, error) {
	rows, err := r.db().Query(`
		SELECT` + paymentColumns + `,
		       m.id, m.name, COALESCE(m.phone, '')
		FROM payments p
		JOIN members m ON m.id = p.member_id
		ORDER BY p.week_no ASC, m.name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPaymentsWithMember(rows)
}

func (r PaymentRepository) GetByID(id int64) (models.Payment, error) {
	var p models.Payment
	err := scanPayment(r.db().QueryRow(`
		SELECT`+paymentColumns+`
		FROM payments p
		WHERE p.id = ?
		LIMIT 1
	`, id), &p)
	if err != nil {
		return models.Payment{}, err
	}
	return p, nil
}

// GetByMemberWeek looks up the unique (member, week) row. found is false when
// no record exists yet.
func (r PaymentRepository) GetByMemberWeek(memberID int64, weekNo int) (models.Payment, bool, error) {
	var p models.Payment
	err := scanPayment(r.db().QueryRow(`
		SELECT`+paymentColumns+`
		FROM payments p
		WHERE p.member_id = ? AND p.week_no = ?
		LIMIT 1
	`, memberID, weekNo), &p)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Payment{}, false, nil
	}
	if err != nil {
		return models.Payment{}, false, err
	}
	return p, true, nil
}

func (r PaymentRepository) Insert(p models.Payment) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO payments (member_id, week_no, week_start_date, amount, payment_mode, status, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		p.MemberID,
		p.WeekNo,
		p.WeekStartDate,
		p.Amount,
		p.PaymentMode,
		p.Status,
		intdb.NullIfEmpty(p.SubmittedAt),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// BulkInsert writes the bootstrap week rows in a single statement.
func (r PaymentRepository) BulkInsert(payments []models.Payment) error {
	if len(payments) == 0 {
		return nil
	}

	placeholders := make([]string, 0, len(payments))
	args := make([]any, 0, len(payments)*5)
	for _, p := range payments {
		placeholders = append(placeholders, "(?, ?, ?, ?, ?)")
		args = append(args, p.MemberID, p.WeekNo, p.WeekStartDate, p.Amount, p.Status)
	}

	query := `INSERT INTO payments (member_id, week_no, week_start_date, amount, status) VALUES ` +
		strings.Join(placeholders, ", ")
	_, err := r.db().Exec(query, args...)
	return err
}

// UpdateSubmission records a member self-report on an existing week row.
func (r PaymentRepository) UpdateSubmission(id int64, amount float64, mode, status, submittedAt string) error {
	_, err := r.db().Exec(`
		UPDATE payments
		SET amount = ?, payment_mode = ?, status = ?, submitted_at = ?
		WHERE id = ?
	`, amount, mode, status, submittedAt, id)
	return err
}

// UpdateReview applies an admin edit. Nil pointers leave the column alone;
// paidDate is only stamped when the caller passes a value.
func (r PaymentRepository) UpdateReview(id int64, status, mode, utr *string, paidDate string) error {
	columns := []string{}
	args := []any{}

	if status != nil {
		columns = append(columns, "status = ?")
		args = append(args, *status)
	}
	if mode != nil {
		columns = append(columns, "payment_mode = ?")
		args = append(args, *mode)
	}
	if utr != nil {
		columns = append(columns, "utr_no = ?")
		args = append(args, intdb.NullIfEmpty(*utr))
	}
	if paidDate != "" {
		columns = append(columns, "paid_date = ?")
		args = append(args, paidDate)
	}
	if len(columns) == 0 {
		return nil
	}

	args = append(args, id)
	_, err := r.db().Exec(`UPDATE payments SET `+strings.Join(columns, ", ")+` WHERE id = ?`, args...)
	return err
}

// BulkUpdateWeeks sets status/mode for the member's listed weeks in one
// statement. There are no partial-failure semantics: the filter either
// matches rows or it does not.
func (r PaymentRepository) BulkUpdateWeeks(memberID int64, weeks []int, status, mode, paidDate string) (int64, error) {
	if len(weeks) == 0 {
		return 0, nil
	}

	columns := []string{"status = ?", "payment_mode = ?"}
	args := []any{status, mode}
	if paidDate != "" {
		columns = append(columns, "paid_date = ?")
		args = append(args, paidDate)
	}

	in := make([]string, len(weeks))
	args = append(args, memberID)
	for i, w := range weeks {
		in[i] = "?"
		args = append(args, w)
	}

	query := fmt.Sprintf(`UPDATE payments SET %s WHERE member_id = ? AND week_no IN (%s)`,
		strings.Join(columns, ", "), strings.Join(in, ", "))
	res, err := r.db().Exec(query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r PaymentRepository) DeleteByMember(memberID int64) error {
	_, err := r.db().Exec(`DELETE FROM payments WHERE member_id = ?`, memberID)
	return err
}

// SumPaidByMode totals collected amounts over PAID rows, split by mode.
func (r PaymentRepository) SumPaidByMode() (upiTotal, cashTotal float64, err error) {
	rows, err := r.db().Query(`
		SELECT payment_mode, COALESCE(SUM(amount), 0)
		FROM payments
		WHERE status = 'PAID'
		GROUP BY payment_mode
	`)
	if err != nil {
		return 0, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		var mode string
		var total float64
		if err := rows.Scan(&mode, &total); err != nil {
			return 0, 0, err
		}
		switch mode {
		case models.ModeUPI:
			upiTotal = total
		case models.ModeCash:
			cashTotal = total
		}
	}
	return upiTotal, cashTotal, rows.Err()
}

// ListNotifications returns the admin approval queue: self-reported payments
// awaiting review, most recent first.
func (r PaymentRepository) ListNotifications() ([]models.PaymentWithMember, error) {
	rows, err := r.db().Query(`
		SELECT` + paymentColumns + `,
		       m.id, m.name, COALESCE(m.phone, '')
		FROM payments p
		JOIN members m ON m.id = p.member_id
		WHERE p.status = 'SUBMITTED'
		   OR (p.status = 'PENDING' AND p.submitted_at IS NOT NULL)
		ORDER BY p.submitted_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPaymentsWithMember(rows)
}

func scanPaymentsWithMember(rows *sql.Rows) ([]models.PaymentWithMember, error) {
	payments := []models.PaymentWithMember{}
	for rows.Next() {
		var p models.PaymentWithMember
		if err := rows.Scan(
			&p.ID,
			&p.MemberID,
			&p.WeekNo,
			&p.WeekStartDate,
			&p.Amount,
			&p.PaymentMode,
			&p.UTRNo,
			&p.Status,
			&p.SubmittedAt,
			&p.PaidDate,
			&p.CreatedAt,
			&p.Member.ID,
			&p.Member.Name,
			&p.Member.Phone,
		); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
