package repositories

import (
	"testing"

	"chitfund/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

var paymentRowColumns = []string{
	"id", "member_id", "week_no", "week_start_date", "amount",
	"payment_mode", "utr_no", "status", "submitted_at", "paid_date", "created_at",
}

func newPaymentRow(id, memberID int64, weekNo int, status string) *sqlmock.Rows {
	return sqlmock.NewRows(paymentRowColumns).AddRow(
		id, memberID, weekNo, "2026-01-03", 10.0,
		models.ModeUPI, "", status, "", "", "2026-01-01 00:00:00",
	)
}

func TestGetByMemberWeekNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM payments p WHERE p.member_id").
		WithArgs(int64(1), 5).
		WillReturnRows(sqlmock.NewRows(paymentRowColumns))

	_, found, err := PaymentRepository{DB: db}.GetByMemberWeek(1, 5)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if found {
		t.Fatal("expected found=false for missing week record")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetByMemberWeekFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM payments p WHERE p.member_id").
		WithArgs(int64(1), 5).
		WillReturnRows(newPaymentRow(9, 1, 5, models.StatusPending))

	p, found, err := PaymentRepository{DB: db}.GetByMemberWeek(1, 5)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !found || p.ID != 9 || p.WeekNo != 5 {
		t.Fatalf("unexpected payment: found=%v %+v", found, p)
	}
}

func TestBulkInsertSingleStatement(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	payments := []models.Payment{
		{MemberID: 3, WeekNo: 1, WeekStartDate: "2026-01-03", Amount: 10, Status: models.StatusPending},
		{MemberID: 3, WeekNo: 2, WeekStartDate: "2026-01-10", Amount: 10, Status: models.StatusPending},
	}

	mock.ExpectExec("INSERT INTO payments").
		WithArgs(
			int64(3), 1, "2026-01-03", 10.0, models.StatusPending,
			int64(3), 2, "2026-01-10", 10.0, models.StatusPending,
		).
		WillReturnResult(sqlmock.NewResult(1, 2))

	if err := (PaymentRepository{DB: db}).BulkInsert(payments); err != nil {
		t.Fatalf("bulk insert error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBulkInsertEmptyIsNoop(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	if err := (PaymentRepository{DB: db}).BulkInsert(nil); err != nil {
		t.Fatalf("expected noop, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("no statements should run: %v", err)
	}
}

func TestBulkUpdateWeeks(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE payments SET status = \\?, payment_mode = \\?, paid_date = \\? WHERE member_id = \\? AND week_no IN").
		WithArgs(models.StatusPaid, models.ModeCash, "2026-02-01 10:00:00", int64(4), 1, 2, 3).
		WillReturnResult(sqlmock.NewResult(0, 3))

	affected, err := PaymentRepository{DB: db}.BulkUpdateWeeks(4, []int{1, 2, 3}, models.StatusPaid, models.ModeCash, "2026-02-01 10:00:00")
	if err != nil {
		t.Fatalf("bulk update error: %v", err)
	}
	if affected != 3 {
		t.Fatalf("affected = %d, want 3", affected)
	}
}

func TestSumPaidByMode(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("GROUP BY payment_mode").
		WillReturnRows(sqlmock.NewRows([]string{"payment_mode", "total"}).
			AddRow(models.ModeUPI, 120.0).
			AddRow(models.ModeCash, 30.0))

	upi, cash, err := PaymentRepository{DB: db}.SumPaidByMode()
	if err != nil {
		t.Fatalf("sum error: %v", err)
	}
	if upi != 120 || cash != 30 {
		t.Fatalf("sums = %v/%v, want 120/30", upi, cash)
	}
}

func TestUpdateReviewBuildsOnlyRequestedColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	status := models.StatusRejected
	mock.ExpectExec("UPDATE payments SET status = \\? WHERE id = \\?").
		WithArgs(status, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := (PaymentRepository{DB: db}).UpdateReview(7, &status, nil, nil, ""); err != nil {
		t.Fatalf("update review error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
