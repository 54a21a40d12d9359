package services

import (
	"testing"
	"time"

	"chitfund/internal/domain"
	"chitfund/internal/domain/models"
	"chitfund/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func epochForTest(t *testing.T) time.Time {
	t.Helper()
	epoch, err := time.Parse("2006-01-02", "2026-01-03")
	if err != nil {
		t.Fatalf("bad epoch: %v", err)
	}
	return epoch
}

func TestBootstrapPaymentsCoversEveryWeek(t *testing.T) {
	epoch := epochForTest(t)

	payments := bootstrapPayments(12, epoch, 10)

	if len(payments) != domain.TotalWeeks {
		t.Fatalf("got %d rows, want %d", len(payments), domain.TotalWeeks)
	}
	for i, p := range payments {
		want := i + 1
		if p.WeekNo != want {
			t.Fatalf("row %d has week_no %d, want %d", i, p.WeekNo, want)
		}
		if p.MemberID != 12 {
			t.Fatalf("row %d has member_id %d", i, p.MemberID)
		}
		if p.Status != models.StatusPending {
			t.Fatalf("row %d status %q, want PENDING", i, p.Status)
		}
		if p.Amount != 10 {
			t.Fatalf("row %d amount %v, want 10", i, p.Amount)
		}
	}
	if payments[0].WeekStartDate != "2026-01-03" {
		t.Errorf("week 1 start = %s, want epoch", payments[0].WeekStartDate)
	}
	if payments[1].WeekStartDate != "2026-01-10" {
		t.Errorf("week 2 start = %s, want 2026-01-10", payments[1].WeekStartDate)
	}
	if payments[47].WeekStartDate != "2026-11-28" {
		t.Errorf("week 48 start = %s, want 2026-11-28", payments[47].WeekStartDate)
	}
}

func TestMemberCreateBootstrapsPayments(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO members").
		WithArgs("Asha", "98765").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("INSERT INTO payments").
		WillReturnResult(sqlmock.NewResult(1, domain.TotalWeeks))
	mock.ExpectQuery("FROM members WHERE id").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "phone", "created_at"}).
			AddRow(7, "Asha", "98765", "2026-01-01 00:00:00"))

	svc := MemberService{
		MemberRepo:   repositories.MemberRepository{DB: db},
		PaymentRepo:  repositories.PaymentRepository{DB: db},
		Epoch:        epochForTest(t),
		WeeklyAmount: 10,
	}

	member, err := svc.Create("Asha", "98765")
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if member.ID != 7 || member.Name != "Asha" {
		t.Fatalf("unexpected member: %+v", member)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMemberCreateRequiresName(t *testing.T) {
	svc := MemberService{Epoch: epochForTest(t)}

	_, err := svc.Create("   ", "")
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestMemberDeleteRemovesPaymentsFirst(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM members WHERE id").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "phone", "created_at"}).
			AddRow(7, "Asha", "", ""))
	mock.ExpectExec("DELETE FROM payments WHERE member_id").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 48))
	mock.ExpectExec("DELETE FROM members WHERE id").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := MemberService{
		MemberRepo:  repositories.MemberRepository{DB: db},
		PaymentRepo: repositories.PaymentRepository{DB: db},
		Epoch:       epochForTest(t),
	}

	if err := svc.Delete(7); err != nil {
		t.Fatalf("delete error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
