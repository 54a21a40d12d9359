package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"chitfund/internal/domain"
	"chitfund/internal/domain/models"
	"chitfund/internal/repositories"
	"chitfund/internal/utils"
)

// MemberService owns the member lifecycle including the payment bootstrap:
// every new member gets one PENDING week record per week of the cycle.
type MemberService struct {
	MemberRepo   repositories.MemberRepository
	PaymentRepo  repositories.PaymentRepository
	Epoch        time.Time
	WeeklyAmount float64
	RequestID    string
}

func (s MemberService) weeklyAmount() float64 {
	if s.WeeklyAmount > 0 {
		return s.WeeklyAmount
	}
	return domain.DefaultWeeklyAmount
}

func (s MemberService) List() ([]models.Member, error) {
	members, err := s.MemberRepo.List()
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to fetch members", Err: err}
	}
	return members, nil
}

func (s MemberService) Get(id int64) (models.Member, error) {
	member, err := s.MemberRepo.GetByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Member{}, domain.NotFoundError{Resource: "member"}
	}
	if err != nil {
		return models.Member{}, domain.InternalError{Msg: "failed to fetch member", Err: err}
	}
	return member, nil
}

// Create inserts the member and bootstraps all week records in one bulk
// statement.
func (s MemberService) Create(name, phone string) (models.Member, error) {
	name = utils.NormalizeSpace(name)
	if name == "" {
		return models.Member{}, domain.ValidationError{Field: "name", Msg: "name is required"}
	}

	id, err := s.MemberRepo.Insert(name, utils.TrimOrEmpty(phone))
	if err != nil {
		return models.Member{}, domain.InternalError{Msg: "failed to create member", Err: err}
	}

	if err := s.PaymentRepo.BulkInsert(bootstrapPayments(id, s.Epoch, s.weeklyAmount())); err != nil {
		return models.Member{}, domain.InternalError{Msg: "failed to initialize week records", Err: err}
	}

	utils.LogEvent(s.RequestID, "members", "create",
		fmt.Sprintf("member_id=%d weeks=%d", id, domain.TotalWeeks))

	member, err := s.MemberRepo.GetByID(id)
	if err != nil {
		return models.Member{ID: id, Name: name, Phone: utils.TrimOrEmpty(phone)}, nil
	}
	return member, nil
}

func (s MemberService) Update(id int64, name, phone string) (models.Member, error) {
	name = utils.NormalizeSpace(name)
	if name == "" {
		return models.Member{}, domain.ValidationError{Field: "name", Msg: "name is required"}
	}

	if _, err := s.Get(id); err != nil {
		return models.Member{}, err
	}

	if err := s.MemberRepo.Update(id, name, utils.TrimOrEmpty(phone)); err != nil {
		return models.Member{}, domain.InternalError{Msg: "failed to update member", Err: err}
	}
	return s.Get(id)
}

// Delete removes the member and every week record owned by it. The payments
// FK also cascades; the explicit delete keeps the behavior visible and works
// on schemas created before the constraint existed.
func (s MemberService) Delete(id int64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}

	if err := s.PaymentRepo.DeleteByMember(id); err != nil {
		return domain.InternalError{Msg: "failed to delete member payments", Err: err}
	}
	if err := s.MemberRepo.Delete(id); err != nil {
		return domain.InternalError{Msg: "failed to delete member", Err: err}
	}

	utils.LogEvent(s.RequestID, "members", "delete", fmt.Sprintf("member_id=%d", id))
	return nil
}

// bootstrapPayments builds the full set of week records for a new member:
// week_no 1..TotalWeeks, week_start_date = epoch + 7*(week-1) days, all
// PENDING at the configured weekly unit.
func bootstrapPayments(memberID int64, epoch time.Time, amount float64) []models.Payment {
	payments := make([]models.Payment, 0, domain.TotalWeeks)
	for week := 1; week <= domain.TotalWeeks; week++ {
		payments = append(payments, models.Payment{
			MemberID:      memberID,
			WeekNo:        week,
			WeekStartDate: utils.FormatDate(domain.WeekStartDate(epoch, week)),
			Amount:        amount,
			Status:        models.StatusPending,
		})
	}
	return payments
}
