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

// PaymentService implements the week-record bookkeeping: member-initiated
// submission, the admin review flow, bulk updates and the dashboard stats.
// Public flows can only move a week to PENDING or SUBMITTED; PAID is
// reachable exclusively through the admin operations.
type PaymentService struct {
	PaymentRepo  repositories.PaymentRepository
	MemberRepo   repositories.MemberRepository
	Epoch        time.Time
	WeeklyAmount float64
	UPIID        string
	PayeeName    string
	RequestID    string

	// Now is injectable for tests; defaults to wall clock UTC.
	Now func() time.Time
}

// Stats is the dashboard summary recomputed per request.
type Stats struct {
	TotalMembers   int     `json:"totalMembers"`
	TotalCollected float64 `json:"totalCollected"`
	UPITotal       float64 `json:"upiTotal"`
	CashTotal      float64 `json:"cashTotal"`
	PendingAmount  float64 `json:"pendingAmount"`
	TotalExpected  float64 `json:"totalExpected"`
}

func (s PaymentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return utils.NowUTC()
}

func (s PaymentService) weeklyAmount() float64 {
	if s.WeeklyAmount > 0 {
		return s.WeeklyAmount
	}
	return domain.DefaultWeeklyAmount
}

func (s PaymentService) payeeName() string {
	if s.PayeeName != "" {
		return s.PayeeName
	}
	return "Chit Fund Savings"
}

func validWeek(weekNo int) bool {
	return weekNo >= 1 && weekNo <= domain.TotalWeeks
}

func (s PaymentService) ListByMember(memberID int64) ([]models.Payment, error) {
	if memberID <= 0 {
		return nil, domain.ValidationError{Field: "member_id"}
	}
	payments, err := s.PaymentRepo.ListByMember(memberID)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to fetch payments", Err: err}
	}
	return payments, nil
}

func (s PaymentService) ListAll() ([]models.PaymentWithMember, error) {
	payments, err := s.PaymentRepo.ListAllWithMembers()
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to fetch payments", Err: err}
	}
	return payments, nil
}

func (s PaymentService) Notifications() ([]models.PaymentWithMember, error) {
	payments, err := s.PaymentRepo.ListNotifications()
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to fetch notifications", Err: err}
	}
	return payments, nil
}

// Initiate creates the week record on first touch so a member can start a
// UPI transfer. Existing non-PAID rows are returned as-is; a PAID week is a
// conflict.
func (s PaymentService) Initiate(memberID int64, weekNo int) (models.Payment, string, error) {
	if memberID <= 0 {
		return models.Payment{}, "", domain.ValidationError{Field: "member_id"}
	}
	if !validWeek(weekNo) {
		return models.Payment{}, "", domain.ValidationError{Field: "week_no", Msg: fmt.Sprintf("must be between 1 and %d", domain.TotalWeeks)}
	}

	member, err := s.MemberRepo.GetByID(memberID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Payment{}, "", domain.NotFoundError{Resource: "member"}
	}
	if err != nil {
		return models.Payment{}, "", domain.InternalError{Msg: "failed to fetch member", Err: err}
	}

	payment, found, err := s.PaymentRepo.GetByMemberWeek(memberID, weekNo)
	if err != nil {
		return models.Payment{}, "", domain.InternalError{Msg: "failed to fetch payment", Err: err}
	}
	if found && payment.Status == models.StatusPaid {
		return models.Payment{}, "", domain.ConflictError{Resource: "payment", Msg: "Payment already completed for this week"}
	}

	if !found {
		id, err := s.PaymentRepo.Insert(models.Payment{
			MemberID:      memberID,
			WeekNo:        weekNo,
			WeekStartDate: utils.FormatDate(domain.WeekStartDate(s.Epoch, weekNo)),
			Amount:        s.weeklyAmount(),
			PaymentMode:   models.ModeUPI,
			Status:        models.StatusPending,
		})
		if err != nil {
			return models.Payment{}, "", domain.InternalError{Msg: "failed to create payment", Err: err}
		}
		payment, err = s.PaymentRepo.GetByID(id)
		if err != nil {
			return models.Payment{}, "", domain.InternalError{Msg: "failed to fetch payment", Err: err}
		}
	}

	note := fmt.Sprintf("Week %d Payment - %s", weekNo, member.Name)
	link := utils.BuildUPILink(s.UPIID, s.payeeName(), payment.Amount, note)

	utils.LogEvent(s.RequestID, "payments", "initiate",
		fmt.Sprintf("member_id=%d week_no=%d", memberID, weekNo))
	return payment, link, nil
}

// Submit records a member self-report for a week. The row is upserted and
// always lands in SUBMITTED with a fresh submitted_at; the client has no say
// over status. Submitting a PAID week is a conflict.
func (s PaymentService) Submit(memberID int64, weekNo int, amount float64, mode string) (models.Payment, error) {
	if memberID <= 0 {
		return models.Payment{}, domain.ValidationError{Field: "member_id"}
	}
	if !validWeek(weekNo) {
		return models.Payment{}, domain.ValidationError{Field: "week_no", Msg: fmt.Sprintf("must be between 1 and %d", domain.TotalWeeks)}
	}
	if mode == "" {
		mode = models.ModeUPI
	}
	if !models.ValidMode(mode) {
		return models.Payment{}, domain.ValidationError{Field: "payment_mode", Msg: "must be UPI or CASH"}
	}
	if amount <= 0 {
		amount = s.weeklyAmount()
	}

	payment, found, err := s.PaymentRepo.GetByMemberWeek(memberID, weekNo)
	if err != nil {
		return models.Payment{}, domain.InternalError{Msg: "failed to fetch payment", Err: err}
	}
	if found && payment.Status == models.StatusPaid {
		return models.Payment{}, domain.ConflictError{Resource: "payment", Msg: "Payment already completed for this week"}
	}

	submittedAt := utils.FormatDateTime(s.now())

	if found {
		err = s.PaymentRepo.UpdateSubmission(payment.ID, amount, mode, models.StatusSubmitted, submittedAt)
	} else {
		_, err = s.PaymentRepo.Insert(models.Payment{
			MemberID:      memberID,
			WeekNo:        weekNo,
			WeekStartDate: utils.FormatDate(domain.WeekStartDate(s.Epoch, weekNo)),
			Amount:        amount,
			PaymentMode:   mode,
			Status:        models.StatusSubmitted,
			SubmittedAt:   submittedAt,
		})
	}
	if err != nil {
		return models.Payment{}, domain.InternalError{Msg: "failed to submit payment", Err: err}
	}

	utils.LogEvent(s.RequestID, "payments", "submit",
		fmt.Sprintf("member_id=%d week_no=%d mode=%s", memberID, weekNo, mode))

	payment, _, err = s.PaymentRepo.GetByMemberWeek(memberID, weekNo)
	if err != nil {
		return models.Payment{}, domain.InternalError{Msg: "failed to fetch payment", Err: err}
	}
	return payment, nil
}

// Approve marks the week collected: status PAID plus a paid_date stamp.
func (s PaymentService) Approve(id int64) (models.Payment, error) {
	if _, err := s.getByID(id); err != nil {
		return models.Payment{}, err
	}

	status := models.StatusPaid
	if err := s.PaymentRepo.UpdateReview(id, &status, nil, nil, utils.FormatDateTime(s.now())); err != nil {
		return models.Payment{}, domain.InternalError{Msg: "failed to approve payment", Err: err}
	}

	utils.LogEvent(s.RequestID, "payments", "approve", fmt.Sprintf("payment_id=%d", id))
	return s.getByID(id)
}

// Reject marks the week refused. paid_date stays untouched; the member can
// resubmit, which moves the row back through SUBMITTED.
func (s PaymentService) Reject(id int64) (models.Payment, error) {
	if _, err := s.getByID(id); err != nil {
		return models.Payment{}, err
	}

	status := models.StatusRejected
	if err := s.PaymentRepo.UpdateReview(id, &status, nil, nil, ""); err != nil {
		return models.Payment{}, domain.InternalError{Msg: "failed to reject payment", Err: err}
	}

	utils.LogEvent(s.RequestID, "payments", "reject", fmt.Sprintf("payment_id=%d", id))
	return s.getByID(id)
}

// Update is the generic admin edit of status/mode/UTR. Moving the row to
// PAID stamps paid_date.
func (s PaymentService) Update(id int64, status, mode, utr *string) (models.Payment, error) {
	if status != nil && !models.ValidStatus(*status) {
		return models.Payment{}, domain.ValidationError{Field: "status"}
	}
	if mode != nil && !models.ValidMode(*mode) {
		return models.Payment{}, domain.ValidationError{Field: "payment_mode", Msg: "must be UPI or CASH"}
	}

	if _, err := s.getByID(id); err != nil {
		return models.Payment{}, err
	}

	paidDate := ""
	if status != nil && *status == models.StatusPaid {
		paidDate = utils.FormatDateTime(s.now())
	}

	if err := s.PaymentRepo.UpdateReview(id, status, mode, utr, paidDate); err != nil {
		return models.Payment{}, domain.InternalError{Msg: "failed to update payment", Err: err}
	}

	utils.LogEvent(s.RequestID, "payments", "update", fmt.Sprintf("payment_id=%d", id))
	return s.getByID(id)
}

// BulkUpdate sets status/mode for a batch of the member's weeks in a single
// unconditional statement.
func (s PaymentService) BulkUpdate(memberID int64, weeks []int, status, mode string) (int64, error) {
	if memberID <= 0 {
		return 0, domain.ValidationError{Field: "member_id"}
	}
	if len(weeks) == 0 {
		return 0, domain.ValidationError{Field: "weeks", Msg: "at least one week is required"}
	}
	for _, w := range weeks {
		if !validWeek(w) {
			return 0, domain.ValidationError{Field: "weeks", Msg: fmt.Sprintf("week %d out of range", w)}
		}
	}
	if !models.ValidStatus(status) {
		return 0, domain.ValidationError{Field: "status"}
	}
	if !models.ValidMode(mode) {
		return 0, domain.ValidationError{Field: "payment_mode", Msg: "must be UPI or CASH"}
	}

	paidDate := ""
	if status == models.StatusPaid {
		paidDate = utils.FormatDateTime(s.now())
	}

	affected, err := s.PaymentRepo.BulkUpdateWeeks(memberID, weeks, status, mode, paidDate)
	if err != nil {
		return 0, domain.InternalError{Msg: "failed to bulk update payments", Err: err}
	}

	utils.LogEvent(s.RequestID, "payments", "bulk_update",
		fmt.Sprintf("member_id=%d weeks=%d affected=%d", memberID, len(weeks), affected))
	return affected, nil
}

// Stats recomputes the dashboard summary from scratch on every call. A full
// scan is fine at tens of members times 48 weeks.
func (s PaymentService) Stats() (Stats, error) {
	totalMembers, err := s.MemberRepo.Count()
	if err != nil {
		return Stats{}, domain.InternalError{Msg: "failed to count members", Err: err}
	}

	upiTotal, cashTotal, err := s.PaymentRepo.SumPaidByMode()
	if err != nil {
		return Stats{}, domain.InternalError{Msg: "failed to sum payments", Err: err}
	}

	collected := upiTotal + cashTotal
	expected := float64(totalMembers) * float64(domain.TotalWeeks) * s.weeklyAmount()

	return Stats{
		TotalMembers:   totalMembers,
		TotalCollected: collected,
		UPITotal:       upiTotal,
		CashTotal:      cashTotal,
		PendingAmount:  expected - collected,
		TotalExpected:  expected,
	}, nil
}

func (s PaymentService) getByID(id int64) (models.Payment, error) {
	if id <= 0 {
		return models.Payment{}, domain.ValidationError{Field: "id"}
	}
	payment, err := s.PaymentRepo.GetByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Payment{}, domain.NotFoundError{Resource: "payment"}
	}
	if err != nil {
		return models.Payment{}, domain.InternalError{Msg: "failed to fetch payment", Err: err}
	}
	return payment, nil
}
