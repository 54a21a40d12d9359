package models

// Payment status values. PAID is terminal for the normal member flow: the
// public endpoints refuse to touch a PAID week, only admin routes can.
const (
	StatusPending   = "PENDING"
	StatusSubmitted = "SUBMITTED"
	StatusPaid      = "PAID"
	StatusRejected  = "REJECTED"
)

const (
	ModeUPI  = "UPI"
	ModeCash = "CASH"
)

// Payment is one week record: exactly one row exists per (member_id, week_no)
// pair, enforced by a unique key in the payments table.
type Payment struct {
	ID            int64   `json:"id"`
	MemberID      int64   `json:"member_id"`
	WeekNo        int     `json:"week_no"`
	WeekStartDate string  `json:"week_start_date"`
	Amount        float64 `json:"amount"`
	PaymentMode   string  `json:"payment_mode"`
	UTRNo         string  `json:"utr_no"`
	Status        string  `json:"status"`
	SubmittedAt   string  `json:"submitted_at"`
	PaidDate      string  `json:"paid_date"`
	CreatedAt     string  `json:"created_at"`
}

// PaymentWithMember is the admin listing shape with the owning member joined.
type PaymentWithMember struct {
	Payment
	Member MemberRef `json:"member"`
}

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusSubmitted, StatusPaid, StatusRejected:
		return true
	}
	return false
}

func ValidMode(m string) bool {
	return m == ModeUPI || m == ModeCash
}
