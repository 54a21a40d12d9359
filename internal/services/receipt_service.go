package services

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"chitfund/internal/domain"
	"chitfund/internal/repositories"
	"chitfund/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// ReceiptService renders a PDF receipt for a single week record.
type ReceiptService struct {
	PaymentRepo repositories.PaymentRepository
	MemberRepo  repositories.MemberRepository
	Epoch       time.Time
	RequestID   string
}

type receiptData struct {
	PaymentID   int64
	MemberName  string
	MemberPhone string
	WeekNo      int
	WeekStart   string
	WeekEnd     string
	Amount      float64
	Mode        string
	UTRNo       string
	Status      string
	PaidDate    string
}

func (s ReceiptService) GenerateReceipt(paymentID int64) ([]byte, string, error) {
	payment, err := s.PaymentRepo.GetByID(paymentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", domain.NotFoundError{Resource: "payment"}
	}
	if err != nil {
		return nil, "", domain.InternalError{Msg: "failed to fetch payment", Err: err}
	}

	member, err := s.MemberRepo.GetByID(payment.MemberID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", domain.NotFoundError{Resource: "member"}
	}
	if err != nil {
		return nil, "", domain.InternalError{Msg: "failed to fetch member", Err: err}
	}

	utils.LogEvent(s.RequestID, "receipts", "generate", fmt.Sprintf("payment_id=%d", paymentID))

	return buildReceiptPDF(receiptData{
		PaymentID:   payment.ID,
		MemberName:  member.Name,
		MemberPhone: member.Phone,
		WeekNo:      payment.WeekNo,
		WeekStart:   payment.WeekStartDate,
		WeekEnd:     utils.FormatDate(domain.WeekEndDate(s.Epoch, payment.WeekNo)),
		Amount:      payment.Amount,
		Mode:        payment.PaymentMode,
		UTRNo:       payment.UTRNo,
		Status:      payment.Status,
		PaidDate:    payment.PaidDate,
	})
}

func buildReceiptPDF(d receiptData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Payment Receipt", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "PAYMENT RECEIPT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Receipt No  : RCPT-%d", d.PaymentID),
		fmt.Sprintf("Member      : %s", safe(d.MemberName, "-")),
		fmt.Sprintf("Phone       : %s", safe(d.MemberPhone, "-")),
		fmt.Sprintf("Week        : %d of %d", d.WeekNo, domain.TotalWeeks),
		fmt.Sprintf("Period      : %s to %s", safe(d.WeekStart, "-"), safe(d.WeekEnd, "-")),
		fmt.Sprintf("Amount      : %s", utils.FormatINR(d.Amount)),
		fmt.Sprintf("Mode        : %s", safe(d.Mode, "-")),
		fmt.Sprintf("UTR No      : %s", safe(d.UTRNo, "-")),
		fmt.Sprintf("Status      : %s", safe(d.Status, "-")),
		fmt.Sprintf("Paid On     : %s", safe(d.PaidDate, "-")),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Note: UPI transfers are self-reported and confirmed by the fund admin. Keep this receipt for your records.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", domain.InternalError{Msg: "failed to render receipt", Err: err}
	}

	filename := fmt.Sprintf("RECEIPT_%d_%s.pdf", d.PaymentID, safeFilenamePart(d.MemberName))
	return buf.Bytes(), filename, nil
}

func safe(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func safeFilenamePart(s string) string {
	var out strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			out.WriteByte('_')
		}
	}
	if out.Len() == 0 {
		return "member"
	}
	return out.String()
}
