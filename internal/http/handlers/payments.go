package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type initiateRequest struct {
	MemberID int64 `json:"member_id"`
	WeekNo   int   `json:"week_no"`
}

type submitRequest struct {
	MemberID    int64   `json:"member_id"`
	WeekNo      int     `json:"week_no"`
	Amount      float64 `json:"amount"`
	PaymentMode string  `json:"payment_mode"`
}

type updatePaymentRequest struct {
	Status      *string `json:"status"`
	PaymentMode *string `json:"payment_mode"`
	UTRNo       *string `json:"utr_no"`
}

type bulkUpdateRequest struct {
	Weeks       []int  `json:"weeks"`
	Status      string `json:"status"`
	PaymentMode string `json:"payment_mode"`
}

// GET /api/payments/member/:memberId
func GetMemberPayments(c *gin.Context) {
	memberID, ok := idParam(c, "memberId")
	if !ok {
		return
	}
	payments, err := paymentService(c).ListByMember(memberID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

// GET /api/payments
func GetPayments(c *gin.Context) {
	payments, err := paymentService(c).ListAll()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

// GET /api/payments/stats
func GetPaymentStats(c *gin.Context) {
	stats, err := paymentService(c).Stats()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GET /api/payments/notifications
func GetPaymentNotifications(c *gin.Context) {
	notifications, err := paymentService(c).Notifications()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// POST /api/payments
// Public: creates the week record on first touch and hands back a UPI deep
// link. The link is a client convenience; nothing here verifies a transfer.
func InitiatePayment(c *gin.Context) {
	var req initiateRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	payment, link, err := paymentService(c).Initiate(req.MemberID, req.WeekNo)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Payment initiated",
		"payment":  payment,
		"upi_link": link,
	})
}

// POST /api/payments/submit
// Public: member self-report. Status is forced to SUBMITTED server-side.
func SubmitPayment(c *gin.Context) {
	var req submitRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	payment, err := paymentService(c).Submit(req.MemberID, req.WeekNo, req.Amount, req.PaymentMode)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment submitted for verification", "payment": payment})
}

// PUT /api/payments/:id
func UpdatePayment(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req updatePaymentRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	payment, err := paymentService(c).Update(id, req.Status, req.PaymentMode, req.UTRNo)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment updated successfully", "payment": payment})
}

// PUT /api/payments/:id/approve
func ApprovePayment(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	payment, err := paymentService(c).Approve(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment approved", "payment": payment})
}

// PUT /api/payments/:id/reject
func RejectPayment(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	payment, err := paymentService(c).Reject(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment rejected", "payment": payment})
}

// PUT /api/payments/bulk/:memberId
func BulkUpdatePayments(c *gin.Context) {
	memberID, ok := idParam(c, "memberId")
	if !ok {
		return
	}
	var req bulkUpdateRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	affected, err := paymentService(c).BulkUpdate(memberID, req.Weeks, req.Status, req.PaymentMode)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payments updated successfully", "updated": affected})
}

// GET /api/payments/:id/receipt
func GetPaymentReceipt(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	pdf, filename, err := receiptService(c).GenerateReceipt(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
