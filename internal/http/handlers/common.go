package handlers

import (
	"net/http"
	"sync"

	intconfig "chitfund/internal/config"
	"chitfund/internal/http/middleware"
	"chitfund/internal/repositories"
	"chitfund/internal/services"

	"github.com/gin-gonic/gin"
)

var (
	envMu sync.RWMutex
	env   intconfig.Env
)

// Configure stores the process config for handler-built services.
func Configure(e intconfig.Env) {
	envMu.Lock()
	defer envMu.Unlock()
	env = e
}

func currentEnv() intconfig.Env {
	envMu.RLock()
	defer envMu.RUnlock()
	return env
}

func memberService(c *gin.Context) services.MemberService {
	e := currentEnv()
	return services.MemberService{
		MemberRepo:   repositories.MemberRepository{},
		PaymentRepo:  repositories.PaymentRepository{},
		Epoch:        e.EpochDate,
		WeeklyAmount: e.WeeklyAmount,
		RequestID:    middleware.GetRequestID(c),
	}
}

func paymentService(c *gin.Context) services.PaymentService {
	e := currentEnv()
	return services.PaymentService{
		PaymentRepo:  repositories.PaymentRepository{},
		MemberRepo:   repositories.MemberRepository{},
		Epoch:        e.EpochDate,
		WeeklyAmount: e.WeeklyAmount,
		UPIID:        e.UPIID,
		RequestID:    middleware.GetRequestID(c),
	}
}

func receiptService(c *gin.Context) services.ReceiptService {
	e := currentEnv()
	return services.ReceiptService{
		PaymentRepo: repositories.PaymentRepository{},
		MemberRepo:  repositories.MemberRepository{},
		Epoch:       e.EpochDate,
		RequestID:   middleware.GetRequestID(c),
	}
}

// RespondError sends standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	payload := gin.H{
		"message":    message,
		"request_id": middleware.GetRequestID(c),
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "empty request body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}
