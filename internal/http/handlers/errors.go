package handlers

import (
	"log"
	"net/http"

	"chitfund/internal/domain"
	"chitfund/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// RespondDomainError maps domain errors to HTTP responses. Conflicts ("week
// already PAID") map to 400 to keep the original API contract. Internal
// detail stays in the server log, never in the response.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		RespondError(c, http.StatusBadRequest, err.Error(), nil)
	case domain.IsNotFound(err):
		RespondError(c, http.StatusNotFound, err.Error(), nil)
	case domain.IsConflict(err):
		RespondError(c, http.StatusBadRequest, err.Error(), nil)
	default:
		log.Printf("[ERROR] request_id=%s err=%v", middleware.GetRequestID(c), err)
		RespondError(c, http.StatusInternalServerError, "Server error", nil)
	}
}
