package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"chitfund/internal/http/middleware"
	"chitfund/internal/repositories"
	"chitfund/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /api/admin/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	admin, err := repositories.AdminRepository{}.GetByUsername(utils.TrimOrEmpty(req.Username))
	if errors.Is(err, sql.ErrNoRows) {
		RespondError(c, http.StatusUnauthorized, "Invalid username or password", nil)
		return
	}
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "Server error", err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		RespondError(c, http.StatusUnauthorized, "Invalid username or password", nil)
		return
	}

	now := time.Now()
	claims := middleware.AdminClaims{
		AdminID:  admin.ID,
		Username: admin.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(currentEnv().JWTSecret))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to create token", err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "admin", "login", "username="+admin.Username)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"admin": gin.H{"id": admin.ID, "username": admin.Username},
	})
}

// GET /api/admin/verify
// Reached only through RequireAdmin, so arriving here means the token holds.
func Verify(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"valid":    true,
		"username": middleware.AdminUsername(c),
	})
}
