package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"chitfund/internal/domain"
	"chitfund/internal/utils"
)

type Env struct {
	AppAddr string
	GinMode string

	DBDSN string

	JWTSecret string

	// Program-wide savings cycle parameters, shared with clients via
	// GET /api/config so both sides compute the same week numbers.
	UPIID        string
	EpochDate    time.Time
	WeeklyAmount float64

	// Seed credentials. An empty AdminPassword means "never reset an
	// existing hash", so a rotated password survives restarts.
	AdminUsername string
	AdminPassword string
}

func LoadEnv() Env {
	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	dsn := strings.TrimSpace(os.Getenv("DB_DSN"))
	if dsn == "" {
		dsn = "root:@tcp(127.0.0.1:3306)/chitfund?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s"
	}

	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		secret = "super-secret-key-change-me"
	}

	upiID := strings.TrimSpace(os.Getenv("UPI_ID"))
	if upiID == "" {
		upiID = "yourupi@bank"
	}

	epoch := strings.TrimSpace(os.Getenv("EPOCH_DATE"))
	if epoch == "" {
		epoch = domain.DefaultEpochDate
	}
	epochDate, err := utils.ParseDate(epoch)
	if err != nil {
		epochDate, _ = utils.ParseDate(domain.DefaultEpochDate)
	}

	weekly := domain.DefaultWeeklyAmount
	if raw := strings.TrimSpace(os.Getenv("WEEKLY_AMOUNT")); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v > 0 {
			weekly = v
		}
	}

	adminUser := strings.TrimSpace(os.Getenv("ADMIN_USERNAME"))
	if adminUser == "" {
		adminUser = "admin"
	}

	return Env{
		AppAddr:       appAddr,
		GinMode:       strings.TrimSpace(os.Getenv("GIN_MODE")),
		DBDSN:         dsn,
		JWTSecret:     secret,
		UPIID:         upiID,
		EpochDate:     epochDate,
		WeeklyAmount:  weekly,
		AdminUsername: adminUser,
		AdminPassword: strings.TrimSpace(os.Getenv("ADMIN_PASSWORD")),
	}
}
