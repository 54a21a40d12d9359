package handlers

import (
	"net/http"
	"sync"

	intconfig "chitfund/internal/config"
	intdb "chitfund/internal/db"
	"chitfund/internal/domain"
	"chitfund/internal/utils"

	"github.com/gin-gonic/gin"
)

var (
	routerMu sync.RWMutex
	router   *gin.Engine
)

// SetRouter stores the active gin engine for later inspection (e.g., /api/routes).
func SetRouter(r *gin.Engine) {
	routerMu.Lock()
	defer routerMu.Unlock()
	router = r
}

// GET /api/health
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK", "message": "chit fund api is running"})
}

// GET /api/config
// Shared cycle parameters so clients compute the same week numbers and UPI
// links as the server.
func GetConfig(c *gin.Context) {
	e := currentEnv()
	c.JSON(http.StatusOK, gin.H{
		"upiId":        e.UPIID,
		"epochDate":    utils.FormatDate(e.EpochDate),
		"weeklyAmount": e.WeeklyAmount,
		"totalWeeks":   domain.TotalWeeks,
	})
}

// GET /api/db-check
func DBCheck(c *gin.Context) {
	if intconfig.DB == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "database not connected"})
		return
	}
	if !intdb.HasTable(intconfig.DB, "payments") {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "payments table missing"})
		return
	}
	var count int
	if err := intconfig.DB.QueryRow("SELECT COUNT(*) FROM members").Scan(&count); err != nil {
		RespondError(c, http.StatusInternalServerError, "database query failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "database connection OK", "members_in_db": count})
}

// GET /api/routes
func Routes(c *gin.Context) {
	routerMu.RLock()
	r := router
	routerMu.RUnlock()
	if r == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "router not ready"})
		return
	}

	routes := r.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{
			"method":  rt.Method,
			"path":    rt.Path,
			"handler": rt.Handler,
		})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}
