package api

import (
	"log"
	stdhttp "net/http"

	intconfig "chitfund/internal/config"
	h "chitfund/internal/http/handlers"
	"chitfund/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.Configure(env)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), middleware.Metrics(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"message": "route not found",
			"path":    c.Request.URL.Path,
			"method":  c.Request.Method,
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	requireAdmin := middleware.RequireAdmin(env.JWTSecret)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)
		api.GET("/config", h.GetConfig)

		admin := api.Group("/admin")
		admin.POST("/login", h.Login)
		admin.GET("/verify", requireAdmin, h.Verify)

		members := api.Group("/members")
		members.GET("", h.GetMembers)
		members.GET("/:id", h.GetMemberByID)
		members.POST("", requireAdmin, h.CreateMember)
		members.PUT("/:id", requireAdmin, h.UpdateMember)
		members.DELETE("/:id", requireAdmin, h.DeleteMember)

		payments := api.Group("/payments")
		payments.GET("/member/:memberId", h.GetMemberPayments)
		payments.POST("", h.InitiatePayment)
		payments.POST("/submit", h.SubmitPayment)

		payments.GET("", requireAdmin, h.GetPayments)
		payments.GET("/stats", requireAdmin, h.GetPaymentStats)
		payments.GET("/notifications", requireAdmin, h.GetPaymentNotifications)
		payments.PUT("/:id", requireAdmin, h.UpdatePayment)
		payments.PUT("/:id/approve", requireAdmin, h.ApprovePayment)
		payments.PUT("/:id/reject", requireAdmin, h.RejectPayment)
		payments.PUT("/bulk/:memberId", requireAdmin, h.BulkUpdatePayments)
		payments.GET("/:id/receipt", requireAdmin, h.GetPaymentReceipt)
	}

	h.SetRouter(r)
	return r
}
