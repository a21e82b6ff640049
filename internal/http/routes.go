package http

import (
	"time"

	"billboard_compliance/internal/compliance"
	"billboard_compliance/internal/config"
	"billboard_compliance/internal/domain"
	"billboard_compliance/internal/http/handlers"
	"billboard_compliance/internal/http/middleware"
	"billboard_compliance/internal/storage"
	"billboard_compliance/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config, checker *compliance.Checker, store *storage.Store, hub *ws.Hub) {
	registerValidators()

	h := handlers.NewHandler(db, checker, store, hub)

	reportRL := middleware.ReportRateLimit(cfg.ReportRateLimit, time.Duration(cfg.ReportRateWindow)*time.Second)

	// Health checks (no rate limiting)
	r.GET("/health", h.Health)
	r.GET("/healthz", h.Liveness)
	r.GET("/readyz", h.Readiness)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(120, time.Minute))

	// Auth (tighter per-IP limit against credential stuffing)
	authRL := middleware.RedisRateLimit(10, time.Minute)
	v1.POST("/auth/register", authRL, h.Register)
	v1.POST("/auth/login", authRL, h.Login)
	v1.GET("/me", middleware.JWT(), h.Me)

	// Billboards
	v1.GET("/billboards", h.ListBillboards)
	v1.GET("/billboards/:id", h.GetBillboard)
	v1.POST("/billboards", middleware.JWT(), middleware.RequireRole(domain.RoleInspector, domain.RoleAdmin), h.CreateBillboard)
	v1.POST("/billboards/:id/check", middleware.JWT(), middleware.RequireRole(domain.RoleInspector, domain.RoleAdmin), h.CheckBillboard)

	// Reports
	v1.POST("/reports", middleware.JWT(), reportRL, h.CreateReport)
	v1.GET("/reports", middleware.JWT(), h.ListReports)
	v1.PATCH("/reports/:id/status", middleware.JWT(), middleware.RequireRole(domain.RoleInspector, domain.RoleAdmin), h.UpdateReportStatus)

	// Violations
	v1.POST("/violations", middleware.JWT(), middleware.RequireRole(domain.RoleInspector, domain.RoleAdmin), h.CreateViolation)
	v1.GET("/violations", middleware.JWT(), h.ListViolations)

	// Rewards and tiers
	v1.GET("/public/rewards/tiers", h.PublicTiers)
	v1.GET("/user/rewards", middleware.JWT(), h.MyRewards)
	v1.GET("/user/points/history", middleware.JWT(), h.MyPointsHistory)

	// Consent management
	v1.GET("/consents/requirements", h.ConsentRequirements)
	consents := v1.Group("/user/consents")
	consents.Use(middleware.JWT())
	{
		consents.GET("", h.ListConsents)
		consents.POST("", h.GrantConsent)
		consents.DELETE("/:id", h.RevokeConsent)
		consents.GET("/access", h.ConsentFeatureAccess)
	}

	// Referral system
	referral := v1.Group("/referral")
	referral.Use(middleware.JWT())
	{
		referral.GET("/code", h.GetReferralCode)
		referral.POST("/apply", h.ApplyReferral)
	}

	// Leaderboard (top 100 + user rank)
	v1.GET("/leaderboard", h.GetLeaderboard)
	v1.GET("/leaderboard/rank", middleware.JWT(), h.GetMyRank)

	// Public dashboard
	v1.GET("/public/heatmap", h.Heatmap)
	v1.GET("/public/stats", h.Stats)

	// Admin
	v1.GET("/admin/audit", middleware.JWT(), middleware.RequireRole(domain.RoleAdmin), h.AuditLogs)

	// WebSocket activity feed for the live dashboard
	r.GET("/ws/activity", h.ActivityFeed)
}

// registerValidators adds the enum binding tags used by request structs
func registerValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	_ = v.RegisterValidation("zonetype", func(fl validator.FieldLevel) bool {
		switch domain.ZoneType(fl.Field().String()) {
		case domain.ZoneProhibited, domain.ZoneRestricted, domain.ZonePermitted,
			domain.ZoneHeritage, domain.ZoneResidential, domain.ZoneCommercial,
			domain.ZoneIndustrial:
			return true
		}
		return false
	})

	_ = v.RegisterValidation("billboardtype", func(fl validator.FieldLevel) bool {
		switch domain.BillboardType(fl.Field().String()) {
		case domain.TypeUnipole, domain.TypeGantry, domain.TypeWallMounted,
			domain.TypeRooftop, domain.TypeKiosk, domain.TypeBusShelter,
			domain.TypeDigital, domain.TypeTraditional:
			return true
		}
		return false
	})

	_ = v.RegisterValidation("violationtype", func(fl validator.FieldLevel) bool {
		switch domain.ViolationType(fl.Field().String()) {
		case domain.ViolationUnauthorized, domain.ViolationSize, domain.ViolationLocation,
			domain.ViolationStructural, domain.ViolationContent,
			domain.ViolationExpiredPermit, domain.ViolationAdministrative:
			return true
		}
		return false
	})
}
