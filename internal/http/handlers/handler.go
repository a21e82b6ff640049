package handlers

import (
	"billboard_compliance/internal/compliance"
	"billboard_compliance/internal/repository"
	"billboard_compliance/internal/service"
	"billboard_compliance/internal/storage"
	"billboard_compliance/internal/ws"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB            *pgxpool.Pool
	UserRepo      *repository.UserRepository
	BillboardRepo *repository.BillboardRepository
	ReportRepo    *repository.ReportRepository
	ViolationRepo *repository.ViolationRepository
	ReferralRepo  *repository.ReferralRepository
	Incentives    *service.IncentiveService
	Consents      *service.ConsentService
	Audit         *service.AuditService
	Checker       *compliance.Checker
	Store         *storage.Store
	Hub           *ws.Hub
}

func NewHandler(db *pgxpool.Pool, checker *compliance.Checker, store *storage.Store, hub *ws.Hub) *Handler {
	return &Handler{
		DB:            db,
		UserRepo:      repository.NewUserRepository(db),
		BillboardRepo: repository.NewBillboardRepository(db),
		ReportRepo:    repository.NewReportRepository(db),
		ViolationRepo: repository.NewViolationRepository(db),
		ReferralRepo:  repository.NewReferralRepository(db),
		Incentives:    service.NewIncentiveService(db),
		Consents:      service.NewConsentService(db),
		Audit:         service.NewAuditService(db),
		Checker:       checker,
		Store:         store,
		Hub:           hub,
	}
}

// getUserID extracts the authenticated user id from the gin context
func getUserID(c interface{ Get(any) (any, bool) }) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch v := uidVal.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}

func getRole(c interface{ Get(any) (any, bool) }) string {
	roleVal, ok := c.Get("role")
	if !ok {
		return ""
	}
	role, _ := roleVal.(string)
	return role
}
