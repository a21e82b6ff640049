package service

import (
	"context"
	"time"

	"billboard_compliance/internal/domain"
	"billboard_compliance/internal/logger"
	"billboard_compliance/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditService writes the admin audit trail. Failures are logged, never
// propagated - an audit miss must not fail the user action.
type AuditService struct {
	repo *repository.AuditRepository
}

func NewAuditService(db *pgxpool.Pool) *AuditService {
	return &AuditService{repo: repository.NewAuditRepository(db)}
}

func (s *AuditService) Log(userID *int64, action, category string, details map[string]any, ip, userAgent string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	entry := &domain.AuditLog{
		UserID:    userID,
		Action:    action,
		Category:  category,
		Details:   details,
		IP:        ip,
		UserAgent: userAgent,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		logger.Error("failed to write audit log", "action", action, "error", err)
	}
}

func (s *AuditService) Recent(ctx context.Context, limit int) ([]*domain.AuditLog, error) {
	return s.repo.GetRecent(ctx, limit)
}

func (s *AuditService) ByCategory(ctx context.Context, category string, limit int) ([]*domain.AuditLog, error) {
	return s.repo.GetByCategory(ctx, category, limit)
}
