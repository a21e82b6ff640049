package service

import (
	"context"
	"time"

	"billboard_compliance/internal/domain"
	"billboard_compliance/internal/logger"
	"billboard_compliance/internal/repository"
	"billboard_compliance/internal/storage"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RetentionPolicy controls how long report data is kept
type RetentionPolicy struct {
	AnonymizeAfter time.Duration
	DeleteAfter    time.Duration
	AuditRetention time.Duration
}

// DefaultRetentionPolicy: anonymize after 30 days, delete after a year,
// keep audit logs for two years
func DefaultRetentionPolicy() RetentionPolicy {
	return RetentionPolicy{
		AnonymizeAfter: 30 * 24 * time.Hour,
		DeleteAfter:    365 * 24 * time.Hour,
		AuditRetention: 730 * 24 * time.Hour,
	}
}

// SweepResult reports what a retention sweep removed
type SweepResult struct {
	AnonymizedReports int64 `json:"anonymized_reports"`
	DeletedReports    int64 `json:"deleted_reports"`
	DeletedObjects    int   `json:"deleted_objects"`
	DeletedAuditLogs  int64 `json:"deleted_audit_logs"`
}

// RetentionService applies the data retention policy
type RetentionService struct {
	reports *repository.ReportRepository
	audits  *repository.AuditRepository
	store   *storage.Store
	audit   *AuditService
	policy  RetentionPolicy
}

func NewRetentionService(db *pgxpool.Pool, store *storage.Store, policy RetentionPolicy) *RetentionService {
	return &RetentionService{
		reports: repository.NewReportRepository(db),
		audits:  repository.NewAuditRepository(db),
		store:   store,
		audit:   NewAuditService(db),
		policy:  policy,
	}
}

// Sweep runs one pass of the retention policy
func (s *RetentionService) Sweep(ctx context.Context) (*SweepResult, error) {
	now := time.Now()
	res := &SweepResult{}

	anonymized, err := s.reports.AnonymizeOlderThan(ctx, now.Add(-s.policy.AnonymizeAfter))
	if err != nil {
		return nil, err
	}
	res.AnonymizedReports = anonymized

	deleted, urls, err := s.reports.DeleteOlderThan(ctx, now.Add(-s.policy.DeleteAfter))
	if err != nil {
		return nil, err
	}
	res.DeletedReports = deleted

	if s.store != nil {
		for _, url := range urls {
			if err := s.store.Delete(ctx, url); err != nil {
				logger.Error("failed to delete stored evidence", "url", url, "error", err)
				continue
			}
			res.DeletedObjects++
		}
	}

	purged, err := s.audits.DeleteOlderThan(ctx, now.Add(-s.policy.AuditRetention))
	if err != nil {
		return nil, err
	}
	res.DeletedAuditLogs = purged

	if res.AnonymizedReports > 0 || res.DeletedReports > 0 || res.DeletedAuditLogs > 0 {
		s.audit.Log(nil, "retention_sweep", domain.AuditCategoryRetention, map[string]any{
			"anonymized_reports": res.AnonymizedReports,
			"deleted_reports":    res.DeletedReports,
			"deleted_audit_logs": res.DeletedAuditLogs,
		}, "", "")
	}

	logger.Info("retention sweep finished",
		"anonymized", res.AnonymizedReports,
		"deleted_reports", res.DeletedReports,
		"deleted_audit_logs", res.DeletedAuditLogs)
	return res, nil
}
