package service

import (
	"context"
	"errors"
	"time"

	"billboard_compliance/internal/domain"
	"billboard_compliance/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Features gated behind consent requirements
const (
	FeaturePhotoUpload = "photo_upload"
	FeatureAnalytics   = "analytics"
)

const defaultConsentExpiryDays = 365

// ConsentRequirement describes one consent a feature asks for
type ConsentRequirement struct {
	Type              string `json:"type"`
	Title             string `json:"title"`
	Description       string `json:"description"`
	Required          bool   `json:"required"`
	DefaultExpiryDays int    `json:"default_expiry_days"`
}

var featureConsents = map[string][]ConsentRequirement{
	FeaturePhotoUpload: {
		{
			Type:              domain.ConsentPrivacyPolicy,
			Title:             "Privacy Policy",
			Description:       "Agree to our privacy policy and data processing terms.",
			Required:          true,
			DefaultExpiryDays: 365,
		},
		{
			Type:              domain.ConsentLocationTracking,
			Title:             "Location Services",
			Description:       "Allow us to access your location to tag reports with geolocation data.",
			Required:          false,
			DefaultExpiryDays: 90,
		},
		{
			Type:              domain.ConsentCameraAccess,
			Title:             "Camera Access",
			Description:       "Allow access to your camera to take photos of billboards.",
			Required:          true,
			DefaultExpiryDays: 365,
		},
	},
	FeatureAnalytics: {
		{
			Type:              domain.ConsentUsageStatistics,
			Title:             "Usage Statistics",
			Description:       "Allow us to collect anonymous usage statistics to improve our service.",
			Required:          false,
			DefaultExpiryDays: 365,
		},
	},
}

// RequiredConsents returns the consent catalog for a feature, empty for
// unknown features
func RequiredConsents(feature string) []ConsentRequirement {
	return featureConsents[feature]
}

func defaultExpiryFor(consentType string) int {
	for _, reqs := range featureConsents {
		for _, req := range reqs {
			if req.Type == consentType {
				return req.DefaultExpiryDays
			}
		}
	}
	return defaultConsentExpiryDays
}

// ConsentCheck is a requirement annotated with the user's grant state
type ConsentCheck struct {
	ConsentRequirement
	Granted bool `json:"granted"`
}

// FeatureAccess is the outcome of checking a user against a feature's
// consent requirements
type FeatureAccess struct {
	HasAccess        bool           `json:"has_access"`
	MissingConsents  []string       `json:"missing_consents"`
	RequiredConsents []ConsentCheck `json:"required_consents"`
}

// evaluateAccess folds the per-type grant map over the requirements.
// Only missing REQUIRED consents block access.
func evaluateAccess(reqs []ConsentRequirement, granted map[string]bool) *FeatureAccess {
	res := &FeatureAccess{HasAccess: true, MissingConsents: []string{}}
	for _, req := range reqs {
		ok := granted[req.Type]
		res.RequiredConsents = append(res.RequiredConsents, ConsentCheck{ConsentRequirement: req, Granted: ok})
		if req.Required && !ok {
			res.HasAccess = false
			res.MissingConsents = append(res.MissingConsents, req.Type)
		}
	}
	return res
}

// ConsentService manages data-processing consents. Every state change is
// written to the audit trail.
type ConsentService struct {
	consents *repository.ConsentRepository
	audit    *AuditService
}

func NewConsentService(db *pgxpool.Pool) *ConsentService {
	return &ConsentService{
		consents: repository.NewConsentRepository(db),
		audit:    NewAuditService(db),
	}
}

// GrantParams carries the caller-supplied parts of a consent grant
type GrantParams struct {
	ConsentType string
	Version     string
	ExpiresAt   *time.Time
	Metadata    map[string]any
}

// Grant records a consent. An existing unexpired grant of the same type is
// renewed in place instead of duplicated.
func (s *ConsentService) Grant(ctx context.Context, userID int64, p GrantParams, ip, userAgent string) (*domain.Consent, error) {
	expiry := time.Now().AddDate(0, 0, defaultExpiryFor(p.ConsentType))
	if p.ExpiresAt != nil {
		expiry = *p.ExpiresAt
	}

	existing, err := s.consents.GetActiveByType(ctx, userID, p.ConsentType)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if existing != nil {
		existing.Version = p.Version
		existing.ExpiresAt = expiry
		if p.Metadata != nil {
			existing.Metadata = p.Metadata
		}
		if err := s.consents.Update(ctx, existing); err != nil {
			return nil, err
		}
		s.audit.Log(&userID, "consent_renewed", domain.AuditCategoryConsent,
			map[string]any{"consent_id": existing.ID, "consent_type": existing.ConsentType, "version": existing.Version},
			ip, userAgent)
		return existing, nil
	}

	c := &domain.Consent{
		UserID:      userID,
		ConsentType: p.ConsentType,
		Status:      domain.ConsentActive,
		Version:     p.Version,
		Metadata:    p.Metadata,
		IP:          ip,
		UserAgent:   userAgent,
		ExpiresAt:   expiry,
	}
	if err := s.consents.Create(ctx, c); err != nil {
		return nil, err
	}

	s.audit.Log(&userID, "consent_granted", domain.AuditCategoryConsent,
		map[string]any{"consent_id": c.ID, "consent_type": c.ConsentType, "version": c.Version},
		ip, userAgent)
	return c, nil
}

// Revoke withdraws a consent the user previously granted
func (s *ConsentService) Revoke(ctx context.Context, consentID, userID int64, ip, userAgent string) (*domain.Consent, error) {
	c, err := s.consents.GetByID(ctx, consentID, userID)
	if err != nil {
		return nil, err
	}

	previous := c.Status
	c.Status = domain.ConsentRevoked
	if err := s.consents.Update(ctx, c); err != nil {
		return nil, err
	}

	s.audit.Log(&userID, "consent_revoked", domain.AuditCategoryConsent,
		map[string]any{"consent_id": c.ID, "consent_type": c.ConsentType, "previous_status": previous},
		ip, userAgent)
	return c, nil
}

// List returns the user's consents, active-only by default
func (s *ConsentService) List(ctx context.Context, userID int64, activeOnly bool) ([]*domain.Consent, error) {
	return s.consents.ListByUser(ctx, userID, activeOnly)
}

// CheckFeatureAccess verifies the user holds every required consent for a
// feature
func (s *ConsentService) CheckFeatureAccess(ctx context.Context, userID int64, feature string) (*FeatureAccess, error) {
	reqs := RequiredConsents(feature)
	granted := make(map[string]bool, len(reqs))
	for _, req := range reqs {
		ok, err := s.consents.HasConsent(ctx, userID, req.Type)
		if err != nil {
			return nil, err
		}
		granted[req.Type] = ok
	}
	return evaluateAccess(reqs, granted), nil
}
