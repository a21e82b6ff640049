package domain

import "time"

// ConsentStatus - lifecycle of a data-processing consent
type ConsentStatus string

const (
	ConsentActive  ConsentStatus = "active"
	ConsentRevoked ConsentStatus = "revoked"
	ConsentExpired ConsentStatus = "expired"
)

// Consent types collected by the platform
const (
	ConsentPrivacyPolicy    = "privacy_policy"
	ConsentLocationTracking = "location_tracking"
	ConsentCameraAccess     = "camera_access"
	ConsentUsageStatistics  = "usage_statistics"
)

// Consent is one user grant for a specific kind of data processing.
// A user holds at most one active consent per type.
type Consent struct {
	ID          int64          `db:"id" json:"id"`
	UserID      int64          `db:"user_id" json:"user_id"`
	ConsentType string         `db:"consent_type" json:"consent_type"`
	Status      ConsentStatus  `db:"status" json:"status"`
	Version     string         `db:"version" json:"version,omitempty"`
	Metadata    map[string]any `db:"metadata" json:"metadata,omitempty"`
	IP          string         `db:"ip" json:"-"`
	UserAgent   string         `db:"user_agent" json:"-"`
	GrantedAt   time.Time      `db:"granted_at" json:"granted_at"`
	ExpiresAt   time.Time      `db:"expires_at" json:"expires_at"`
	UpdatedAt   *time.Time     `db:"updated_at" json:"updated_at,omitempty"`
}

// IsActive reports whether the consent currently authorizes processing
func (c *Consent) IsActive(now time.Time) bool {
	return c.Status == ConsentActive && c.ExpiresAt.After(now)
}
