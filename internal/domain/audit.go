package domain

import "time"

// Audit categories
const (
	AuditCategoryAuth      = "auth"
	AuditCategoryReport    = "report"
	AuditCategoryViolation = "violation"
	AuditCategoryRetention = "retention"
	AuditCategoryIncentive = "incentive"
	AuditCategoryConsent   = "consent"
)

// AuditLog records a sensitive action for the admin trail
type AuditLog struct {
	ID        int64          `db:"id" json:"id"`
	UserID    *int64         `db:"user_id" json:"user_id,omitempty"`
	Action    string         `db:"action" json:"action"`
	Category  string         `db:"category" json:"category"`
	Details   map[string]any `db:"details" json:"details,omitempty"`
	IP        string         `db:"ip" json:"ip,omitempty"`
	UserAgent string         `db:"user_agent" json:"user_agent,omitempty"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
}
