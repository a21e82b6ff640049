package domain

import "time"

// ViolationType - category of a confirmed infraction
type ViolationType string

const (
	ViolationUnauthorized   ViolationType = "unauthorized"
	ViolationSize           ViolationType = "size_violation"
	ViolationLocation       ViolationType = "location_violation"
	ViolationStructural     ViolationType = "structural_issue"
	ViolationContent        ViolationType = "content_violation"
	ViolationExpiredPermit  ViolationType = "expired_permit"
	ViolationAdministrative ViolationType = "administrative_violation"
)

// Severity levels used by violations and compliance rules
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// HeatWeight maps severity onto a heatmap point weight
func (s Severity) HeatWeight() float64 {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityHigh:
		return 2
	case SeverityMedium:
		return 1.5
	default:
		return 1
	}
}

type Violation struct {
	ID            int64         `db:"id" json:"id"`
	ReportID      int64         `db:"report_id" json:"report_id"`
	BillboardID   int64         `db:"billboard_id" json:"billboard_id"`
	ReporterID    int64         `db:"reporter_id" json:"reporter_id"`
	ViolationType ViolationType `db:"violation_type" json:"violation_type"`
	Description   string        `db:"description" json:"description"`
	Severity      Severity      `db:"severity" json:"severity"`
	Status        string        `db:"status" json:"status"` // reported, confirmed, resolved
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	ResolvedAt    *time.Time    `db:"resolved_at" json:"resolved_at,omitempty"`
}
