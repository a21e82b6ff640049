package domain

import "time"

// ReportStatus - review lifecycle of a citizen report
type ReportStatus string

const (
	ReportPending  ReportStatus = "pending"
	ReportInReview ReportStatus = "in_review"
	ReportResolved ReportStatus = "resolved"
	ReportRejected ReportStatus = "rejected"
)

type Report struct {
	ID           int64        `db:"id" json:"id"`
	BillboardID  int64        `db:"billboard_id" json:"billboard_id"`
	ReporterID   int64        `db:"reporter_id" json:"reporter_id"`
	Status       ReportStatus `db:"status" json:"status"`
	Description  string       `db:"description" json:"description"`
	ImageURL     *string      `db:"image_url" json:"image_url,omitempty"`
	VideoURL     *string      `db:"video_url" json:"video_url,omitempty"`
	Latitude     float64      `db:"latitude" json:"latitude"`
	Longitude    float64      `db:"longitude" json:"longitude"`
	IsAnonymized bool         `db:"is_anonymized" json:"-"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
}

// ValidStatusTransition checks the allowed review flow:
// pending -> in_review -> resolved/rejected, pending -> rejected.
func ValidStatusTransition(from, to ReportStatus) bool {
	switch from {
	case ReportPending:
		return to == ReportInReview || to == ReportRejected
	case ReportInReview:
		return to == ReportResolved || to == ReportRejected
	}
	return false
}
