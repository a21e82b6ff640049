package repository

import (
	"context"
	"errors"
	"time"

	"billboard_compliance/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrInvalidTransition = errors.New("invalid report status transition")

type ReportRepository struct {
	db *pgxpool.Pool
}

func NewReportRepository(db *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{db: db}
}

const reportColumns = `id, billboard_id, reporter_id, status, COALESCE(description, ''),
	image_url, video_url, latitude, longitude, is_anonymized, created_at`

func scanReport(row pgx.Row) (*domain.Report, error) {
	var rep domain.Report
	err := row.Scan(&rep.ID, &rep.BillboardID, &rep.ReporterID, &rep.Status, &rep.Description,
		&rep.ImageURL, &rep.VideoURL, &rep.Latitude, &rep.Longitude, &rep.IsAnonymized, &rep.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rep, nil
}

func (r *ReportRepository) Create(ctx context.Context, rep *domain.Report) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO reports (billboard_id, reporter_id, status, description, image_url, video_url, latitude, longitude)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at`,
		rep.BillboardID, rep.ReporterID, rep.Status, rep.Description,
		rep.ImageURL, rep.VideoURL, rep.Latitude, rep.Longitude,
	).Scan(&rep.ID, &rep.CreatedAt)
}

func (r *ReportRepository) GetByID(ctx context.Context, id int64) (*domain.Report, error) {
	return scanReport(r.db.QueryRow(ctx,
		`SELECT `+reportColumns+` FROM reports WHERE id = $1`, id))
}

func (r *ReportRepository) ListByReporter(ctx context.Context, reporterID int64, limit, offset int) ([]*domain.Report, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+reportColumns+` FROM reports
		 WHERE reporter_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		reporterID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReports(rows)
}

func (r *ReportRepository) ListAll(ctx context.Context, limit, offset int) ([]*domain.Report, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+reportColumns+` FROM reports
		 ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReports(rows)
}

func collectReports(rows pgx.Rows) ([]*domain.Report, error) {
	var res []*domain.Report
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, rep)
	}
	return res, rows.Err()
}

// UpdateStatus moves a report through its review lifecycle. The transition
// is enforced in SQL so concurrent reviewers cannot double-apply it.
func (r *ReportRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.ReportStatus) error {
	if !domain.ValidStatusTransition(from, to) {
		return ErrInvalidTransition
	}
	tag, err := r.db.Exec(ctx,
		`UPDATE reports SET status = $1 WHERE id = $2 AND status = $3`,
		to, id, from)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInvalidTransition
	}
	return nil
}

// HeatmapPoint is one aggregated dashboard map entry
type HeatmapPoint struct {
	Latitude      float64              `json:"latitude"`
	Longitude     float64              `json:"longitude"`
	Weight        float64              `json:"weight"`
	ViolationType domain.ViolationType `json:"violation_type"`
	Severity      domain.Severity      `json:"severity"`
	Date          time.Time            `json:"date"`
}

// Heatmap returns violation locations from resolved reports in the window
func (r *ReportRepository) Heatmap(ctx context.Context, since time.Time, violationType string) ([]HeatmapPoint, error) {
	query := `
		SELECT rep.latitude, rep.longitude, v.violation_type, v.severity, rep.created_at
		FROM reports rep
		JOIN violations v ON v.report_id = rep.id
		WHERE rep.status = 'resolved' AND rep.created_at >= $1`
	args := []any{since}
	if violationType != "" {
		query += ` AND v.violation_type = $2`
		args = append(args, violationType)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []HeatmapPoint
	for rows.Next() {
		var p HeatmapPoint
		if err := rows.Scan(&p.Latitude, &p.Longitude, &p.ViolationType, &p.Severity, &p.Date); err != nil {
			return nil, err
		}
		p.Weight = p.Severity.HeatWeight()
		res = append(res, p)
	}
	return res, rows.Err()
}

// Recent returns the latest reports for the public activity feed
func (r *ReportRepository) Recent(ctx context.Context, limit int) ([]*domain.Report, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+reportColumns+` FROM reports ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReports(rows)
}

// AnonymizeOlderThan clears reporter linkage on old reports and returns
// how many rows were touched
func (r *ReportRepository) AnonymizeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE reports SET is_anonymized = true, description = ''
		 WHERE created_at < $1 AND is_anonymized = false`,
		cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// DeleteOlderThan removes expired reports. It returns how many reports
// were deleted plus their stored media URLs so the caller can purge object
// storage; a report may contribute zero, one or two URLs.
func (r *ReportRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, []string, error) {
	rows, err := r.db.Query(ctx,
		`DELETE FROM reports WHERE created_at < $1
		 RETURNING image_url, video_url`,
		cutoff)
	if err != nil {
		return 0, nil, err
	}
	defer rows.Close()

	var deleted int64
	var urls []string
	for rows.Next() {
		var image, video *string
		if err := rows.Scan(&image, &video); err != nil {
			return 0, nil, err
		}
		deleted++
		if image != nil && *image != "" {
			urls = append(urls, *image)
		}
		if video != nil && *video != "" {
			urls = append(urls, *video)
		}
	}
	return deleted, urls, rows.Err()
}
