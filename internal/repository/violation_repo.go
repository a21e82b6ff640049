package repository

import (
	"context"
	"errors"

	"billboard_compliance/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ViolationRepository struct {
	db *pgxpool.Pool
}

func NewViolationRepository(db *pgxpool.Pool) *ViolationRepository {
	return &ViolationRepository{db: db}
}

const violationColumns = `id, report_id, billboard_id, reporter_id, violation_type,
	COALESCE(description, ''), severity, status, created_at, resolved_at`

func scanViolation(row pgx.Row) (*domain.Violation, error) {
	var v domain.Violation
	err := row.Scan(&v.ID, &v.ReportID, &v.BillboardID, &v.ReporterID, &v.ViolationType,
		&v.Description, &v.Severity, &v.Status, &v.CreatedAt, &v.ResolvedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

// Create inserts the violation and flips the linked report to in_review
// in one transaction
func (r *ViolationRepository) Create(ctx context.Context, v *domain.Violation) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO violations (report_id, billboard_id, reporter_id, violation_type, description, severity, status)
		 VALUES ($1, $2, $3, $4, $5, $6, 'reported')
		 RETURNING id, status, created_at`,
		v.ReportID, v.BillboardID, v.ReporterID, v.ViolationType, v.Description, v.Severity,
	).Scan(&v.ID, &v.Status, &v.CreatedAt)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`UPDATE reports SET status = 'in_review' WHERE id = $1 AND status = 'pending'`,
		v.ReportID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *ViolationRepository) ListByReporter(ctx context.Context, reporterID int64, limit, offset int) ([]*domain.Violation, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+violationColumns+` FROM violations
		 WHERE reporter_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		reporterID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectViolations(rows)
}

func (r *ViolationRepository) ListAll(ctx context.Context, limit, offset int) ([]*domain.Violation, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+violationColumns+` FROM violations
		 ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectViolations(rows)
}

func collectViolations(rows pgx.Rows) ([]*domain.Violation, error) {
	var res []*domain.Violation
	for rows.Next() {
		v, err := scanViolation(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, v)
	}
	return res, rows.Err()
}

// Stats aggregates totals for the public dashboard
type ViolationStats struct {
	Total      int            `json:"total_violations"`
	ByType     map[string]int `json:"violations_by_type"`
	BySeverity map[string]int `json:"violations_by_severity"`
}

func (r *ViolationRepository) Stats(ctx context.Context) (*ViolationStats, error) {
	stats := &ViolationStats{
		ByType:     make(map[string]int),
		BySeverity: make(map[string]int),
	}

	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM violations`).Scan(&stats.Total); err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT violation_type, COUNT(*) FROM violations GROUP BY violation_type`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var typ string
		var n int
		if err := rows.Scan(&typ, &n); err != nil {
			return nil, err
		}
		stats.ByType[typ] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sevRows, err := r.db.Query(ctx,
		`SELECT severity, COUNT(*) FROM violations GROUP BY severity`)
	if err != nil {
		return nil, err
	}
	defer sevRows.Close()
	for sevRows.Next() {
		var sev string
		var n int
		if err := sevRows.Scan(&sev, &n); err != nil {
			return nil, err
		}
		stats.BySeverity[sev] = n
	}
	return stats, sevRows.Err()
}
