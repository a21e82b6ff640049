package repository

import (
	"context"
	"encoding/json"
	"errors"

	"billboard_compliance/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ConsentRepository struct {
	db *pgxpool.Pool
}

func NewConsentRepository(db *pgxpool.Pool) *ConsentRepository {
	return &ConsentRepository{db: db}
}

const consentColumns = `id, user_id, consent_type, status, COALESCE(version, ''), metadata,
	COALESCE(ip, ''), COALESCE(user_agent, ''), granted_at, expires_at, updated_at`

func scanConsent(row pgx.Row) (*domain.Consent, error) {
	var c domain.Consent
	var metaJSON []byte
	err := row.Scan(&c.ID, &c.UserID, &c.ConsentType, &c.Status, &c.Version, &metaJSON,
		&c.IP, &c.UserAgent, &c.GrantedAt, &c.ExpiresAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if len(metaJSON) > 0 {
		_ = json.Unmarshal(metaJSON, &c.Metadata)
	}
	return &c, nil
}

func (r *ConsentRepository) Create(ctx context.Context, c *domain.Consent) error {
	metaJSON, err := json.Marshal(c.Metadata)
	if err != nil {
		metaJSON = []byte("{}")
	}
	return r.db.QueryRow(ctx,
		`INSERT INTO consents (user_id, consent_type, status, version, metadata, ip, user_agent, expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, granted_at`,
		c.UserID, c.ConsentType, c.Status, c.Version, metaJSON, c.IP, c.UserAgent, c.ExpiresAt,
	).Scan(&c.ID, &c.GrantedAt)
}

// Update rewrites the mutable fields of a consent record
func (r *ConsentRepository) Update(ctx context.Context, c *domain.Consent) error {
	metaJSON, err := json.Marshal(c.Metadata)
	if err != nil {
		metaJSON = []byte("{}")
	}
	return r.db.QueryRow(ctx,
		`UPDATE consents
		 SET status = $1, version = $2, metadata = $3, expires_at = $4, updated_at = now()
		 WHERE id = $5
		 RETURNING updated_at`,
		c.Status, c.Version, metaJSON, c.ExpiresAt, c.ID,
	).Scan(&c.UpdatedAt)
}

// GetByID loads a consent, scoped to its owner
func (r *ConsentRepository) GetByID(ctx context.Context, id, userID int64) (*domain.Consent, error) {
	return scanConsent(r.db.QueryRow(ctx,
		`SELECT `+consentColumns+` FROM consents WHERE id = $1 AND user_id = $2`,
		id, userID))
}

// GetActiveByType returns the user's unexpired active consent of one type
func (r *ConsentRepository) GetActiveByType(ctx context.Context, userID int64, consentType string) (*domain.Consent, error) {
	return scanConsent(r.db.QueryRow(ctx,
		`SELECT `+consentColumns+` FROM consents
		 WHERE user_id = $1 AND consent_type = $2 AND status = 'active' AND expires_at > now()
		 ORDER BY granted_at DESC LIMIT 1`,
		userID, consentType))
}

// ListByUser returns the user's consents, newest first. With activeOnly
// only unexpired active grants are returned.
func (r *ConsentRepository) ListByUser(ctx context.Context, userID int64, activeOnly bool) ([]*domain.Consent, error) {
	query := `SELECT ` + consentColumns + ` FROM consents WHERE user_id = $1`
	if activeOnly {
		query += ` AND status = 'active' AND expires_at > now()`
	}
	query += ` ORDER BY granted_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Consent
	for rows.Next() {
		c, err := scanConsent(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

// HasConsent reports whether the user holds an unexpired active consent of
// the given type
func (r *ConsentRepository) HasConsent(ctx context.Context, userID int64, consentType string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM consents
			WHERE user_id = $1 AND consent_type = $2 AND status = 'active' AND expires_at > now()
		)`,
		userID, consentType,
	).Scan(&exists)
	return exists, err
}
