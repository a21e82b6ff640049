package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"billboard_compliance/internal/incentive"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PointsEntry is one credited award in the points ledger
type PointsEntry struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"user_id"`
	Action    incentive.Action `json:"action"`
	Points    int              `json:"points"`
	Metadata  map[string]any   `json:"metadata,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

type PointsRepository struct {
	db *pgxpool.Pool
}

func NewPointsRepository(db *pgxpool.Pool) *PointsRepository {
	return &PointsRepository{db: db}
}

func (r *PointsRepository) Create(ctx context.Context, e *PointsEntry) error {
	metaJSON, err := json.Marshal(e.Metadata)
	if err != nil {
		metaJSON = []byte("{}")
	}

	return r.db.QueryRow(ctx,
		`INSERT INTO user_points (user_id, action, points, metadata)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		e.UserID, e.Action, e.Points, metaJSON,
	).Scan(&e.ID, &e.CreatedAt)
}

// LastActionTime returns when the user last earned points for the action,
// nil if never
func (r *PointsRepository) LastActionTime(ctx context.Context, userID int64, action incentive.Action) (*time.Time, error) {
	var ts time.Time
	err := r.db.QueryRow(ctx,
		`SELECT created_at FROM user_points
		 WHERE user_id = $1 AND action = $2
		 ORDER BY created_at DESC LIMIT 1`,
		userID, action,
	).Scan(&ts)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

// History returns the user's recent point awards
func (r *PointsRepository) History(ctx context.Context, userID int64, limit int) ([]*PointsEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, action, points, metadata, created_at
		 FROM user_points
		 WHERE user_id = $1
		 ORDER BY created_at DESC LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*PointsEntry
	for rows.Next() {
		var e PointsEntry
		var metaJSON []byte
		if err := rows.Scan(&e.ID, &e.UserID, &e.Action, &e.Points, &metaJSON, &e.CreatedAt); err != nil {
			return nil, err
		}
		if len(metaJSON) > 0 {
			_ = json.Unmarshal(metaJSON, &e.Metadata)
		}
		res = append(res, &e)
	}
	return res, rows.Err()
}
