package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrAlreadyReferred = errors.New("user already has a referrer")

type Referral struct {
	ID         int64     `json:"id"`
	ReferrerID int64     `json:"referrer_id"`
	ReferredID int64     `json:"referred_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type ReferralStats struct {
	TotalReferrals int `json:"referral_count"`
	TotalPoints    int `json:"referral_points"`
}

type ReferralRepository struct {
	db *pgxpool.Pool
}

func NewReferralRepository(db *pgxpool.Pool) *ReferralRepository {
	return &ReferralRepository{db: db}
}

// GenerateReferralCode produces a short unique code
func GenerateReferralCode() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// GetOrCreateCode returns the user's referral code, creating one on first use
func (r *ReferralRepository) GetOrCreateCode(ctx context.Context, userID int64) (string, error) {
	var code string
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(referral_code, '') FROM users WHERE id = $1`, userID,
	).Scan(&code)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	if code != "" {
		return code, nil
	}

	// retry a few times on the off chance of a collision
	for i := 0; i < 5; i++ {
		code = GenerateReferralCode()
		tag, err := r.db.Exec(ctx,
			`UPDATE users SET referral_code = $1
			 WHERE id = $2 AND NOT EXISTS (SELECT 1 FROM users WHERE referral_code = $1)`,
			code, userID)
		if err != nil {
			return "", err
		}
		if tag.RowsAffected() == 1 {
			return code, nil
		}
	}
	return "", errors.New("could not allocate referral code")
}

// GetUserByCode resolves a referral code to its owner
func (r *ReferralRepository) GetUserByCode(ctx context.Context, code string) (int64, error) {
	var userID int64
	err := r.db.QueryRow(ctx,
		`SELECT id FROM users WHERE referral_code = $1`, code,
	).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	return userID, err
}

// CreateReferral links referred to referrer; each user can only be referred once
func (r *ReferralRepository) CreateReferral(ctx context.Context, referrerID, referredID int64) error {
	tag, err := r.db.Exec(ctx,
		`INSERT INTO referrals (referrer_id, referred_id)
		 VALUES ($1, $2)
		 ON CONFLICT (referred_id) DO NOTHING`,
		referrerID, referredID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAlreadyReferred
	}
	return nil
}

// Stats returns referral totals for the rewards summary
func (r *ReferralRepository) Stats(ctx context.Context, userID int64, pointsPerReferral int) (*ReferralStats, error) {
	stats := &ReferralStats{}
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM referrals WHERE referrer_id = $1`, userID,
	).Scan(&stats.TotalReferrals)
	if err != nil {
		return nil, err
	}
	stats.TotalPoints = stats.TotalReferrals * pointsPerReferral
	return stats, nil
}
