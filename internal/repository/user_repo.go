package repository

import (
	"context"
	"errors"

	"billboard_compliance/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, password_hash, COALESCE(full_name, ''), role, is_active,
	COALESCE(total_points, 0), COALESCE(streak_days, 0), COALESCE(referral_code, ''), created_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Role, &u.IsActive,
		&u.TotalPoints, &u.StreakDays, &u.ReferralCode, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, full_name, role)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		u.Email, u.PasswordHash, u.FullName, u.Role,
	).Scan(&u.ID, &u.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateEmail
	}
	return err
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// AddPoints credits points and returns the new total
func (r *UserRepository) AddPoints(ctx context.Context, userID int64, points int) (int, error) {
	var total int
	err := r.db.QueryRow(ctx,
		`UPDATE users SET total_points = COALESCE(total_points, 0) + $1
		 WHERE id = $2
		 RETURNING total_points`,
		points, userID,
	).Scan(&total)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	return total, err
}

// SetStreak stores the current consecutive-day streak
func (r *UserRepository) SetStreak(ctx context.Context, userID int64, days int) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET streak_days = $1 WHERE id = $2`, days, userID)
	return err
}

// LeaderboardEntry represents a user on the public leaderboard
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	UserID      int64  `json:"user_id"`
	FullName    string `json:"username"`
	Score       int    `json:"score"`
	ReportCount int    `json:"reports"`
}

// GetLeaderboard returns the top users by total points with report counts
func (r *UserRepository) GetLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT u.id, COALESCE(u.full_name, ''), COALESCE(u.total_points, 0),
		       COALESCE(rc.reports, 0) AS report_count
		FROM users u
		LEFT JOIN (
			SELECT reporter_id, COUNT(*) AS reports
			FROM reports
			GROUP BY reporter_id
		) rc ON rc.reporter_id = u.id
		WHERE u.is_active = true
		ORDER BY COALESCE(u.total_points, 0) DESC, u.id
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []LeaderboardEntry
	rank := 1
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.FullName, &e.Score, &e.ReportCount); err != nil {
			return nil, err
		}
		e.Rank = rank
		res = append(res, e)
		rank++
	}
	return res, rows.Err()
}

// GetUserRank returns the user's position on the points leaderboard
func (r *UserRepository) GetUserRank(ctx context.Context, userID int64) (int, int, error) {
	var rank, points int
	err := r.db.QueryRow(ctx, `
		WITH ranked AS (
			SELECT id, COALESCE(total_points, 0) AS points,
			       RANK() OVER (ORDER BY COALESCE(total_points, 0) DESC) AS rank
			FROM users
			WHERE is_active = true
		)
		SELECT rank, points FROM ranked WHERE id = $1
	`, userID).Scan(&rank, &points)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, 0, ErrNotFound
	}
	if err != nil {
		return 0, 0, err
	}
	return rank, points, nil
}
