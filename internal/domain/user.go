package domain

import "time"

// Role controls access to review and admin endpoints
type Role string

const (
	RoleCitizen   Role = "citizen"
	RoleInspector Role = "inspector"
	RoleAdmin     Role = "admin"
)

type User struct {
	ID           int64     `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         Role      `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	TotalPoints  int       `db:"total_points" json:"total_points"`
	StreakDays   int       `db:"streak_days" json:"streak_days"`
	ReferralCode string    `db:"referral_code" json:"referral_code,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
