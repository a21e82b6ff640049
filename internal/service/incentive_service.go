package service

import (
	"context"
	"time"

	"billboard_compliance/internal/incentive"
	"billboard_compliance/internal/logger"
	"billboard_compliance/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

// IncentiveService credits points for reporting activity and assembles the
// rewards summary consumed by the mobile app
type IncentiveService struct {
	users   *repository.UserRepository
	points  *repository.PointsRepository
	refs    *repository.ReferralRepository
	tiers   []incentive.Tier
	rewards []incentive.Reward
}

func NewIncentiveService(db *pgxpool.Pool) *IncentiveService {
	return &IncentiveService{
		users:  repository.NewUserRepository(db),
		points: repository.NewPointsRepository(db),
		refs:   repository.NewReferralRepository(db),
		tiers:  incentive.DefaultTiers(),
		rewards: []incentive.Reward{
			{Name: "Sticker pack", PointsRequired: 50},
			{Name: "Civic volunteer badge", PointsRequired: 150},
			{Name: "T-shirt", PointsRequired: 300},
			{Name: "City hall tour", PointsRequired: 1000},
		},
	}
}

// Tiers returns the platform tier ladder, ordered ascending by threshold
func (s *IncentiveService) Tiers() []incentive.Tier {
	return s.tiers
}

// History returns the user's recent point awards
func (s *IncentiveService) History(ctx context.Context, userID int64, limit int) ([]*repository.PointsEntry, error) {
	return s.points.History(ctx, userID, limit)
}

// AwardSubmission credits a report submission, applying the streak rules.
// Returns the points awarded and the user's streak after this submission.
func (s *IncentiveService) AwardSubmission(ctx context.Context, userID int64) (int, int, error) {
	last, err := s.points.LastActionTime(ctx, userID, incentive.ActionReportSubmitted)
	if err != nil {
		return 0, 0, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return 0, 0, err
	}

	streak := user.StreakDays
	awardPoints := 0

	switch incentive.EvaluateStreak(last, time.Now()) {
	case incentive.StreakFirst:
		streak = 1
		awardPoints = incentive.SubmissionAward(1)
	case incentive.StreakSameDay:
		// base points only, no second streak credit for the same day
		awardPoints = incentive.PointsFor(incentive.ActionReportSubmitted)
	case incentive.StreakContinued:
		streak++
		awardPoints = incentive.SubmissionAward(streak)
	case incentive.StreakReset:
		streak = 1
		awardPoints = incentive.SubmissionAward(1)
	}

	if streak != user.StreakDays {
		if err := s.users.SetStreak(ctx, userID, streak); err != nil {
			return 0, 0, err
		}
	}

	if err := s.credit(ctx, userID, incentive.ActionReportSubmitted, awardPoints, map[string]any{"streak_days": streak}); err != nil {
		return 0, 0, err
	}
	return awardPoints, streak, nil
}

// Award credits the base points for a non-submission action
func (s *IncentiveService) Award(ctx context.Context, userID int64, action incentive.Action, meta map[string]any) (int, error) {
	points := incentive.PointsFor(action)
	if points == 0 {
		logger.Warn("unknown incentive action", "action", action)
		return 0, nil
	}
	if err := s.credit(ctx, userID, action, points, meta); err != nil {
		return 0, err
	}
	return points, nil
}

func (s *IncentiveService) credit(ctx context.Context, userID int64, action incentive.Action, points int, meta map[string]any) error {
	entry := &repository.PointsEntry{
		UserID:   userID,
		Action:   action,
		Points:   points,
		Metadata: meta,
	}
	if err := s.points.Create(ctx, entry); err != nil {
		return err
	}
	if _, err := s.users.AddPoints(ctx, userID, points); err != nil {
		return err
	}
	logger.Debug("points credited", "user_id", userID, "action", action, "points", points)
	return nil
}

// TierPayload is a tier plus its resolved position for API responses
type TierPayload struct {
	incentive.Tier
	IconSlug string `json:"icon_slug"`
}

// RewardsSummary is the per-user rewards view
type RewardsSummary struct {
	CurrentPoints  int                    `json:"current_points"`
	Tier           incentive.TierProgress `json:"tier"`
	CurrentTier    TierPayload            `json:"current_tier"`
	NextTier       *TierPayload           `json:"next_tier,omitempty"`
	Rewards        []incentive.Reward     `json:"available_rewards"`
	StreakDays     int                    `json:"streak_days"`
	ReferralCode   string                 `json:"referral_code"`
	ReferralCount  int                    `json:"referral_count"`
	ReferralPoints int                    `json:"referral_points"`
}

// Summary assembles the rewards view for one user
func (s *IncentiveService) Summary(ctx context.Context, userID int64) (*RewardsSummary, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	progress, err := incentive.ResolveTier(s.tiers, user.TotalPoints)
	if err != nil {
		return nil, err
	}

	code, err := s.refs.GetOrCreateCode(ctx, userID)
	if err != nil {
		return nil, err
	}

	refStats, err := s.refs.Stats(ctx, userID, incentive.PointsFor(incentive.ActionReferral))
	if err != nil {
		return nil, err
	}

	summary := &RewardsSummary{
		CurrentPoints:  user.TotalPoints,
		Tier:           progress,
		CurrentTier:    tierPayload(s.tiers[progress.CurrentTierIndex]),
		Rewards:        incentive.MarkAffordable(s.rewards, user.TotalPoints),
		StreakDays:     user.StreakDays,
		ReferralCode:   code,
		ReferralCount:  refStats.TotalReferrals,
		ReferralPoints: refStats.TotalPoints,
	}
	if progress.CurrentTierIndex < len(s.tiers)-1 {
		next := tierPayload(s.tiers[progress.CurrentTierIndex+1])
		summary.NextTier = &next
	}
	return summary, nil
}

func tierPayload(t incentive.Tier) TierPayload {
	return TierPayload{Tier: t, IconSlug: t.IconSlug()}
}
