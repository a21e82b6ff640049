package incentive

import (
	"errors"
	"math"

	"github.com/gosimple/slug"
)

var (
	ErrNoTiers        = errors.New("tier list is empty")
	ErrNegativePoints = errors.New("points must be non-negative")
)

// Tier is a named reward level unlocked at a point threshold.
// Tier lists are server-supplied and ordered ascending by PointsRequired,
// with the entry tier at 0 points.
type Tier struct {
	Name           string   `json:"name" yaml:"name"`
	PointsRequired int      `json:"points_required" yaml:"points_required"`
	Benefits       []string `json:"benefits" yaml:"benefits"`
	Icon           string   `json:"icon,omitempty" yaml:"icon,omitempty"`
}

// IconSlug returns a stable asset identifier for the tier
func (t Tier) IconSlug() string {
	if t.Icon != "" {
		return t.Icon
	}
	return slug.Make(t.Name)
}

// TierProgress is the derived reward-progress state for a user
type TierProgress struct {
	CurrentTierIndex int `json:"current_tier_index"`
	ProgressPercent  int `json:"progress_percent"`
	PointsToNext     int `json:"points_to_next"`
}

// ResolveTier maps a point total onto the tier ladder.
//
// tiers must be non-empty and sorted ascending by PointsRequired; the
// caller is responsible for ordering, the list is never re-sorted here.
// The current tier is the highest tier whose threshold is <= currentPoints;
// past the last threshold the user sits at the max tier with 100% progress.
func ResolveTier(tiers []Tier, currentPoints int) (TierProgress, error) {
	if len(tiers) == 0 {
		return TierProgress{}, ErrNoTiers
	}
	if currentPoints < 0 {
		return TierProgress{}, ErrNegativePoints
	}

	idx := 0
	for i, t := range tiers {
		if t.PointsRequired <= currentPoints {
			idx = i
		} else {
			break
		}
	}

	if idx == len(tiers)-1 {
		return TierProgress{CurrentTierIndex: idx, ProgressPercent: 100, PointsToNext: 0}, nil
	}

	base := tiers[idx].PointsRequired
	next := tiers[idx+1].PointsRequired
	span := next - base

	percent := 100
	if span > 0 {
		percent = int(math.Round(100 * float64(currentPoints-base) / float64(span)))
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	toNext := next - currentPoints
	if toNext < 0 {
		toNext = 0
	}

	return TierProgress{
		CurrentTierIndex: idx,
		ProgressPercent:  percent,
		PointsToNext:     toNext,
	}, nil
}

// DefaultTiers is the platform tier ladder
func DefaultTiers() []Tier {
	return []Tier{
		{Name: "Citizen", PointsRequired: 0, Benefits: []string{"Basic access", "View reports"}},
		{Name: "Enforcer", PointsRequired: 100, Benefits: []string{"Priority support", "Advanced analytics"}},
		{Name: "Champion", PointsRequired: 500, Benefits: []string{"Exclusive events", "Beta features"}},
		{Name: "Legend", PointsRequired: 2000, Benefits: []string{"Meet the team", "Special recognition"}},
	}
}

// Reward is an item purchasable with points
type Reward struct {
	Name           string `json:"name"`
	PointsRequired int    `json:"points_required"`
	Affordable     bool   `json:"affordable"`
}

// MarkAffordable derives the Affordable flag for every reward
func MarkAffordable(rewards []Reward, currentPoints int) []Reward {
	out := make([]Reward, len(rewards))
	for i, r := range rewards {
		r.Affordable = currentPoints >= r.PointsRequired
		out[i] = r
	}
	return out
}
