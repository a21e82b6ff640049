package incentive

import (
	"testing"
	"time"
)

func TestPointsFor(t *testing.T) {
	cases := map[Action]int{
		ActionReportSubmitted: 10,
		ActionReportVerified:  20,
		ActionViolationFound:  30,
		ActionWeeklyChallenge: 50,
		ActionReferral:        25,
		Action("unknown"):     0,
	}
	for action, want := range cases {
		if got := PointsFor(action); got != want {
			t.Errorf("PointsFor(%s) = %d, want %d", action, got, want)
		}
	}
}

func TestEvaluateStreak(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	if got := EvaluateStreak(nil, now); got != StreakFirst {
		t.Errorf("no previous report: %v, want StreakFirst", got)
	}

	recent := now.Add(-12 * time.Hour)
	if got := EvaluateStreak(&recent, now); got != StreakSameDay {
		t.Errorf("12h gap: %v, want StreakSameDay", got)
	}

	yesterday := now.Add(-40 * time.Hour)
	if got := EvaluateStreak(&yesterday, now); got != StreakContinued {
		t.Errorf("40h gap: %v, want StreakContinued", got)
	}

	stale := now.Add(-72 * time.Hour)
	if got := EvaluateStreak(&stale, now); got != StreakReset {
		t.Errorf("72h gap: %v, want StreakReset", got)
	}
}

func TestSubmissionAward(t *testing.T) {
	if got := SubmissionAward(1); got != 10 {
		t.Errorf("day 1 award = %d, want base 10", got)
	}
	// bonus kicks in from day 2: 10 + 2*5
	if got := SubmissionAward(2); got != 20 {
		t.Errorf("day 2 award = %d, want 20", got)
	}
	if got := SubmissionAward(5); got != 35 {
		t.Errorf("day 5 award = %d, want 35", got)
	}
}
