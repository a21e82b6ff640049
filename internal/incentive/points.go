package incentive

import "time"

// Action identifies a point-earning activity
type Action string

const (
	ActionReportSubmitted Action = "report_submitted"
	ActionReportVerified  Action = "report_verified"
	ActionViolationFound  Action = "violation_found"
	ActionWeeklyChallenge Action = "weekly_challenge"
	ActionReferral        Action = "referral"
)

// StreakBonusPerDay is added per consecutive reporting day on top of the
// base report_submitted award
const StreakBonusPerDay = 5

var actionPoints = map[Action]int{
	ActionReportSubmitted: 10,
	ActionReportVerified:  20,
	ActionViolationFound:  30,
	ActionWeeklyChallenge: 50,
	ActionReferral:        25,
}

// PointsFor returns the base award for an action, 0 for unknown actions
func PointsFor(action Action) int {
	return actionPoints[action]
}

// StreakState is the outcome of evaluating a new report against the
// reporter's previous submission time
type StreakState int

const (
	// StreakSameDay - already credited within the last 36h, no bonus
	StreakSameDay StreakState = iota
	// StreakContinued - submitted between 36h and 48h after the last one
	StreakContinued
	// StreakReset - gap over 48h, streak starts over at day 1
	StreakReset
	// StreakFirst - no previous submission
	StreakFirst
)

const (
	streakSameDayWindow  = 36 * time.Hour
	streakContinueWindow = 48 * time.Hour
)

// EvaluateStreak classifies the gap since the last report_submitted award.
// lastReport is nil when the user has never submitted.
func EvaluateStreak(lastReport *time.Time, now time.Time) StreakState {
	if lastReport == nil {
		return StreakFirst
	}
	gap := now.Sub(*lastReport)
	if gap < streakSameDayWindow {
		return StreakSameDay
	}
	if gap < streakContinueWindow {
		return StreakContinued
	}
	return StreakReset
}

// SubmissionAward computes the full award for a report submission given the
// user's streak after this submission. Bonus only applies from day 2 on.
func SubmissionAward(streakDays int) int {
	points := actionPoints[ActionReportSubmitted]
	if streakDays > 1 {
		points += streakDays * StreakBonusPerDay
	}
	return points
}
