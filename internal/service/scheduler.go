package service

import (
	"context"
	"time"

	"billboard_compliance/internal/logger"

	"github.com/go-co-op/gocron/v2"
)

// StartScheduler wires the background jobs: a daily retention sweep and a
// weekly challenge rotation. Returns the scheduler so the caller can shut
// it down.
func StartScheduler(retention *RetentionService) gocron.Scheduler {
	sched, err := gocron.NewScheduler()
	if err != nil {
		logger.Fatal("failed to create scheduler", "error", err)
	}

	_, err = sched.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(3, 0, 0))),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
			defer cancel()
			if _, err := retention.Sweep(ctx); err != nil {
				logger.Error("retention sweep failed", "error", err)
			}
		}),
	)
	if err != nil {
		logger.Error("failed to schedule retention sweep", "error", err)
	}

	_, err = sched.NewJob(
		gocron.WeeklyJob(1, gocron.NewWeekdays(time.Monday),
			gocron.NewAtTimes(gocron.NewAtTime(0, 0, 0))),
		gocron.NewTask(func() {
			// challenge definitions rotate weekly; awarding happens when a
			// user completes one via the incentive service
			logger.Info("weekly challenge rotation")
		}),
	)
	if err != nil {
		logger.Error("failed to schedule weekly challenge rotation", "error", err)
	}

	sched.Start()
	logger.Info("background scheduler started")
	return sched
}
