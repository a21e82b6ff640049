package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RLRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_requests_total",
			Help: "Total requests seen by the rate limiter",
		},
		[]string{"endpoint"},
	)
	RLBlocked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_blocked_total",
			Help: "Total requests blocked by the rate limiter",
		},
		[]string{"endpoint"},
	)
	ReportsSubmitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reports_submitted_total",
			Help: "Total citizen reports submitted",
		},
	)
	PointsAwarded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "incentive_points_awarded_total",
			Help: "Total incentive points credited, by action",
		},
		[]string{"action"},
	)
)

func init() {
	prometheus.MustRegister(RLRequests)
	prometheus.MustRegister(RLBlocked)
	prometheus.MustRegister(ReportsSubmitted)
	prometheus.MustRegister(PointsAwarded)
}
