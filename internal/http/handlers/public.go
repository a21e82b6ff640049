package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Heatmap returns aggregated violation locations for the public map.
// Query params: days (default 30, max 365) and optional violation_type.
func (h *Handler) Heatmap(c *gin.Context) {
	days := 30
	if v := c.Query("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 365 {
			days = n
		}
	}
	since := time.Now().AddDate(0, 0, -days)

	points, err := h.ReportRepo.Heatmap(c.Request.Context(), since, c.Query("violation_type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build heatmap"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"points":      points,
		"total":       len(points),
		"period_days": days,
	})
}

// Stats returns the public dashboard aggregates plus the latest activity
func (h *Handler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	stats, err := h.ViolationRepo.Stats(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get stats"})
		return
	}

	recent, err := h.ReportRepo.Recent(ctx, 10)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get recent activity"})
		return
	}

	activity := make([]gin.H, 0, len(recent))
	for _, rep := range recent {
		activity = append(activity, gin.H{
			"report_id":  rep.ID,
			"status":     rep.Status,
			"latitude":   rep.Latitude,
			"longitude":  rep.Longitude,
			"created_at": rep.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"total_violations":       stats.Total,
		"violations_by_type":     stats.ByType,
		"violations_by_severity": stats.BySeverity,
		"recent_activity":        activity,
		"live_viewers":           h.Hub.ClientCount(),
	})
}
