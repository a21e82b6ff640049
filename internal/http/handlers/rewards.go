package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PublicTiers returns the platform tier ladder for the rewards screen
func (h *Handler) PublicTiers(c *gin.Context) {
	tiers := h.Incentives.Tiers()

	payload := make([]gin.H, 0, len(tiers))
	for _, t := range tiers {
		payload = append(payload, gin.H{
			"name":            t.Name,
			"points_required": t.PointsRequired,
			"benefits":        t.Benefits,
			"icon_slug":       t.IconSlug(),
		})
	}

	c.JSON(http.StatusOK, gin.H{"tiers": payload})
}

// MyRewards returns the caller's rewards summary: points, resolved tier
// progress, affordable rewards and referral stats
func (h *Handler) MyRewards(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	summary, err := h.Incentives.Summary(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load rewards"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// MyPointsHistory returns the caller's recent point awards
func (h *Handler) MyPointsHistory(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	limit, _ := paging(c, 50)

	entries, err := h.Incentives.History(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load points history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": entries})
}
