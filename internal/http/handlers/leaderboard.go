package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetLeaderboard returns the top 100 reporters by points
func (h *Handler) GetLeaderboard(c *gin.Context) {
	top, err := h.UserRepo.GetLeaderboard(c.Request.Context(), 100)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get leaderboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"leaderboard": top,
		"period":      "all_time",
	})
}

// GetMyRank returns the current user's leaderboard position
func (h *Handler) GetMyRank(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	rank, points, err := h.UserRepo.GetUserRank(c.Request.Context(), userID)
	if err != nil {
		// no activity yet, rank is 0
		c.JSON(http.StatusOK, gin.H{
			"rank":   0,
			"points": 0,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rank":   rank,
		"points": points,
	})
}
