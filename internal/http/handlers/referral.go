package handlers

import (
	"errors"
	"net/http"

	"billboard_compliance/internal/domain"
	"billboard_compliance/internal/incentive"
	"billboard_compliance/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetReferralCode returns the caller's code, minting one on first request
func (h *Handler) GetReferralCode(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	code, err := h.ReferralRepo.GetOrCreateCode(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get referral code"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"referral_code": code})
}

type ApplyReferralRequest struct {
	Code string `json:"code" binding:"required"`
}

// ApplyReferral links the caller to a referrer and credits the referrer
func (h *Handler) ApplyReferral(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req ApplyReferralRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	referrerID, err := h.ReferralRepo.GetUserByCode(ctx, req.Code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "referral code not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve referral code"})
		return
	}
	if referrerID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot refer yourself"})
		return
	}

	if err := h.ReferralRepo.CreateReferral(ctx, referrerID, userID); err != nil {
		if errors.Is(err, repository.ErrAlreadyReferred) {
			c.JSON(http.StatusConflict, gin.H{"error": "already referred"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to apply referral"})
		return
	}

	points, err := h.Incentives.Award(ctx, referrerID, incentive.ActionReferral,
		map[string]any{"referred_id": userID})
	if err != nil {
		points = 0
	}

	h.Audit.Log(&userID, "referral_applied", domain.AuditCategoryIncentive,
		map[string]any{"referrer_id": referrerID},
		c.ClientIP(), c.Request.UserAgent())

	c.JSON(http.StatusOK, gin.H{
		"referrer_id":    referrerID,
		"points_awarded": points,
		"applied":        true,
	})
}
