package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"billboard_compliance/internal/repository"
	"billboard_compliance/internal/service"

	"github.com/gin-gonic/gin"
)

// ListConsents returns the caller's consents; ?all=true includes revoked
// and expired grants
func (h *Handler) ListConsents(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	activeOnly := c.Query("all") != "true"
	consents, err := h.Consents.List(c.Request.Context(), userID, activeOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list consents"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"consents": consents})
}

type GrantConsentRequest struct {
	ConsentType string         `json:"consent_type" binding:"required"`
	Version     string         `json:"version"`
	ExpiresAt   *time.Time     `json:"expires_at"`
	Metadata    map[string]any `json:"metadata"`
}

// GrantConsent records or renews a data-processing consent
func (h *Handler) GrantConsent(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req GrantConsentRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	consent, err := h.Consents.Grant(c.Request.Context(), userID, service.GrantParams{
		ConsentType: req.ConsentType,
		Version:     req.Version,
		ExpiresAt:   req.ExpiresAt,
		Metadata:    req.Metadata,
	}, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record consent"})
		return
	}
	c.JSON(http.StatusCreated, consent)
}

// RevokeConsent withdraws a previously granted consent
func (h *Handler) RevokeConsent(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid consent id"})
		return
	}

	consent, err := h.Consents.Revoke(c.Request.Context(), id, userID, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "consent not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke consent"})
		return
	}
	c.JSON(http.StatusOK, consent)
}

// ConsentRequirements lists the consents a feature asks for
func (h *Handler) ConsentRequirements(c *gin.Context) {
	feature := c.Query("feature")
	if feature == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "feature is required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"feature":      feature,
		"requirements": service.RequiredConsents(feature),
	})
}

// ConsentFeatureAccess checks the caller's consents against a feature's
// requirements
func (h *Handler) ConsentFeatureAccess(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	feature := c.Query("feature")
	if feature == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "feature is required"})
		return
	}

	access, err := h.Consents.CheckFeatureAccess(c.Request.Context(), userID, feature)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check consents"})
		return
	}
	c.JSON(http.StatusOK, access)
}
