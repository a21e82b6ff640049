package handlers

import (
	"errors"
	"net/http"

	"billboard_compliance/internal/domain"
	"billboard_compliance/internal/http/middleware"
	"billboard_compliance/internal/incentive"
	"billboard_compliance/internal/repository"
	"billboard_compliance/internal/ws"

	"github.com/gin-gonic/gin"
)

type CreateViolationRequest struct {
	ReportID      int64  `json:"report_id" binding:"required"`
	BillboardID   int64  `json:"billboard_id" binding:"required"`
	ViolationType string `json:"violation_type" binding:"required,violationtype"`
	Description   string `json:"description" binding:"required"`
	Severity      string `json:"severity" binding:"required,oneof=low medium high critical"`
}

// CreateViolation records a confirmed infraction against a report. The
// original reporter earns violation_found points.
func (h *Handler) CreateViolation(c *gin.Context) {
	inspectorID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req CreateViolationRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	rep, err := h.ReportRepo.GetByID(ctx, req.ReportID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load report"})
		return
	}

	v := &domain.Violation{
		ReportID:      req.ReportID,
		BillboardID:   req.BillboardID,
		ReporterID:    rep.ReporterID,
		ViolationType: domain.ViolationType(req.ViolationType),
		Description:   req.Description,
		Severity:      domain.Severity(req.Severity),
	}

	if err := h.ViolationRepo.Create(ctx, v); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create violation"})
		return
	}

	points, err := h.Incentives.Award(ctx, rep.ReporterID, incentive.ActionViolationFound,
		map[string]any{"violation_id": v.ID})
	if err == nil && points > 0 {
		middleware.PointsAwarded.WithLabelValues(string(incentive.ActionViolationFound)).Add(float64(points))
	}

	if h.Hub != nil {
		h.Hub.Broadcast(ws.ActivityEvent{
			Type:          "violation_confirmed",
			ReportID:      rep.ID,
			ViolationType: string(v.ViolationType),
			Severity:      string(v.Severity),
			Latitude:      rep.Latitude,
			Longitude:     rep.Longitude,
		})
	}

	h.Audit.Log(&inspectorID, "violation_created", domain.AuditCategoryViolation,
		map[string]any{"violation_id": v.ID, "report_id": rep.ID, "type": v.ViolationType},
		c.ClientIP(), c.Request.UserAgent())

	c.JSON(http.StatusCreated, v)
}

// ListViolations returns the caller's violations; admins see everything
func (h *Handler) ListViolations(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	limit, offset := paging(c, 100)

	ctx := c.Request.Context()
	var (
		violations []*domain.Violation
		err        error
	)
	if getRole(c) == string(domain.RoleAdmin) {
		violations, err = h.ViolationRepo.ListAll(ctx, limit, offset)
	} else {
		violations, err = h.ViolationRepo.ListByReporter(ctx, userID, limit, offset)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list violations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"violations": violations})
}
