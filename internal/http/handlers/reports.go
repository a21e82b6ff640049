package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"billboard_compliance/internal/domain"
	"billboard_compliance/internal/http/middleware"
	"billboard_compliance/internal/incentive"
	"billboard_compliance/internal/repository"
	"billboard_compliance/internal/service"
	"billboard_compliance/internal/ws"

	"github.com/gin-gonic/gin"
)

// CreateReport accepts a multipart form: billboard_id, description,
// latitude, longitude plus an optional image/video file
func (h *Handler) CreateReport(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	billboardID, err := strconv.ParseInt(c.PostForm("billboard_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid billboard_id"})
		return
	}
	lat, err := strconv.ParseFloat(c.PostForm("latitude"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid latitude"})
		return
	}
	lng, err := strconv.ParseFloat(c.PostForm("longitude"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid longitude"})
		return
	}

	ctx := c.Request.Context()

	if _, err := h.BillboardRepo.GetByID(ctx, billboardID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "billboard not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load billboard"})
		return
	}

	rep := &domain.Report{
		BillboardID: billboardID,
		ReporterID:  userID,
		Status:      domain.ReportPending,
		Description: c.PostForm("description"),
		Latitude:    lat,
		Longitude:   lng,
	}

	imageFile, imageErr := c.FormFile("image")
	videoFile, videoErr := c.FormFile("video")

	// attaching media requires the photo-upload consents
	if (imageErr == nil || videoErr == nil) && h.Consents != nil {
		access, err := h.Consents.CheckFeatureAccess(ctx, userID, service.FeaturePhotoUpload)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check consents"})
			return
		}
		if !access.HasAccess {
			c.JSON(http.StatusForbidden, gin.H{
				"error":            "missing required consents",
				"missing_consents": access.MissingConsents,
			})
			return
		}
	}

	if imageErr == nil && h.Store != nil {
		url, err := h.Store.UploadEvidence(ctx, imageFile, "reports/images")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store image"})
			return
		}
		rep.ImageURL = &url
	}
	if videoErr == nil && h.Store != nil {
		url, err := h.Store.UploadEvidence(ctx, videoFile, "reports/videos")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store video"})
			return
		}
		rep.VideoURL = &url
	}

	if err := h.ReportRepo.Create(ctx, rep); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create report"})
		return
	}

	points, streak, err := h.Incentives.AwardSubmission(ctx, userID)
	if err != nil {
		// report exists, points are best-effort
		points, streak = 0, 0
	} else {
		middleware.PointsAwarded.WithLabelValues(string(incentive.ActionReportSubmitted)).Add(float64(points))
	}
	middleware.ReportsSubmitted.Inc()

	h.Audit.Log(&userID, "report_submitted", domain.AuditCategoryReport,
		map[string]any{"report_id": rep.ID, "billboard_id": billboardID},
		c.ClientIP(), c.Request.UserAgent())

	c.JSON(http.StatusCreated, gin.H{
		"report":         rep,
		"points_awarded": points,
		"streak_days":    streak,
	})
}

// ListReports returns the caller's reports; admins see everything
func (h *Handler) ListReports(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	limit, offset := paging(c, 100)

	ctx := c.Request.Context()
	var (
		reports []*domain.Report
		err     error
	)
	if getRole(c) == string(domain.RoleAdmin) {
		reports, err = h.ReportRepo.ListAll(ctx, limit, offset)
	} else {
		reports, err = h.ReportRepo.ListByReporter(ctx, userID, limit, offset)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reports"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

type UpdateReportStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=in_review resolved rejected"`
}

// UpdateReportStatus moves a report through review. Resolving a report
// awards verification points to the reporter and feeds the live dashboard.
func (h *Handler) UpdateReportStatus(c *gin.Context) {
	reviewerID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report id"})
		return
	}

	var req UpdateReportStatusRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	to := domain.ReportStatus(req.Status)

	ctx := c.Request.Context()
	rep, err := h.ReportRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load report"})
		return
	}

	if err := h.ReportRepo.UpdateStatus(ctx, id, rep.Status, to); err != nil {
		if errors.Is(err, repository.ErrInvalidTransition) {
			c.JSON(http.StatusConflict, gin.H{"error": "invalid status transition"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update status"})
		return
	}

	if to == domain.ReportResolved {
		points, err := h.Incentives.Award(ctx, rep.ReporterID, incentive.ActionReportVerified,
			map[string]any{"report_id": rep.ID})
		if err == nil && points > 0 {
			middleware.PointsAwarded.WithLabelValues(string(incentive.ActionReportVerified)).Add(float64(points))
		}

		if h.Hub != nil {
			h.Hub.Broadcast(ws.ActivityEvent{
				Type:      "report_verified",
				ReportID:  rep.ID,
				Latitude:  rep.Latitude,
				Longitude: rep.Longitude,
			})
		}
	}

	h.Audit.Log(&reviewerID, "report_status_changed", domain.AuditCategoryReport,
		map[string]any{"report_id": rep.ID, "from": rep.Status, "to": to},
		c.ClientIP(), c.Request.UserAgent())

	c.JSON(http.StatusOK, gin.H{"id": rep.ID, "status": to})
}
