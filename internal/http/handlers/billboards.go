package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"billboard_compliance/internal/compliance"
	"billboard_compliance/internal/domain"
	"billboard_compliance/internal/repository"

	"github.com/gin-gonic/gin"
)

type CreateBillboardRequest struct {
	Latitude      float64    `json:"latitude" binding:"latitude"`
	Longitude     float64    `json:"longitude" binding:"longitude"`
	Address       string     `json:"address"`
	WidthMeters   float64    `json:"width_meters" binding:"required,gt=0"`
	HeightMeters  float64    `json:"height_meters" binding:"required,gt=0"`
	ZoneType      string     `json:"zone_type" binding:"required,zonetype"`
	BillboardType string     `json:"billboard_type" binding:"required,billboardtype"`
	IsPermitted   bool       `json:"is_permitted"`
	PermitNumber  *string    `json:"permit_number"`
	PermitExpiry  *time.Time `json:"permit_expiry"`
	OwnerName     string     `json:"owner_name"`
	OwnerContact  string     `json:"owner_contact"`
}

func (h *Handler) CreateBillboard(c *gin.Context) {
	var req CreateBillboardRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b := &domain.Billboard{
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		Address:       req.Address,
		WidthMeters:   req.WidthMeters,
		HeightMeters:  req.HeightMeters,
		ZoneType:      domain.ZoneType(req.ZoneType),
		BillboardType: domain.BillboardType(req.BillboardType),
		IsPermitted:   req.IsPermitted,
		PermitNumber:  req.PermitNumber,
		PermitExpiry:  req.PermitExpiry,
		OwnerName:     req.OwnerName,
		OwnerContact:  req.OwnerContact,
	}

	if err := h.BillboardRepo.Create(c.Request.Context(), b); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create billboard"})
		return
	}

	c.JSON(http.StatusCreated, b)
}

func (h *Handler) ListBillboards(c *gin.Context) {
	limit, offset := paging(c, 100)

	billboards, err := h.BillboardRepo.List(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list billboards"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"billboards": billboards})
}

func (h *Handler) GetBillboard(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid billboard id"})
		return
	}

	b, err := h.BillboardRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "billboard not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get billboard"})
		return
	}
	c.JSON(http.StatusOK, b)
}

// CheckBillboard runs the compliance rule set against a billboard using
// inspector-supplied observations
func (h *Handler) CheckBillboard(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid billboard id"})
		return
	}

	var obs compliance.Observation
	if err := c.BindJSON(&obs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	b, err := h.BillboardRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "billboard not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get billboard"})
		return
	}

	c.JSON(http.StatusOK, h.Checker.Check(b, obs))
}

func paging(c *gin.Context, defaultLimit int) (int, int) {
	limit := defaultLimit
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}
	offset := 0
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}
