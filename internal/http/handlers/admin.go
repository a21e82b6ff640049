package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AuditLogs returns the recent audit trail, optionally filtered by category
func (h *Handler) AuditLogs(c *gin.Context) {
	limit, _ := paging(c, 100)

	ctx := c.Request.Context()
	if category := c.Query("category"); category != "" {
		logs, err := h.Audit.ByCategory(ctx, category, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get audit logs"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"logs": logs})
		return
	}

	logs, err := h.Audit.Recent(ctx, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get audit logs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}
