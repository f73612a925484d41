package handlers

import (
	"net/http"

	"github.com/daleplay/playlist-api/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// HealthCheck returns the health status of the API. An unreachable
// database or empty catalog degrades the status without failing the check.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	dbStatus := "healthy"
	var catalogSize int64

	sqlDB, err := h.db.DB()
	if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		dbStatus = "unreachable"
	} else if err := h.db.WithContext(c.Request.Context()).
		Model(&models.CatalogTrack{}).
		Count(&catalogSize).Error; err != nil {
		dbStatus = "degraded"
	}

	status := "healthy"
	if dbStatus != "healthy" {
		status = "degraded"
	}

	c.JSON(http.StatusOK, gin.H{
		"status": status,
		"database": gin.H{
			"status": dbStatus,
		},
		"catalog": gin.H{
			"tracks": catalogSize,
		},
	})
}
