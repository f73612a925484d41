package handlers

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/daleplay/playlist-api/internal/logger"
	"github.com/daleplay/playlist-api/internal/services"
	"github.com/gin-gonic/gin"
)

type MetricsHandler struct {
	startTime time.Time
	version   string
	exposure  *services.ExposureService
}

func NewMetricsHandler(version string, exposure *services.ExposureService) *MetricsHandler {
	return &MetricsHandler{
		startTime: time.Now(),
		version:   version,
		exposure:  exposure,
	}
}

const (
	secondsPerMinute = 60
	secondsPerHour   = 3600
)

// formatUptime formats the uptime duration with seconds rounded to 2 decimal places
func formatUptime(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % secondsPerMinute
	seconds := d.Seconds() - float64(hours*secondsPerHour) - float64(minutes*secondsPerMinute)

	if hours > 0 {
		return fmt.Sprintf("%dh%dm%.2fs", hours, minutes, seconds)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm%.2fs", minutes, seconds)
	}
	return fmt.Sprintf("%.2fs", seconds)
}

type MetricsResponse struct {
	Status    string        `json:"status"`
	Uptime    string        `json:"uptime"`
	Timestamp string        `json:"timestamp"`
	Version   string        `json:"version"`
	StartTime string        `json:"start_time"`
	System    SystemMetrics `json:"system"`
}

type SystemMetrics struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	MemAllocMB   uint64 `json:"mem_alloc_mb"`
	MemTotalMB   uint64 `json:"mem_total_mb"`
	NumGC        uint32 `json:"num_gc"`
}

const (
	bytesToMB = 1024 * 1024
)

// GetMetrics reports process-level runtime metrics.
func (h *MetricsHandler) GetMetrics(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	uptime := time.Since(h.startTime)

	metrics := MetricsResponse{
		Status:    "healthy",
		Uptime:    formatUptime(uptime),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.version,
		StartTime: h.startTime.UTC().Format(time.RFC3339),
		System: SystemMetrics{
			GoVersion:    runtime.Version(),
			NumGoroutine: runtime.NumGoroutine(),
			MemAllocMB:   m.Alloc / bytesToMB,
			MemTotalMB:   m.TotalAlloc / bytesToMB,
			NumGC:        m.NumGC,
		},
	}

	c.JSON(http.StatusOK, metrics)
}

// GetExposure reports per-artist selection totals, most exposed first.
func (h *MetricsHandler) GetExposure(c *gin.Context) {
	report, err := h.exposure.ExposureReport(c.Request.Context())
	if err != nil {
		logger.Error("Exposure report failed", err, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build exposure report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"artists": report,
		"count":   len(report),
	})
}

// GetBusiness reports playlist generation statistics.
func (h *MetricsHandler) GetBusiness(c *gin.Context) {
	metrics, err := h.exposure.GetBusinessMetrics(c.Request.Context())
	if err != nil {
		logger.Error("Business metrics failed", err, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load business metrics"})
		return
	}

	c.JSON(http.StatusOK, metrics)
}
