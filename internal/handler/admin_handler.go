package handler

import (
	"net/http"

	"tokobagus/internal/domain"
	"tokobagus/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type StatsSource interface {
	Stats(lowStockThreshold int) (*repository.DashboardStats, error)
}

type AdminHandler struct {
	stats StatsSource
	log   logrus.FieldLogger
}

func NewAdminHandler(stats StatsSource, log logrus.FieldLogger) *AdminHandler {
	return &AdminHandler{stats: stats, log: log}
}

// Stats returns the dashboard counters.
func (h *AdminHandler) Stats(c *gin.Context) {
	s, err := h.stats.Stats(domain.LowStockThreshold)
	if err != nil {
		h.log.WithError(err).Error("dashboard stats")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching stats"})
		return
	}
	c.JSON(http.StatusOK, s)
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK", "message": "Server is running"})
}
