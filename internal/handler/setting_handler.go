package handler

import (
	"errors"
	"net/http"

	"tokobagus/internal/domain"
	"tokobagus/internal/models"
	"tokobagus/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type SettingStore interface {
	Latest() (*models.Setting, error)
	LatestID() (uint, error)
	Create(s *models.Setting) error
	Update(id uint, s models.Setting) error
}

type SettingHandler struct {
	settings SettingStore
	log      logrus.FieldLogger
}

func NewSettingHandler(settings SettingStore, log logrus.FieldLogger) *SettingHandler {
	return &SettingHandler{settings: settings, log: log}
}

type settingRequest struct {
	Address string `json:"address"`
	Phone   string `json:"phone"`
	MapsURL string `json:"maps_url"`
	AboutUs string `json:"about_us"`
}

// Get returns the newest settings row, or the built-in defaults when the
// table is empty.
func (h *SettingHandler) Get(c *gin.Context) {
	s, err := h.settings.Latest()
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusOK, domain.DefaultSettings())
			return
		}
		h.log.WithError(err).Error("get settings")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching settings"})
		return
	}
	c.JSON(http.StatusOK, s)
}

// Put overwrites the newest settings row, creating the first one if needed.
func (h *SettingHandler) Put(c *gin.Context) {
	var req settingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	s := models.Setting{Address: req.Address, Phone: req.Phone, MapsURL: req.MapsURL, AboutUs: req.AboutUs}

	id, err := h.settings.LatestID()
	switch {
	case errors.Is(err, repository.ErrNotFound):
		if err := h.settings.Create(&s); err != nil {
			h.log.WithError(err).Error("create settings")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating settings"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Settings created successfully"})
	case err != nil:
		h.log.WithError(err).Error("check settings")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error checking settings"})
	default:
		if err := h.settings.Update(id, s); err != nil {
			h.log.WithError(err).WithField("id", id).Error("update settings")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating settings"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Settings updated successfully"})
	}
}
