package handler

import (
	"errors"
	"net/http"
	"strings"

	"tokobagus/internal/models"
	"tokobagus/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type MessageStore interface {
	Create(m *models.Message) error
	Count() (int64, error)
	List(limit, offset int) ([]models.Message, error)
	Delete(id uint) error
}

// MessageHandler serves the public contact form and the admin inbox.
type MessageHandler struct {
	messages    MessageStore
	maxPageSize int
	log         logrus.FieldLogger
}

func NewMessageHandler(messages MessageStore, maxPageSize int, log logrus.FieldLogger) *MessageHandler {
	return &MessageHandler{messages: messages, maxPageSize: maxPageSize, log: log}
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (h *MessageHandler) Contact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	m := &models.Message{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Phone:   strings.TrimSpace(req.Phone),
		Subject: req.Subject,
		Body:    req.Message,
	}
	if err := h.messages.Create(m); err != nil {
		h.log.WithError(err).Error("save contact message")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error sending message"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Message sent successfully", "id": m.ID})
}

func (h *MessageHandler) List(c *gin.Context) {
	pg := parsePagination(c, h.maxPageSize)
	total, err := h.messages.Count()
	if err != nil {
		h.log.WithError(err).Error("count messages")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching messages"})
		return
	}
	list, err := h.messages.List(pg.Limit, pg.Offset)
	if err != nil {
		h.log.WithError(err).Error("list messages")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching messages"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"messages":    list,
		"total":       total,
		"currentPage": pg.Page,
		"totalPages":  totalPages(total, pg.Limit),
	})
}

func (h *MessageHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Message not found"})
		return
	}
	if err := h.messages.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Message not found"})
			return
		}
		h.log.WithError(err).WithField("id", id).Error("delete message")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error deleting message"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Message deleted successfully"})
}
