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

type CategoryStore interface {
	List() ([]models.Category, error)
	Create(c *models.Category) error
	Update(id uint, name, description string) error
	Delete(id uint) error
}

type CategoryHandler struct {
	categories CategoryStore
	log        logrus.FieldLogger
}

func NewCategoryHandler(categories CategoryStore, log logrus.FieldLogger) *CategoryHandler {
	return &CategoryHandler{categories: categories, log: log}
}

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// bind reads the body and enforces a non-empty name; it answers 400 itself.
func (h *CategoryHandler) bind(c *gin.Context) (categoryRequest, bool) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return req, false
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Category name is required"})
		return req, false
	}
	return req, true
}

func (h *CategoryHandler) List(c *gin.Context) {
	list, err := h.categories.List()
	if err != nil {
		h.log.WithError(err).Error("list categories")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching categories"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}
	cat := &models.Category{Name: req.Name, Description: req.Description}
	if err := h.categories.Create(cat); err != nil {
		h.log.WithError(err).WithField("name", req.Name).Error("create category")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating category"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": cat.ID, "message": "Category created successfully"})
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
		return
	}
	req, ok := h.bind(c)
	if !ok {
		return
	}
	if err := h.categories.Update(id, req.Name, req.Description); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
			return
		}
		h.log.WithError(err).WithField("id", id).Error("update category")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating category"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category updated successfully"})
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
		return
	}
	if err := h.categories.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
			return
		}
		h.log.WithError(err).WithField("id", id).Error("delete category")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error deleting category"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
