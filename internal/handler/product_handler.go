package handler

import (
	"errors"
	"net/http"
	"strings"

	"tokobagus/internal/models"
	"tokobagus/internal/repository"
	"tokobagus/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ProductReader interface {
	Count() (int64, error)
	List(limit, offset int) ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
}

type ProductHandler struct {
	products    ProductReader
	svc         *service.ProductService
	maxPageSize int
	maxUpload   int64
	log         logrus.FieldLogger
}

func NewProductHandler(products ProductReader, svc *service.ProductService, maxPageSize int, maxUpload int64, log logrus.FieldLogger) *ProductHandler {
	return &ProductHandler{products: products, svc: svc, maxPageSize: maxPageSize, maxUpload: maxUpload, log: log}
}

// productForm is the multipart (or JSON) body of product writes.
type productForm struct {
	Name        string  `form:"name" json:"name" binding:"required"`
	Description string  `form:"description" json:"description"`
	Price       float64 `form:"price" json:"price" binding:"min=0"`
	Stock       int     `form:"stock" json:"stock" binding:"min=0"`
	Category    string  `form:"category" json:"category"`
}

func (f productForm) fields() models.ProductFields {
	return models.ProductFields{
		Name:        strings.TrimSpace(f.Name),
		Description: f.Description,
		Price:       f.Price,
		Stock:       f.Stock,
		Category:    strings.TrimSpace(f.Category),
	}
}

func (h *ProductHandler) List(c *gin.Context) {
	pg := parsePagination(c, h.maxPageSize)
	total, err := h.products.Count()
	if err != nil {
		h.log.WithError(err).Error("count products")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching product count"})
		return
	}
	list, err := h.products.List(pg.Limit, pg.Offset)
	if err != nil {
		h.log.WithError(err).Error("list products")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching products"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"products":    list,
		"total":       total,
		"currentPage": pg.Page,
		"totalPages":  totalPages(total, pg.Limit),
	})
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}
	p, err := h.products.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		h.log.WithError(err).WithField("id", id).Error("get product")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching product"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// readWrite validates the image and form fields shared by create and update.
// It writes the 400 response itself and reports false on rejection.
func (h *ProductHandler) readWrite(c *gin.Context) (models.ProductFields, *service.ImageUpload, func(), bool) {
	upload, file, reject := imageFile(c, h.maxUpload)
	if reject != "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": reject})
		return models.ProductFields{}, nil, nil, false
	}
	closeFile := func() {
		if file != nil {
			file.Close()
		}
	}
	var form productForm
	if err := c.ShouldBind(&form); err != nil {
		closeFile()
		c.JSON(http.StatusBadRequest, gin.H{"message": msgInvalidProduct})
		return models.ProductFields{}, nil, nil, false
	}
	return form.fields(), upload, closeFile, true
}

func (h *ProductHandler) Create(c *gin.Context) {
	fields, upload, done, ok := h.readWrite(c)
	if !ok {
		return
	}
	defer done()
	p, err := h.svc.Create(c.Request.Context(), fields, upload)
	if err != nil {
		h.log.WithError(err).Error("create product")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating product"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": p.ID, "message": "Product created successfully"})
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}
	fields, upload, done, ok := h.readWrite(c)
	if !ok {
		return
	}
	defer done()
	err := h.svc.Update(c.Request.Context(), id, fields, upload)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully"})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
	case errors.Is(err, service.ErrFetch):
		h.log.WithError(err).WithField("id", id).Error("update product: lookup")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching product"})
	default:
		h.log.WithError(err).WithField("id", id).Error("update product")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating product"})
	}
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}
	err := h.svc.Delete(c.Request.Context(), id)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
	case errors.Is(err, service.ErrFetch):
		h.log.WithError(err).WithField("id", id).Error("delete product: lookup")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching product"})
	default:
		h.log.WithError(err).WithField("id", id).Error("delete product")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error deleting product"})
	}
}
