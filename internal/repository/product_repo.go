package repository

import (
	"tokobagus/internal/models"

	"gorm.io/gorm"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Count() (int64, error) {
	var total int64
	err := r.db.Model(&models.Product{}).Count(&total).Error
	return total, err
}

// List returns one page of products, newest first.
func (r *ProductRepository) List(limit, offset int) ([]models.Product, error) {
	list := []models.Product{}
	err := r.db.Order("created_at DESC").Order("id DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

func (r *ProductRepository) GetByID(id uint) (*models.Product, error) {
	var p models.Product
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

// ImageOf returns the stored image filename of a product (nil if it has none).
func (r *ProductRepository) ImageOf(id uint) (*string, error) {
	var p models.Product
	if err := r.db.Select("id", "image").First(&p, id).Error; err != nil {
		return nil, translate(err)
	}
	return p.Image, nil
}

func (r *ProductRepository) Create(p *models.Product) error {
	return r.db.Create(p).Error
}

// Update rewrites the editable columns. A nil image leaves the image column untouched.
func (r *ProductRepository) Update(id uint, f models.ProductFields, image *string) error {
	updates := map[string]interface{}{
		"name":        f.Name,
		"description": f.Description,
		"price":       f.Price,
		"stock":       f.Stock,
		"category":    f.Category,
	}
	if image != nil {
		updates["image"] = *image
	}
	return affected(r.db.Model(&models.Product{}).Where("id = ?", id).Updates(updates))
}

func (r *ProductRepository) Delete(id uint) error {
	return affected(r.db.Delete(&models.Product{}, id))
}
