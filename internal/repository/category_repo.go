package repository

import (
	"tokobagus/internal/models"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) List() ([]models.Category, error) {
	list := []models.Category{}
	err := r.db.Order("name ASC").Find(&list).Error
	return list, err
}

func (r *CategoryRepository) Create(c *models.Category) error {
	return r.db.Create(c).Error
}

func (r *CategoryRepository) Update(id uint, name, description string) error {
	return affected(r.db.Model(&models.Category{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":        name,
		"description": description,
	}))
}

func (r *CategoryRepository) Delete(id uint) error {
	return affected(r.db.Delete(&models.Category{}, id))
}
