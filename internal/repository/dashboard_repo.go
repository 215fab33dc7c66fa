package repository

import (
	"tokobagus/internal/models"

	"gorm.io/gorm"
)

type DashboardStats struct {
	TotalProducts    int64 `json:"totalProducts"`
	TotalCategories  int64 `json:"totalCategories"`
	TotalMessages    int64 `json:"totalMessages"`
	LowStockProducts int64 `json:"lowStockProducts"`
}

type DashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// Stats counts the admin dashboard figures. Products with stock below
// lowStockThreshold count as low stock.
func (r *DashboardRepository) Stats(lowStockThreshold int) (*DashboardStats, error) {
	var s DashboardStats
	if err := r.db.Model(&models.Product{}).Count(&s.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Category{}).Count(&s.TotalCategories).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Message{}).Count(&s.TotalMessages).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Product{}).Where("stock < ?", lowStockThreshold).Count(&s.LowStockProducts).Error; err != nil {
		return nil, err
	}
	return &s, nil
}
