package repository

import (
	"tokobagus/internal/models"

	"gorm.io/gorm"
)

type SettingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// Latest returns the authoritative settings row, the one with the highest id.
func (r *SettingRepository) Latest() (*models.Setting, error) {
	var s models.Setting
	if err := r.db.Order("id DESC").Take(&s).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *SettingRepository) LatestID() (uint, error) {
	var s models.Setting
	if err := r.db.Select("id").Order("id DESC").Take(&s).Error; err != nil {
		return 0, translate(err)
	}
	return s.ID, nil
}

func (r *SettingRepository) Create(s *models.Setting) error {
	return r.db.Create(s).Error
}

func (r *SettingRepository) Update(id uint, s models.Setting) error {
	return r.db.Model(&models.Setting{}).Where("id = ?", id).Updates(map[string]interface{}{
		"address":  s.Address,
		"phone":    s.Phone,
		"maps_url": s.MapsURL,
		"about_us": s.AboutUs,
	}).Error
}
