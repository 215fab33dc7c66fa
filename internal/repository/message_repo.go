package repository

import (
	"tokobagus/internal/models"

	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(m *models.Message) error {
	return r.db.Create(m).Error
}

func (r *MessageRepository) Count() (int64, error) {
	var total int64
	err := r.db.Model(&models.Message{}).Count(&total).Error
	return total, err
}

func (r *MessageRepository) List(limit, offset int) ([]models.Message, error) {
	list := []models.Message{}
	err := r.db.Order("created_at DESC").Order("id DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

func (r *MessageRepository) Delete(id uint) error {
	return affected(r.db.Delete(&models.Message{}, id))
}
