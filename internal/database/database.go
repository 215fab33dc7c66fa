package database

import (
	"errors"

	"tokobagus/config"
	"tokobagus/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error), // Only log errors, not every SQL query
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Product{},
		&models.Category{},
		&models.Setting{},
		&models.Message{},
		&models.User{},
	)
}

// SeedAdmin makes sure the configured admin credential exists. An existing row
// keeps its password so a rotated credential is not reset on restart.
func SeedAdmin(db *gorm.DB, cfg *config.AdminConfig) (created bool, err error) {
	var existing models.User
	err = db.Where("username = ?", cfg.Username).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	if err := db.Create(&models.User{Username: cfg.Username, PasswordHash: string(hash)}).Error; err != nil {
		return false, err
	}
	return true, nil
}
