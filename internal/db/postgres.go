package db

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"ridemedia-backend/internal/config"
	"ridemedia-backend/internal/models"
	"ridemedia-backend/internal/storage"
)

// ConnectWithRetry открывает соединение с PostgreSQL, повторяя попытки, пока база поднимается
func ConnectWithRetry(cfg *config.Config, maxAttempts int, delay time.Duration) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	for i := 0; i < maxAttempts; i++ {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Error),
		})
		if err == nil {
			sqlDB, err := db.DB()
			if err != nil {
				return nil, fmt.Errorf("не удалось получить доступ к sql.DB: %w", err)
			}

			sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
			sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
			sqlDB.SetConnMaxLifetime(time.Duration(cfg.DBConnMaxLifetimeMins) * time.Minute)

			return db, nil
		}
		log.Printf("Попытка подключения к БД %d из %d не удалась: %v\n", i+1, maxAttempts, err)
		time.Sleep(delay)
	}
	return nil, fmt.Errorf("не удалось подключиться к базе данных после %d попыток: %v", maxAttempts, err)
}

// Migrate создает и обновляет таблицы приложения
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.DriverApplication{},
		&models.AdvertiserSubmission{},
		&models.ContentBlock{},
		&models.MediaAsset{},
		&models.EmailLog{},
		&storage.MediaBlob{},
	)
}
