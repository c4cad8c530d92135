package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ridemedia-backend/internal/apperrors"
)

// MediaBlob - содержимое файла в отдельной таблице, чтобы списки
// метаданных не тянули бинарные данные
type MediaBlob struct {
	Key       string    `gorm:"primaryKey;type:varchar(255)"`
	Data      []byte    `gorm:"type:bytea;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

type PostgresBlobStore struct {
	db *gorm.DB
}

func NewPostgresBlobStore(db *gorm.DB) *PostgresBlobStore {
	return &PostgresBlobStore{db: db}
}

func (s *PostgresBlobStore) Put(ctx context.Context, key, _ string, data []byte) error {
	blob := MediaBlob{Key: key, Data: data}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data"}),
	}).Create(&blob).Error
	if err != nil {
		return fmt.Errorf("ошибка при сохранении файла %s: %w", key, err)
	}
	return nil
}

func (s *PostgresBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	var blob MediaBlob
	if err := s.db.WithContext(ctx).First(&blob, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("blob %s: %w", key, apperrors.ErrNotFound)
		}
		return nil, err
	}
	return blob.Data, nil
}

func (s *PostgresBlobStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Where("key = ?", key).Delete(&MediaBlob{}).Error
}
