package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"ridemedia-backend/internal/apperrors"
	"ridemedia-backend/internal/models"
	"ridemedia-backend/internal/repository"
	"ridemedia-backend/internal/storage"
)

// DefaultMaxUploadBytes - 10 МБ, ровно 10 МБ еще допустимо
const DefaultMaxUploadBytes int64 = 10 * 1024 * 1024

// MediaService хранит загруженные файлы: метаданные в репозитории, байты в BlobStore
type MediaService struct {
	repo     repository.MediaRepository
	blobs    storage.BlobStore
	maxBytes int64
}

func NewMediaService(repo repository.MediaRepository, blobs storage.BlobStore, maxBytes int64) *MediaService {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &MediaService{repo: repo, blobs: blobs, maxBytes: maxBytes}
}

func (s *MediaService) MaxBytes() int64 {
	return s.maxBytes
}

// Upload сохраняет файл и возвращает его запись с URL
func (s *MediaService) Upload(ctx context.Context, source models.MediaSource, filename, contentType string, data []byte) (*models.MediaAsset, error) {
	if int64(len(data)) > s.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", apperrors.ErrSizeExceeded, len(data), s.maxBytes)
	}

	filename = filepath.Base(strings.TrimSpace(filename))
	if filename == "" || filename == "." || filename == string(filepath.Separator) {
		filename = "upload"
	}
	if contentType == "" || strings.HasPrefix(contentType, "application/octet-stream") {
		contentType = mimetype.Detect(data).String()
	}

	id := uuid.New().String()
	asset := &models.MediaAsset{
		ID:          id,
		Filename:    filename,
		ContentType: contentType,
		Size:        int64(len(data)),
		Source:      source,
		StorageKey:  id,
	}

	if err := s.blobs.Put(ctx, asset.StorageKey, contentType, data); err != nil {
		return nil, fmt.Errorf("ошибка сохранения файла: %w", err)
	}
	if err := s.repo.Create(ctx, asset); err != nil {
		if delErr := s.blobs.Delete(ctx, asset.StorageKey); delErr != nil {
			log.Printf("Не удалось удалить файл %s после ошибки: %v", asset.StorageKey, delErr)
		}
		return nil, fmt.Errorf("ошибка сохранения записи о файле: %w", err)
	}

	asset.URL = models.MediaURL(asset.ID)
	return asset, nil
}

// List возвращает медиатеку, новые файлы первыми. Содержимое подгружается только по запросу.
func (s *MediaService) List(ctx context.Context, withData bool) ([]models.MediaAsset, error) {
	assets, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range assets {
		assets[i].URL = models.MediaURL(assets[i].ID)
		if withData {
			data, err := s.blobs.Get(ctx, assets[i].StorageKey)
			if err != nil {
				return nil, fmt.Errorf("media %s: %w", assets[i].ID, err)
			}
			assets[i].Data = data
		}
	}
	return assets, nil
}

func (s *MediaService) Get(ctx context.Context, id string, withData bool) (*models.MediaAsset, error) {
	asset, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	asset.URL = models.MediaURL(asset.ID)
	if withData {
		data, err := s.blobs.Get(ctx, asset.StorageKey)
		if err != nil {
			return nil, fmt.Errorf("media %s: %w", id, err)
		}
		asset.Data = data
	}
	return asset, nil
}

// Exists проверяет ссылку на загрузку из формы
func (s *MediaService) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.repo.Get(ctx, id)
	if errors.Is(err, apperrors.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// Delete удаляет запись и содержимое. Заявки, ссылающиеся на файл, не трогаются.
func (s *MediaService) Delete(ctx context.Context, id string) error {
	asset, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.blobs.Delete(ctx, asset.StorageKey); err != nil {
		log.Printf("Не удалось удалить содержимое файла %s: %v", id, err)
	}
	return nil
}
