package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ridemedia-backend/internal/apperrors"
	"ridemedia-backend/internal/models"
)

// NewGormRepositories создает хранилища поверх PostgreSQL
func NewGormRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Drivers:     &gormDriverRepository{db: db},
		Advertisers: &gormAdvertiserRepository{db: db},
		Content:     &gormContentRepository{db: db},
		Media:       &gormMediaRepository{db: db},
		EmailLogs:   &gormEmailLogRepository{db: db},
	}
}

func notFound(err error, what, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %s: %w", what, id, apperrors.ErrNotFound)
	}
	return err
}

// updateStatus перезаписывает статус. Для PostgreSQL RowsAffected считает
// найденные строки, поэтому повторная установка того же статуса не дает 404.
func updateStatus(ctx context.Context, db *gorm.DB, model interface{}, what, id string, status models.SubmissionStatus) error {
	result := db.WithContext(ctx).Model(model).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%s %s: %w", what, id, apperrors.ErrNotFound)
	}
	return nil
}

type gormDriverRepository struct {
	db *gorm.DB
}

func (r *gormDriverRepository) Create(ctx context.Context, app *models.DriverApplication) error {
	return r.db.WithContext(ctx).Create(app).Error
}

func (r *gormDriverRepository) List(ctx context.Context) ([]models.DriverApplication, error) {
	var apps []models.DriverApplication
	if err := r.db.WithContext(ctx).Order("created_at").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *gormDriverRepository) UpdateStatus(ctx context.Context, id string, status models.SubmissionStatus) error {
	return updateStatus(ctx, r.db, &models.DriverApplication{}, "driver application", id, status)
}

type gormAdvertiserRepository struct {
	db *gorm.DB
}

func (r *gormAdvertiserRepository) Create(ctx context.Context, sub *models.AdvertiserSubmission) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *gormAdvertiserRepository) List(ctx context.Context) ([]models.AdvertiserSubmission, error) {
	var subs []models.AdvertiserSubmission
	if err := r.db.WithContext(ctx).Order("created_at").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *gormAdvertiserRepository) UpdateStatus(ctx context.Context, id string, status models.SubmissionStatus) error {
	return updateStatus(ctx, r.db, &models.AdvertiserSubmission{}, "advertiser submission", id, status)
}

type gormContentRepository struct {
	db *gorm.DB
}

func (r *gormContentRepository) List(ctx context.Context) ([]models.ContentBlock, error) {
	var blocks []models.ContentBlock
	if err := r.db.WithContext(ctx).Order("page").Order("sort_order").Find(&blocks).Error; err != nil {
		return nil, err
	}
	return blocks, nil
}

func (r *gormContentRepository) ListByPage(ctx context.Context, page string) ([]models.ContentBlock, error) {
	var blocks []models.ContentBlock
	err := r.db.WithContext(ctx).
		Where("page = ? AND is_active = ?", page, true).
		Order("sort_order").
		Find(&blocks).Error
	if err != nil {
		return nil, err
	}
	return blocks, nil
}

func (r *gormContentRepository) Get(ctx context.Context, id string) (*models.ContentBlock, error) {
	var block models.ContentBlock
	if err := r.db.WithContext(ctx).First(&block, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "content block", id)
	}
	return &block, nil
}

func (r *gormContentRepository) Update(ctx context.Context, block *models.ContentBlock) error {
	result := r.db.WithContext(ctx).Model(&models.ContentBlock{}).
		Where("id = ?", block.ID).
		Updates(map[string]interface{}{
			"content":    block.Content,
			"is_active":  block.IsActive,
			"updated_at": block.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("content block %s: %w", block.ID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *gormContentRepository) Upsert(ctx context.Context, block *models.ContentBlock) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"page", "section_id", "content", "sort_order", "is_active", "updated_at"}),
	}).Create(block).Error
}

type gormMediaRepository struct {
	db *gorm.DB
}

func (r *gormMediaRepository) Create(ctx context.Context, asset *models.MediaAsset) error {
	return r.db.WithContext(ctx).Create(asset).Error
}

func (r *gormMediaRepository) List(ctx context.Context) ([]models.MediaAsset, error) {
	var assets []models.MediaAsset
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

func (r *gormMediaRepository) Get(ctx context.Context, id string) (*models.MediaAsset, error) {
	var asset models.MediaAsset
	if err := r.db.WithContext(ctx).First(&asset, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "media", id)
	}
	return &asset, nil
}

func (r *gormMediaRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.MediaAsset{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("media %s: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

type gormEmailLogRepository struct {
	db *gorm.DB
}

func (r *gormEmailLogRepository) Create(ctx context.Context, entry *models.EmailLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *gormEmailLogRepository) List(ctx context.Context) ([]models.EmailLog, error) {
	var logs []models.EmailLog
	if err := r.db.WithContext(ctx).Order("timestamp DESC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
