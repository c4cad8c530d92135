package repository

import (
	"context"

	"ridemedia-backend/internal/models"
)

type DriverApplicationRepository interface {
	Create(ctx context.Context, app *models.DriverApplication) error
	List(ctx context.Context) ([]models.DriverApplication, error)
	UpdateStatus(ctx context.Context, id string, status models.SubmissionStatus) error
}

type AdvertiserSubmissionRepository interface {
	Create(ctx context.Context, sub *models.AdvertiserSubmission) error
	List(ctx context.Context) ([]models.AdvertiserSubmission, error)
	UpdateStatus(ctx context.Context, id string, status models.SubmissionStatus) error
}

type ContentBlockRepository interface {
	List(ctx context.Context) ([]models.ContentBlock, error)
	ListByPage(ctx context.Context, page string) ([]models.ContentBlock, error)
	Get(ctx context.Context, id string) (*models.ContentBlock, error)
	Update(ctx context.Context, block *models.ContentBlock) error
	Upsert(ctx context.Context, block *models.ContentBlock) error
}

type MediaRepository interface {
	Create(ctx context.Context, asset *models.MediaAsset) error
	List(ctx context.Context) ([]models.MediaAsset, error)
	Get(ctx context.Context, id string) (*models.MediaAsset, error)
	Delete(ctx context.Context, id string) error
}

type EmailLogRepository interface {
	Create(ctx context.Context, entry *models.EmailLog) error
	List(ctx context.Context) ([]models.EmailLog, error)
}

// Repositories собирает все хранилища приложения
type Repositories struct {
	Drivers     DriverApplicationRepository
	Advertisers AdvertiserSubmissionRepository
	Content     ContentBlockRepository
	Media       MediaRepository
	EmailLogs   EmailLogRepository
}
