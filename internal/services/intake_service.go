package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"ridemedia-backend/internal/apperrors"
	"ridemedia-backend/internal/models"
	"ridemedia-backend/internal/repository"
)

// IntakeService принимает публичные формы водителей и рекламодателей
type IntakeService struct {
	drivers       repository.DriverApplicationRepository
	advertisers   repository.AdvertiserSubmissionRepository
	media         *MediaService
	notifications *NotificationService
	adFormats     []string
}

func NewIntakeService(repos *repository.Repositories, media *MediaService, notifications *NotificationService, adFormats []string) *IntakeService {
	return &IntakeService{
		drivers:       repos.Drivers,
		advertisers:   repos.Advertisers,
		media:         media,
		notifications: notifications,
		adFormats:     adFormats,
	}
}

// AdFormats возвращает допустимые форматы рекламы текущего бренда
func (s *IntakeService) AdFormats() []string {
	return append([]string(nil), s.adFormats...)
}

func (s *IntakeService) SubmitDriverApplication(ctx context.Context, input models.DriverApplicationInput) (*models.DriverApplication, error) {
	app := &models.DriverApplication{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(input.Name),
		Email:        strings.TrimSpace(input.Email),
		Phone:        strings.TrimSpace(input.Phone),
		City:         strings.TrimSpace(input.City),
		Platform:     models.Platform(strings.TrimSpace(string(input.Platform))),
		VehicleYear:  strings.TrimSpace(input.VehicleYear),
		VehicleMake:  strings.TrimSpace(input.VehicleMake),
		VehicleModel: strings.TrimSpace(input.VehicleModel),
		Status:       models.StatusPending,
	}

	var invalid []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"name", app.Name},
		{"email", app.Email},
		{"phone", app.Phone},
		{"city", app.City},
		{"platform", string(app.Platform)},
		{"vehicle_year", app.VehicleYear},
		{"vehicle_make", app.VehicleMake},
		{"vehicle_model", app.VehicleModel},
	} {
		if f.value == "" {
			invalid = append(invalid, f.name)
		}
	}
	if app.Platform != "" && !app.Platform.IsValid() {
		invalid = append(invalid, "platform")
	}
	if err := apperrors.Validation(invalid...); err != nil {
		return nil, err
	}

	photoID, err := s.resolveUpload(ctx, "photo_id", input.PhotoID)
	if err != nil {
		return nil, err
	}
	app.PhotoID = photoID

	if err := s.drivers.Create(ctx, app); err != nil {
		return nil, fmt.Errorf("ошибка сохранения заявки водителя: %w", err)
	}
	log.Printf("Новая заявка водителя %s (%s, %s)", app.ID, app.City, app.Platform)

	if _, err := s.notifications.NotifyDriverApplication(ctx, app); err != nil {
		log.Printf("Ошибка уведомления о заявке водителя %s: %v", app.ID, err)
	}
	return app, nil
}

func (s *IntakeService) SubmitAdvertiserInquiry(ctx context.Context, input models.AdvertiserSubmissionInput) (*models.AdvertiserSubmission, error) {
	sub := &models.AdvertiserSubmission{
		ID:          uuid.New().String(),
		CompanyName: strings.TrimSpace(input.CompanyName),
		ContactName: strings.TrimSpace(input.ContactName),
		Email:       strings.TrimSpace(input.Email),
		BudgetRange: strings.TrimSpace(input.BudgetRange),
		Cities:      strings.TrimSpace(input.Cities),
		Message:     strings.TrimSpace(input.Message),
		Status:      models.StatusPending,
	}

	var invalid []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"company_name", sub.CompanyName},
		{"contact_name", sub.ContactName},
		{"email", sub.Email},
		{"budget_range", sub.BudgetRange},
		{"cities", sub.Cities},
	} {
		if f.value == "" {
			invalid = append(invalid, f.name)
		}
	}

	formats, ok := s.normalizeAdFormats(input.AdFormats)
	if !ok {
		invalid = append(invalid, "ad_formats")
	}
	if err := apperrors.Validation(invalid...); err != nil {
		return nil, err
	}
	sub.AdFormats = formats

	creativeID, err := s.resolveUpload(ctx, "creative_id", input.CreativeID)
	if err != nil {
		return nil, err
	}
	sub.CreativeID = creativeID

	if err := s.advertisers.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("ошибка сохранения заявки рекламодателя: %w", err)
	}
	log.Printf("Новая заявка рекламодателя %s (%s)", sub.ID, sub.CompanyName)

	if _, err := s.notifications.NotifyAdvertiserInquiry(ctx, sub); err != nil {
		log.Printf("Ошибка уведомления о заявке рекламодателя %s: %v", sub.ID, err)
	}
	return sub, nil
}

// UploadFile сохраняет вложение к форме, ID потом передается в photo_id или creative_id
func (s *IntakeService) UploadFile(ctx context.Context, filename, contentType string, data []byte) (*models.MediaAsset, error) {
	return s.media.Upload(ctx, models.MediaSourceUpload, filename, contentType, data)
}

// normalizeAdFormats оставляет порядок выбора, убирает повторы.
// Нужен хотя бы один формат, и все должны входить в набор бренда.
func (s *IntakeService) normalizeAdFormats(selected []string) ([]string, bool) {
	allowed := make(map[string]bool, len(s.adFormats))
	for _, f := range s.adFormats {
		allowed[f] = true
	}

	var out []string
	seen := make(map[string]bool)
	for _, f := range selected {
		f = strings.TrimSpace(f)
		if !allowed[f] {
			return nil, false
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out, len(out) > 0
}

func (s *IntakeService) resolveUpload(ctx context.Context, field, id string) (*string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}
	exists, err := s.media.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s %s", apperrors.ErrUpload, field, id)
	}
	return &id, nil
}
