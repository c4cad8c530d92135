package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"ridemedia-backend/internal/apperrors"
	"ridemedia-backend/internal/models"
	"ridemedia-backend/internal/repository"
	"ridemedia-backend/internal/utils"
)

const (
	driverExportName     = "driver_applications"
	advertiserExportName = "advertiser_submissions"
)

type AdminConfig struct {
	Username     string
	Password     string
	PasswordHash string // bcrypt, имеет приоритет над Password
	Secret       []byte
	SessionTTL   time.Duration
}

// AdminService - вход администратора и разбор заявок
type AdminService struct {
	repos         *repository.Repositories
	sessions      SessionStore
	notifications *NotificationService
	cfg           AdminConfig
	now           func() time.Time
}

type LoginResult struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Token     string    `json:"token,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

func NewAdminService(repos *repository.Repositories, sessions SessionStore, notifications *NotificationService, cfg AdminConfig) *AdminService {
	if len(cfg.Secret) == 0 {
		cfg.Secret = []byte(uuid.New().String() + uuid.New().String())
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}
	return &AdminService{
		repos:         repos,
		sessions:      sessions,
		notifications: notifications,
		cfg:           cfg,
		now:           time.Now,
	}
}

// Login проверяет учетные данные и открывает сессию.
// Неверный логин или пароль - не ошибка, а Success=false.
func (s *AdminService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if !s.checkCredentials(username, password) {
		log.Printf("Неудачная попытка входа для пользователя %q", username)
		return &LoginResult{Success: false, Message: "Invalid credentials"}, nil
	}

	issuedAt := s.now().UTC()
	session := Session{
		ID:        uuid.New().String(),
		Username:  username,
		IssuedAt:  issuedAt,
		ExpiresAt: issuedAt.Add(s.cfg.SessionTTL),
	}

	token, err := utils.GenerateAdminJWT(s.cfg.Secret, session.ID, username, issuedAt, s.cfg.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("ошибка генерации токена: %w", err)
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("ошибка сохранения сессии: %w", err)
	}

	return &LoginResult{
		Success:   true,
		Message:   "Login successful",
		Token:     token,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func (s *AdminService) checkCredentials(username, password string) bool {
	if subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.Username)) != 1 {
		return false
	}
	if s.cfg.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.Password)) == 1
}

// Authenticate проверяет токен и наличие живой сессии за ним
func (s *AdminService) Authenticate(ctx context.Context, token string) (*Session, error) {
	claims, err := utils.ValidateToken(s.cfg.Secret, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err)
	}

	session, err := s.sessions.Get(ctx, claims.ID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("%w: session revoked or expired", apperrors.ErrUnauthorized)
	} else if err != nil {
		return nil, err
	}
	if session.Username != claims.Username || !s.now().Before(session.ExpiresAt) {
		return nil, fmt.Errorf("%w: session mismatch", apperrors.ErrUnauthorized)
	}
	return session, nil
}

func (s *AdminService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

func (s *AdminService) ListDriverApplications(ctx context.Context) ([]models.DriverApplication, error) {
	return s.repos.Drivers.List(ctx)
}

func (s *AdminService) ListAdvertiserSubmissions(ctx context.Context) ([]models.AdvertiserSubmission, error) {
	return s.repos.Advertisers.List(ctx)
}

// UpdateDriverStatus разрешает любой переход между четырьмя статусами
func (s *AdminService) UpdateDriverStatus(ctx context.Context, id, status string) (models.SubmissionStatus, error) {
	parsed, err := models.ParseStatus(status)
	if err != nil {
		return "", err
	}
	if err := s.repos.Drivers.UpdateStatus(ctx, id, parsed); err != nil {
		return "", err
	}
	log.Printf("Статус заявки водителя %s изменен на %s", id, parsed)
	return parsed, nil
}

func (s *AdminService) UpdateAdvertiserStatus(ctx context.Context, id, status string) (models.SubmissionStatus, error) {
	parsed, err := models.ParseStatus(status)
	if err != nil {
		return "", err
	}
	if err := s.repos.Advertisers.UpdateStatus(ctx, id, parsed); err != nil {
		return "", err
	}
	log.Printf("Статус заявки рекламодателя %s изменен на %s", id, parsed)
	return parsed, nil
}

func (s *AdminService) ExportDriverApplications(ctx context.Context) (*CSVExport, error) {
	apps, err := s.repos.Drivers.List(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]models.Record, 0, len(apps))
	for _, app := range apps {
		records = append(records, app.CSVRecord())
	}
	return s.export(driverExportName, records)
}

func (s *AdminService) ExportAdvertiserSubmissions(ctx context.Context) (*CSVExport, error) {
	subs, err := s.repos.Advertisers.List(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]models.Record, 0, len(subs))
	for _, sub := range subs {
		records = append(records, sub.CSVRecord())
	}
	return s.export(advertiserExportName, records)
}

func (s *AdminService) export(name string, records []models.Record) (*CSVExport, error) {
	data, err := ExportCSV(records)
	if err != nil {
		return nil, err
	}
	return &CSVExport{Filename: ExportFilename(name, s.now()), Data: data}, nil
}

func (s *AdminService) EmailLogs(ctx context.Context) ([]models.EmailLog, error) {
	return s.notifications.List(ctx)
}
