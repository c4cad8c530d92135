package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"ridemedia-backend/internal/models"
	"ridemedia-backend/internal/repository"
)

// NotificationService пишет уведомления о новых заявках в журнал писем.
// Если задан webhook, письмо дополнительно отправляется туда.
type NotificationService struct {
	logs       repository.EmailLogRepository
	recipient  string
	webhookURL string
	client     *http.Client
}

// WebhookPayload - тело запроса к почтовому webhook
type WebhookPayload struct {
	To      string              `json:"to"`
	Subject string              `json:"subject"`
	Body    string              `json:"body"`
	LogType models.EmailLogType `json:"log_type"`
}

func NewNotificationService(logs repository.EmailLogRepository, recipient, webhookURL string) *NotificationService {
	return &NotificationService{
		logs:       logs,
		recipient:  recipient,
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *NotificationService) NotifyDriverApplication(ctx context.Context, app *models.DriverApplication) (*models.EmailLog, error) {
	subject := fmt.Sprintf("New Driver Application - %s", app.Name)

	var body strings.Builder
	body.WriteString("New Driver Application Received\n\n")
	fmt.Fprintf(&body, "Name: %s\n", app.Name)
	fmt.Fprintf(&body, "Email: %s\n", app.Email)
	fmt.Fprintf(&body, "Phone: %s\n", app.Phone)
	fmt.Fprintf(&body, "City: %s\n", app.City)
	fmt.Fprintf(&body, "Platform: %s\n", app.Platform)
	fmt.Fprintf(&body, "Vehicle: %s %s %s\n", app.VehicleYear, app.VehicleMake, app.VehicleModel)
	if app.PhotoID != nil {
		fmt.Fprintf(&body, "Photo: %s\n", models.MediaURL(*app.PhotoID))
	}
	fmt.Fprintf(&body, "\nApplication ID: %s\n", app.ID)
	fmt.Fprintf(&body, "Submitted: %s", app.CreatedAt.UTC().Format(time.RFC3339))

	formData := datatypes.JSONMap{
		"name":          app.Name,
		"email":         app.Email,
		"phone":         app.Phone,
		"city":          app.City,
		"platform":      string(app.Platform),
		"vehicle_year":  app.VehicleYear,
		"vehicle_make":  app.VehicleMake,
		"vehicle_model": app.VehicleModel,
	}
	if app.PhotoID != nil {
		formData["photo_id"] = *app.PhotoID
	}

	return s.record(ctx, models.EmailLogDriverApplication, subject, body.String(), formData)
}

func (s *NotificationService) NotifyAdvertiserInquiry(ctx context.Context, sub *models.AdvertiserSubmission) (*models.EmailLog, error) {
	subject := fmt.Sprintf("New Advertiser Inquiry - %s", sub.CompanyName)

	var body strings.Builder
	body.WriteString("New Advertiser Inquiry Received\n\n")
	fmt.Fprintf(&body, "Company: %s\n", sub.CompanyName)
	fmt.Fprintf(&body, "Contact: %s\n", sub.ContactName)
	fmt.Fprintf(&body, "Email: %s\n", sub.Email)
	fmt.Fprintf(&body, "Budget: %s\n", sub.BudgetRange)
	fmt.Fprintf(&body, "Cities: %s\n", sub.Cities)
	fmt.Fprintf(&body, "Ad Formats: %s\n", strings.Join(sub.AdFormats, ", "))
	if sub.Message != "" {
		fmt.Fprintf(&body, "Message: %s\n", sub.Message)
	}
	if sub.CreativeID != nil {
		fmt.Fprintf(&body, "Creative: %s\n", models.MediaURL(*sub.CreativeID))
	}
	fmt.Fprintf(&body, "\nSubmission ID: %s\n", sub.ID)
	fmt.Fprintf(&body, "Submitted: %s", sub.CreatedAt.UTC().Format(time.RFC3339))

	formData := datatypes.JSONMap{
		"company_name": sub.CompanyName,
		"contact_name": sub.ContactName,
		"email":        sub.Email,
		"budget_range": sub.BudgetRange,
		"cities":       sub.Cities,
		"ad_formats":   []string(sub.AdFormats),
	}
	if sub.Message != "" {
		formData["message"] = sub.Message
	}
	if sub.CreativeID != nil {
		formData["creative_id"] = *sub.CreativeID
	}

	return s.record(ctx, models.EmailLogAdvertiserInquiry, subject, body.String(), formData)
}

// List возвращает журнал, новые записи первыми
func (s *NotificationService) List(ctx context.Context) ([]models.EmailLog, error) {
	return s.logs.List(ctx)
}

func (s *NotificationService) record(ctx context.Context, logType models.EmailLogType, subject, body string, formData datatypes.JSONMap) (*models.EmailLog, error) {
	entry := &models.EmailLog{
		ID:        uuid.New().String(),
		LogType:   logType,
		Recipient: s.recipient,
		Subject:   subject,
		Body:      body,
		FormData:  formData,
		Status:    models.EmailStatusLogged,
	}

	if s.webhookURL != "" {
		if err := s.deliver(ctx, entry); err != nil {
			log.Printf("Ошибка отправки уведомления %s: %v", logType, err)
			entry.Status = models.EmailStatusFailed
		} else {
			entry.Status = models.EmailStatusSent
		}
	}

	if err := s.logs.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("ошибка записи в журнал писем: %w", err)
	}
	return entry, nil
}

func (s *NotificationService) deliver(ctx context.Context, entry *models.EmailLog) error {
	payload := WebhookPayload{
		To:      entry.Recipient,
		Subject: entry.Subject,
		Body:    entry.Body,
		LogType: entry.LogType,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error marshaling notification: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("error sending notification: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned error: %v", resp.Status)
	}

	return nil
}
