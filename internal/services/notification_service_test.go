package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ridemedia-backend/internal/models"
	"ridemedia-backend/internal/repository"
)

func TestNotificationWebhookDelivery(t *testing.T) {
	var received WebhookPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	repos := repository.NewMemoryRepositories(repository.NewMemoryStore())
	svc := NewNotificationService(repos.EmailLogs, "ops@example.com", server.URL)

	entry, err := svc.NotifyDriverApplication(context.Background(), &models.DriverApplication{
		ID:        "app-1",
		Name:      "Jane",
		Platform:  models.PlatformLyft,
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, models.EmailStatusSent, entry.Status)
	assert.Equal(t, "ops@example.com", received.To)
	assert.Equal(t, "New Driver Application - Jane", received.Subject)
	assert.Equal(t, models.EmailLogDriverApplication, received.LogType)
	assert.Contains(t, received.Body, "Submitted: 2024-01-02T03:04:05Z")
}

func TestNotificationWebhookFailureIsLogged(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	repos := repository.NewMemoryRepositories(repository.NewMemoryStore())
	svc := NewNotificationService(repos.EmailLogs, "ops@example.com", server.URL)

	entry, err := svc.NotifyAdvertiserInquiry(context.Background(), &models.AdvertiserSubmission{
		ID:          "sub-1",
		CompanyName: "Acme",
		AdFormats:   []string{"video"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.EmailStatusFailed, entry.Status)

	logs, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, models.EmailStatusFailed, logs[0].Status)
}
