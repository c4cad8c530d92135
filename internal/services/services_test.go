package services

import (
	"context"
	"testing"

	"ridemedia-backend/internal/models"
	"ridemedia-backend/internal/repository"
	"ridemedia-backend/internal/storage"
)

var testAdFormats = []string{"video", "static", "interactive"}

type testEnv struct {
	repos         *repository.Repositories
	blobs         *storage.MemoryBlobStore
	sessions      *MemorySessionStore
	notifications *NotificationService
	media         *MediaService
	intake        *IntakeService
	admin         *AdminService
	content       *ContentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	repos := repository.NewMemoryRepositories(repository.NewMemoryStore())
	blobs := storage.NewMemoryBlobStore()
	sessions := NewMemorySessionStore()
	notifications := NewNotificationService(repos.EmailLogs, "ops@example.com", "")
	media := NewMediaService(repos.Media, blobs, DefaultMaxUploadBytes)

	return &testEnv{
		repos:         repos,
		blobs:         blobs,
		sessions:      sessions,
		notifications: notifications,
		media:         media,
		intake:        NewIntakeService(repos, media, notifications, testAdFormats),
		admin: NewAdminService(repos, sessions, notifications, AdminConfig{
			Username: "admin",
			Password: "admin123",
			Secret:   []byte("test-secret"),
		}),
		content: NewContentService(repos.Content, NewContentCache(nil, 0)),
	}
}

func validDriverInput() models.DriverApplicationInput {
	return models.DriverApplicationInput{
		Name:         "Jane Driver",
		Email:        "jane@example.com",
		Phone:        "555-0100",
		City:         "Austin",
		Platform:     models.PlatformUber,
		VehicleYear:  "2021",
		VehicleMake:  "Toyota",
		VehicleModel: "Camry",
	}
}

func validAdvertiserInput() models.AdvertiserSubmissionInput {
	return models.AdvertiserSubmissionInput{
		CompanyName: "Acme",
		ContactName: "Bob",
		Email:       "bob@acme.com",
		BudgetRange: "$5k-$10k",
		Cities:      "Austin, Dallas",
		AdFormats:   []string{"video"},
	}
}

func seedDriver(t *testing.T, env *testEnv) *models.DriverApplication {
	t.Helper()
	app, err := env.intake.SubmitDriverApplication(context.Background(), validDriverInput())
	if err != nil {
		t.Fatalf("seed driver: %v", err)
	}
	return app
}
