package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"ridemedia-backend/internal/config"
	"ridemedia-backend/internal/db"
	"ridemedia-backend/internal/repository"
	"ridemedia-backend/internal/routes"
	"ridemedia-backend/internal/services"
	"ridemedia-backend/internal/storage"
)

func newBlobStore(ctx context.Context, cfg *config.Config, database *gorm.DB) (storage.BlobStore, error) {
	if cfg.MediaBackend == config.MediaBackendS3 {
		log.Printf("Медиафайлы хранятся в S3, бакет %s", cfg.S3Bucket)
		return storage.NewS3BlobStore(ctx, storage.S3Options{
			Bucket:         cfg.S3Bucket,
			Region:         cfg.S3Region,
			Endpoint:       cfg.S3Endpoint,
			ForcePathStyle: cfg.S3ForcePathStyle,
		})
	}
	return storage.NewPostgresBlobStore(database), nil
}

func newSessionStore(redisClient *redis.Client) services.SessionStore {
	if redisClient == nil {
		log.Println("Предупреждение: сессии администратора хранятся в памяти процесса")
		return services.NewMemorySessionStore()
	}
	return services.NewRedisSessionStore(redisClient)
}

func main() {
	cfg := config.Load()

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	database, err := db.ConnectWithRetry(cfg, 5, 5*time.Second)
	if err != nil {
		log.Fatal("Ошибка подключения к базе данных:", err)
	}

	if err := db.Migrate(database); err != nil {
		log.Fatal("Ошибка миграции базы данных:", err)
	}

	// Redis нужен для сессий и кэша страниц, без него работаем в памяти
	redisClient, err := db.NewRedisClient(cfg)
	if err != nil {
		log.Println("Предупреждение: Redis недоступен, продолжаем без кэширования:", err)
		redisClient = nil
	} else {
		log.Println("Успешное подключение к Redis")
		defer redisClient.Close()
	}

	blobs, err := newBlobStore(context.Background(), cfg, database)
	if err != nil {
		log.Fatal("Ошибка инициализации хранилища медиафайлов:", err)
	}

	repos := repository.NewGormRepositories(database)
	notifications := services.NewNotificationService(repos.EmailLogs, cfg.NotifyEmail, cfg.NotifyWebhookURL)
	media := services.NewMediaService(repos.Media, blobs, cfg.MaxUploadBytes)

	r := routes.NewRouter(routes.Dependencies{
		BrandName:   cfg.BrandName(),
		CORSOrigins: cfg.CORSOrigins,
		Intake:      services.NewIntakeService(repos, media, notifications, cfg.AdFormats()),
		Admin: services.NewAdminService(repos, newSessionStore(redisClient), notifications, services.AdminConfig{
			Username:     cfg.AdminUsername,
			Password:     cfg.AdminPassword,
			PasswordHash: cfg.AdminPasswordHash,
			Secret:       []byte(cfg.JWTSecret),
			SessionTTL:   cfg.SessionTTL,
		}),
		Content: services.NewContentService(repos.Content, services.NewContentCache(redisClient, cfg.CMSCacheTTL)),
		Media:   media,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Сервер %s запущен на порту %s", cfg.BrandName(), cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Ошибка запуска сервера: %s", err)
		}
	}()

	// Ожидаем сигнал для graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Получен сигнал завершения, закрываем соединения...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Ошибка при graceful shutdown: %s", err)
	}

	log.Println("Сервер корректно завершил работу")
}
