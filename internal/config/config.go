package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Бренды сайта. Набор форматов рекламы зависит от бренда.
const (
	BrandRideMedia = "ridemedia"
	BrandVidoo     = "vidoo"
)

// Бэкенды хранения медиафайлов
const (
	MediaBackendPostgres = "postgres"
	MediaBackendS3       = "s3"
)

type Config struct {
	Port    string
	GinMode string
	Brand   string

	DBHost                string
	DBPort                string
	DBUser                string
	DBPassword            string
	DBName                string
	DBMaxOpenConns        int
	DBMaxIdleConns        int
	DBConnMaxLifetimeMins int
	RedisHost             string
	RedisPort             string
	RedisPassword         string
	CMSCacheTTL           time.Duration
	CORSOrigins           []string

	AdminUsername     string
	AdminPassword     string
	AdminPasswordHash string
	JWTSecret         string
	SessionTTL        time.Duration

	NotifyEmail      string
	NotifyWebhookURL string

	MaxUploadBytes   int64
	MediaBackend     string
	S3Bucket         string
	S3Region         string
	S3Endpoint       string
	S3ForcePathStyle bool
}

// Load читает .env (если он есть) и переменные окружения
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Файл .env не найден, используем переменные окружения")
	}

	cfg := &Config{
		Port:    getEnv("PORT", "8080"),
		GinMode: os.Getenv("GIN_MODE"),
		Brand:   strings.ToLower(getEnv("BRAND", BrandRideMedia)),

		DBHost:                getEnv("DB_HOST", "localhost"),
		DBPort:                getEnv("DB_PORT", "5432"),
		DBUser:                os.Getenv("DB_USER"),
		DBPassword:            os.Getenv("DB_PASSWORD"),
		DBName:                getEnv("DB_NAME", "ridemedia"),
		DBMaxOpenConns:        getEnvInt("DB_MAX_OPEN_CONNS", 100),
		DBMaxIdleConns:        getEnvInt("DB_MAX_IDLE_CONNS", 25),
		DBConnMaxLifetimeMins: getEnvInt("DB_CONN_MAX_LIFETIME_MINUTES", 60),
		RedisHost:             getEnv("REDIS_HOST", "localhost"),
		RedisPort:             getEnv("REDIS_PORT", "6379"),
		RedisPassword:         os.Getenv("REDIS_PASSWORD"),
		CMSCacheTTL:           time.Duration(getEnvInt("CMS_CACHE_TTL_SECONDS", 300)) * time.Second,
		CORSOrigins:           splitList(getEnv("CORS_ORIGINS", "*")),

		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		SessionTTL:        time.Duration(getEnvInt("SESSION_TTL_HOURS", 24)) * time.Hour,

		NotifyEmail:      getEnv("NOTIFY_EMAIL", "leads@ridemedia.com"),
		NotifyWebhookURL: os.Getenv("NOTIFY_WEBHOOK_URL"),

		MaxUploadBytes:   int64(getEnvInt("MAX_UPLOAD_MB", 10)) * 1024 * 1024,
		MediaBackend:     strings.ToLower(getEnv("MEDIA_BACKEND", MediaBackendPostgres)),
		S3Bucket:         os.Getenv("S3_BUCKET"),
		S3Region:         getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:       os.Getenv("S3_ENDPOINT"),
		S3ForcePathStyle: os.Getenv("S3_FORCE_PATH_STYLE") == "true",
	}

	if cfg.AdminPassword == "" && cfg.AdminPasswordHash == "" {
		log.Println("ВНИМАНИЕ: ADMIN_PASSWORD не задан, используется пароль по умолчанию")
		cfg.AdminPassword = "admin123"
	}
	if cfg.JWTSecret == "" {
		log.Println("ВНИМАНИЕ: JWT_SECRET не задан, сессии не переживут перезапуск")
	}

	return cfg
}

// DSN собирает строку подключения к PostgreSQL
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

// BrandName возвращает отображаемое имя бренда
func (c *Config) BrandName() string {
	if c.Brand == BrandVidoo {
		return "VidooMedia"
	}
	return "RideMedia"
}

// AdFormats возвращает фиксированный набор форматов рекламы для бренда
func (c *Config) AdFormats() []string {
	if c.Brand == BrandVidoo {
		return []string{"In-Car Tablet", "Car Wrapping", "On-Top Dynamic Screen"}
	}
	return []string{"video", "static", "interactive"}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val, err := strconv.Atoi(os.Getenv(key)); err == nil && val > 0 {
		return val
	}
	return fallback
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
