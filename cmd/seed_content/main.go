package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"ridemedia-backend/internal/config"
	"ridemedia-backend/internal/db"
	"ridemedia-backend/internal/repository"
	"ridemedia-backend/internal/services"
)

// Загружает блоки контента из YAML файла в базу. Существующие блоки с тем же id перезаписываются.
func main() {
	file := flag.String("file", "content.yaml", "YAML файл с блоками контента")
	flag.Parse()

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("Ошибка чтения %s: %v", *file, err)
	}

	blocks, err := services.ParseSeed(data)
	if err != nil {
		log.Fatalf("Ошибка разбора %s: %v", *file, err)
	}

	cfg := config.Load()
	database, err := db.ConnectWithRetry(cfg, 3, 2*time.Second)
	if err != nil {
		log.Fatal("Ошибка подключения к базе данных:", err)
	}
	if err := db.Migrate(database); err != nil {
		log.Fatal("Ошибка миграции базы данных:", err)
	}

	// Кэш страниц сбрасывается, если Redis доступен
	cache := services.NewContentCache(nil, cfg.CMSCacheTTL)
	if redisClient, err := db.NewRedisClient(cfg); err == nil {
		defer redisClient.Close()
		cache = services.NewContentCache(redisClient, cfg.CMSCacheTTL)
	}

	repos := repository.NewGormRepositories(database)
	content := services.NewContentService(repos.Content, cache)
	if err := content.Seed(context.Background(), blocks); err != nil {
		log.Fatalf("Ошибка загрузки контента: %v", err)
	}

	log.Printf("Загружено блоков контента: %d", len(blocks))
}
