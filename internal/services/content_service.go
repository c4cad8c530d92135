package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"ridemedia-backend/internal/apperrors"
	"ridemedia-backend/internal/models"
	"ridemedia-backend/internal/repository"
)

// ContentService - блоки контента страниц
type ContentService struct {
	repo  repository.ContentBlockRepository
	cache *ContentCache
	now   func() time.Time
}

// PageGroup - блоки одной страницы, для отображения в админке
type PageGroup struct {
	Page   string                `json:"page"`
	Blocks []models.ContentBlock `json:"blocks"`
}

// FieldEditResult - итог правки одного поля
type FieldEditResult struct {
	Updated bool                 `json:"updated"`
	Message string               `json:"message,omitempty"`
	Block   *models.ContentBlock `json:"block"`
}

func NewContentService(repo repository.ContentBlockRepository, cache *ContentCache) *ContentService {
	return &ContentService{repo: repo, cache: cache, now: time.Now}
}

func (s *ContentService) ListBlocks(ctx context.Context) ([]models.ContentBlock, error) {
	return s.repo.List(ctx)
}

// GroupByPage группирует блоки в порядке первого появления страницы
func GroupByPage(blocks []models.ContentBlock) []PageGroup {
	var groups []PageGroup
	index := make(map[string]int)
	for _, b := range blocks {
		i, ok := index[b.Page]
		if !ok {
			i = len(groups)
			index[b.Page] = i
			groups = append(groups, PageGroup{Page: b.Page})
		}
		groups[i].Blocks = append(groups[i].Blocks, b)
	}
	return groups
}

// PageBlocks возвращает активные блоки страницы, по возможности из кэша
func (s *ContentService) PageBlocks(ctx context.Context, page string) ([]models.ContentBlock, error) {
	key := s.cache.PageKey(page)

	var cached []models.ContentBlock
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		log.Printf("Ошибка чтения кэша страницы %s: %v", page, err)
	} else if found {
		return cached, nil
	}

	blocks, err := s.repo.ListByPage(ctx, page)
	if err != nil {
		return nil, err
	}
	if blocks == nil {
		blocks = []models.ContentBlock{}
	}
	if err := s.cache.Set(ctx, key, blocks); err != nil {
		log.Printf("Ошибка записи кэша страницы %s: %v", page, err)
	}
	return blocks, nil
}

func (s *ContentService) GetBlock(ctx context.Context, id string) (*models.ContentBlock, error) {
	return s.repo.Get(ctx, id)
}

// UpdateBlock заменяет содержимое блока целиком. isActive == nil оставляет флаг как есть.
func (s *ContentService) UpdateBlock(ctx context.Context, id string, content models.ContentValue, isActive *bool) (*models.ContentBlock, error) {
	if content.Kind != models.KindObject {
		return nil, apperrors.Validation("content")
	}

	block, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	block.Content = content.Clone()
	if isActive != nil {
		block.IsActive = *isActive
	}
	return s.save(ctx, block)
}

// BlockFields перечисляет редактируемые поля блока
func (s *ContentService) BlockFields(ctx context.Context, id string) ([]models.FieldDescriptor, error) {
	block, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	fields := block.Content.FieldDescriptors()
	if fields == nil {
		fields = []models.FieldDescriptor{}
	}
	return fields, nil
}

// EditField применяет правку поля по пути и сохраняет блок целиком.
// Неразборчивый текст для массива не ошибка: блок остается прежним, Updated=false.
func (s *ContentService) EditField(ctx context.Context, id, path, raw string) (*FieldEditResult, error) {
	block, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	draft := models.NewContentDraft(block.Content)
	if err := draft.EditField(strings.TrimSpace(path), raw); err != nil {
		if errors.Is(err, apperrors.ErrParse) {
			log.Printf("Правка поля %s блока %s отклонена: %v", path, id, err)
			return &FieldEditResult{Updated: false, Message: err.Error(), Block: block}, nil
		}
		return nil, err
	}

	block.Content = draft.Content()
	saved, err := s.save(ctx, block)
	if err != nil {
		return nil, err
	}
	return &FieldEditResult{Updated: true, Block: saved}, nil
}

// Seed создает или перезаписывает блоки, используется при начальном наполнении
func (s *ContentService) Seed(ctx context.Context, blocks []models.ContentBlock) error {
	pages := make(map[string]bool)
	for i := range blocks {
		block := &blocks[i]
		var invalid []string
		if block.ID == "" {
			invalid = append(invalid, "id")
		}
		if block.Page == "" {
			invalid = append(invalid, "page")
		}
		if block.Content.Kind != models.KindObject {
			invalid = append(invalid, "content")
		}
		if err := apperrors.Validation(invalid...); err != nil {
			return fmt.Errorf("блок %d: %w", i, err)
		}
		block.UpdatedAt = s.now().UTC()
		if err := s.repo.Upsert(ctx, block); err != nil {
			return fmt.Errorf("ошибка сохранения блока %s: %w", block.ID, err)
		}
		pages[s.cache.PageKey(block.Page)] = true
	}

	keys := make([]string, 0, len(pages))
	for key := range pages {
		keys = append(keys, key)
	}
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		log.Printf("Ошибка сброса кэша контента: %v", err)
	}
	return nil
}

func (s *ContentService) save(ctx context.Context, block *models.ContentBlock) (*models.ContentBlock, error) {
	block.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, block); err != nil {
		return nil, err
	}
	if err := s.cache.Invalidate(ctx, s.cache.PageKey(block.Page)); err != nil {
		log.Printf("Ошибка сброса кэша страницы %s: %v", block.Page, err)
	}
	log.Printf("Блок контента %s (%s) обновлен", block.ID, block.Page)
	return block, nil
}
