package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"ridemedia-backend/internal/apperrors"
	"ridemedia-backend/internal/models"
)

// MemoryStore хранит все записи в памяти процесса. Используется в тестах
// и при локальном запуске без PostgreSQL.
type MemoryStore struct {
	mu          sync.RWMutex
	drivers     []models.DriverApplication
	advertisers []models.AdvertiserSubmission
	blocks      []models.ContentBlock
	media       []models.MediaAsset
	emailLogs   []models.EmailLog
	now         func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: func() time.Time { return time.Now().UTC() }}
}

// NewMemoryRepositories возвращает набор хранилищ поверх одного MemoryStore
func NewMemoryRepositories(store *MemoryStore) *Repositories {
	return &Repositories{
		Drivers:     memoryDrivers{store},
		Advertisers: memoryAdvertisers{store},
		Content:     memoryContent{store},
		Media:       memoryMedia{store},
		EmailLogs:   memoryEmailLogs{store},
	}
}

type memoryDrivers struct{ s *MemoryStore }

func (m memoryDrivers) Create(_ context.Context, app *models.DriverApplication) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if app.CreatedAt.IsZero() {
		app.CreatedAt = m.s.now()
	}
	app.UpdatedAt = app.CreatedAt
	m.s.drivers = append(m.s.drivers, *app)
	return nil
}

func (m memoryDrivers) List(_ context.Context) ([]models.DriverApplication, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	return append([]models.DriverApplication(nil), m.s.drivers...), nil
}

func (m memoryDrivers) UpdateStatus(_ context.Context, id string, status models.SubmissionStatus) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for i := range m.s.drivers {
		if m.s.drivers[i].ID == id {
			m.s.drivers[i].Status = status
			m.s.drivers[i].UpdatedAt = m.s.now()
			return nil
		}
	}
	return fmt.Errorf("driver application %s: %w", id, apperrors.ErrNotFound)
}

type memoryAdvertisers struct{ s *MemoryStore }

func (m memoryAdvertisers) Create(_ context.Context, sub *models.AdvertiserSubmission) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = m.s.now()
	}
	sub.UpdatedAt = sub.CreatedAt
	stored := *sub
	stored.AdFormats = append([]string(nil), sub.AdFormats...)
	m.s.advertisers = append(m.s.advertisers, stored)
	return nil
}

func (m memoryAdvertisers) List(_ context.Context) ([]models.AdvertiserSubmission, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	return append([]models.AdvertiserSubmission(nil), m.s.advertisers...), nil
}

func (m memoryAdvertisers) UpdateStatus(_ context.Context, id string, status models.SubmissionStatus) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for i := range m.s.advertisers {
		if m.s.advertisers[i].ID == id {
			m.s.advertisers[i].Status = status
			m.s.advertisers[i].UpdatedAt = m.s.now()
			return nil
		}
	}
	return fmt.Errorf("advertiser submission %s: %w", id, apperrors.ErrNotFound)
}

type memoryContent struct{ s *MemoryStore }

func (m memoryContent) sorted(filter func(models.ContentBlock) bool) []models.ContentBlock {
	var out []models.ContentBlock
	for _, b := range m.s.blocks {
		if filter(b) {
			b.Content = b.Content.Clone()
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Page != out[j].Page {
			return out[i].Page < out[j].Page
		}
		return out[i].Order < out[j].Order
	})
	return out
}

func (m memoryContent) List(_ context.Context) ([]models.ContentBlock, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	return m.sorted(func(models.ContentBlock) bool { return true }), nil
}

func (m memoryContent) ListByPage(_ context.Context, page string) ([]models.ContentBlock, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	return m.sorted(func(b models.ContentBlock) bool { return b.Page == page && b.IsActive }), nil
}

func (m memoryContent) Get(_ context.Context, id string) (*models.ContentBlock, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	for _, b := range m.s.blocks {
		if b.ID == id {
			b.Content = b.Content.Clone()
			return &b, nil
		}
	}
	return nil, fmt.Errorf("content block %s: %w", id, apperrors.ErrNotFound)
}

func (m memoryContent) Update(_ context.Context, block *models.ContentBlock) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for i := range m.s.blocks {
		if m.s.blocks[i].ID == block.ID {
			m.s.blocks[i].Content = block.Content.Clone()
			m.s.blocks[i].IsActive = block.IsActive
			m.s.blocks[i].UpdatedAt = block.UpdatedAt
			return nil
		}
	}
	return fmt.Errorf("content block %s: %w", block.ID, apperrors.ErrNotFound)
}

func (m memoryContent) Upsert(_ context.Context, block *models.ContentBlock) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	stored := *block
	stored.Content = block.Content.Clone()
	if stored.UpdatedAt.IsZero() {
		stored.UpdatedAt = m.s.now()
	}
	for i := range m.s.blocks {
		if m.s.blocks[i].ID == block.ID {
			m.s.blocks[i] = stored
			return nil
		}
	}
	m.s.blocks = append(m.s.blocks, stored)
	return nil
}

type memoryMedia struct{ s *MemoryStore }

func (m memoryMedia) Create(_ context.Context, asset *models.MediaAsset) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if asset.CreatedAt.IsZero() {
		asset.CreatedAt = m.s.now()
	}
	stored := *asset
	stored.Data = nil
	stored.URL = ""
	m.s.media = append(m.s.media, stored)
	return nil
}

func (m memoryMedia) List(_ context.Context) ([]models.MediaAsset, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	out := make([]models.MediaAsset, 0, len(m.s.media))
	for i := len(m.s.media) - 1; i >= 0; i-- {
		out = append(out, m.s.media[i])
	}
	return out, nil
}

func (m memoryMedia) Get(_ context.Context, id string) (*models.MediaAsset, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	for _, a := range m.s.media {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, fmt.Errorf("media %s: %w", id, apperrors.ErrNotFound)
}

func (m memoryMedia) Delete(_ context.Context, id string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for i, a := range m.s.media {
		if a.ID == id {
			m.s.media = append(m.s.media[:i], m.s.media[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("media %s: %w", id, apperrors.ErrNotFound)
}

type memoryEmailLogs struct{ s *MemoryStore }

func (m memoryEmailLogs) Create(_ context.Context, entry *models.EmailLog) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if entry.Timestamp.IsZero() {
		entry.Timestamp = m.s.now()
	}
	m.s.emailLogs = append(m.s.emailLogs, *entry)
	return nil
}

func (m memoryEmailLogs) List(_ context.Context) ([]models.EmailLog, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	out := make([]models.EmailLog, 0, len(m.s.emailLogs))
	for i := len(m.s.emailLogs) - 1; i >= 0; i-- {
		out = append(out, m.s.emailLogs[i])
	}
	return out, nil
}
