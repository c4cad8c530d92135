package models

import (
	"time"
)

// MediaSource отмечает, откуда пришел файл
type MediaSource string

const (
	MediaSourceUpload MediaSource = "upload" // вложение к заявке
	MediaSourceCMS    MediaSource = "cms"    // медиатека админки
)

type MediaAsset struct {
	ID          string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Filename    string      `json:"filename" gorm:"not null"`
	ContentType string      `json:"content_type" gorm:"not null;type:varchar(255)"`
	Size        int64       `json:"size" gorm:"not null"`
	Source      MediaSource `json:"source" gorm:"type:varchar(20);default:'upload'"`
	StorageKey  string      `json:"-" gorm:"not null;type:varchar(255)"`
	CreatedAt   time.Time   `json:"created_at" gorm:"autoCreateTime;type:timestamp with time zone"`

	// Заполняются сервисом при выдаче
	URL  string `json:"url,omitempty" gorm:"-"`
	Data []byte `json:"data,omitempty" gorm:"-"`
}

// MediaURL детерминированно строит адрес файла по его ID
func MediaURL(id string) string {
	return "/api/media/" + id
}
