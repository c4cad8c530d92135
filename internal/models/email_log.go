package models

import (
	"time"

	"gorm.io/datatypes"
)

type EmailLogType string

const (
	EmailLogDriverApplication EmailLogType = "driver_application"
	EmailLogAdvertiserInquiry EmailLogType = "advertiser_inquiry"
)

const (
	EmailStatusLogged = "logged"
	EmailStatusSent   = "sent"
	EmailStatusFailed = "failed"
)

// EmailLog - запись журнала уведомлений, только добавление
type EmailLog struct {
	ID        string            `json:"id" gorm:"primaryKey;type:varchar(36)"`
	LogType   EmailLogType      `json:"log_type" gorm:"not null;type:varchar(40);index"`
	Recipient string            `json:"recipient" gorm:"not null"`
	Subject   string            `json:"subject" gorm:"not null"`
	Body      string            `json:"body" gorm:"type:text"`
	FormData  datatypes.JSONMap `json:"form_data" gorm:"type:jsonb"`
	Status    string            `json:"status" gorm:"type:varchar(20);default:'logged'"`
	Timestamp time.Time         `json:"timestamp" gorm:"autoCreateTime;type:timestamp with time zone;index"`
}
