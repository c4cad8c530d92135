package models

import (
	"strings"
	"time"

	"github.com/lib/pq"
)

type AdvertiserSubmission struct {
	ID          string           `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CompanyName string           `json:"company_name" gorm:"not null"`
	ContactName string           `json:"contact_name" gorm:"not null"`
	Email       string           `json:"email" gorm:"not null;index"`
	BudgetRange string           `json:"budget_range" gorm:"not null"`
	Cities      string           `json:"cities" gorm:"not null;type:text"`
	Message     string           `json:"message,omitempty" gorm:"type:text"`
	AdFormats   pq.StringArray   `json:"ad_formats" gorm:"type:text[];not null"`
	CreativeID  *string          `json:"creative_id,omitempty" gorm:"type:varchar(36)"`
	Status      SubmissionStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	CreatedAt   time.Time        `json:"created_at" gorm:"autoCreateTime;type:timestamp with time zone"`
	UpdatedAt   time.Time        `json:"updated_at" gorm:"autoUpdateTime;type:timestamp with time zone"`
}

// AdvertiserSubmissionInput - поля формы рекламодателя
type AdvertiserSubmissionInput struct {
	CompanyName string   `json:"company_name" binding:"required"`
	ContactName string   `json:"contact_name" binding:"required"`
	Email       string   `json:"email" binding:"required,email"`
	BudgetRange string   `json:"budget_range" binding:"required"`
	Cities      string   `json:"cities" binding:"required"`
	Message     string   `json:"message"`
	AdFormats   []string `json:"ad_formats" binding:"required,min=1"`
	CreativeID  string   `json:"creative_id"`
}

func (a AdvertiserSubmission) CSVRecord() Record {
	var creativeID string
	if a.CreativeID != nil {
		creativeID = *a.CreativeID
	}
	return Record{}.
		Add("id", a.ID, false).
		Add("company_name", a.CompanyName, false).
		Add("contact_name", a.ContactName, false).
		Add("email", a.Email, false).
		Add("budget_range", a.BudgetRange, false).
		Add("cities", a.Cities, false).
		Add("message", a.Message, true).
		Add("ad_formats", strings.Join(a.AdFormats, "; "), false).
		Add("creative_id", creativeID, true).
		Add("status", string(a.Status), false).
		Add("created_at", a.CreatedAt.UTC().Format(time.RFC3339), false)
}
