package models

import (
	"time"
)

type Platform string

const (
	PlatformUber Platform = "Uber"
	PlatformLyft Platform = "Lyft"
	PlatformBoth Platform = "Both"
)

func (p Platform) IsValid() bool {
	switch p {
	case PlatformUber, PlatformLyft, PlatformBoth:
		return true
	}
	return false
}

type DriverApplication struct {
	ID           string           `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name         string           `json:"name" gorm:"not null"`
	Email        string           `json:"email" gorm:"not null;index"`
	Phone        string           `json:"phone" gorm:"not null;type:varchar(32)"`
	City         string           `json:"city" gorm:"not null"`
	Platform     Platform         `json:"platform" gorm:"not null;type:varchar(10)"`
	VehicleYear  string           `json:"vehicle_year" gorm:"not null;type:varchar(10)"`
	VehicleMake  string           `json:"vehicle_make" gorm:"not null"`
	VehicleModel string           `json:"vehicle_model" gorm:"not null"`
	PhotoID      *string          `json:"photo_id,omitempty" gorm:"type:varchar(36)"`
	Status       SubmissionStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	CreatedAt    time.Time        `json:"created_at" gorm:"autoCreateTime;type:timestamp with time zone"`
	UpdatedAt    time.Time        `json:"updated_at" gorm:"autoUpdateTime;type:timestamp with time zone"`
}

// DriverApplicationInput - поля публичной формы водителя
type DriverApplicationInput struct {
	Name         string   `json:"name" binding:"required"`
	Email        string   `json:"email" binding:"required,email"`
	Phone        string   `json:"phone" binding:"required"`
	City         string   `json:"city" binding:"required"`
	Platform     Platform `json:"platform" binding:"required"`
	VehicleYear  string   `json:"vehicle_year" binding:"required"`
	VehicleMake  string   `json:"vehicle_make" binding:"required"`
	VehicleModel string   `json:"vehicle_model" binding:"required"`
	PhotoID      string   `json:"photo_id"`
}

func (d DriverApplication) CSVRecord() Record {
	var photoID string
	if d.PhotoID != nil {
		photoID = *d.PhotoID
	}
	return Record{}.
		Add("id", d.ID, false).
		Add("name", d.Name, false).
		Add("email", d.Email, false).
		Add("phone", d.Phone, false).
		Add("city", d.City, false).
		Add("platform", string(d.Platform), false).
		Add("vehicle_year", d.VehicleYear, false).
		Add("vehicle_make", d.VehicleMake, false).
		Add("vehicle_model", d.VehicleModel, false).
		Add("photo_id", photoID, true).
		Add("status", string(d.Status), false).
		Add("created_at", d.CreatedAt.UTC().Format(time.RFC3339), false)
}
