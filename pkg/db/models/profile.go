package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile stores the billing details captured at checkout, keyed by user id.
type Profile struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	FullName     string    `gorm:"column:full_name;not null"`
	Email        string    `gorm:"column:email;not null"`
	Phone        string    `gorm:"column:phone"`
	AddressLine1 string    `gorm:"column:address_line1"`
	City         string    `gorm:"column:city"`
	PostalCode   string    `gorm:"column:postal_code"`
	Country      string    `gorm:"column:country"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
