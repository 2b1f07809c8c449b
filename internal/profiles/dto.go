package profiles

import (
	"time"

	"github.com/google/uuid"

	"github.com/emekaobi/jollofkitchen-backend/pkg/db/models"
)

// BillingProfileDTO is the billing record shape returned to clients.
type BillingProfileDTO struct {
	UserID       uuid.UUID `json:"user_id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	AddressLine1 string    `json:"address_line1,omitempty"`
	City         string    `json:"city,omitempty"`
	PostalCode   string    `json:"postal_code,omitempty"`
	Country      string    `json:"country,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FromModel converts a persisted profile into its transport shape.
func FromModel(p *models.Profile) *BillingProfileDTO {
	if p == nil {
		return nil
	}
	return &BillingProfileDTO{
		UserID:       p.ID,
		FullName:     p.FullName,
		Email:        p.Email,
		Phone:        p.Phone,
		AddressLine1: p.AddressLine1,
		City:         p.City,
		PostalCode:   p.PostalCode,
		Country:      p.Country,
		UpdatedAt:    p.UpdatedAt,
	}
}
