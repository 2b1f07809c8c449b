package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/emekaobi/jollofkitchen-backend/pkg/enums"
)

// Recipe is a dish on the menu, priced per portion size.
type Recipe struct {
	ID          uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string           `gorm:"column:name;not null"`
	Description string           `gorm:"column:description;not null"`
	Image       string           `gorm:"column:image;not null"`
	Rating      float64          `gorm:"column:rating;not null;default:0"`
	Reviews     int              `gorm:"column:reviews;not null;default:0"`
	MediumPrice decimal.Decimal  `gorm:"column:medium_price;type:numeric(10,2);not null"`
	LargePrice  decimal.Decimal  `gorm:"column:large_price;type:numeric(10,2);not null"`
	SpiceLevel  enums.SpiceLevel `gorm:"column:spice_level;not null;default:'medium'"`
	CookingTime string           `gorm:"column:cooking_time"`
	Ingredients pq.StringArray   `gorm:"column:ingredients;type:text[]"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// PriceFor returns the unit price for the requested portion size.
func (r Recipe) PriceFor(size enums.RecipeSize) decimal.Decimal {
	if size == enums.RecipeSizeLarge {
		return r.LargePrice
	}
	return r.MediumPrice
}
