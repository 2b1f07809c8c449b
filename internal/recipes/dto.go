package recipes

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/emekaobi/jollofkitchen-backend/pkg/db/models"
	"github.com/emekaobi/jollofkitchen-backend/pkg/enums"
)

// RecipeDTO is the catalog entry shape returned to clients.
type RecipeDTO struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Image       string           `json:"image"`
	Rating      float64          `json:"rating"`
	Reviews     int              `json:"reviews"`
	MediumPrice decimal.Decimal  `json:"medium_price"`
	LargePrice  decimal.Decimal  `json:"large_price"`
	SpiceLevel  enums.SpiceLevel `json:"spice_level"`
	CookingTime string           `json:"cooking_time"`
	Ingredients []string         `json:"ingredients"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// FromModel converts a persisted recipe into its transport shape.
func FromModel(r *models.Recipe) *RecipeDTO {
	if r == nil {
		return nil
	}
	return &RecipeDTO{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Image:       r.Image,
		Rating:      r.Rating,
		Reviews:     r.Reviews,
		MediumPrice: r.MediumPrice,
		LargePrice:  r.LargePrice,
		SpiceLevel:  r.SpiceLevel,
		CookingTime: r.CookingTime,
		Ingredients: []string(r.Ingredients),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// FromModels converts a recipe list, keeping catalog order.
func FromModels(rows []models.Recipe) []RecipeDTO {
	out := make([]RecipeDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
