package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/emekaobi/jollofkitchen-backend/pkg/enums"
)

// CartItem is one durable cart row for an authenticated user. The full set of
// rows for a user is replaced wholesale on every save; Position preserves the
// in-cart insertion order across the round trip.
type CartItem struct {
	ID        uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID        `gorm:"column:user_id;type:uuid;not null;index"`
	RecipeID  uuid.UUID        `gorm:"column:recipe_id;type:uuid;not null"`
	Name      string           `gorm:"column:name;not null"`
	UnitPrice decimal.Decimal  `gorm:"column:unit_price;type:numeric(10,2);not null"`
	Quantity  int              `gorm:"column:quantity;not null"`
	Size      enums.RecipeSize `gorm:"column:size;not null"`
	Image     string           `gorm:"column:image"`
	Position  int              `gorm:"column:position;not null;default:0"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
