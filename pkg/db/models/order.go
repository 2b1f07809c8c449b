package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/emekaobi/jollofkitchen-backend/pkg/enums"
)

// Order is a checkout snapshot. Payment is not processed; orders are created
// awaiting_payment and the payment screen is a mock.
type Order struct {
	ID           uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID       *uuid.UUID              `gorm:"column:user_id;type:uuid;index"`
	Email        string                  `gorm:"column:email;not null"`
	FullName     string                  `gorm:"column:full_name;not null"`
	Phone        string                  `gorm:"column:phone"`
	Fulfillment  enums.FulfillmentMethod `gorm:"column:fulfillment;not null"`
	AddressLine1 string                  `gorm:"column:address_line1"`
	City         string                  `gorm:"column:city"`
	PostalCode   string                  `gorm:"column:postal_code"`
	Country      string                  `gorm:"column:country"`
	Status       enums.OrderStatus       `gorm:"column:status;not null;default:'awaiting_payment'"`
	TotalAmount  decimal.Decimal         `gorm:"column:total_amount;type:numeric(10,2);not null"`
	Items        []OrderItem             `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}

// OrderItem is a priced line frozen at checkout time.
type OrderItem struct {
	ID        uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   uuid.UUID        `gorm:"column:order_id;type:uuid;not null;index"`
	RecipeID  uuid.UUID        `gorm:"column:recipe_id;type:uuid;not null"`
	Name      string           `gorm:"column:name;not null"`
	UnitPrice decimal.Decimal  `gorm:"column:unit_price;type:numeric(10,2);not null"`
	Quantity  int              `gorm:"column:quantity;not null"`
	Size      enums.RecipeSize `gorm:"column:size;not null"`
	Image     string           `gorm:"column:image"`
	LineTotal decimal.Decimal  `gorm:"column:line_total;type:numeric(10,2);not null"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime"`
}
