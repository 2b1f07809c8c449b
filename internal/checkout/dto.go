package checkout

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/emekaobi/jollofkitchen-backend/pkg/db/models"
	"github.com/emekaobi/jollofkitchen-backend/pkg/enums"
)

// CheckoutRequest is the form submitted from the checkout page. Address
// fields are required for delivery and ignored for pickup.
type CheckoutRequest struct {
	FullName     string `json:"full_name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone,omitempty"`
	Fulfillment  string `json:"fulfillment" validate:"required,oneof=delivery pickup"`
	AddressLine1 string `json:"address_line1,omitempty"`
	City         string `json:"city,omitempty"`
	PostalCode   string `json:"postal_code,omitempty"`
	Country      string `json:"country,omitempty"`
}

// OrderItemDTO is a priced order line as returned to the client.
type OrderItemDTO struct {
	RecipeID  uuid.UUID        `json:"recipe_id"`
	Name      string           `json:"name"`
	UnitPrice decimal.Decimal  `json:"unit_price"`
	Quantity  int              `json:"quantity"`
	Size      enums.RecipeSize `json:"size"`
	Image     string           `json:"image,omitempty"`
	LineTotal decimal.Decimal  `json:"line_total"`
}

// OrderDTO is the order snapshot returned after checkout.
type OrderDTO struct {
	ID          uuid.UUID               `json:"id"`
	Status      enums.OrderStatus       `json:"status"`
	Fulfillment enums.FulfillmentMethod `json:"fulfillment"`
	TotalAmount decimal.Decimal         `json:"total_amount"`
	Items       []OrderItemDTO          `json:"items"`
	CreatedAt   time.Time               `json:"created_at"`
}

func toOrderDTO(order *models.Order) *OrderDTO {
	if order == nil {
		return nil
	}
	items := make([]OrderItemDTO, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemDTO{
			RecipeID:  item.RecipeID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			Size:      item.Size,
			Image:     item.Image,
			LineTotal: item.LineTotal,
		})
	}
	return &OrderDTO{
		ID:          order.ID,
		Status:      order.Status,
		Fulfillment: order.Fulfillment,
		TotalAmount: order.TotalAmount,
		Items:       items,
		CreatedAt:   order.CreatedAt,
	}
}
