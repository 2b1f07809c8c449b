package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/emekaobi/jollofkitchen-backend/pkg/enums"
)

// LineItem is one cart line. Two lines are the same product only when both
// the recipe id and the portion size match; the same dish in medium and
// large occupies two lines.
type LineItem struct {
	RecipeID  uuid.UUID        `json:"recipe_id"`
	Name      string           `json:"name"`
	UnitPrice decimal.Decimal  `json:"unit_price"`
	Quantity  int              `json:"quantity"`
	Size      enums.RecipeSize `json:"size"`
	Image     string           `json:"image,omitempty"`
}

// LineKey identifies a cart line.
type LineKey struct {
	RecipeID uuid.UUID
	Size     enums.RecipeSize
}

// Key returns the line's identity.
func (li LineItem) Key() LineKey {
	return LineKey{RecipeID: li.RecipeID, Size: li.Size}
}

// LineTotal returns unit price times quantity.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Cart is an ordered list of line items. Order is insertion order and is
// preserved across persistence round trips.
type Cart struct {
	Items []LineItem `json:"items"`
}

// AddItem increments the quantity of the matching line, or appends a new
// line with quantity 1.
func (c *Cart) AddItem(item LineItem) {
	key := item.Key()
	for i := range c.Items {
		if c.Items[i].Key() == key {
			c.Items[i].Quantity++
			return
		}
	}
	item.Quantity = 1
	c.Items = append(c.Items, item)
}

// RemoveItem drops the matching line. Removing an absent line is a no-op.
func (c *Cart) RemoveItem(recipeID uuid.UUID, size enums.RecipeSize) {
	key := LineKey{RecipeID: recipeID, Size: size}
	for i := range c.Items {
		if c.Items[i].Key() == key {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets the quantity of the matching line. Zero or negative
// removes the line. Updating an absent line is a no-op.
func (c *Cart) UpdateQuantity(recipeID uuid.UUID, size enums.RecipeSize, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(recipeID, size)
		return
	}
	key := LineKey{RecipeID: recipeID, Size: size}
	for i := range c.Items {
		if c.Items[i].Key() == key {
			c.Items[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
}

// Total recomputes the cart total from its lines.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// ItemCount returns the summed quantities across all lines.
func (c Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Clone returns a deep copy.
func (c Cart) Clone() Cart {
	if len(c.Items) == 0 {
		return Cart{}
	}
	items := make([]LineItem, len(c.Items))
	copy(items, c.Items)
	return Cart{Items: items}
}
