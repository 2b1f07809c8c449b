package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/emekaobi/jollofkitchen-backend/pkg/db/models"
)

// Repository persists the durable cart rows for signed-in users.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a cart repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) RowRepository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// ListByUser loads the user's cart rows in insertion order.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	var rows []models.CartItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("position ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ReplaceForUser replaces the user's cart rows wholesale. Callers run this
// inside a transaction so a failed insert cannot leave the cart half-deleted.
func (r *Repository) ReplaceForUser(ctx context.Context, userID uuid.UUID, items []models.CartItem) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
		items[i].UserID = userID
		items[i].Position = i
	}
	return tx.Create(&items).Error
}

// DeleteByUser removes all cart rows for the user.
func (r *Repository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CartItem{}).Error
}

// rowsToCart rebuilds the in-memory cart from its durable rows.
func rowsToCart(rows []models.CartItem) Cart {
	if len(rows) == 0 {
		return Cart{}
	}
	items := make([]LineItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, LineItem{
			RecipeID:  row.RecipeID,
			Name:      row.Name,
			UnitPrice: row.UnitPrice,
			Quantity:  row.Quantity,
			Size:      row.Size,
			Image:     row.Image,
		})
	}
	return Cart{Items: items}
}

// cartToRows flattens the in-memory cart into durable rows.
func cartToRows(userID uuid.UUID, cart Cart) []models.CartItem {
	if cart.IsEmpty() {
		return nil
	}
	rows := make([]models.CartItem, 0, len(cart.Items))
	for i, item := range cart.Items {
		rows = append(rows, models.CartItem{
			UserID:    userID,
			RecipeID:  item.RecipeID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			Size:      item.Size,
			Image:     item.Image,
			Position:  i,
		})
	}
	return rows
}
