package cart

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/emekaobi/jollofkitchen-backend/pkg/db/models"
)

// RowRepository defines the durable-row surface required by the cart store.
type RowRepository interface {
	WithTx(tx *gorm.DB) RowRepository
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	ReplaceForUser(ctx context.Context, userID uuid.UUID, items []models.CartItem) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

// SnapshotCache defines the Redis blob surface required by the cart store.
type SnapshotCache interface {
	LoadGuest(ctx context.Context, token string) (Cart, bool, error)
	SaveGuest(ctx context.Context, token string, cart Cart, ttl time.Duration) error
	DeleteGuest(ctx context.Context, token string) error
	LoadUser(ctx context.Context, userID string) (Cart, bool, error)
	SaveUser(ctx context.Context, userID string, cart Cart, ttl time.Duration) error
	DeleteUser(ctx context.Context, userID string) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}
