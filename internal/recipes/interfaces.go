package recipes

import (
	"context"

	"github.com/google/uuid"

	"github.com/emekaobi/jollofkitchen-backend/pkg/db/models"
)

// RecipeRepository defines the persistence surface required by the recipe service.
type RecipeRepository interface {
	List(ctx context.Context) ([]models.Recipe, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
	Create(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error)
	Update(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
