package recipes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/emekaobi/jollofkitchen-backend/pkg/db/models"
	"github.com/emekaobi/jollofkitchen-backend/pkg/enums"
	pkgerrors "github.com/emekaobi/jollofkitchen-backend/pkg/errors"
)

// Service exposes recipe catalog operations.
type Service interface {
	List(ctx context.Context) ([]models.Recipe, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
	Create(ctx context.Context, input CreateRecipeInput) (*models.Recipe, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateRecipeInput) (*models.Recipe, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo RecipeRepository
}

// NewService builds a recipe service backed by the provided repository.
func NewService(repo RecipeRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("recipe repository required")
	}
	return &service{repo: repo}, nil
}

// CreateRecipeInput captures the payload for a new catalog entry.
type CreateRecipeInput struct {
	Name        string
	Description string
	Image       string
	Rating      float64
	Reviews     int
	MediumPrice decimal.Decimal
	LargePrice  decimal.Decimal
	SpiceLevel  enums.SpiceLevel
	CookingTime string
	Ingredients []string
}

// UpdateRecipeInput carries partial updates; nil fields are left unchanged.
type UpdateRecipeInput struct {
	Name        *string
	Description *string
	Image       *string
	Rating      *float64
	Reviews     *int
	MediumPrice *decimal.Decimal
	LargePrice  *decimal.Decimal
	SpiceLevel  *enums.SpiceLevel
	CookingTime *string
	Ingredients *[]string
}

func (s *service) List(ctx context.Context) ([]models.Recipe, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list recipes")
	}
	return rows, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "recipe id is required")
	}
	recipe, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "recipe not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load recipe")
	}
	return recipe, nil
}

func (s *service) Create(ctx context.Context, input CreateRecipeInput) (*models.Recipe, error) {
	if err := validateRequired(input); err != nil {
		return nil, err
	}

	spice := input.SpiceLevel
	if spice == "" {
		spice = enums.SpiceLevelMedium
	}
	if !spice.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid spice level")
	}

	recipe := &models.Recipe{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Image:       strings.TrimSpace(input.Image),
		Rating:      input.Rating,
		Reviews:     input.Reviews,
		MediumPrice: input.MediumPrice,
		LargePrice:  input.LargePrice,
		SpiceLevel:  spice,
		CookingTime: strings.TrimSpace(input.CookingTime),
		Ingredients: pq.StringArray(input.Ingredients),
	}

	created, err := s.repo.Create(ctx, recipe)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create recipe")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateRecipeInput) (*models.Recipe, error) {
	recipe, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "recipe name cannot be empty")
		}
		recipe.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		recipe.Description = strings.TrimSpace(*input.Description)
	}
	if input.Image != nil {
		recipe.Image = strings.TrimSpace(*input.Image)
	}
	if input.Rating != nil {
		if *input.Rating < 0 || *input.Rating > 5 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 0 and 5")
		}
		recipe.Rating = *input.Rating
	}
	if input.Reviews != nil {
		if *input.Reviews < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "reviews cannot be negative")
		}
		recipe.Reviews = *input.Reviews
	}
	if input.MediumPrice != nil {
		if !input.MediumPrice.IsPositive() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "medium price must be positive")
		}
		recipe.MediumPrice = *input.MediumPrice
	}
	if input.LargePrice != nil {
		if !input.LargePrice.IsPositive() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "large price must be positive")
		}
		recipe.LargePrice = *input.LargePrice
	}
	if input.SpiceLevel != nil {
		if !input.SpiceLevel.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid spice level")
		}
		recipe.SpiceLevel = *input.SpiceLevel
	}
	if input.CookingTime != nil {
		recipe.CookingTime = strings.TrimSpace(*input.CookingTime)
	}
	if input.Ingredients != nil {
		recipe.Ingredients = pq.StringArray(*input.Ingredients)
	}

	updated, err := s.repo.Update(ctx, recipe)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update recipe")
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete recipe")
	}
	return nil
}

func validateRequired(input CreateRecipeInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "recipe name is required")
	}
	if strings.TrimSpace(input.Description) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "recipe description is required")
	}
	if strings.TrimSpace(input.Image) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "recipe image is required")
	}
	if !input.MediumPrice.IsPositive() {
		return pkgerrors.New(pkgerrors.CodeValidation, "medium price must be positive")
	}
	if !input.LargePrice.IsPositive() {
		return pkgerrors.New(pkgerrors.CodeValidation, "large price must be positive")
	}
	if input.Rating < 0 || input.Rating > 5 {
		return pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 0 and 5")
	}
	if input.Reviews < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "reviews cannot be negative")
	}
	return nil
}
