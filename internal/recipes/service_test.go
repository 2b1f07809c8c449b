package recipes

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/emekaobi/jollofkitchen-backend/pkg/db/models"
	"github.com/emekaobi/jollofkitchen-backend/pkg/enums"
	pkgerrors "github.com/emekaobi/jollofkitchen-backend/pkg/errors"
)

type fakeRecipeRepo struct {
	byID map[uuid.UUID]*models.Recipe
	list []models.Recipe
}

func newFakeRecipeRepo() *fakeRecipeRepo {
	return &fakeRecipeRepo{byID: make(map[uuid.UUID]*models.Recipe)}
}

func (f *fakeRecipeRepo) List(_ context.Context) ([]models.Recipe, error) {
	return f.list, nil
}

func (f *fakeRecipeRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Recipe, error) {
	recipe, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *recipe
	return &copied, nil
}

func (f *fakeRecipeRepo) Create(_ context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	if recipe.ID == uuid.Nil {
		recipe.ID = uuid.New()
	}
	f.byID[recipe.ID] = recipe
	f.list = append(f.list, *recipe)
	return recipe, nil
}

func (f *fakeRecipeRepo) Update(_ context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	f.byID[recipe.ID] = recipe
	return recipe, nil
}

func (f *fakeRecipeRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.byID, id)
	return nil
}

func validInput() CreateRecipeInput {
	return CreateRecipeInput{
		Name:        "Party Jollof",
		Description: "Smoky long-grain rice cooked in pepper stew",
		Image:       "jollof.jpg",
		Rating:      4.8,
		Reviews:     213,
		MediumPrice: decimal.RequireFromString("12.50"),
		LargePrice:  decimal.RequireFromString("16.00"),
		SpiceLevel:  enums.SpiceLevelHot,
		CookingTime: "45 min",
		Ingredients: []string{"rice", "tomatoes", "scotch bonnet"},
	}
}

func TestCreateRecipe(t *testing.T) {
	svc, err := NewService(newFakeRecipeRepo())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	recipe, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if recipe.ID == uuid.Nil {
		t.Fatal("expected assigned id")
	}
	if recipe.SpiceLevel != enums.SpiceLevelHot {
		t.Fatalf("unexpected spice level %s", recipe.SpiceLevel)
	}
}

func TestCreateRecipeRequiredFields(t *testing.T) {
	svc, _ := NewService(newFakeRecipeRepo())

	cases := map[string]func(*CreateRecipeInput){
		"missing name":        func(in *CreateRecipeInput) { in.Name = "  " },
		"missing description": func(in *CreateRecipeInput) { in.Description = "" },
		"missing image":       func(in *CreateRecipeInput) { in.Image = "" },
		"zero medium price":   func(in *CreateRecipeInput) { in.MediumPrice = decimal.Zero },
		"negative large":      func(in *CreateRecipeInput) { in.LargePrice = decimal.RequireFromString("-1") },
		"rating out of range": func(in *CreateRecipeInput) { in.Rating = 5.5 },
		"bad spice level":     func(in *CreateRecipeInput) { in.SpiceLevel = "nuclear" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			input := validInput()
			mutate(&input)
			_, err := svc.Create(context.Background(), input)
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCreateRecipeDefaultsSpiceLevel(t *testing.T) {
	svc, _ := NewService(newFakeRecipeRepo())

	input := validInput()
	input.SpiceLevel = ""
	recipe, err := svc.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if recipe.SpiceLevel != enums.SpiceLevelMedium {
		t.Fatalf("expected default medium, got %s", recipe.SpiceLevel)
	}
}

func TestGetRecipeNotFound(t *testing.T) {
	svc, _ := NewService(newFakeRecipeRepo())

	_, err := svc.Get(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateRecipePartial(t *testing.T) {
	repo := newFakeRecipeRepo()
	svc, _ := NewService(repo)

	created, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	newPrice := decimal.RequireFromString("13.25")
	updated, err := svc.Update(context.Background(), created.ID, UpdateRecipeInput{MediumPrice: &newPrice})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.MediumPrice.Equal(newPrice) {
		t.Fatalf("expected updated price, got %s", updated.MediumPrice)
	}
	if updated.Name != "Party Jollof" {
		t.Fatalf("untouched fields must survive, got %q", updated.Name)
	}
}

func TestUpdateRecipeRejectsEmptyName(t *testing.T) {
	repo := newFakeRecipeRepo()
	svc, _ := NewService(repo)

	created, _ := svc.Create(context.Background(), validInput())
	blank := "  "
	_, err := svc.Update(context.Background(), created.ID, UpdateRecipeInput{Name: &blank})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeleteRecipe(t *testing.T) {
	repo := newFakeRecipeRepo()
	svc, _ := NewService(repo)

	created, _ := svc.Create(context.Background(), validInput())
	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), created.ID); pkgerrors.As(err) == nil {
		t.Fatal("expected not found after delete")
	}
}

func TestPriceForFeedsCartLines(t *testing.T) {
	recipe := models.Recipe{
		MediumPrice: decimal.RequireFromString("12.50"),
		LargePrice:  decimal.RequireFromString("16.00"),
	}
	if !recipe.PriceFor(enums.RecipeSizeMedium).Equal(decimal.RequireFromString("12.50")) {
		t.Fatal("medium price mismatch")
	}
	if !recipe.PriceFor(enums.RecipeSizeLarge).Equal(decimal.RequireFromString("16.00")) {
		t.Fatal("large price mismatch")
	}
}
