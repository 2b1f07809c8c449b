package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/emekaobi/jollofkitchen-backend/api/responses"
	"github.com/emekaobi/jollofkitchen-backend/api/validators"
	"github.com/emekaobi/jollofkitchen-backend/internal/recipes"
	"github.com/emekaobi/jollofkitchen-backend/pkg/enums"
	pkgerrors "github.com/emekaobi/jollofkitchen-backend/pkg/errors"
	"github.com/emekaobi/jollofkitchen-backend/pkg/logger"
)

type createRecipeRequest struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description" validate:"required"`
	Image       string          `json:"image" validate:"required"`
	Rating      float64         `json:"rating" validate:"min=0,max=5"`
	Reviews     int             `json:"reviews" validate:"min=0"`
	MediumPrice decimal.Decimal `json:"medium_price"`
	LargePrice  decimal.Decimal `json:"large_price"`
	SpiceLevel  string          `json:"spice_level" validate:"omitempty,oneof=mild medium hot"`
	CookingTime string          `json:"cooking_time"`
	Ingredients []string        `json:"ingredients"`
}

type updateRecipeRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Image       *string          `json:"image"`
	Rating      *float64         `json:"rating"`
	Reviews     *int             `json:"reviews"`
	MediumPrice *decimal.Decimal `json:"medium_price"`
	LargePrice  *decimal.Decimal `json:"large_price"`
	SpiceLevel  *string          `json:"spice_level"`
	CookingTime *string          `json:"cooking_time"`
	Ingredients *[]string        `json:"ingredients"`
}

// RecipeList returns the public catalog.
func RecipeList(svc recipes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "recipe service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, recipes.FromModels(rows))
	}
}

// RecipeDetail returns one catalog entry.
func RecipeDetail(svc recipes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "recipe service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := uuidURLParam(r, "recipeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		recipe, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, recipes.FromModel(recipe))
	}
}

// AdminRecipeCreate adds a dish to the catalog.
func AdminRecipeCreate(svc recipes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "recipe service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createRecipeRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := recipes.CreateRecipeInput{
			Name:        body.Name,
			Description: body.Description,
			Image:       body.Image,
			Rating:      body.Rating,
			Reviews:     body.Reviews,
			MediumPrice: body.MediumPrice,
			LargePrice:  body.LargePrice,
			SpiceLevel:  enums.SpiceLevel(body.SpiceLevel),
			CookingTime: body.CookingTime,
			Ingredients: body.Ingredients,
		}

		created, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, recipes.FromModel(created))
	}
}

// AdminRecipeUpdate applies a partial update to a catalog entry.
func AdminRecipeUpdate(svc recipes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "recipe service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := uuidURLParam(r, "recipeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateRecipeRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := recipes.UpdateRecipeInput{
			Name:        body.Name,
			Description: body.Description,
			Image:       body.Image,
			Rating:      body.Rating,
			Reviews:     body.Reviews,
			MediumPrice: body.MediumPrice,
			LargePrice:  body.LargePrice,
			CookingTime: body.CookingTime,
			Ingredients: body.Ingredients,
		}
		if body.SpiceLevel != nil {
			spice, err := enums.ParseSpiceLevel(*body.SpiceLevel)
			if err != nil {
				err := pkgerrors.New(pkgerrors.CodeValidation, "invalid spice level")
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.SpiceLevel = &spice
		}

		updated, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, recipes.FromModel(updated))
	}
}

// AdminRecipeDelete removes a dish from the catalog.
func AdminRecipeDelete(svc recipes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "recipe service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := uuidURLParam(r, "recipeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
