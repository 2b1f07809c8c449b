package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/emekaobi/jollofkitchen-backend/api/middleware"
	"github.com/emekaobi/jollofkitchen-backend/api/responses"
	"github.com/emekaobi/jollofkitchen-backend/api/validators"
	"github.com/emekaobi/jollofkitchen-backend/internal/cart"
	"github.com/emekaobi/jollofkitchen-backend/pkg/db/models"
	"github.com/emekaobi/jollofkitchen-backend/pkg/enums"
	pkgerrors "github.com/emekaobi/jollofkitchen-backend/pkg/errors"
	"github.com/emekaobi/jollofkitchen-backend/pkg/logger"
)

// CartService is the cart surface the HTTP layer drives.
type CartService interface {
	Get(ctx context.Context, id cart.Identity) (cart.Cart, error)
	AddItem(ctx context.Context, id cart.Identity, item cart.LineItem) (cart.Cart, error)
	UpdateQuantity(ctx context.Context, id cart.Identity, recipeID uuid.UUID, size enums.RecipeSize, quantity int) (cart.Cart, error)
	RemoveItem(ctx context.Context, id cart.Identity, recipeID uuid.UUID, size enums.RecipeSize) (cart.Cart, error)
	Clear(ctx context.Context, id cart.Identity) (cart.Cart, error)
}

type recipeCatalog interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
}

type cartLineRequest struct {
	RecipeID string `json:"recipe_id" validate:"required,uuid"`
	Size     string `json:"size" validate:"required,oneof=medium large"`
}

type cartUpdateRequest struct {
	RecipeID string `json:"recipe_id" validate:"required,uuid"`
	Size     string `json:"size" validate:"required,oneof=medium large"`
	Quantity int    `json:"quantity" validate:"min=0"`
}

type cartResponse struct {
	Items     []cart.LineItem `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

func toCartResponse(c cart.Cart) cartResponse {
	items := c.Items
	if items == nil {
		items = []cart.LineItem{}
	}
	return cartResponse{
		Items:     items,
		Total:     c.Total(),
		ItemCount: c.ItemCount(),
	}
}

func (req cartLineRequest) parse() (uuid.UUID, enums.RecipeSize, error) {
	recipeID, err := uuid.Parse(req.RecipeID)
	if err != nil {
		return uuid.Nil, "", pkgerrors.New(pkgerrors.CodeValidation, "recipe_id must be a valid uuid")
	}
	size, err := enums.ParseRecipeSize(req.Size)
	if err != nil {
		return uuid.Nil, "", pkgerrors.New(pkgerrors.CodeValidation, "invalid size")
	}
	return recipeID, size, nil
}

// CartFetch returns the device's cart, loading it on first access.
func CartFetch(svc CartService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		identity := middleware.CartIdentityFromContext(r.Context())
		current, err := svc.Get(r.Context(), identity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, toCartResponse(current))
	}
}

// CartAddItem adds one unit of a dish to the cart. The line is priced from
// the catalog so clients never supply prices.
func CartAddItem(svc CartService, catalog recipeCatalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || catalog == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body cartLineRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		recipeID, size, err := body.parse()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		recipe, err := catalog.Get(r.Context(), recipeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item := cart.LineItem{
			RecipeID:  recipe.ID,
			Name:      recipe.Name,
			UnitPrice: recipe.PriceFor(size),
			Size:      size,
			Image:     recipe.Image,
		}

		identity := middleware.CartIdentityFromContext(r.Context())
		updated, err := svc.AddItem(r.Context(), identity, item)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, toCartResponse(updated))
	}
}

// CartUpdateItem sets a line's quantity; zero removes the line.
func CartUpdateItem(svc CartService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body cartUpdateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		recipeID, size, err := cartLineRequest{RecipeID: body.RecipeID, Size: body.Size}.parse()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		identity := middleware.CartIdentityFromContext(r.Context())
		updated, err := svc.UpdateQuantity(r.Context(), identity, recipeID, size, body.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, toCartResponse(updated))
	}
}

// CartRemoveItem drops a line from the cart.
func CartRemoveItem(svc CartService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body cartLineRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		recipeID, size, err := body.parse()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		identity := middleware.CartIdentityFromContext(r.Context())
		updated, err := svc.RemoveItem(r.Context(), identity, recipeID, size)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, toCartResponse(updated))
	}
}

// CartClear empties the cart and erases its durable copies.
func CartClear(svc CartService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		identity := middleware.CartIdentityFromContext(r.Context())
		updated, err := svc.Clear(r.Context(), identity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, toCartResponse(updated))
	}
}
