package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/emekaobi/jollofkitchen-backend/api/middleware"
	"github.com/emekaobi/jollofkitchen-backend/internal/cart"
	"github.com/emekaobi/jollofkitchen-backend/pkg/db/models"
	"github.com/emekaobi/jollofkitchen-backend/pkg/enums"
	pkgerrors "github.com/emekaobi/jollofkitchen-backend/pkg/errors"
)

type stubCartService struct {
	cart cart.Cart
	err  error

	gotIdentity cart.Identity
	gotItem     cart.LineItem
	gotQuantity int
}

func (s *stubCartService) Get(ctx context.Context, id cart.Identity) (cart.Cart, error) {
	s.gotIdentity = id
	return s.cart, s.err
}

func (s *stubCartService) AddItem(ctx context.Context, id cart.Identity, item cart.LineItem) (cart.Cart, error) {
	s.gotIdentity = id
	s.gotItem = item
	return s.cart, s.err
}

func (s *stubCartService) UpdateQuantity(ctx context.Context, id cart.Identity, recipeID uuid.UUID, size enums.RecipeSize, quantity int) (cart.Cart, error) {
	s.gotIdentity = id
	s.gotQuantity = quantity
	return s.cart, s.err
}

func (s *stubCartService) RemoveItem(ctx context.Context, id cart.Identity, recipeID uuid.UUID, size enums.RecipeSize) (cart.Cart, error) {
	s.gotIdentity = id
	return s.cart, s.err
}

func (s *stubCartService) Clear(ctx context.Context, id cart.Identity) (cart.Cart, error) {
	s.gotIdentity = id
	return s.cart, s.err
}

type stubCatalog struct {
	recipe *models.Recipe
	err    error
}

func (s stubCatalog) Get(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	return s.recipe, s.err
}

func guestRequest(method, target string, body []byte) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	return req.WithContext(middleware.WithGuestToken(req.Context(), "device-token"))
}

func TestCartFetchReturnsCart(t *testing.T) {
	svc := &stubCartService{cart: cart.Cart{Items: []cart.LineItem{{
		RecipeID:  uuid.New(),
		Name:      "Party Jollof",
		UnitPrice: decimal.RequireFromString("12.50"),
		Quantity:  2,
		Size:      enums.RecipeSizeMedium,
	}}}}
	handler := CartFetch(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, guestRequest(http.MethodGet, "/api/v1/cart", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.gotIdentity.Kind != cart.KindGuest || svc.gotIdentity.GuestToken != "device-token" {
		t.Fatalf("expected guest identity, got %+v", svc.gotIdentity)
	}

	var envelope struct {
		Data struct {
			Items     []cart.LineItem `json:"items"`
			Total     string          `json:"total"`
			ItemCount int             `json:"item_count"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ItemCount != 2 || envelope.Data.Total != "25" {
		t.Fatalf("unexpected cart payload: %+v", envelope.Data)
	}
}

func TestCartAddItemPricesFromCatalog(t *testing.T) {
	recipeID := uuid.New()
	catalog := stubCatalog{recipe: &models.Recipe{
		ID:          recipeID,
		Name:        "Smoky Jollof",
		Image:       "https://cdn.example.com/smoky.jpg",
		MediumPrice: decimal.RequireFromString("12.50"),
		LargePrice:  decimal.RequireFromString("15.00"),
	}}
	svc := &stubCartService{}
	handler := CartAddItem(svc, catalog, nil)

	body := []byte(`{"recipe_id":"` + recipeID.String() + `","size":"large"}`)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, guestRequest(http.MethodPost, "/api/v1/cart/items", body))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.gotItem.RecipeID != recipeID || svc.gotItem.Size != enums.RecipeSizeLarge {
		t.Fatalf("unexpected line: %+v", svc.gotItem)
	}
	if !svc.gotItem.UnitPrice.Equal(decimal.RequireFromString("15.00")) {
		t.Fatalf("expected catalog price, got %s", svc.gotItem.UnitPrice)
	}
	if svc.gotItem.Name != "Smoky Jollof" || svc.gotItem.Image == "" {
		t.Fatalf("expected catalog metadata on line: %+v", svc.gotItem)
	}
}

func TestCartAddItemUnknownRecipe(t *testing.T) {
	catalog := stubCatalog{err: pkgerrors.New(pkgerrors.CodeNotFound, "recipe not found")}
	handler := CartAddItem(&stubCartService{}, catalog, nil)

	body := []byte(`{"recipe_id":"` + uuid.NewString() + `","size":"medium"}`)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, guestRequest(http.MethodPost, "/api/v1/cart/items", body))

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestCartAddItemRejectsBadSize(t *testing.T) {
	handler := CartAddItem(&stubCartService{}, stubCatalog{}, nil)

	body := []byte(`{"recipe_id":"` + uuid.NewString() + `","size":"jumbo"}`)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, guestRequest(http.MethodPost, "/api/v1/cart/items", body))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartUpdateItemZeroQuantity(t *testing.T) {
	svc := &stubCartService{gotQuantity: -1}
	handler := CartUpdateItem(svc, nil)

	body := []byte(`{"recipe_id":"` + uuid.NewString() + `","size":"medium","quantity":0}`)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, guestRequest(http.MethodPatch, "/api/v1/cart/items", body))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.gotQuantity != 0 {
		t.Fatalf("expected quantity 0 forwarded, got %d", svc.gotQuantity)
	}
}

func TestCartMutationWhileLoadingConflicts(t *testing.T) {
	svc := &stubCartService{err: pkgerrors.New(pkgerrors.CodeConflict, "cart is still loading")}
	handler := CartRemoveItem(svc, nil)

	body := []byte(`{"recipe_id":"` + uuid.NewString() + `","size":"medium"}`)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, guestRequest(http.MethodDelete, "/api/v1/cart/items", body))

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.Code)
	}
}

func TestCartClearReturnsEmptyCart(t *testing.T) {
	svc := &stubCartService{}
	handler := CartClear(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, guestRequest(http.MethodDelete, "/api/v1/cart", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data struct {
			Items     []cart.LineItem `json:"items"`
			ItemCount int             `json:"item_count"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Items == nil || envelope.Data.ItemCount != 0 {
		t.Fatalf("expected empty items array, got %+v", envelope.Data)
	}
}
