package cart

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/emekaobi/jollofkitchen-backend/pkg/config"
	"github.com/emekaobi/jollofkitchen-backend/pkg/db/models"
	"github.com/emekaobi/jollofkitchen-backend/pkg/enums"
	"github.com/emekaobi/jollofkitchen-backend/pkg/logger"
)

type fakeRowRepo struct {
	rows       map[uuid.UUID][]models.CartItem
	listErr    error
	replaceErr error
}

func newFakeRowRepo() *fakeRowRepo {
	return &fakeRowRepo{rows: make(map[uuid.UUID][]models.CartItem)}
}

func (f *fakeRowRepo) WithTx(_ *gorm.DB) RowRepository { return f }

func (f *fakeRowRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.rows[userID], nil
}

func (f *fakeRowRepo) ReplaceForUser(_ context.Context, userID uuid.UUID, items []models.CartItem) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	stored := make([]models.CartItem, len(items))
	copy(stored, items)
	f.rows[userID] = stored
	return nil
}

func (f *fakeRowRepo) DeleteByUser(_ context.Context, userID uuid.UUID) error {
	delete(f.rows, userID)
	return nil
}

type fakeTxRunner struct{}

func (fakeTxRunner) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type fakeSnapshotCache struct {
	guest map[string]Cart
	user  map[string]Cart

	guestLoadErr error
	userLoadErr  error
	saveErr      error
	loadGate     chan struct{}
}

func newFakeSnapshotCache() *fakeSnapshotCache {
	return &fakeSnapshotCache{
		guest: make(map[string]Cart),
		user:  make(map[string]Cart),
	}
}

func (f *fakeSnapshotCache) LoadGuest(_ context.Context, token string) (Cart, bool, error) {
	if f.loadGate != nil {
		<-f.loadGate
	}
	if f.guestLoadErr != nil {
		return Cart{}, false, f.guestLoadErr
	}
	cart, ok := f.guest[token]
	return cart.Clone(), ok, nil
}

func (f *fakeSnapshotCache) SaveGuest(_ context.Context, token string, cart Cart, _ time.Duration) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.guest[token] = cart.Clone()
	return nil
}

func (f *fakeSnapshotCache) DeleteGuest(_ context.Context, token string) error {
	delete(f.guest, token)
	return nil
}

func (f *fakeSnapshotCache) LoadUser(_ context.Context, userID string) (Cart, bool, error) {
	if f.userLoadErr != nil {
		return Cart{}, false, f.userLoadErr
	}
	cart, ok := f.user[userID]
	return cart.Clone(), ok, nil
}

func (f *fakeSnapshotCache) SaveUser(_ context.Context, userID string, cart Cart, _ time.Duration) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.user[userID] = cart.Clone()
	return nil
}

func (f *fakeSnapshotCache) DeleteUser(_ context.Context, userID string) error {
	delete(f.user, userID)
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "cart-test", Output: io.Discard})
}

func newTestStore(t *testing.T, repo RowRepository, cache SnapshotCache) *Store {
	t.Helper()
	store, err := NewStore(repo, fakeTxRunner{}, cache, config.CartConfig{
		GuestTTL:     time.Hour,
		UserCacheTTL: time.Hour,
	}, testLogger(), nil)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func sampleCart() Cart {
	return Cart{Items: []LineItem{{
		RecipeID:  uuid.MustParse("22222222-2222-2222-2222-222222222222"),
		Name:      "Party Jollof",
		UnitPrice: decimal.RequireFromString("12.50"),
		Quantity:  2,
		Size:      enums.RecipeSizeMedium,
	}}}
}

func TestStoreLoadGuestMissingGivesEmpty(t *testing.T) {
	store := newTestStore(t, newFakeRowRepo(), newFakeSnapshotCache())

	cart := store.Load(context.Background(), GuestIdentity("tok"))
	if !cart.IsEmpty() {
		t.Fatalf("expected empty cart, got %+v", cart.Items)
	}
}

func TestStoreLoadGuestErrorGivesEmpty(t *testing.T) {
	cache := newFakeSnapshotCache()
	cache.guestLoadErr = errors.New("redis down")
	store := newTestStore(t, newFakeRowRepo(), cache)

	cart := store.Load(context.Background(), GuestIdentity("tok"))
	if !cart.IsEmpty() {
		t.Fatalf("expected empty cart on load failure, got %+v", cart.Items)
	}
}

func TestStoreLoadUserFallsBackToCache(t *testing.T) {
	repo := newFakeRowRepo()
	repo.listErr = errors.New("pg down")
	cache := newFakeSnapshotCache()
	userID := uuid.New()
	cache.user[userID.String()] = sampleCart()

	store := newTestStore(t, repo, cache)

	cart := store.Load(context.Background(), UserIdentity(userID))
	if cart.IsEmpty() || cart.Items[0].Name != "Party Jollof" {
		t.Fatalf("expected cached cart, got %+v", cart.Items)
	}
}

func TestStoreLoadUserAllSourcesFailGivesEmpty(t *testing.T) {
	repo := newFakeRowRepo()
	repo.listErr = errors.New("pg down")
	cache := newFakeSnapshotCache()
	cache.userLoadErr = errors.New("redis down")

	store := newTestStore(t, repo, cache)

	cart := store.Load(context.Background(), UserIdentity(uuid.New()))
	if !cart.IsEmpty() {
		t.Fatalf("expected empty cart, got %+v", cart.Items)
	}
}

func TestStoreSaveUserWritesRowsAndMirror(t *testing.T) {
	repo := newFakeRowRepo()
	cache := newFakeSnapshotCache()
	store := newTestStore(t, repo, cache)
	userID := uuid.New()

	if err := store.Save(context.Background(), UserIdentity(userID), sampleCart()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if len(repo.rows[userID]) != 1 {
		t.Fatalf("expected one durable row, got %d", len(repo.rows[userID]))
	}
	if _, ok := cache.user[userID.String()]; !ok {
		t.Fatal("expected cache mirror written")
	}
}

func TestStoreSaveUserDBFailureStillMirrorsCache(t *testing.T) {
	repo := newFakeRowRepo()
	repo.replaceErr = errors.New("pg down")
	cache := newFakeSnapshotCache()
	store := newTestStore(t, repo, cache)
	userID := uuid.New()

	err := store.Save(context.Background(), UserIdentity(userID), sampleCart())
	if err == nil {
		t.Fatal("expected save error surfaced to caller")
	}
	if _, ok := cache.user[userID.String()]; !ok {
		t.Fatal("cache mirror must be written even when the database fails")
	}
}

func TestStoreSaveGuestEmptyDeletesBlob(t *testing.T) {
	cache := newFakeSnapshotCache()
	cache.guest["tok"] = sampleCart()
	store := newTestStore(t, newFakeRowRepo(), cache)

	if err := store.Save(context.Background(), GuestIdentity("tok"), Cart{}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, ok := cache.guest["tok"]; ok {
		t.Fatal("empty save should delete the guest blob")
	}
}

func TestStoreSaveUserEmptyClearsRowsAndMirror(t *testing.T) {
	repo := newFakeRowRepo()
	cache := newFakeSnapshotCache()
	store := newTestStore(t, repo, cache)
	userID := uuid.New()

	if err := store.Save(context.Background(), UserIdentity(userID), sampleCart()); err != nil {
		t.Fatalf("seed save: %v", err)
	}
	if err := store.Save(context.Background(), UserIdentity(userID), Cart{}); err != nil {
		t.Fatalf("clear save: %v", err)
	}
	if len(repo.rows[userID]) != 0 {
		t.Fatalf("expected no rows, got %d", len(repo.rows[userID]))
	}
	if _, ok := cache.user[userID.String()]; ok {
		t.Fatal("expected cache mirror cleared")
	}
}
