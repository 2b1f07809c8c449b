package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/emekaobi/jollofkitchen-backend/pkg/enums"
	pkgerrors "github.com/emekaobi/jollofkitchen-backend/pkg/errors"
)

func newTestManager(t *testing.T, repo RowRepository, cache SnapshotCache) *Manager {
	t.Helper()
	manager, err := NewManager(newTestStore(t, repo, cache), testLogger(), nil)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	return manager
}

func TestManagerGetLoadsStoredGuestCart(t *testing.T) {
	cache := newFakeSnapshotCache()
	cache.guest["tok"] = sampleCart()
	manager := newTestManager(t, newFakeRowRepo(), cache)

	id := GuestIdentity("tok")
	cart, err := manager.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if cart.ItemCount() != 2 {
		t.Fatalf("expected loaded cart, got %+v", cart.Items)
	}
	if manager.State(id) != StateReady {
		t.Fatalf("expected ready state, got %s", manager.State(id))
	}
}

func TestManagerMutationWhileLoadingIsRejected(t *testing.T) {
	cache := newFakeSnapshotCache()
	cache.loadGate = make(chan struct{})
	manager := newTestManager(t, newFakeRowRepo(), cache)
	id := GuestIdentity("tok")

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = manager.Get(context.Background(), id)
	}()

	deadline := time.After(2 * time.Second)
	for manager.State(id) != StateLoading {
		select {
		case <-deadline:
			t.Fatal("session never entered loading state")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	_, err := manager.AddItem(context.Background(), id, sampleCart().Items[0])
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict while loading, got %v", err)
	}

	close(cache.loadGate)
	<-done

	if manager.State(id) != StateReady {
		t.Fatalf("expected ready after load, got %s", manager.State(id))
	}
}

func TestManagerAddItemPersistsGuestBlob(t *testing.T) {
	cache := newFakeSnapshotCache()
	manager := newTestManager(t, newFakeRowRepo(), cache)
	id := GuestIdentity("tok")

	cart, err := manager.AddItem(context.Background(), id, sampleCart().Items[0])
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if cart.ItemCount() != 1 {
		t.Fatalf("new line should start at quantity 1, got %d", cart.ItemCount())
	}
	if stored, ok := cache.guest["tok"]; !ok || stored.ItemCount() != 1 {
		t.Fatalf("guest blob not persisted: %+v", cache.guest)
	}
}

func TestManagerClearErasesDurableCopy(t *testing.T) {
	cache := newFakeSnapshotCache()
	cache.guest["tok"] = sampleCart()
	manager := newTestManager(t, newFakeRowRepo(), cache)
	id := GuestIdentity("tok")

	cart, err := manager.Clear(context.Background(), id)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if !cart.IsEmpty() {
		t.Fatalf("expected empty cart, got %+v", cart.Items)
	}
	if _, ok := cache.guest["tok"]; ok {
		t.Fatal("guest blob should be deleted on clear")
	}
}

func TestManagerSignInMergesAndDeletesGuestBlob(t *testing.T) {
	repo := newFakeRowRepo()
	cache := newFakeSnapshotCache()
	userID := uuid.New()

	accountLine := LineItem{RecipeID: uuid.New(), Name: "Egusi Special", UnitPrice: decimal.RequireFromString("14.00"), Quantity: 1, Size: enums.RecipeSizeMedium}
	repo.rows[userID] = cartToRows(userID, Cart{Items: []LineItem{accountLine}})
	cache.guest["tok"] = sampleCart()

	manager := newTestManager(t, repo, cache)

	cart, err := manager.SignIn(context.Background(), userID, "tok")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if len(cart.Items) != 2 {
		t.Fatalf("expected merged cart with 2 lines, got %+v", cart.Items)
	}
	if cart.Items[0].Name != "Egusi Special" {
		t.Fatalf("account lines come first, got %+v", cart.Items)
	}
	if len(repo.rows[userID]) != 2 {
		t.Fatalf("merged cart not persisted, rows: %d", len(repo.rows[userID]))
	}
	if _, ok := cache.guest["tok"]; ok {
		t.Fatal("guest blob should be deleted after successful merge")
	}
}

func TestManagerSignInPersistFailureKeepsGuestBlob(t *testing.T) {
	repo := newFakeRowRepo()
	repo.replaceErr = errors.New("pg down")
	cache := newFakeSnapshotCache()
	userID := uuid.New()
	cache.guest["tok"] = sampleCart()

	manager := newTestManager(t, repo, cache)

	cart, err := manager.SignIn(context.Background(), userID, "tok")
	if err != nil {
		t.Fatalf("sign in must not fail on persist error: %v", err)
	}
	if cart.ItemCount() != 2 {
		t.Fatalf("merged cart should still be active, got %+v", cart.Items)
	}
	if _, ok := cache.guest["tok"]; !ok {
		t.Fatal("guest blob must be retained when the merge persist fails")
	}

	got, err := manager.Get(context.Background(), UserIdentity(userID))
	if err != nil {
		t.Fatalf("get after sign in: %v", err)
	}
	if got.ItemCount() != 2 {
		t.Fatalf("in-memory cart should survive persist failure, got %+v", got.Items)
	}
}

func TestManagerSignInAccountFetchFailureTreatedAsEmpty(t *testing.T) {
	repo := newFakeRowRepo()
	repo.listErr = errors.New("pg down")
	cache := newFakeSnapshotCache()
	cache.userLoadErr = errors.New("redis down for user keys")
	userID := uuid.New()
	cache.guest["tok"] = sampleCart()

	manager := newTestManager(t, repo, cache)

	cart, err := manager.SignIn(context.Background(), userID, "tok")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if cart.ItemCount() != 2 || cart.Items[0].Name != "Party Jollof" {
		t.Fatalf("expected guest cart adopted when account fetch fails, got %+v", cart.Items)
	}
}

func TestManagerSignInEmptyGuestIsPlainLoad(t *testing.T) {
	repo := newFakeRowRepo()
	cache := newFakeSnapshotCache()
	userID := uuid.New()
	repo.rows[userID] = cartToRows(userID, sampleCart())

	manager := newTestManager(t, repo, cache)

	cart, err := manager.SignIn(context.Background(), userID, "tok")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if cart.ItemCount() != 2 {
		t.Fatalf("expected account cart, got %+v", cart.Items)
	}
	if len(repo.rows[userID]) != 1 {
		t.Fatalf("plain load must not rewrite rows, got %d", len(repo.rows[userID]))
	}
}

func TestManagerSignOutReloadsGuestCart(t *testing.T) {
	repo := newFakeRowRepo()
	cache := newFakeSnapshotCache()
	userID := uuid.New()
	cache.guest["tok"] = sampleCart()

	manager := newTestManager(t, repo, cache)

	cart, err := manager.SignOut(context.Background(), userID, "tok")
	if err != nil {
		t.Fatalf("sign out: %v", err)
	}
	if cart.ItemCount() != 2 {
		t.Fatalf("expected stored guest cart after sign out, got %+v", cart.Items)
	}
	if manager.State(UserIdentity(userID)) != StateUninitialized {
		t.Fatal("user session should be dropped on sign out")
	}
}

func TestManagerMutationsAcrossIdentitiesAreIndependent(t *testing.T) {
	cache := newFakeSnapshotCache()
	manager := newTestManager(t, newFakeRowRepo(), cache)

	a := GuestIdentity("device-a")
	b := GuestIdentity("device-b")

	if _, err := manager.AddItem(context.Background(), a, sampleCart().Items[0]); err != nil {
		t.Fatalf("add to a: %v", err)
	}

	cartB, err := manager.Get(context.Background(), b)
	if err != nil {
		t.Fatalf("get b: %v", err)
	}
	if !cartB.IsEmpty() {
		t.Fatalf("identity b must not see identity a's cart: %+v", cartB.Items)
	}
}
