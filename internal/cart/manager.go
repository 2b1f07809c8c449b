package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/emekaobi/jollofkitchen-backend/pkg/enums"
	pkgerrors "github.com/emekaobi/jollofkitchen-backend/pkg/errors"
	"github.com/emekaobi/jollofkitchen-backend/pkg/logger"
	"github.com/emekaobi/jollofkitchen-backend/pkg/metrics"
)

// SessionState tracks where an identity's cart is in its lifecycle.
type SessionState int

const (
	StateUninitialized SessionState = iota
	StateLoading
	StateReady
)

func (s SessionState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return "uninitialized"
	}
}

type session struct {
	mu    sync.Mutex
	state SessionState
	cart  Cart
	ready chan struct{}
}

// Manager owns the active cart per identity. The first access loads the
// durable copy; after that all reads and writes go through the in-memory
// cart and every write is pushed back out through the store. Writes that
// arrive while the initial load is still in flight are rejected rather
// than silently dropped or applied to a cart that is about to be replaced.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*session

	store   *Store
	logg    *logger.Logger
	metrics *metrics.CartMetrics
}

// NewManager builds the identity-aware cart manager. Metrics are optional.
func NewManager(store *Store, logg *logger.Logger, m *metrics.CartMetrics) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Manager{
		sessions: make(map[string]*session),
		store:    store,
		logg:     logg,
		metrics:  m,
	}, nil
}

// State reports the session state for an identity without touching storage.
func (m *Manager) State(id Identity) SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sess, ok := m.sessions[id.Key()]; ok {
		sess.mu.Lock()
		defer sess.mu.Unlock()
		return sess.state
	}
	return StateUninitialized
}

// Get returns the identity's cart, loading it on first access. Concurrent
// readers block until the load completes.
func (m *Manager) Get(ctx context.Context, id Identity) (Cart, error) {
	if !id.Valid() {
		return Cart{}, pkgerrors.New(pkgerrors.CodeValidation, "cart identity is required")
	}
	sess, err := m.ensure(ctx, id, true)
	if err != nil {
		return Cart{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.cart.Clone(), nil
}

// AddItem adds one unit of the line to the identity's cart.
func (m *Manager) AddItem(ctx context.Context, id Identity, item LineItem) (Cart, error) {
	return m.mutate(ctx, id, func(c *Cart) {
		c.AddItem(item)
	})
}

// RemoveItem drops a line from the identity's cart.
func (m *Manager) RemoveItem(ctx context.Context, id Identity, recipeID uuid.UUID, size enums.RecipeSize) (Cart, error) {
	return m.mutate(ctx, id, func(c *Cart) {
		c.RemoveItem(recipeID, size)
	})
}

// UpdateQuantity sets a line's quantity; zero or below removes the line.
func (m *Manager) UpdateQuantity(ctx context.Context, id Identity, recipeID uuid.UUID, size enums.RecipeSize, quantity int) (Cart, error) {
	return m.mutate(ctx, id, func(c *Cart) {
		c.UpdateQuantity(recipeID, size, quantity)
	})
}

// Clear empties the identity's cart and erases its durable copies.
func (m *Manager) Clear(ctx context.Context, id Identity) (Cart, error) {
	return m.mutate(ctx, id, func(c *Cart) {
		c.Clear()
	})
}

// SignIn switches the device from a guest identity to a user identity.
// A non-empty guest cart is folded into the account cart; the guest blob
// is erased only once the merged cart has been persisted, so a failed
// persist leaves the guest copy around for the next attempt.
func (m *Manager) SignIn(ctx context.Context, userID uuid.UUID, guestToken string) (Cart, error) {
	if userID == uuid.Nil {
		return Cart{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	userIdent := UserIdentity(userID)

	sess, release, err := m.beginLoad(ctx, userIdent)
	if err != nil {
		return Cart{}, err
	}

	var guest Cart
	if guestToken != "" {
		guest = m.snapshotGuest(ctx, GuestIdentity(guestToken))
	}

	account := m.store.Load(ctx, userIdent)

	result := account
	if !guest.IsEmpty() {
		result = Merge(account, guest)
		if err := m.store.Save(ctx, userIdent, result); err != nil {
			m.metrics.IncMerge("error")
			m.logg.Warn(m.logg.WithIdentity(ctx, userIdent.Key()), "merged cart not persisted, guest copy retained")
		} else {
			m.metrics.IncMerge("ok")
			_ = m.store.DeleteGuestBlob(ctx, guestToken)
			m.drop(GuestIdentity(guestToken))
		}
	}

	release(sess, result)
	return result.Clone(), nil
}

// SignOut returns the device to its guest identity, discarding the user's
// in-memory session and reloading whatever guest cart is stored.
func (m *Manager) SignOut(ctx context.Context, userID uuid.UUID, guestToken string) (Cart, error) {
	if userID != uuid.Nil {
		m.drop(UserIdentity(userID))
	}
	if guestToken == "" {
		return Cart{}, nil
	}

	guestIdent := GuestIdentity(guestToken)
	m.drop(guestIdent)

	sess, release, err := m.beginLoad(ctx, guestIdent)
	if err != nil {
		return Cart{}, err
	}
	cart := m.store.Load(ctx, guestIdent)
	release(sess, cart)
	return cart.Clone(), nil
}

func (m *Manager) mutate(ctx context.Context, id Identity, fn func(*Cart)) (Cart, error) {
	if !id.Valid() {
		return Cart{}, pkgerrors.New(pkgerrors.CodeValidation, "cart identity is required")
	}
	sess, err := m.ensure(ctx, id, false)
	if err != nil {
		return Cart{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.state != StateReady {
		return Cart{}, pkgerrors.New(pkgerrors.CodeConflict, "cart is still loading")
	}

	updated := sess.cart.Clone()
	fn(&updated)
	sess.cart = updated

	// best effort: a failed save keeps the in-memory cart authoritative
	// and has already been logged and counted by the store
	_ = m.store.Save(ctx, id, updated)

	return updated.Clone(), nil
}

// ensure loads the identity's cart on first access. Readers wait for an
// in-flight load; writers get a conflict instead.
func (m *Manager) ensure(ctx context.Context, id Identity, wait bool) (*session, error) {
	sess := m.session(id.Key())

	sess.mu.Lock()
	switch sess.state {
	case StateReady:
		sess.mu.Unlock()
		return sess, nil

	case StateLoading:
		ch := sess.ready
		sess.mu.Unlock()
		if !wait {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "cart is still loading")
		}
		select {
		case <-ch:
			return sess, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}

	default:
		sess.state = StateLoading
		ch := make(chan struct{})
		sess.ready = ch
		sess.mu.Unlock()

		cart := m.store.Load(ctx, id)

		sess.mu.Lock()
		sess.cart = cart
		sess.state = StateReady
		close(ch)
		sess.mu.Unlock()
		return sess, nil
	}
}

// beginLoad flips the identity to Loading for the span of a sign-in or
// sign-out transition. The returned release publishes the final cart.
func (m *Manager) beginLoad(ctx context.Context, id Identity) (*session, func(*session, Cart), error) {
	sess := m.session(id.Key())

	sess.mu.Lock()
	if sess.state == StateLoading {
		sess.mu.Unlock()
		return nil, nil, pkgerrors.New(pkgerrors.CodeConflict, "cart is still loading")
	}
	sess.state = StateLoading
	ch := make(chan struct{})
	sess.ready = ch
	sess.mu.Unlock()

	release := func(s *session, cart Cart) {
		s.mu.Lock()
		s.cart = cart
		s.state = StateReady
		close(ch)
		s.mu.Unlock()
	}
	return sess, release, nil
}

// snapshotGuest prefers the in-memory guest cart over storage so items
// added moments before sign-in are not lost to a slow write.
func (m *Manager) snapshotGuest(ctx context.Context, id Identity) Cart {
	m.mu.Lock()
	sess, ok := m.sessions[id.Key()]
	m.mu.Unlock()
	if ok {
		sess.mu.Lock()
		ready := sess.state == StateReady
		cart := sess.cart.Clone()
		sess.mu.Unlock()
		if ready {
			return cart
		}
	}
	return m.store.Load(ctx, id)
}

func (m *Manager) session(key string) *session {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[key]
	if !ok {
		sess = &session{}
		m.sessions[key] = sess
	}
	return sess
}

func (m *Manager) drop(id Identity) {
	m.mu.Lock()
	delete(m.sessions, id.Key())
	m.mu.Unlock()
}
