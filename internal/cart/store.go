package cart

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/emekaobi/jollofkitchen-backend/pkg/config"
	"github.com/emekaobi/jollofkitchen-backend/pkg/logger"
	"github.com/emekaobi/jollofkitchen-backend/pkg/metrics"
)

// Store is the persistence adapter between in-memory carts and their
// durable copies. Guests live in Redis; signed-in users live in Postgres
// with a Redis mirror that serves reads when the database is down.
//
// Load never fails: any storage error degrades to the next fallback and
// finally to an empty cart. Save reports its error so the caller can decide
// (the merge path keeps the guest blob on failure) but has already logged
// and counted it; routine mutations ignore the return value.
type Store struct {
	repo    RowRepository
	tx      txRunner
	cache   SnapshotCache
	cfg     config.CartConfig
	logg    *logger.Logger
	metrics *metrics.CartMetrics
}

// NewStore builds the persistence adapter. The metrics sink is optional.
func NewStore(repo RowRepository, tx txRunner, cache SnapshotCache, cfg config.CartConfig, logg *logger.Logger, m *metrics.CartMetrics) (*Store, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart row repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if cache == nil {
		return nil, fmt.Errorf("cart cache required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Store{
		repo:    repo,
		tx:      tx,
		cache:   cache,
		cfg:     cfg,
		logg:    logg,
		metrics: m,
	}, nil
}

// Load fetches the cart for the identity, degrading to an empty cart when
// every source fails or nothing is stored.
func (s *Store) Load(ctx context.Context, id Identity) Cart {
	switch id.Kind {
	case KindGuest:
		return s.loadGuest(ctx, id.GuestToken)
	case KindUser:
		return s.loadUser(ctx, id)
	}
	return Cart{}
}

func (s *Store) loadGuest(ctx context.Context, token string) Cart {
	cart, found, err := s.cache.LoadGuest(ctx, token)
	if err != nil {
		s.logg.Error(s.logg.WithIdentity(ctx, "guest:"+token), "loading guest cart, serving empty", err)
		s.metrics.IncLoadFallback()
		return Cart{}
	}
	if !found {
		return Cart{}
	}
	return cart
}

func (s *Store) loadUser(ctx context.Context, id Identity) Cart {
	rows, err := s.repo.ListByUser(ctx, id.UserID)
	if err == nil {
		return rowsToCart(rows)
	}

	lctx := s.logg.WithIdentity(ctx, id.Key())
	s.logg.Error(lctx, "loading cart rows, trying cache", err)

	cart, found, cacheErr := s.cache.LoadUser(ctx, id.UserID.String())
	if cacheErr != nil {
		s.logg.Error(lctx, "loading cached cart, serving empty", cacheErr)
		s.metrics.IncLoadFallback()
		return Cart{}
	}
	if !found {
		s.metrics.IncLoadFallback()
		return Cart{}
	}
	return cart
}

// Save writes the cart to the identity's durable copies. An empty cart
// erases them.
func (s *Store) Save(ctx context.Context, id Identity, cart Cart) error {
	if s.cfg.PersistTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.PersistTimeout)
		defer cancel()
	}

	switch id.Kind {
	case KindGuest:
		return s.saveGuest(ctx, id.GuestToken, cart)
	case KindUser:
		return s.saveUser(ctx, id, cart)
	}
	return fmt.Errorf("unknown identity kind %q", id.Kind)
}

func (s *Store) saveGuest(ctx context.Context, token string, cart Cart) error {
	var err error
	if cart.IsEmpty() {
		err = s.cache.DeleteGuest(ctx, token)
	} else {
		err = s.cache.SaveGuest(ctx, token, cart, s.cfg.GuestTTL)
	}
	if err != nil {
		s.logg.Error(s.logg.WithIdentity(ctx, "guest:"+token), "saving guest cart", err)
		s.metrics.IncPersistFailure("redis")
	}
	return err
}

func (s *Store) saveUser(ctx context.Context, id Identity, cart Cart) error {
	dbErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).ReplaceForUser(ctx, id.UserID, cartToRows(id.UserID, cart))
	})

	// mirror to cache regardless: it is the read fallback when the
	// database stays down
	var cacheErr error
	if cart.IsEmpty() {
		cacheErr = s.cache.DeleteUser(ctx, id.UserID.String())
	} else {
		cacheErr = s.cache.SaveUser(ctx, id.UserID.String(), cart, s.cfg.UserCacheTTL)
	}

	lctx := s.logg.WithIdentity(ctx, id.Key())
	if cacheErr != nil {
		s.logg.Error(lctx, "mirroring cart to cache", cacheErr)
		s.metrics.IncPersistFailure("redis")
	}
	if dbErr != nil {
		s.logg.Error(lctx, "replacing cart rows", dbErr)
		s.metrics.IncPersistFailure("postgres")
		return dbErr
	}
	return nil
}

// DeleteGuestBlob erases a guest cart's durable copy. Used after a
// successful sign-in merge.
func (s *Store) DeleteGuestBlob(ctx context.Context, token string) error {
	if err := s.cache.DeleteGuest(ctx, token); err != nil {
		s.logg.Error(s.logg.WithIdentity(ctx, "guest:"+token), "deleting merged guest cart", err)
		return err
	}
	return nil
}
