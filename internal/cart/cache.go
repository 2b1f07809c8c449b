package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redislib "github.com/redis/go-redis/v9"
)

type blobStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type cartKeyer interface {
	GuestCartKey(token string) string
	UserCartKey(userID string) string
}

// CacheStore keeps cart snapshots as JSON blobs in Redis: the durable copy
// for guests, a read fallback for signed-in users.
type CacheStore struct {
	store blobStore
	keyer cartKeyer
}

// NewCacheStore binds a cache store to the shared Redis client.
func NewCacheStore(store blobStore, keyer cartKeyer) *CacheStore {
	return &CacheStore{store: store, keyer: keyer}
}

// LoadGuest returns the guest cart blob. A missing key or a blob that no
// longer parses both report found=false; parse failures are not errors.
func (c *CacheStore) LoadGuest(ctx context.Context, token string) (Cart, bool, error) {
	return c.load(ctx, c.keyer.GuestCartKey(token))
}

// SaveGuest writes the guest cart blob with the provided TTL.
func (c *CacheStore) SaveGuest(ctx context.Context, token string, cart Cart, ttl time.Duration) error {
	return c.save(ctx, c.keyer.GuestCartKey(token), cart, ttl)
}

// DeleteGuest removes the guest cart blob.
func (c *CacheStore) DeleteGuest(ctx context.Context, token string) error {
	return c.store.Del(ctx, c.keyer.GuestCartKey(token))
}

// LoadUser returns the cached cart copy for a signed-in user.
func (c *CacheStore) LoadUser(ctx context.Context, userID string) (Cart, bool, error) {
	return c.load(ctx, c.keyer.UserCartKey(userID))
}

// SaveUser mirrors a signed-in user's cart into the cache.
func (c *CacheStore) SaveUser(ctx context.Context, userID string, cart Cart, ttl time.Duration) error {
	return c.save(ctx, c.keyer.UserCartKey(userID), cart, ttl)
}

// DeleteUser removes the cached copy for a signed-in user.
func (c *CacheStore) DeleteUser(ctx context.Context, userID string) error {
	return c.store.Del(ctx, c.keyer.UserCartKey(userID))
}

func (c *CacheStore) load(ctx context.Context, key string) (Cart, bool, error) {
	raw, err := c.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return Cart{}, false, nil
		}
		return Cart{}, false, err
	}

	var cart Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		// corrupt blob: treat as absent
		return Cart{}, false, nil
	}
	return cart, true, nil
}

func (c *CacheStore) save(ctx context.Context, key string, cart Cart, ttl time.Duration) error {
	payload, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, key, string(payload), ttl)
}
