package cart

import (
	"fmt"

	"github.com/google/uuid"
)

// IdentityKind distinguishes anonymous visitors from signed-in users.
type IdentityKind string

const (
	KindGuest IdentityKind = "guest"
	KindUser  IdentityKind = "user"
)

// Identity is the cart owner: a guest device token or an authenticated
// user id. Each identity owns exactly one cart.
type Identity struct {
	Kind       IdentityKind
	GuestToken string
	UserID     uuid.UUID
}

// GuestIdentity builds a guest identity from a device token.
func GuestIdentity(token string) Identity {
	return Identity{Kind: KindGuest, GuestToken: token}
}

// UserIdentity builds an authenticated identity from a user id.
func UserIdentity(userID uuid.UUID) Identity {
	return Identity{Kind: KindUser, UserID: userID}
}

// Valid reports whether the identity carries its required token/id.
func (i Identity) Valid() bool {
	switch i.Kind {
	case KindGuest:
		return i.GuestToken != ""
	case KindUser:
		return i.UserID != uuid.Nil
	}
	return false
}

// Key returns a stable string used for per-identity serialization.
func (i Identity) Key() string {
	if i.Kind == KindUser {
		return fmt.Sprintf("user:%s", i.UserID)
	}
	return fmt.Sprintf("guest:%s", i.GuestToken)
}
