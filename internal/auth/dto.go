package auth

import (
	"github.com/emekaobi/jollofkitchen-backend/internal/cart"
	"github.com/emekaobi/jollofkitchen-backend/internal/users"
)

// RegisterRequest contains the payload required to open a customer account.
type RegisterRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
}

// LoginRequest captures the credentials sent to the login endpoints. The
// guest token rides on a header, not the body; the controller fills it in.
type LoginRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	GuestToken string `json:"-"`
}

// LoginResponse contains the tokens, the user, and the cart the device
// ends up with after sign-in.
type LoginResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	User         *users.UserDTO `json:"user"`
	Cart         *cart.Cart     `json:"cart,omitempty"`
}

// AdminLoginResponse mirrors LoginResponse without the storefront cart.
type AdminLoginResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	User         *users.UserDTO `json:"user"`
}

// RefreshRequest carries the expired access token and its refresh pair.
type RefreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshResponse returns the rotated token pair.
type RefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
