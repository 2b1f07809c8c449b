package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/emekaobi/jollofkitchen-backend/pkg/enums"
)

// User is a storefront account (customer or admin staff).
type User struct {
	ID             uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email          string         `gorm:"column:email;not null;uniqueIndex"`
	PasswordHash   string         `gorm:"column:password_hash;not null"`
	FirstName      string         `gorm:"column:first_name;not null"`
	LastName       string         `gorm:"column:last_name;not null"`
	Role           enums.UserRole `gorm:"column:role;not null;default:'customer'"`
	EmailConfirmed bool           `gorm:"column:email_confirmed;not null;default:false"`
	IsActive       bool           `gorm:"column:is_active;not null;default:true"`
	LastLoginAt    *time.Time     `gorm:"column:last_login_at"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
