package profiles

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/emekaobi/jollofkitchen-backend/pkg/db/models"
	pkgerrors "github.com/emekaobi/jollofkitchen-backend/pkg/errors"
)

// ProfileRepository defines the persistence surface required by the service.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	Upsert(ctx context.Context, profile *models.Profile) (*models.Profile, error)
}

// Service exposes billing profile operations.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	Save(ctx context.Context, userID uuid.UUID, input BillingInput) (*models.Profile, error)
}

type service struct {
	repo ProfileRepository
}

// NewService builds a profile service backed by the provided repository.
func NewService(repo ProfileRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("profile repository required")
	}
	return &service{repo: repo}, nil
}

// BillingInput carries the billing details captured at checkout.
type BillingInput struct {
	FullName     string
	Email        string
	Phone        string
	AddressLine1 string
	City         string
	PostalCode   string
	Country      string
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	profile, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "billing profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load billing profile")
	}
	return profile, nil
}

func (s *service) Save(ctx context.Context, userID uuid.UUID, input BillingInput) (*models.Profile, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if strings.TrimSpace(input.FullName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "full name is required")
	}
	if strings.TrimSpace(input.Email) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	profile := &models.Profile{
		ID:           userID,
		FullName:     strings.TrimSpace(input.FullName),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:        strings.TrimSpace(input.Phone),
		AddressLine1: strings.TrimSpace(input.AddressLine1),
		City:         strings.TrimSpace(input.City),
		PostalCode:   strings.TrimSpace(input.PostalCode),
		Country:      strings.TrimSpace(input.Country),
	}

	saved, err := s.repo.Upsert(ctx, profile)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save billing profile")
	}
	return saved, nil
}
