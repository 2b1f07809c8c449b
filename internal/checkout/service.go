package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/emekaobi/jollofkitchen-backend/internal/cart"
	"github.com/emekaobi/jollofkitchen-backend/internal/profiles"
	"github.com/emekaobi/jollofkitchen-backend/pkg/db/models"
	"github.com/emekaobi/jollofkitchen-backend/pkg/enums"
	pkgerrors "github.com/emekaobi/jollofkitchen-backend/pkg/errors"
	"github.com/emekaobi/jollofkitchen-backend/pkg/logger"
)

// Service executes the checkout flow: validate the form, freeze the active
// cart into an order, then clear the cart. Payment is not processed; every
// order starts out awaiting payment.
type Service interface {
	PlaceOrder(ctx context.Context, id cart.Identity, req CheckoutRequest) (*OrderDTO, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type cartAccess interface {
	Get(ctx context.Context, id cart.Identity) (cart.Cart, error)
	Clear(ctx context.Context, id cart.Identity) (cart.Cart, error)
}

type billingWriter interface {
	Save(ctx context.Context, userID uuid.UUID, input profiles.BillingInput) (*models.Profile, error)
}

type service struct {
	tx      txRunner
	orders  OrderRepository
	carts   cartAccess
	billing billingWriter
	logg    *logger.Logger
}

// ServiceParams bundles the dependencies required to build a checkout service.
type ServiceParams struct {
	Tx        txRunner
	OrderRepo OrderRepository
	Carts     cartAccess
	Billing   billingWriter
	Logger    *logger.Logger
}

// NewService builds the checkout service.
func NewService(params ServiceParams) (Service, error) {
	if params.Tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if params.OrderRepo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if params.Carts == nil {
		return nil, fmt.Errorf("cart manager required")
	}
	if params.Billing == nil {
		return nil, fmt.Errorf("billing writer required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		tx:      params.Tx,
		orders:  params.OrderRepo,
		carts:   params.Carts,
		billing: params.Billing,
		logg:    params.Logger,
	}, nil
}

func (s *service) PlaceOrder(ctx context.Context, id cart.Identity, req CheckoutRequest) (*OrderDTO, error) {
	if !id.Valid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart identity is required")
	}
	fulfillment, err := validateRequest(&req)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.carts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if snapshot.IsEmpty() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	order := buildOrder(id, req, fulfillment, snapshot)
	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		_, err := s.orders.WithTx(tx).Create(ctx, order)
		return err
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}

	if id.Kind == cart.KindUser {
		if _, err := s.billing.Save(ctx, id.UserID, profiles.BillingInput{
			FullName:     req.FullName,
			Email:        req.Email,
			Phone:        req.Phone,
			AddressLine1: req.AddressLine1,
			City:         req.City,
			PostalCode:   req.PostalCode,
			Country:      req.Country,
		}); err != nil {
			s.logg.Warn(s.logg.WithUserID(ctx, id.UserID.String()), "billing profile not saved at checkout")
		}
	}

	if _, err := s.carts.Clear(ctx, id); err != nil {
		s.logg.Warn(s.logg.WithIdentity(ctx, id.Key()), "cart not cleared after checkout")
	}

	return toOrderDTO(order), nil
}

func validateRequest(req *CheckoutRequest) (enums.FulfillmentMethod, error) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.FullName == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "full name is required")
	}
	if req.Email == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	fulfillment, err := enums.ParseFulfillmentMethod(req.Fulfillment)
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "fulfillment must be delivery or pickup")
	}

	if fulfillment == enums.FulfillmentDelivery {
		missing := []string{}
		if strings.TrimSpace(req.AddressLine1) == "" {
			missing = append(missing, "address_line1")
		}
		if strings.TrimSpace(req.City) == "" {
			missing = append(missing, "city")
		}
		if strings.TrimSpace(req.PostalCode) == "" {
			missing = append(missing, "postal_code")
		}
		if len(missing) > 0 {
			return "", pkgerrors.New(pkgerrors.CodeValidation, "delivery address is incomplete").
				WithDetails(map[string]any{"missing": missing})
		}
	}
	return fulfillment, nil
}

func buildOrder(id cart.Identity, req CheckoutRequest, fulfillment enums.FulfillmentMethod, snapshot cart.Cart) *models.Order {
	var userID *uuid.UUID
	if id.Kind == cart.KindUser {
		uid := id.UserID
		userID = &uid
	}

	items := make([]models.OrderItem, 0, len(snapshot.Items))
	for _, line := range snapshot.Items {
		items = append(items, models.OrderItem{
			RecipeID:  line.RecipeID,
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
			Size:      line.Size,
			Image:     line.Image,
			LineTotal: line.LineTotal(),
		})
	}

	return &models.Order{
		UserID:       userID,
		Email:        req.Email,
		FullName:     req.FullName,
		Phone:        strings.TrimSpace(req.Phone),
		Fulfillment:  fulfillment,
		AddressLine1: strings.TrimSpace(req.AddressLine1),
		City:         strings.TrimSpace(req.City),
		PostalCode:   strings.TrimSpace(req.PostalCode),
		Country:      strings.TrimSpace(req.Country),
		Status:       enums.OrderStatusAwaitingPayment,
		TotalAmount:  snapshot.Total(),
		Items:        items,
	}
}
