package controllers

import (
	"net/http"

	"github.com/emekaobi/jollofkitchen-backend/api/middleware"
	"github.com/emekaobi/jollofkitchen-backend/api/responses"
	"github.com/emekaobi/jollofkitchen-backend/api/validators"
	"github.com/emekaobi/jollofkitchen-backend/internal/checkout"
	pkgerrors "github.com/emekaobi/jollofkitchen-backend/pkg/errors"
	"github.com/emekaobi/jollofkitchen-backend/pkg/logger"
)

// Checkout snapshots the active cart into an order awaiting payment.
func Checkout(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body checkout.CheckoutRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		identity := middleware.CartIdentityFromContext(r.Context())
		order, err := svc.PlaceOrder(r.Context(), identity, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
