package controllers

import (
	"net/http"

	"github.com/emekaobi/jollofkitchen-backend/api/responses"
	"github.com/emekaobi/jollofkitchen-backend/api/validators"
	"github.com/emekaobi/jollofkitchen-backend/internal/profiles"
	pkgerrors "github.com/emekaobi/jollofkitchen-backend/pkg/errors"
	"github.com/emekaobi/jollofkitchen-backend/pkg/logger"
)

type billingRequest struct {
	FullName     string `json:"full_name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"address_line1"`
	City         string `json:"city"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country"`
}

// ProfileBillingGet returns the caller's stored billing details.
func ProfileBillingGet(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "profile service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID, err := requireUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.Get(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, profiles.FromModel(profile))
	}
}

// ProfileBillingSave upserts the caller's billing details.
func ProfileBillingSave(svc profiles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "profile service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID, err := requireUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body billingRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		saved, err := svc.Save(r.Context(), userID, profiles.BillingInput{
			FullName:     body.FullName,
			Email:        body.Email,
			Phone:        body.Phone,
			AddressLine1: body.AddressLine1,
			City:         body.City,
			PostalCode:   body.PostalCode,
			Country:      body.Country,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, profiles.FromModel(saved))
	}
}
