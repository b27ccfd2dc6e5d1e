package controllers

import (
	"net/http"
	"time"

	"github.com/condostore/pos-backend/api/responses"
	"github.com/condostore/pos-backend/api/validators"
	authsvc "github.com/condostore/pos-backend/internal/auth"
	pkgerrors "github.com/condostore/pos-backend/pkg/errors"
	"github.com/condostore/pos-backend/pkg/logger"
)

type loginResponse struct {
	AccessToken string           `json:"access_token"`
	ExpiresAt   time.Time        `json:"expires_at"`
	Operator    operatorResponse `json:"operator"`
}

type operatorResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// AuthLogin exchanges operator credentials for a local access token.
func AuthLogin(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var payload authsvc.LoginInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, loginResponse{
			AccessToken: result.AccessToken,
			ExpiresAt:   result.ExpiresAt,
			Operator: operatorResponse{
				ID:   result.Operator.ID,
				Name: result.Operator.Name,
				Role: result.Operator.Role,
			},
		})
	}
}
