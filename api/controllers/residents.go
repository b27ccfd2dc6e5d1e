package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/condostore/pos-backend/api/responses"
	"github.com/condostore/pos-backend/api/validators"
	residentsvc "github.com/condostore/pos-backend/internal/residents"
	pkgerrors "github.com/condostore/pos-backend/pkg/errors"
	"github.com/condostore/pos-backend/pkg/logger"
)

// ResidentList returns the resident directory, filtered by the optional q
// query on name or apartment.
func ResidentList(svc residentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		residents, err := svc.List(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, residents)
	}
}

// ResidentCreate registers a resident with the settlement backend.
func ResidentCreate(svc residentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload residentsvc.CreateInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resident, err := svc.Create(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, resident)
	}
}

// ResidentHistory returns a resident's account statement.
func ResidentHistory(svc residentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		residentID := chi.URLParam(r, "residentId")
		if residentID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "resident id is required"))
			return
		}

		history, err := svc.History(r.Context(), residentID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, history)
	}
}
