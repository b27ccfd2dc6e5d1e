package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/condostore/pos-backend/api/middleware"
	"github.com/condostore/pos-backend/api/responses"
	"github.com/condostore/pos-backend/api/validators"
	cartsvc "github.com/condostore/pos-backend/internal/cart"
	"github.com/condostore/pos-backend/pkg/enums"
	pkgerrors "github.com/condostore/pos-backend/pkg/errors"
	"github.com/condostore/pos-backend/pkg/logger"
	"github.com/condostore/pos-backend/pkg/types"
)

type cartLineResponse struct {
	ProductID      string `json:"product_id"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int    `json:"quantity"`
	SubtotalCents  int64  `json:"subtotal_cents"`
}

type cartViewResponse struct {
	TerminalID    string             `json:"terminal_id"`
	Lines         []cartLineResponse `json:"lines"`
	TotalCents    int64              `json:"total_cents"`
	Total         string             `json:"total"`
	PaymentMethod string             `json:"payment_method"`
	ResidentID    *string            `json:"resident_id,omitempty"`
	Submitting    bool               `json:"submitting"`
}

type addItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

type setPaymentRequest struct {
	Method     string  `json:"method" validate:"required"`
	ResidentID *string `json:"resident_id,omitempty"`
}

// CartFetch returns the terminal's current register view.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := svc.Get(r.Context(), middleware.TerminalIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartViewResponse(view))
	}
}

// CartAddItem adds one unit of a product to the terminal's cart.
func CartAddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.AddItem(r.Context(), middleware.TerminalIDFromContext(r.Context()), payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartViewResponse(view))
	}
}

// CartRemoveItem drops the whole line for a product.
func CartRemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := chi.URLParam(r, "productId")
		if productID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		view, err := svc.RemoveItem(r.Context(), middleware.TerminalIDFromContext(r.Context()), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartViewResponse(view))
	}
}

// CartClear empties the cart and resets the payment selection.
func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := svc.Clear(r.Context(), middleware.TerminalIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartViewResponse(view))
	}
}

// CartSetPayment selects the settlement method for the sale in progress.
func CartSetPayment(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload setPaymentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, err := enums.ParsePaymentMethod(payload.Method)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method"))
			return
		}

		view, err := svc.SetPayment(r.Context(), middleware.TerminalIDFromContext(r.Context()), method, payload.ResidentID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartViewResponse(view))
	}
}

func newCartViewResponse(view *cartsvc.View) cartViewResponse {
	lines := make([]cartLineResponse, 0, len(view.Lines))
	for _, line := range view.Lines {
		lines = append(lines, cartLineResponse{
			ProductID:      line.ProductID,
			Name:           line.Name,
			UnitPriceCents: line.UnitPriceCents,
			Quantity:       line.Quantity,
			SubtotalCents:  line.SubtotalCents(),
		})
	}
	return cartViewResponse{
		TerminalID:    view.TerminalID,
		Lines:         lines,
		TotalCents:    view.TotalCents,
		Total:         types.FormatCents(view.TotalCents),
		PaymentMethod: view.PaymentMethod.String(),
		ResidentID:    view.ResidentID,
		Submitting:    view.Submitting,
	}
}
