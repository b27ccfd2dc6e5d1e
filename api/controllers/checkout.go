package controllers

import (
	"net/http"
	"time"

	"github.com/condostore/pos-backend/api/middleware"
	"github.com/condostore/pos-backend/api/responses"
	checkoutsvc "github.com/condostore/pos-backend/internal/checkout"
	pkgerrors "github.com/condostore/pos-backend/pkg/errors"
	"github.com/condostore/pos-backend/pkg/logger"
	"github.com/condostore/pos-backend/pkg/types"
)

type receiptResponse struct {
	SaleID        string             `json:"sale_id,omitempty"`
	TerminalID    string             `json:"terminal_id"`
	Lines         []cartLineResponse `json:"lines"`
	TotalCents    int64              `json:"total_cents"`
	Total         string             `json:"total"`
	PaymentMethod string             `json:"payment_method"`
	ResidentID    *string            `json:"resident_id,omitempty"`
	SettledAt     time.Time          `json:"settled_at"`
}

// Checkout submits the terminal's cart for settlement. The request has no
// body; everything the sale needs is already in the session.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		ctx := r.Context()
		receipt, err := svc.Execute(ctx, middleware.TerminalIDFromContext(ctx), middleware.OperatorFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		lines := make([]cartLineResponse, 0, len(receipt.Lines))
		for _, line := range receipt.Lines {
			lines = append(lines, cartLineResponse{
				ProductID:      line.ProductID,
				Name:           line.Name,
				UnitPriceCents: line.UnitPriceCents,
				Quantity:       line.Quantity,
				SubtotalCents:  line.SubtotalCents(),
			})
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, receiptResponse{
			SaleID:        receipt.SaleID,
			TerminalID:    receipt.TerminalID,
			Lines:         lines,
			TotalCents:    receipt.TotalCents,
			Total:         types.FormatCents(receipt.TotalCents),
			PaymentMethod: receipt.PaymentMethod.String(),
			ResidentID:    receipt.ResidentID,
			SettledAt:     receipt.SettledAt,
		})
	}
}
