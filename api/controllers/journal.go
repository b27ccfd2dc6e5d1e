package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/condostore/pos-backend/api/responses"
	"github.com/condostore/pos-backend/api/validators"
	journalsvc "github.com/condostore/pos-backend/internal/journal"
	"github.com/condostore/pos-backend/pkg/db/models"
	pkgerrors "github.com/condostore/pos-backend/pkg/errors"
	"github.com/condostore/pos-backend/pkg/logger"
	"github.com/condostore/pos-backend/pkg/types"
)

type journalItemResponse struct {
	ProductID      string `json:"product_id"`
	ProductName    string `json:"product_name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

type journalRecordResponse struct {
	ID            string                `json:"id"`
	TerminalID    string                `json:"terminal_id"`
	Operator      string                `json:"operator"`
	PaymentMethod string                `json:"payment_method"`
	ResidentID    *string               `json:"resident_id,omitempty"`
	TotalCents    int64                 `json:"total_cents"`
	Total         string                `json:"total"`
	Items         []journalItemResponse `json:"items"`
	SettledAt     time.Time             `json:"settled_at"`
}

// JournalList returns the latest locally journaled sales. Pass terminal_id
// to scope to one register.
func JournalList(svc journalsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, 500)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		records, err := svc.ListRecent(r.Context(), r.URL.Query().Get("terminal_id"), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]journalRecordResponse, 0, len(records))
		for i := range records {
			out = append(out, newJournalRecordResponse(&records[i]))
		}
		responses.WriteSuccess(w, out)
	}
}

// JournalDetail returns one journaled sale with its items.
func JournalDetail(svc journalsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		saleID, err := uuid.Parse(chi.URLParam(r, "saleId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sale id"))
			return
		}

		record, err := svc.Get(r.Context(), saleID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newJournalRecordResponse(record))
	}
}

func newJournalRecordResponse(record *models.SaleRecord) journalRecordResponse {
	items := make([]journalItemResponse, 0, len(record.Items))
	for _, item := range record.Items {
		items = append(items, journalItemResponse{
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
		})
	}

	var residentID *string
	if record.ResidentID != nil {
		value := record.ResidentID.String()
		residentID = &value
	}

	return journalRecordResponse{
		ID:            record.ID.String(),
		TerminalID:    record.TerminalID,
		Operator:      record.Operator,
		PaymentMethod: record.PaymentMethod.String(),
		ResidentID:    residentID,
		TotalCents:    record.TotalCents,
		Total:         types.FormatCents(record.TotalCents),
		Items:         items,
		SettledAt:     record.SettledAt,
	}
}
