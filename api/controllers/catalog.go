package controllers

import (
	"net/http"

	"github.com/condostore/pos-backend/api/responses"
	catalogsvc "github.com/condostore/pos-backend/internal/catalog"
	pkgerrors "github.com/condostore/pos-backend/pkg/errors"
	"github.com/condostore/pos-backend/pkg/logger"
	"github.com/condostore/pos-backend/pkg/types"
)

type catalogItemResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Price      string `json:"price"`
	Stock      int    `json:"stock"`
	Barcode    string `json:"barcode,omitempty"`
}

// CatalogList returns the catalog snapshot, filtered by the optional q query.
func CatalogList(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		items := svc.Search(r.Context(), r.URL.Query().Get("q"))
		out := make([]catalogItemResponse, 0, len(items))
		for _, item := range items {
			out = append(out, newCatalogItemResponse(item))
		}
		responses.WriteSuccess(w, out)
	}
}

// CatalogRefresh forces a snapshot reload from the settlement backend.
func CatalogRefresh(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		if err := svc.Refresh(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "refreshed"})
	}
}

func newCatalogItemResponse(item catalogsvc.Item) catalogItemResponse {
	return catalogItemResponse{
		ID:         item.ID,
		Name:       item.Name,
		PriceCents: item.PriceCents,
		Price:      types.FormatCents(item.PriceCents),
		Stock:      item.Stock,
		Barcode:    item.Barcode,
	}
}
