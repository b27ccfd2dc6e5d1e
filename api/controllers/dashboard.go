package controllers

import (
	"net/http"

	"github.com/condostore/pos-backend/api/responses"
	dashboardsvc "github.com/condostore/pos-backend/internal/dashboard"
	"github.com/condostore/pos-backend/pkg/logger"
)

// DashboardOverview proxies the store-wide indicators.
func DashboardOverview(svc dashboardsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		overview, err := svc.Overview(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, overview)
	}
}
