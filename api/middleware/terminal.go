package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/condostore/pos-backend/api/responses"
	pkgerrors "github.com/condostore/pos-backend/pkg/errors"
	"github.com/condostore/pos-backend/pkg/logger"
)

const terminalIDHeader = "X-Terminal-Id"

// TerminalContext requires the register header and seeds the request context
// with it. Register state (cart, payment, checkout latch) is keyed by this id.
func TerminalContext(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			terminalID := strings.TrimSpace(r.Header.Get(terminalIDHeader))
			if terminalID == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "X-Terminal-Id header required"))
				return
			}

			ctx := context.WithValue(r.Context(), ctxTerminalID, terminalID)
			if logg != nil {
				ctx = logg.WithTerminalID(ctx, terminalID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TerminalIDFromContext returns the register id for this request.
func TerminalIDFromContext(ctx context.Context) string {
	if terminalID, ok := ctx.Value(ctxTerminalID).(string); ok {
		return terminalID
	}
	return ""
}
