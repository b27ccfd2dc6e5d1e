package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/condostore/pos-backend/api/responses"
	"github.com/condostore/pos-backend/internal/storeapi"
	pkgAuth "github.com/condostore/pos-backend/pkg/auth"
	"github.com/condostore/pos-backend/pkg/config"
	pkgerrors "github.com/condostore/pos-backend/pkg/errors"
	"github.com/condostore/pos-backend/pkg/logger"
)

type ctxKey int

const (
	ctxOperator ctxKey = iota
	ctxTerminalID
)

// Auth validates the local bearer token and seeds the request context with
// the operator and with the upstream token proxied calls replay.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}
			if claims.UpstreamToken == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "token carries no upstream credential"))
				return
			}

			ctx := context.WithValue(r.Context(), ctxOperator, claims.Operator)
			ctx = storeapi.WithToken(ctx, claims.UpstreamToken)
			if logg != nil {
				ctx = logg.WithOperator(ctx, claims.Operator)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OperatorFromContext returns the authenticated operator name.
func OperatorFromContext(ctx context.Context) string {
	if operator, ok := ctx.Value(ctxOperator).(string); ok {
		return operator
	}
	return ""
}
