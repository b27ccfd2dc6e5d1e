package dashboard

import (
	"context"
	"io"
	"testing"

	"github.com/rs/zerolog"

	"github.com/condostore/pos-backend/internal/storeapi"
	pkgerrors "github.com/condostore/pos-backend/pkg/errors"
	"github.com/condostore/pos-backend/pkg/logger"
)

type stubAPI struct {
	overview *storeapi.DashboardDTO
	err      error
}

func (s *stubAPI) Dashboard(ctx context.Context) (*storeapi.DashboardDTO, error) {
	return s.overview, s.err
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.ErrorLevel, Output: io.Discard})
}

func TestOverviewPassesThrough(t *testing.T) {
	overview := &storeapi.DashboardDTO{}
	overview.Revenue.Today = "152.50"
	overview.Revenue.OrdersToday = 7

	svc, err := NewService(&stubAPI{overview: overview}, testLogger())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	got, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if got.Revenue.Today != "152.50" || got.Revenue.OrdersToday != 7 {
		t.Fatalf("unexpected overview: %+v", got)
	}
}

func TestOverviewUpstreamFailure(t *testing.T) {
	upstreamErr := pkgerrors.New(pkgerrors.CodeDependency, "dashboard unavailable")
	svc, err := NewService(&stubAPI{err: upstreamErr}, testLogger())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	if _, err := svc.Overview(context.Background()); !pkgerrors.IsCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
