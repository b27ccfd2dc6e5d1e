package dashboard

import (
	"context"
	"fmt"

	"github.com/condostore/pos-backend/internal/storeapi"
	"github.com/condostore/pos-backend/pkg/logger"
)

type dashboardAPI interface {
	Dashboard(ctx context.Context) (*storeapi.DashboardDTO, error)
}

// Service proxies the store-wide indicators the settlement backend computes:
// revenue for the day and month, open receivables and low-stock alerts.
type Service interface {
	Overview(ctx context.Context) (*storeapi.DashboardDTO, error)
}

type service struct {
	upstream dashboardAPI
	logg     *logger.Logger
}

// NewService builds the dashboard service.
func NewService(upstream dashboardAPI, logg *logger.Logger) (Service, error) {
	if upstream == nil {
		return nil, fmt.Errorf("dashboard api required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{upstream: upstream, logg: logg}, nil
}

func (s *service) Overview(ctx context.Context) (*storeapi.DashboardDTO, error) {
	return s.upstream.Dashboard(ctx)
}
