package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/condostore/pos-backend/internal/storeapi"
	pkgerrors "github.com/condostore/pos-backend/pkg/errors"
	"github.com/condostore/pos-backend/pkg/logger"
	"github.com/condostore/pos-backend/pkg/metrics"
	"github.com/condostore/pos-backend/pkg/types"
)

// Item is one sellable product as last observed from the settlement backend.
// Stock is a snapshot, not a reservation; the backend stays authoritative.
type Item struct {
	ID         string
	Name       string
	PriceCents int64
	Stock      int
	Barcode    string
}

type productLister interface {
	ListProducts(ctx context.Context) ([]storeapi.ProductDTO, error)
}

// Service holds the in-memory catalog snapshot shared by every terminal.
type Service interface {
	Refresh(ctx context.Context) error
	List(ctx context.Context) []Item
	Search(ctx context.Context, query string) []Item
	Get(ctx context.Context, productID string) (*Item, error)
}

type service struct {
	upstream productLister
	logg     *logger.Logger
	sales    *metrics.SaleMetrics

	mu    sync.RWMutex
	items []Item
	byID  map[string]int
}

// NewService builds the catalog service. The snapshot starts empty; callers
// decide when the first Refresh happens.
func NewService(upstream productLister, logg *logger.Logger, sales *metrics.SaleMetrics) (Service, error) {
	if upstream == nil {
		return nil, fmt.Errorf("product lister required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		upstream: upstream,
		logg:     logg,
		sales:    sales,
		byID:     map[string]int{},
	}, nil
}

// Refresh replaces the whole snapshot with the backend's current catalog.
// On failure the previous snapshot stays in place untouched.
func (s *service) Refresh(ctx context.Context) error {
	products, err := s.upstream.ListProducts(ctx)
	if err != nil {
		s.sales.IncCatalogRefresh("error")
		s.logg.Error(ctx, "catalog refresh failed, keeping previous snapshot", err)
		return err
	}

	items := make([]Item, 0, len(products))
	byID := make(map[string]int, len(products))
	for _, dto := range products {
		priceCents, err := types.ParseCents(dto.Price)
		if err != nil {
			s.sales.IncCatalogRefresh("error")
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err,
				fmt.Sprintf("invalid price for product %s", dto.ID))
		}
		if _, dup := byID[dto.ID]; dup {
			s.sales.IncCatalogRefresh("error")
			return pkgerrors.New(pkgerrors.CodeDependency, "duplicate product id in catalog").
				WithDetails(map[string]any{"product_id": dto.ID})
		}
		byID[dto.ID] = len(items)
		items = append(items, Item{
			ID:         dto.ID,
			Name:       dto.Name,
			PriceCents: priceCents,
			Stock:      dto.TotalStock,
			Barcode:    dto.Barcode,
		})
	}

	s.mu.Lock()
	s.items = items
	s.byID = byID
	s.mu.Unlock()

	s.sales.IncCatalogRefresh("ok")
	s.logg.Info(s.logg.WithField(ctx, "products", len(items)), "catalog snapshot replaced")
	return nil
}

// List returns a copy of the current snapshot.
func (s *service) List(ctx context.Context) []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Search filters the snapshot by case-insensitive substring on name or by
// exact barcode match, the way the register's search box works.
func (s *service) Search(ctx context.Context, query string) []Item {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return s.List(ctx)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Item, 0, len(s.items))
	for _, item := range s.items {
		if strings.Contains(strings.ToLower(item.Name), needle) || item.Barcode == strings.TrimSpace(query) {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Get returns one product from the snapshot.
func (s *service) Get(ctx context.Context, productID string) (*Item, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.byID[productID]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	item := s.items[idx]
	return &item, nil
}
