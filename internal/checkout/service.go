package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/condostore/pos-backend/internal/cart"
	"github.com/condostore/pos-backend/internal/journal"
	"github.com/condostore/pos-backend/internal/storeapi"
	"github.com/condostore/pos-backend/pkg/db/models"
	"github.com/condostore/pos-backend/pkg/enums"
	pkgerrors "github.com/condostore/pos-backend/pkg/errors"
	"github.com/condostore/pos-backend/pkg/logger"
	"github.com/condostore/pos-backend/pkg/metrics"
)

type saleSubmitter interface {
	CreateSale(ctx context.Context, input storeapi.CreateSaleInput) error
}

type catalogRefresher interface {
	Refresh(ctx context.Context) error
}

type saleJournal interface {
	Record(ctx context.Context, entry journal.Entry) (*models.SaleRecord, error)
}

// Receipt is what the terminal gets back for an accepted sale.
type Receipt struct {
	SaleID        string
	TerminalID    string
	Lines         []cart.Line
	TotalCents    int64
	PaymentMethod enums.PaymentMethod
	ResidentID    *string
	SettledAt     time.Time
}

// Service drives a cart through settlement. One submission per attempt, no
// retries; the operator decides whether to try again.
type Service interface {
	Execute(ctx context.Context, terminalID, operator string) (*Receipt, error)
}

type service struct {
	sessions *cart.Store
	upstream saleSubmitter
	catalog  catalogRefresher
	journal  saleJournal
	logg     *logger.Logger
	sales    *metrics.SaleMetrics
	now      func() time.Time
}

// NewService builds the checkout service. The journal is optional; a sale is
// complete once the settlement service accepts it.
func NewService(sessions *cart.Store, upstream saleSubmitter, catalogSvc catalogRefresher, saleJournal saleJournal, logg *logger.Logger, sales *metrics.SaleMetrics) (Service, error) {
	if sessions == nil {
		return nil, fmt.Errorf("session store required")
	}
	if upstream == nil {
		return nil, fmt.Errorf("sale submitter required")
	}
	if catalogSvc == nil {
		return nil, fmt.Errorf("catalog refresher required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		sessions: sessions,
		upstream: upstream,
		catalog:  catalogSvc,
		journal:  saleJournal,
		logg:     logg,
		sales:    sales,
		now:      time.Now,
	}, nil
}

type attempt struct {
	lines      []cart.Line
	totalCents int64
	payment    enums.PaymentMethod
	residentID *string
}

// Execute submits the terminal's cart for settlement.
//
// The session lock is held only while the attempt is latched and while the
// outcome is applied, never across the network call. Concurrent requests on
// the same terminal fail fast instead of queueing a second submission.
func (s *service) Execute(ctx context.Context, terminalID, operator string) (*Receipt, error) {
	session, err := s.sessions.Get(terminalID)
	if err != nil {
		return nil, err
	}

	var snap attempt
	session.With(func(st *cart.State) {
		if err = st.BeginCheckout(); err != nil {
			return
		}
		snap = attempt{
			lines:      st.Cart().Lines(),
			totalCents: st.Cart().TotalCents(),
			payment:    st.PaymentMethod(),
			residentID: st.ResidentID(),
		}
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			s.sales.IncCartRejection(string(typed.Code()))
		}
		return nil, err
	}

	started := s.now()
	submitErr := s.upstream.CreateSale(ctx, buildSalePayload(snap))
	settledAt := s.now()

	if submitErr != nil {
		// The cart and payment selection stay exactly as they were.
		session.With(func(st *cart.State) { st.FinishCheckout() })
		s.sales.ObserveCheckout(checkoutOutcome(submitErr), settledAt.Sub(started))
		s.logg.Error(ctx, "checkout failed", submitErr)
		return nil, submitErr
	}

	session.With(func(st *cart.State) {
		st.ResetAfterSale()
		st.FinishCheckout()
	})
	s.sales.ObserveCheckout("accepted", settledAt.Sub(started))

	// The snapshot only refreshes after the sale has resolved, so the next
	// customer sees the stock the backend just decremented.
	if err := s.catalog.Refresh(ctx); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "terminal_id", terminalID), "catalog refresh after sale failed")
	}

	receipt := &Receipt{
		TerminalID:    terminalID,
		Lines:         snap.lines,
		TotalCents:    snap.totalCents,
		PaymentMethod: snap.payment,
		ResidentID:    snap.residentID,
		SettledAt:     settledAt,
	}
	receipt.SaleID = s.recordSale(ctx, terminalID, operator, snap, settledAt)
	return receipt, nil
}

// recordSale journals the accepted sale. Journal trouble is logged and
// swallowed; the sale already happened.
func (s *service) recordSale(ctx context.Context, terminalID, operator string, snap attempt, settledAt time.Time) string {
	if s.journal == nil {
		return ""
	}

	items := make([]journal.EntryItem, 0, len(snap.lines))
	for _, line := range snap.lines {
		items = append(items, journal.EntryItem{
			ProductID:      line.ProductID,
			ProductName:    line.Name,
			Quantity:       line.Quantity,
			UnitPriceCents: line.UnitPriceCents,
		})
	}

	record, err := s.journal.Record(ctx, journal.Entry{
		TerminalID:    terminalID,
		Operator:      operator,
		PaymentMethod: snap.payment,
		ResidentID:    snap.residentID,
		TotalCents:    snap.totalCents,
		Items:         items,
		SettledAt:     settledAt,
	})
	if err != nil {
		s.logg.Error(ctx, "sale accepted but journaling failed", err)
		return ""
	}
	return record.ID.String()
}

func buildSalePayload(snap attempt) storeapi.CreateSaleInput {
	items := make([]storeapi.SaleItemInput, 0, len(snap.lines))
	for _, line := range snap.lines {
		items = append(items, storeapi.SaleItemInput{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}
	return storeapi.CreateSaleInput{
		Items:       items,
		PaymentType: snap.payment,
		ResidentID:  snap.residentID,
	}
}

func checkoutOutcome(err error) string {
	if pkgerrors.IsCode(err, pkgerrors.CodeRejectedOrder) {
		return "rejected"
	}
	return "failed"
}
