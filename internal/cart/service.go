package cart

import (
	"context"
	"fmt"

	"github.com/condostore/pos-backend/internal/catalog"
	"github.com/condostore/pos-backend/pkg/enums"
	pkgerrors "github.com/condostore/pos-backend/pkg/errors"
	"github.com/condostore/pos-backend/pkg/logger"
	"github.com/condostore/pos-backend/pkg/metrics"
)

type catalogReader interface {
	Get(ctx context.Context, productID string) (*catalog.Item, error)
}

type residentChecker interface {
	CheckCreditEligible(ctx context.Context, residentID string) error
}

// View is the register state returned to the terminal after every mutation.
type View struct {
	TerminalID    string
	Lines         []Line
	TotalCents    int64
	PaymentMethod enums.PaymentMethod
	ResidentID    *string
	Submitting    bool
}

// Service exposes the per-terminal cart operations.
type Service interface {
	AddItem(ctx context.Context, terminalID, productID string) (*View, error)
	RemoveItem(ctx context.Context, terminalID, productID string) (*View, error)
	Clear(ctx context.Context, terminalID string) (*View, error)
	SetPayment(ctx context.Context, terminalID string, method enums.PaymentMethod, residentID *string) (*View, error)
	Get(ctx context.Context, terminalID string) (*View, error)
}

type service struct {
	sessions  *Store
	catalog   catalogReader
	residents residentChecker
	logg      *logger.Logger
	sales     *metrics.SaleMetrics
}

// NewService builds the cart service.
func NewService(sessions *Store, catalogSvc catalogReader, residents residentChecker, logg *logger.Logger, sales *metrics.SaleMetrics) (Service, error) {
	if sessions == nil {
		return nil, fmt.Errorf("session store required")
	}
	if catalogSvc == nil {
		return nil, fmt.Errorf("catalog reader required")
	}
	if residents == nil {
		return nil, fmt.Errorf("resident checker required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		sessions:  sessions,
		catalog:   catalogSvc,
		residents: residents,
		logg:      logg,
		sales:     sales,
	}, nil
}

// AddItem adds one unit of the product using the stock last observed in the
// catalog snapshot.
func (s *service) AddItem(ctx context.Context, terminalID, productID string) (*View, error) {
	item, err := s.catalog.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.Get(terminalID)
	if err != nil {
		return nil, err
	}

	var view *View
	session.With(func(st *State) {
		if st.Submitting() {
			err = pkgerrors.New(pkgerrors.CodeCheckoutInProgress, "cart is locked while checkout is in progress")
			return
		}
		if err = st.Cart().AddItem(*item); err != nil {
			return
		}
		view = snapshot(session.TerminalID(), st)
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			s.sales.IncCartRejection(string(typed.Code()))
		}
		return nil, err
	}
	return view, nil
}

// RemoveItem drops the whole line for the product. Absent products are a
// no-op that still returns the current view.
func (s *service) RemoveItem(ctx context.Context, terminalID, productID string) (*View, error) {
	session, err := s.sessions.Get(terminalID)
	if err != nil {
		return nil, err
	}

	var view *View
	session.With(func(st *State) {
		if st.Submitting() {
			err = pkgerrors.New(pkgerrors.CodeCheckoutInProgress, "cart is locked while checkout is in progress")
			return
		}
		st.Cart().RemoveItem(productID)
		view = snapshot(session.TerminalID(), st)
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// Clear empties the cart and resets the payment selection.
func (s *service) Clear(ctx context.Context, terminalID string) (*View, error) {
	session, err := s.sessions.Get(terminalID)
	if err != nil {
		return nil, err
	}

	var view *View
	session.With(func(st *State) {
		if st.Submitting() {
			err = pkgerrors.New(pkgerrors.CodeCheckoutInProgress, "cart is locked while checkout is in progress")
			return
		}
		st.ResetAfterSale()
		view = snapshot(session.TerminalID(), st)
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// SetPayment selects the settlement method and, optionally, the resident the
// backend should bill. A blocked resident account cannot be attached.
func (s *service) SetPayment(ctx context.Context, terminalID string, method enums.PaymentMethod, residentID *string) (*View, error) {
	if residentID != nil {
		if err := s.residents.CheckCreditEligible(ctx, *residentID); err != nil {
			return nil, err
		}
	}

	session, err := s.sessions.Get(terminalID)
	if err != nil {
		return nil, err
	}

	var view *View
	session.With(func(st *State) {
		if st.Submitting() {
			err = pkgerrors.New(pkgerrors.CodeCheckoutInProgress, "payment is locked while checkout is in progress")
			return
		}
		if err = st.SetPaymentMethod(method); err != nil {
			return
		}
		st.SetResident(residentID)
		view = snapshot(session.TerminalID(), st)
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// Get returns the current register view without mutating anything.
func (s *service) Get(ctx context.Context, terminalID string) (*View, error) {
	session, err := s.sessions.Get(terminalID)
	if err != nil {
		return nil, err
	}

	var view *View
	session.With(func(st *State) {
		view = snapshot(session.TerminalID(), st)
	})
	return view, nil
}

func snapshot(terminalID string, st *State) *View {
	return &View{
		TerminalID:    terminalID,
		Lines:         st.Cart().Lines(),
		TotalCents:    st.Cart().TotalCents(),
		PaymentMethod: st.PaymentMethod(),
		ResidentID:    st.ResidentID(),
		Submitting:    st.Submitting(),
	}
}
