package cart

import (
	"sync"
	"time"

	"github.com/condostore/pos-backend/pkg/enums"
	pkgerrors "github.com/condostore/pos-backend/pkg/errors"
)

// Session is the per-terminal register state: the cart, the selected payment
// method and the single-flight checkout latch. All access goes through the
// session mutex, so a terminal behaves like the single-operator register it
// models even when requests race.
type Session struct {
	mu sync.Mutex

	terminalID string
	cart       *Cart
	payment    enums.PaymentMethod
	residentID *string

	submitting bool
	lastSeen   time.Time
}

func newSession(terminalID string, now time.Time) *Session {
	return &Session{
		terminalID: terminalID,
		cart:       New(),
		payment:    enums.PaymentMethodCash,
		lastSeen:   now,
	}
}

// TerminalID identifies the register this session belongs to.
func (s *Session) TerminalID() string {
	return s.terminalID
}

// With runs fn while holding the session lock. The callback must not call
// back into the session.
func (s *Session) With(fn func(state *State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	state := &State{session: s}
	fn(state)
}

// State is the locked view of a session handed to With callbacks.
type State struct {
	session *Session
}

// Cart gives direct access to the cart while the lock is held.
func (st *State) Cart() *Cart {
	return st.session.cart
}

// PaymentMethod returns the currently selected settlement method.
func (st *State) PaymentMethod() enums.PaymentMethod {
	return st.session.payment
}

// SetPaymentMethod switches the settlement method. A nil resident is kept;
// the resident link only matters when the backend settles on credit.
func (st *State) SetPaymentMethod(method enums.PaymentMethod) error {
	if !method.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown payment method")
	}
	st.session.payment = method
	return nil
}

// ResidentID returns the resident attached for credit settlement, if any.
func (st *State) ResidentID() *string {
	return st.session.residentID
}

// SetResident attaches or detaches the resident for this sale.
func (st *State) SetResident(residentID *string) {
	st.session.residentID = residentID
}

// Submitting reports whether a checkout is in flight.
func (st *State) Submitting() bool {
	return st.session.submitting
}

// BeginCheckout flips the session into the submitting state. At most one
// checkout is in flight per terminal.
func (st *State) BeginCheckout() error {
	if st.session.submitting {
		return pkgerrors.New(pkgerrors.CodeCheckoutInProgress, "a checkout is already in progress")
	}
	if st.session.cart.IsEmpty() {
		return pkgerrors.New(pkgerrors.CodeEmptyCart, "cart is empty")
	}
	st.session.submitting = true
	return nil
}

// FinishCheckout returns the session to idle regardless of the outcome.
func (st *State) FinishCheckout() {
	st.session.submitting = false
}

// ResetAfterSale clears the register for the next customer: empty cart,
// cash selected, no resident attached.
func (st *State) ResetAfterSale() {
	st.session.cart.Clear()
	st.session.payment = enums.PaymentMethodCash
	st.session.residentID = nil
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}
