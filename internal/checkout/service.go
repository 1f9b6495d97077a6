// Package checkout turns the current cart plus a customer form into
// exactly one outgoing artifact: an order booked on the backend API,
// or a WhatsApp deep link handed to the customer.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/babychic/storefront/internal/domain"
	"github.com/babychic/storefront/internal/pricing"
)

var (
	// ErrEmptyCart rejects a checkout with nothing in it.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrSubmitInFlight means another submission is still pending;
	// this is the duplicate-submit guard.
	ErrSubmitInFlight = errors.New("order submission already in flight")

	// ErrBackendRejected wraps a failed submission. The cart is left
	// untouched so the user can retry manually.
	ErrBackendRejected = errors.New("order submission failed")
)

// ValidationError names the first missing required checkout field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// Form is the customer/delivery input collected at checkout.
type Form struct {
	Customer domain.Customer
	Delivery domain.Delivery
	Method   domain.PaymentMethod
}

func (f Form) validate() error {
	switch {
	case f.Customer.FullName == "":
		return &ValidationError{Field: "customer.full_name"}
	case f.Customer.Phone == "":
		return &ValidationError{Field: "customer.phone"}
	case f.Delivery.City == "":
		return &ValidationError{Field: "delivery.city"}
	case f.Delivery.Address == "":
		return &ValidationError{Field: "delivery.address"}
	case !f.Method.Valid():
		return &ValidationError{Field: "payment.method"}
	}
	return nil
}

// CartStore is the slice of the cart the checkout needs.
type CartStore interface {
	Lines() []domain.CartLine
	Clear(ctx context.Context)
}

// OrderPlacer is the slice of the upstream client the checkout needs.
type OrderPlacer interface {
	CreateOrder(ctx context.Context, order domain.Order) (*domain.Confirmation, error)
}

type Service struct {
	cart    CartStore
	placer  OrderPlacer
	breaker *gobreaker.CircuitBreaker[*domain.Confirmation]
	rules   pricing.Rules
	logger  *zap.Logger

	whatsAppNumber string // E.164 without the leading +

	inFlight atomic.Bool
}

func NewService(cartStore CartStore, placer OrderPlacer, rules pricing.Rules, whatsAppNumber string, logger *zap.Logger) *Service {
	settings := gobreaker.Settings{
		Name:    "order-submission",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}

	return &Service{
		cart:           cartStore,
		placer:         placer,
		breaker:        gobreaker.NewCircuitBreaker[*domain.Confirmation](settings),
		rules:          rules,
		logger:         logger,
		whatsAppNumber: whatsAppNumber,
	}
}

// Submit books the order on the backend. On success the cart is
// cleared and the confirmation returned. On any failure the cart is
// left exactly as it was and the error surfaces to the caller; there
// is no automatic retry.
func (s *Service) Submit(ctx context.Context, form Form) (*domain.Confirmation, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, ErrSubmitInFlight
	}
	defer s.inFlight.Store(false)

	if err := form.validate(); err != nil {
		return nil, err
	}

	lines := s.cart.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	status := domain.CheckoutStatusPaymentSelect
	if !domain.CanTransitionTo(status, domain.CheckoutStatusSubmitPending) {
		return nil, fmt.Errorf("illegal checkout transition from %s", status)
	}

	order := buildOrder(lines, form)
	submissionID := uuid.NewString()
	s.logger.Info("submitting order",
		zap.String("submission_id", submissionID),
		zap.Int("line_count", len(lines)),
		zap.String("payment_method", string(form.Method)),
	)

	conf, err := s.breaker.Execute(func() (*domain.Confirmation, error) {
		return s.placer.CreateOrder(ctx, order)
	})
	if err != nil {
		s.logger.Warn("order submission failed, cart preserved",
			zap.String("submission_id", submissionID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", ErrBackendRejected, err)
	}

	s.cart.Clear(ctx)
	s.logger.Info("order confirmed",
		zap.String("submission_id", submissionID),
		zap.String("order_number", conf.OrderNumber),
		zap.Int64("total", conf.Total),
	)
	return conf, nil
}

func buildOrder(lines []domain.CartLine, form Form) domain.Order {
	items := make([]domain.OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, domain.OrderItem{
			ProductID:    l.ProductID,
			Quantity:     l.Quantity,
			SelectedSize: l.SelectedSize,
		})
	}
	return domain.Order{
		Items:    items,
		Customer: form.Customer,
		Delivery: form.Delivery,
		Payment:  domain.Payment{Method: form.Method},
	}
}

// Totals exposes the derived breakdown for the current cart under the
// service's pricing rules. Never stored, always recomputed.
func (s *Service) Totals() pricing.Totals {
	return pricing.Evaluate(s.cart.Lines(), s.rules)
}
