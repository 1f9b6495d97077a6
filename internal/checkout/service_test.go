package checkout

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/babychic/storefront/internal/domain"
	"github.com/babychic/storefront/internal/pricing"
)

type mockCart struct {
	m     sync.Mutex
	lines []domain.CartLine
}

func (m *mockCart) Lines() []domain.CartLine {
	m.m.Lock()
	defer m.m.Unlock()
	snapshot := make([]domain.CartLine, len(m.lines))
	copy(snapshot, m.lines)
	return snapshot
}

func (m *mockCart) Clear(context.Context) {
	m.m.Lock()
	defer m.m.Unlock()
	m.lines = nil
}

func (m *mockCart) itemCount() int {
	count := 0
	for _, l := range m.Lines() {
		count += l.Quantity
	}
	return count
}

type mockPlacer struct {
	conf    *domain.Confirmation
	err     error
	entered chan struct{} // closed once CreateOrder is running
	gate    chan struct{} // when set, CreateOrder blocks until closed
	orders  []domain.Order
	mu      sync.Mutex
}

func (m *mockPlacer) CreateOrder(_ context.Context, order domain.Order) (*domain.Confirmation, error) {
	if m.entered != nil {
		close(m.entered)
	}
	if m.gate != nil {
		<-m.gate
	}
	m.mu.Lock()
	m.orders = append(m.orders, order)
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.conf, nil
}

var testRules = pricing.Rules{FreeShippingThreshold: 25000, FlatDeliveryFee: 2500}

func validForm() Form {
	return Form{
		Customer: domain.Customer{FullName: "Awa N.", Phone: "+237690000001"},
		Delivery: domain.Delivery{City: "Douala", Address: "Akwa, rue 12"},
		Method:   domain.PaymentOrangeMoney,
	}
}

func cartWith(lines ...domain.CartLine) *mockCart {
	return &mockCart{lines: lines}
}

func bodyLine(qty int) domain.CartLine {
	return domain.CartLine{ProductID: 1, Name: "Body", UnitPrice: 15000, Quantity: qty, SelectedSize: "3M"}
}

func TestSubmit_Success_ClearsCart(t *testing.T) {
	cart := cartWith(bodyLine(2))
	placer := &mockPlacer{conf: &domain.Confirmation{OrderNumber: "BC-0042", Total: 30000}}
	svc := NewService(cart, placer, testRules, "237690000000", zap.NewNop())

	conf, err := svc.Submit(context.Background(), validForm())
	require.NoError(t, err)
	assert.Equal(t, "BC-0042", conf.OrderNumber)
	assert.Empty(t, cart.Lines())

	require.Len(t, placer.orders, 1)
	order := placer.orders[0]
	require.Len(t, order.Items, 1)
	assert.Equal(t, int64(1), order.Items[0].ProductID)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, "3M", order.Items[0].SelectedSize)
	assert.Equal(t, domain.PaymentOrangeMoney, order.Payment.Method)
}

func TestSubmit_Failure_PreservesCart(t *testing.T) {
	cart := cartWith(bodyLine(2), domain.CartLine{ProductID: 2, Name: "Chaussons", UnitPrice: 8000, Quantity: 1})
	placer := &mockPlacer{err: assert.AnError}
	svc := NewService(cart, placer, testRules, "237690000000", zap.NewNop())

	countBefore := cart.itemCount()
	totalBefore := pricing.Subtotal(cart.Lines())

	_, err := svc.Submit(context.Background(), validForm())
	require.ErrorIs(t, err, ErrBackendRejected)

	assert.Equal(t, countBefore, cart.itemCount())
	assert.Equal(t, totalBefore, pricing.Subtotal(cart.Lines()))
}

func TestSubmit_EmptyCart(t *testing.T) {
	svc := NewService(cartWith(), &mockPlacer{}, testRules, "237690000000", zap.NewNop())

	_, err := svc.Submit(context.Background(), validForm())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestSubmit_MissingFields(t *testing.T) {
	svc := NewService(cartWith(bodyLine(1)), &mockPlacer{}, testRules, "237690000000", zap.NewNop())

	form := validForm()
	form.Customer.Phone = ""

	_, err := svc.Submit(context.Background(), form)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "customer.phone", vErr.Field)
}

func TestSubmit_DuplicateSubmitGuard(t *testing.T) {
	cart := cartWith(bodyLine(1))
	gate := make(chan struct{})
	entered := make(chan struct{})
	placer := &mockPlacer{conf: &domain.Confirmation{OrderNumber: "BC-1"}, gate: gate, entered: entered}
	svc := NewService(cart, placer, testRules, "237690000000", zap.NewNop())

	done := make(chan error, 1)
	go func() {
		_, err := svc.Submit(context.Background(), validForm())
		done <- err
	}()

	// Wait until the first submission is actually in flight.
	<-entered

	_, err := svc.Submit(context.Background(), validForm())
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(gate)
	require.NoError(t, <-done)
}

func TestTotals(t *testing.T) {
	svc := NewService(cartWith(bodyLine(2)), &mockPlacer{}, testRules, "237690000000", zap.NewNop())

	totals := svc.Totals()
	assert.Equal(t, int64(30000), totals.Subtotal)
	assert.Equal(t, int64(0), totals.DeliveryFee)
	assert.Equal(t, int64(30000), totals.GrandTotal)
}

func TestWhatsAppLink(t *testing.T) {
	cart := cartWith(bodyLine(2))
	svc := NewService(cart, &mockPlacer{}, testRules, "237690000000", zap.NewNop())

	link, err := svc.WhatsAppLink(validForm())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "https://wa.me/237690000000?text="), link)

	u, err := url.Parse(link)
	require.NoError(t, err)
	text := u.Query().Get("text")
	assert.Contains(t, text, "Body (3M) x2")
	assert.Contains(t, text, "FCFA")
	assert.Contains(t, text, "Awa N.")
	assert.Contains(t, text, "Douala")

	// Handoff is fire-and-forget: the cart survives.
	assert.Len(t, cart.Lines(), 1)
}

func TestWhatsAppLink_EmptyCart(t *testing.T) {
	svc := NewService(cartWith(), &mockPlacer{}, testRules, "237690000000", zap.NewNop())

	_, err := svc.WhatsAppLink(validForm())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutStatus_Transitions(t *testing.T) {
	assert.True(t, domain.CanTransitionTo(domain.CheckoutStatusItemsReview, domain.CheckoutStatusPaymentSelect))
	assert.True(t, domain.CanTransitionTo(domain.CheckoutStatusPaymentSelect, domain.CheckoutStatusSubmitPending))
	assert.True(t, domain.CanTransitionTo(domain.CheckoutStatusPaymentSelect, domain.CheckoutStatusExternalHandoff))
	assert.True(t, domain.CanTransitionTo(domain.CheckoutStatusSubmitPending, domain.CheckoutStatusOrderConfirmed))
	assert.True(t, domain.CanTransitionTo(domain.CheckoutStatusSubmitPending, domain.CheckoutStatusPaymentSelect))

	assert.False(t, domain.CanTransitionTo(domain.CheckoutStatusItemsReview, domain.CheckoutStatusSubmitPending))
	assert.False(t, domain.CanTransitionTo(domain.CheckoutStatusOrderConfirmed, domain.CheckoutStatusPaymentSelect))
	assert.True(t, domain.CheckoutStatusOrderConfirmed.IsTerminal())
	assert.True(t, domain.CheckoutStatusExternalHandoff.IsTerminal())
}
