package pricing

import (
	"testing"

	"github.com/babychic/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
)

var testRules = Rules{FreeShippingThreshold: 25000, FlatDeliveryFee: 2500}

func TestSubtotal(t *testing.T) {
	lines := []domain.CartLine{
		{ProductID: 1, UnitPrice: 15000, Quantity: 2},
		{ProductID: 2, UnitPrice: 8000, Quantity: 1},
	}
	assert.Equal(t, int64(38000), Subtotal(lines))
}

func TestSubtotal_EmptyCart(t *testing.T) {
	assert.Equal(t, int64(0), Subtotal(nil))
}

func TestDeliveryFee_ThresholdBoundary(t *testing.T) {
	// The threshold itself is inclusive for free shipping.
	assert.Equal(t, int64(0), DeliveryFee(25000, testRules))
	assert.Equal(t, int64(2500), DeliveryFee(24999, testRules))
}

func TestDeliveryFee_AboveThreshold(t *testing.T) {
	assert.Equal(t, int64(0), DeliveryFee(100000, testRules))
}

func TestEvaluate_StandardOrder(t *testing.T) {
	lines := []domain.CartLine{
		{ProductID: 1, Name: "Body", UnitPrice: 15000, Quantity: 2},
	}

	totals := Evaluate(lines, testRules)

	assert.Equal(t, int64(30000), totals.Subtotal)
	assert.Equal(t, int64(0), totals.DeliveryFee)
	assert.Equal(t, int64(30000), totals.GrandTotal)
}

func TestEvaluate_UnderThresholdOrder(t *testing.T) {
	lines := []domain.CartLine{
		{ProductID: 2, Name: "Chaussons", UnitPrice: 8000, Quantity: 1},
	}

	totals := Evaluate(lines, testRules)

	assert.Equal(t, int64(8000), totals.Subtotal)
	assert.Equal(t, int64(2500), totals.DeliveryFee)
	assert.Equal(t, int64(10500), totals.GrandTotal)
}
