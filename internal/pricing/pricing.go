// Package pricing computes order totals from a cart snapshot. All
// functions are pure: no I/O, safe to call on every request.
package pricing

import "github.com/babychic/storefront/internal/domain"

// Rules holds the delivery pricing configuration. Amounts are whole
// FCFA units. There is exactly one instance of these values in the
// process, loaded from config at startup.
type Rules struct {
	FreeShippingThreshold int64
	FlatDeliveryFee       int64
}

// DefaultRules are the storefront defaults.
var DefaultRules = Rules{
	FreeShippingThreshold: 25000,
	FlatDeliveryFee:       2500,
}

// Subtotal sums unitPrice * quantity over all lines.
func Subtotal(lines []domain.CartLine) int64 {
	var total int64
	for _, l := range lines {
		total += l.UnitPrice * int64(l.Quantity)
	}
	return total
}

// DeliveryFee is zero at or above the free-shipping threshold and the
// flat fee below it. The threshold itself ships free.
func DeliveryFee(subtotal int64, rules Rules) int64 {
	if subtotal >= rules.FreeShippingThreshold {
		return 0
	}
	return rules.FlatDeliveryFee
}

// GrandTotal adds the delivery fee to the subtotal.
func GrandTotal(subtotal, deliveryFee int64) int64 {
	return subtotal + deliveryFee
}

// Totals is the full derived breakdown for a cart snapshot. Derived
// values are never stored; they are recomputed from the lines on every
// call.
type Totals struct {
	Subtotal    int64 `json:"subtotal"`
	DeliveryFee int64 `json:"delivery_fee"`
	GrandTotal  int64 `json:"grand_total"`
}

// Evaluate computes the totals for a set of lines under the given rules.
func Evaluate(lines []domain.CartLine, rules Rules) Totals {
	subtotal := Subtotal(lines)
	fee := DeliveryFee(subtotal, rules)
	return Totals{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		GrandTotal:  GrandTotal(subtotal, fee),
	}
}
