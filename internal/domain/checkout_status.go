package domain

type CheckoutStatus string

const (
	CheckoutStatusItemsReview     CheckoutStatus = "ITEMS_REVIEW"
	CheckoutStatusPaymentSelect   CheckoutStatus = "PAYMENT_METHOD_SELECT"
	CheckoutStatusSubmitPending   CheckoutStatus = "API_SUBMIT_PENDING"
	CheckoutStatusOrderConfirmed  CheckoutStatus = "ORDER_CONFIRMED"
	CheckoutStatusExternalHandoff CheckoutStatus = "EXTERNAL_HANDOFF"
)

// transitions is the coarse-grained checkout flow. A failed submission
// goes back to payment selection so the user can retry; the handoff to
// an external chat channel is terminal because the transaction finishes
// out-of-band.
var transitions = map[CheckoutStatus][]CheckoutStatus{
	CheckoutStatusItemsReview:   {CheckoutStatusPaymentSelect},
	CheckoutStatusPaymentSelect: {CheckoutStatusSubmitPending, CheckoutStatusExternalHandoff},
	CheckoutStatusSubmitPending: {CheckoutStatusOrderConfirmed, CheckoutStatusPaymentSelect},
}

func CanTransitionTo(from, to CheckoutStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s CheckoutStatus) IsTerminal() bool {
	return s == CheckoutStatusOrderConfirmed || s == CheckoutStatusExternalHandoff
}

// String representation (for logging)
func (s CheckoutStatus) String() string {
	return string(s)
}
