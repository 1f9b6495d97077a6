package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/babychic/storefront/internal/domain"
	"github.com/babychic/storefront/internal/pricing"
)

// amounts formats FCFA amounts with French digit grouping, the way the
// shop writes prices ("15 000 FCFA").
var amounts = message.NewPrinter(language.French)

// WhatsAppLink builds the wa.me deep link carrying the order summary.
// This is a handoff, not a submission: the cart is NOT cleared and no
// confirmation exists until a human closes the sale on the other end.
func (s *Service) WhatsAppLink(form Form) (string, error) {
	if err := form.validate(); err != nil {
		return "", err
	}

	lines := s.cart.Lines()
	if len(lines) == 0 {
		return "", ErrEmptyCart
	}

	if !domain.CanTransitionTo(domain.CheckoutStatusPaymentSelect, domain.CheckoutStatusExternalHandoff) {
		return "", fmt.Errorf("illegal checkout transition to %s", domain.CheckoutStatusExternalHandoff)
	}

	text := orderSummary(lines, form, s.rules)
	return "https://wa.me/" + s.whatsAppNumber + "?text=" + url.QueryEscape(text), nil
}

// orderSummary is read by a human, not parsed by a machine.
func orderSummary(lines []domain.CartLine, form Form, rules pricing.Rules) string {
	totals := pricing.Evaluate(lines, rules)

	var b strings.Builder
	b.WriteString("Nouvelle commande BabyChic\n\n")

	for _, l := range lines {
		b.WriteString("- ")
		b.WriteString(l.Name)
		if l.SelectedSize != "" {
			b.WriteString(" (")
			b.WriteString(l.SelectedSize)
			b.WriteString(")")
		}
		amounts.Fprintf(&b, " x%d : %d FCFA\n", l.Quantity, l.UnitPrice*int64(l.Quantity))
	}

	amounts.Fprintf(&b, "\nSous-total : %d FCFA\n", totals.Subtotal)
	if totals.DeliveryFee == 0 {
		b.WriteString("Livraison : Gratuite\n")
	} else {
		amounts.Fprintf(&b, "Livraison : %d FCFA\n", totals.DeliveryFee)
	}
	amounts.Fprintf(&b, "Total : %d FCFA\n", totals.GrandTotal)

	b.WriteString("\nClient : ")
	b.WriteString(form.Customer.FullName)
	b.WriteString("\nTel : ")
	b.WriteString(form.Customer.Phone)
	b.WriteString("\nLivraison : ")
	b.WriteString(form.Delivery.Address)
	b.WriteString(", ")
	b.WriteString(form.Delivery.City)
	b.WriteString("\n")

	return b.String()
}
