package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/babychic/storefront/internal/checkout"
	"github.com/babychic/storefront/internal/domain"
)

// Checkout is the slice of the checkout service the handler needs.
type Checkout interface {
	Submit(ctx context.Context, form checkout.Form) (*domain.Confirmation, error)
	WhatsAppLink(form checkout.Form) (string, error)
}

type CheckoutHandler struct {
	checkout Checkout
}

func NewCheckoutHandler(c Checkout) *CheckoutHandler {
	return &CheckoutHandler{checkout: c}
}

type CheckoutRequestDTO struct {
	Customer domain.Customer `json:"customer"`
	Delivery domain.Delivery `json:"delivery"`
	Payment  domain.Payment  `json:"payment"`
}

func (dto CheckoutRequestDTO) form() checkout.Form {
	return checkout.Form{
		Customer: dto.Customer,
		Delivery: dto.Delivery,
		Method:   dto.Payment.Method,
	}
}

// Submit books the order on the backend API. A failure leaves the
// cart untouched and returns a retry-able error.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	conf, err := h.checkout.Submit(r.Context(), req.form())
	if err != nil {
		handleCheckoutError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{"order": conf})
}

// WhatsApp returns the wa.me deep link for chat-based ordering. The
// cart is not cleared; the sale completes out-of-band.
func (h *CheckoutHandler) WhatsApp(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	form := req.form()
	if form.Method == "" {
		form.Method = domain.PaymentWhatsApp
	}

	link, err := h.checkout.WhatsAppLink(form)
	if err != nil {
		handleCheckoutError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"url": link})
}
