package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/babychic/storefront/internal/checkout"
	"github.com/babychic/storefront/internal/upstream"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleCheckoutError maps checkout/upstream failures onto HTTP
// statuses. Backend failures are retry-able from the client's side:
// the cart was preserved.
func handleCheckoutError(w http.ResponseWriter, err error) {
	var vErr *checkout.ValidationError
	switch {
	case errors.As(err, &vErr):
		respondError(w, http.StatusBadRequest, "invalid_form", vErr.Error())
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "empty_cart", "cart is empty")
	case errors.Is(err, checkout.ErrSubmitInFlight):
		respondError(w, http.StatusConflict, "submit_in_flight", "an order submission is already in progress")
	case errors.Is(err, checkout.ErrBackendRejected):
		respondError(w, http.StatusBadGateway, "order_submission_failed", "order could not be submitted, please retry")
	default:
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func handleCatalogError(w http.ResponseWriter, err error) {
	var apiErr *upstream.APIError
	switch {
	case errors.Is(err, upstream.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "not_found", "product not found")
	case errors.Is(err, upstream.ErrUnavailable):
		respondError(w, http.StatusServiceUnavailable, "service_unavailable", "catalog backend unavailable")
	case errors.As(err, &apiErr):
		respondError(w, http.StatusBadGateway, "backend_error", apiErr.Message)
	default:
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
