package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/babychic/storefront/internal/cart"
	"github.com/babychic/storefront/internal/domain"
	"github.com/babychic/storefront/internal/pricing"
	"github.com/babychic/storefront/internal/upstream"
)

type CartHandler struct {
	store   *cart.Store
	catalog Catalog
	rules   pricing.Rules
}

func NewCartHandler(store *cart.Store, catalog Catalog, rules pricing.Rules) *CartHandler {
	return &CartHandler{
		store:   store,
		catalog: catalog,
		rules:   rules,
	}
}

type AddItemRequestDTO struct {
	ProductID    int64  `json:"product_id"`
	Quantity     int    `json:"quantity"`
	SelectedSize string `json:"selected_size,omitempty"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartResponseDTO struct {
	Lines     []domain.CartLine `json:"lines"`
	ItemCount int               `json:"item_count"`
	Totals    pricing.Totals    `json:"totals"`
}

func (h *CartHandler) cartResponse() CartResponseDTO {
	lines := h.store.Lines()
	return CartResponseDTO{
		Lines:     lines,
		ItemCount: h.store.ItemCount(),
		Totals:    pricing.Evaluate(lines, h.rules),
	}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.cartResponse())
}

// GetQuote returns only the derived totals for the current cart.
func (h *CartHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, pricing.Evaluate(h.store.Lines(), h.rules))
}

// AddItem resolves the product against the catalog so the cart line
// carries a trusted price and display snapshot, then merges it in.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}
	if req.Quantity < 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, upstream.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		handleCatalogError(w, err)
		return
	}

	h.store.AddItem(r.Context(), *product, req.SelectedSize, req.Quantity)
	respondJSON(w, http.StatusCreated, h.cartResponse())
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be at most 99")
		return
	}

	// Zero and negative quantities remove the line; that is the
	// normalization policy, not an error.
	h.store.UpdateQuantity(r.Context(), productID, req.Quantity)
	respondJSON(w, http.StatusOK, h.cartResponse())
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	h.store.RemoveItem(r.Context(), productID)
	respondJSON(w, http.StatusOK, h.cartResponse())
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.store.Clear(r.Context())
	respondJSON(w, http.StatusOK, h.cartResponse())
}

func productIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "product_id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return 0, false
	}
	return id, true
}
