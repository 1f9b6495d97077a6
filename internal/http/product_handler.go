package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/babychic/storefront/internal/domain"
)

// Catalog is the slice of the catalog service the handlers need.
type Catalog interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
}

type ProductHandler struct {
	catalog Catalog
}

func NewProductHandler(catalog Catalog) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		handleCatalogError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"products": products})
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "id must be a positive integer")
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		handleCatalogError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"product": product})
}

type GenerateVariantsRequestDTO struct {
	ProductID int64    `json:"product_id"`
	Colors    []string `json:"colors"`
	Sizes     []string `json:"sizes"`
}

// GenerateVariants backs the admin product editor: it expands
// colors x sizes into one variant record per combination.
func (h *ProductHandler) GenerateVariants(w http.ResponseWriter, r *http.Request) {
	var req GenerateVariantsRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}

	variants := domain.GenerateVariants(req.ProductID, req.Colors, req.Sizes)
	respondJSON(w, http.StatusOK, map[string]interface{}{"variants": variants})
}
