package domain

import (
	"strconv"
	"time"
)

// Product mirrors the catalog shape served by the backend API.
type Product struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Price         int64    `json:"price"`
	Images        []string `json:"images,omitempty"`
	Category      string   `json:"category,omitempty"`
	Colors        []string `json:"colors,omitempty"`
	Sizes         []string `json:"sizes,omitempty"`
	StockQuantity int      `json:"stock_quantity"`

	CreatedAt time.Time `json:"created_at,omitempty"`
}

// MainImage returns the first catalog image, or "" when none exist.
func (p Product) MainImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// Variant is one sellable color/size combination of a product.
type Variant struct {
	Color string `json:"color"`
	Size  string `json:"size"`
	SKU   string `json:"sku"`
}

// GenerateVariants expands colors x sizes into one variant per
// combination, in color-major order. A product with no colors (or no
// sizes) yields one variant per entry of the non-empty axis.
func GenerateVariants(productID int64, colors, sizes []string) []Variant {
	if len(colors) == 0 {
		colors = []string{""}
	}
	if len(sizes) == 0 {
		sizes = []string{""}
	}

	variants := make([]Variant, 0, len(colors)*len(sizes))
	for _, color := range colors {
		for _, size := range sizes {
			variants = append(variants, Variant{
				Color: color,
				Size:  size,
				SKU:   variantSKU(productID, color, size),
			})
		}
	}
	return variants
}

func variantSKU(productID int64, color, size string) string {
	sku := strconv.FormatInt(productID, 10)
	if color != "" {
		sku += "-" + color
	}
	if size != "" {
		sku += "-" + size
	}
	return sku
}
