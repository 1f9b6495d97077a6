package domain

// CartLine is one distinct purchasable selection in the cart. A line is
// keyed by (ProductID, SelectedSize): adding the same pair again merges
// into the existing line instead of creating a duplicate.
//
// Name, Image and Category are a display snapshot copied from catalog
// data at add-time; they are not revalidated afterward.
type CartLine struct {
	ProductID    int64  `json:"product_id"`
	Quantity     int    `json:"quantity"`
	UnitPrice    int64  `json:"unit_price"`
	SelectedSize string `json:"selected_size,omitempty"`
	Name         string `json:"name"`
	Image        string `json:"image,omitempty"`
	Category     string `json:"category,omitempty"`
}

// SameLine reports whether two lines share the (product, size) identity.
func (l CartLine) SameLine(productID int64, size string) bool {
	return l.ProductID == productID && l.SelectedSize == size
}

// Cart is an ordered list of lines. Insertion order is preserved for
// display; pricing does not depend on it.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// ItemCount returns the total unit count across all lines, not the
// number of lines.
func (c Cart) ItemCount() int {
	count := 0
	for _, l := range c.Lines {
		count += l.Quantity
	}
	return count
}
