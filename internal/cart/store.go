// Package cart holds the authoritative in-memory cart and mirrors it
// to durable local storage on every mutation.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/babychic/storefront/internal/domain"
	"github.com/babychic/storefront/internal/pricing"
	"github.com/babychic/storefront/internal/storage"
)

// DefaultStorageKey is where the serialized line list lives in the
// blob store. No other component writes to this key.
const DefaultStorageKey = "babychic-cart"

// Store is the process-wide cart. One instance is created at startup
// and injected into whatever needs it. A mutex guards the line list
// because HTTP handlers mutate it concurrently.
//
// Persistence failures are logged, never returned: losing a mirror
// write costs at most the last mutation after a crash, and the cart
// must never reject a user action because the disk hiccupped.
type Store struct {
	mu    sync.Mutex
	lines []domain.CartLine

	blobs  storage.BlobStore
	key    string
	logger *zap.Logger
}

// NewStore rehydrates the cart from the blob store. A missing key
// means a fresh cart. Malformed persisted data is discarded with a
// warning and the store starts empty; rehydration never fails startup.
func NewStore(ctx context.Context, blobs storage.BlobStore, key string, logger *zap.Logger) *Store {
	if key == "" {
		key = DefaultStorageKey
	}
	s := &Store{
		blobs:  blobs,
		key:    key,
		logger: logger,
	}

	data, err := blobs.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			logger.Warn("cart rehydration failed, starting empty", zap.Error(err))
		}
		return s
	}

	var lines []domain.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		logger.Warn("discarding corrupt persisted cart", zap.Error(err))
		return s
	}

	s.lines = lines
	return s
}

// AddItem merges by (productID, selectedSize): a repeat add of the
// same pair increments the existing line's quantity, never creating a
// duplicate. Quantity below 1 defaults to 1. The new state is
// persisted before returning.
func (s *Store) AddItem(ctx context.Context, product domain.Product, selectedSize string, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].SameLine(product.ID, selectedSize) {
			s.lines[i].Quantity += quantity
			s.persist(ctx)
			return
		}
	}

	s.lines = append(s.lines, domain.CartLine{
		ProductID:    product.ID,
		Quantity:     quantity,
		UnitPrice:    product.Price,
		SelectedSize: selectedSize,
		Name:         product.Name,
		Image:        product.MainImage(),
		Category:     product.Category,
	})
	s.persist(ctx)
}

// RemoveItem is product-scoped: it drops every size-variant line of
// the product. Removing an absent product is a no-op.
func (s *Store) RemoveItem(ctx context.Context, productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.lines[:0]
	for _, l := range s.lines {
		if l.ProductID != productID {
			kept = append(kept, l)
		}
	}
	if len(kept) == len(s.lines) {
		return
	}
	s.lines = kept
	s.persist(ctx)
}

// UpdateQuantity sets the quantity on every line of the product. A
// quantity of zero or below removes the line(s) instead of keeping
// them at zero; no error is raised for negative input.
func (s *Store) UpdateQuantity(ctx context.Context, productID int64, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	kept := s.lines[:0]
	for _, l := range s.lines {
		if l.ProductID == productID {
			changed = true
			if quantity <= 0 {
				continue
			}
			l.Quantity = quantity
		}
		kept = append(kept, l)
	}
	if !changed {
		return
	}
	s.lines = kept
	s.persist(ctx)
}

// Clear empties the cart unconditionally.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.lines) == 0 {
		return
	}
	s.lines = nil
	s.persist(ctx)
}

// Lines returns a snapshot copy of the current line list.
func (s *Store) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]domain.CartLine, len(s.lines))
	copy(snapshot, s.lines)
	return snapshot
}

// Total returns the current subtotal.
func (s *Store) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pricing.Subtotal(s.lines)
}

// ItemCount returns the total unit count across all lines.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Cart{Lines: s.lines}.ItemCount()
}

// persist mirrors the full line list to the blob store. Callers hold
// the mutex.
func (s *Store) persist(ctx context.Context) {
	data, err := json.Marshal(s.lines)
	if err != nil {
		s.logger.Error("failed to marshal cart", zap.Error(err))
		return
	}
	if err := s.blobs.Put(ctx, s.key, data); err != nil {
		s.logger.Warn("failed to persist cart", zap.Error(err))
	}
}
