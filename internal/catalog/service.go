// Package catalog serves product data from the backend API through a
// short-lived cache.
package catalog

import (
	"context"
	"errors"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/babychic/storefront/internal/cache"
	"github.com/babychic/storefront/internal/domain"
)

const listKey = "products"

// ProductSource is the slice of the upstream client the catalog needs.
type ProductSource interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
}

type Service struct {
	source ProductSource
	cache  cache.ProductCache
	sfg    singleflight.Group // collapses concurrent cache misses
	logger *zap.Logger
}

func NewService(source ProductSource, productCache cache.ProductCache, logger *zap.Logger) *Service {
	return &Service{
		source: source,
		cache:  productCache,
		logger: logger,
	}
}

// ListProducts returns the catalog, from cache when fresh. Cache
// failures are logged and bypassed; only the upstream call can fail
// the request.
func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	v, err, _ := s.sfg.Do(listKey, func() (interface{}, error) {
		products, err := s.cache.Get(ctx, listKey)
		if err == nil {
			return products, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("catalog cache get failed", zap.Error(err))
		}

		products, err = s.source.ListProducts(ctx)
		if err != nil {
			return nil, err
		}

		go func() {
			if err := s.cache.Set(context.Background(), listKey, products); err != nil {
				s.logger.Warn("catalog cache set failed", zap.Error(err))
			}
		}()

		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Product), nil
}

// GetProduct returns one product, preferring the cached catalog list
// before asking the backend.
func (s *Service) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	if products, err := s.cache.Get(ctx, listKey); err == nil {
		for i := range products {
			if products[i].ID == id {
				return &products[i], nil
			}
		}
	}

	key := "product:" + strconv.FormatInt(id, 10)
	v, err, _ := s.sfg.Do(key, func() (interface{}, error) {
		return s.source.GetProduct(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Product), nil
}
