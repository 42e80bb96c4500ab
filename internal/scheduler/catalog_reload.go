package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/storefront/internal/catalog"
	"github.com/MrSnakeDoc/storefront/internal/domain"
	"github.com/MrSnakeDoc/storefront/internal/logger"
	"github.com/MrSnakeDoc/storefront/internal/store"
	"github.com/MrSnakeDoc/storefront/internal/store/cache"
)

// CatalogReloader handles periodic seeding of the product catalog from
// products.yaml. Seeded products are upserted by SKU, so operator edits to
// the file flow into the store without touching API-created products.
type CatalogReloader struct {
	loader        *catalog.Loader
	mapper        *catalog.Mapper
	store         store.DocumentStore
	cache         *cache.Cache
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

func NewCatalogReloader(
	catalogFile string,
	docs store.DocumentStore,
	listingCache *cache.Cache,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *CatalogReloader {
	return &CatalogReloader{
		loader:        catalog.NewLoader(catalogFile),
		mapper:        catalog.NewMapper(),
		store:         docs,
		cache:         listingCache,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start seeds the catalog once, then keeps reloading on the interval or on a
// manual trigger until the context is cancelled.
func (cr *CatalogReloader) Start(ctx context.Context) error {
	if err := cr.Reload(ctx); err != nil {
		return fmt.Errorf("initial catalog load failed: %w", err)
	}

	ticker := time.NewTicker(cr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := cr.Reload(ctx); err != nil {
					cr.logger.Error("failed to reload catalog", logger.Error(err))
				}
			case <-cr.manualTrigger:
				cr.logger.Info("manual catalog reload triggered")
				if err := cr.Reload(ctx); err != nil {
					cr.logger.Error("failed to reload catalog", logger.Error(err))
				}
			case <-cr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

func (cr *CatalogReloader) Stop() {
	close(cr.stopCh)
}

// Reload parses products.yaml and upserts every entry by SKU.
func (cr *CatalogReloader) Reload(ctx context.Context) error {
	file, err := cr.loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	products, err := cr.mapper.Map(file, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to map catalog: %w", err)
	}

	created, updated := 0, 0
	for _, p := range products {
		wasCreated, err := cr.upsert(ctx, p)
		if err != nil {
			return err
		}
		if wasCreated {
			created++
		} else {
			updated++
		}
	}

	cr.logger.Info("catalog reloaded",
		logger.Int("created", created),
		logger.Int("updated", updated))

	if cr.cache != nil {
		if err := cr.cache.InvalidateListings(ctx); err != nil {
			cr.logger.Warn("failed to invalidate listing cache", logger.Error(err))
		}
	}
	return nil
}

func (cr *CatalogReloader) upsert(ctx context.Context, p domain.Product) (bool, error) {
	var existing domain.Product
	err := cr.store.FindOne(ctx, store.Products, store.Query{
		Equals: map[string]any{"sku": p.SKU},
	}, &existing)

	switch {
	case err == nil:
		// Seed wins for catalog data but never resets creation time.
		_, err = cr.store.Update(ctx, store.Products, existing.ID.Hex(), store.Update{
			Set: map[string]any{
				"name":           p.Name,
				"description":    p.Description,
				"category":       p.Category,
				"price":          p.Price,
				"originalPrice":  p.OriginalPrice,
				"stock":          p.Stock,
				"supplier":       p.Supplier,
				"images":         p.Images,
				"specifications": p.Specifications,
				"features":       p.Features,
				"updatedAt":      p.UpdatedAt,
			},
		})
		if err != nil {
			return false, fmt.Errorf("failed to update product %q: %w", p.SKU, err)
		}
		return false, nil

	case errors.Is(err, store.ErrNotFound):
		if _, err := cr.store.Insert(ctx, store.Products, p); err != nil {
			return false, fmt.Errorf("failed to insert product %q: %w", p.SKU, err)
		}
		return true, nil

	default:
		return false, fmt.Errorf("failed to look up product %q: %w", p.SKU, err)
	}
}
