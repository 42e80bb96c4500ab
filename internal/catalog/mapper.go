package catalog

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/storefront/internal/domain"
)

// Mapper converts yaml entries to catalog products.
type Mapper struct{}

func NewMapper() *Mapper {
	return &Mapper{}
}

// Map converts the parsed file to domain products. Entries missing a name or
// description, or carrying a negative price, are rejected rather than
// skipped, so a broken seed file fails loudly instead of silently thinning
// the catalog. The contract matches the product create endpoint.
func (m *Mapper) Map(file *File, now time.Time) ([]domain.Product, error) {
	products := make([]domain.Product, 0, len(file.Products))

	for i, e := range file.Products {
		if e.Name == "" {
			return nil, fmt.Errorf("product %d: name is required", i)
		}
		if e.Description == "" {
			return nil, fmt.Errorf("product %q: description is required", e.Name)
		}
		if e.Price < 0 {
			return nil, fmt.Errorf("product %q: price cannot be negative", e.Name)
		}

		sku := e.SKU
		if sku == "" {
			sku = uuid.NewString()
		}

		products = append(products, domain.Product{
			Name:           e.Name,
			Description:    e.Description,
			Category:       e.Category,
			Price:          e.Price,
			OriginalPrice:  e.OriginalPrice,
			Stock:          e.Stock,
			SKU:            sku,
			Supplier:       e.Supplier,
			Images:         e.Images,
			Specifications: e.Specifications,
			Features:       e.Features,
			Rating:         e.Rating,
			Reviews:        e.Reviews,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	}
	return products, nil
}
