package catalog

import (
	"context"

	"github.com/storefront/backend/internal/domain/shared"
)

// ProductCategoryRepository defines the interface for product category persistence
type ProductCategoryRepository interface {
	shared.Repository[ProductCategory]

	// FindByIDs finds all categories with the given IDs
	FindByIDs(ctx context.Context, ids []int64) ([]ProductCategory, error)
}
