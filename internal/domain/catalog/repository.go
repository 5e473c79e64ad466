package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
)

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	shared.Repository[Product]
	FindBySKU(ctx context.Context, sku string) (*Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
	FindLowStock(ctx context.Context, filter shared.Filter) ([]Product, error)
	// DeductStock atomically decrements stock for a product using a
	// conditional update (stock >= quantity). It reports whether a row
	// was affected so callers can distinguish shortage from deletion.
	DeductStock(ctx context.Context, productID uuid.UUID, quantity int64) (bool, error)
	RestoreStock(ctx context.Context, productID uuid.UUID, quantity int64) error
}

// CategoryRepository defines persistence operations for categories
type CategoryRepository interface {
	shared.Repository[Category]
	FindByName(ctx context.Context, name string) (*Category, error)
}
