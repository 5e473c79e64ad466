package partner

import (
	"context"

	"github.com/retailpos/backend/internal/domain/shared"
)

// CustomerRepository defines persistence operations for customers
type CustomerRepository interface {
	shared.Repository[Customer]
	FindByEmail(ctx context.Context, email string) (*Customer, error)
}

// SupplierRepository defines persistence operations for suppliers
type SupplierRepository interface {
	shared.Repository[Supplier]
	FindWithDebt(ctx context.Context, filter shared.Filter) ([]Supplier, error)
}
