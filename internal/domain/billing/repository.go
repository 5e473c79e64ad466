package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
)

// StockDeduction is one conditional stock decrement to run when an
// invoice is committed
type StockDeduction struct {
	ProductID uuid.UUID
	Quantity  int64
}

// InvoiceRepository defines persistence operations for invoices
type InvoiceRepository interface {
	shared.Repository[Invoice]
	FindByNumber(ctx context.Context, number string) (*Invoice, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]Invoice, error)
	FindByStatus(ctx context.Context, status InvoiceStatus, filter shared.Filter) ([]Invoice, error)
	GenerateNumber(ctx context.Context) (string, error)
	// SaveWithStockDeduction persists the invoice and applies the given
	// stock decrements in one transaction. Each decrement is conditional
	// (stock >= quantity); a failed decrement on a still-existing product
	// aborts the whole transaction with an InsufficientStockError, while a
	// decrement against a deleted product is skipped.
	SaveWithStockDeduction(ctx context.Context, inv *Invoice, deductions []StockDeduction) error
	// ReplaceItems persists a quotation edit: deletes the old line items,
	// writes the new set, and updates the invoice header atomically.
	ReplaceItems(ctx context.Context, inv *Invoice) error
}
