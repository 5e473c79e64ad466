package billing

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/catalog"
)

// DeletedProductLabel names line items whose product no longer exists
const DeletedProductLabel = "Product not found"

// ShortageEntry describes one product with insufficient stock
// relative to the requested quantity
type ShortageEntry struct {
	ProductID        uuid.UUID `json:"product_id"`
	ProductName      string    `json:"product_name"`
	ProductSKU       string    `json:"product_sku"`
	RequiredQuantity int64     `json:"required_quantity"`
	AvailableStock   int64     `json:"available_stock"`
	MissingStock     int64     `json:"missing_stock"`
}

// StockCheckResult is the outcome of validating an invoice against stock.
// Success is true iff no shortages were found.
type StockCheckResult struct {
	Success             bool            `json:"success"`
	UnavailableProducts []ShortageEntry `json:"unavailable_products"`
}

// CheckStockAvailability verifies that every line item of the invoice can be
// covered by current product stock. It is a pure point-in-time check with no
// side effects and no reservation; the authoritative guard is the conditional
// decrement performed when the invoice is committed.
//
// A line item whose product no longer exists is reported as a shortage with
// zero available stock.
func CheckStockAvailability(inv *Invoice, products map[uuid.UUID]*catalog.Product) StockCheckResult {
	shortages := make([]ShortageEntry, 0)

	for _, item := range inv.Items {
		product, ok := products[item.ProductID]
		if !ok || product == nil {
			shortages = append(shortages, ShortageEntry{
				ProductID:        item.ProductID,
				ProductName:      DeletedProductLabel,
				ProductSKU:       item.SKU,
				RequiredQuantity: item.Quantity,
				AvailableStock:   0,
				MissingStock:     item.Quantity,
			})
			continue
		}

		if product.Stock < item.Quantity {
			shortages = append(shortages, ShortageEntry{
				ProductID:        product.ID,
				ProductName:      product.Name,
				ProductSKU:       product.SKU,
				RequiredQuantity: item.Quantity,
				AvailableStock:   product.Stock,
				MissingStock:     item.Quantity - product.Stock,
			})
		}
	}

	return StockCheckResult{
		Success:             len(shortages) == 0,
		UnavailableProducts: shortages,
	}
}

// InsufficientStockError is raised when a quotation cannot be activated
// because one or more products lack stock. It carries the full shortage
// detail so callers can render per-product information.
type InsufficientStockError struct {
	InvoiceID           uuid.UUID       `json:"invoice_id"`
	InvoiceNumber       string          `json:"invoice_number"`
	CustomerName        string          `json:"customer"`
	UnavailableProducts []ShortageEntry `json:"unavailable_products"`
}

// NewInsufficientStockError builds the error from a failed stock check
func NewInsufficientStockError(inv *Invoice, result StockCheckResult) *InsufficientStockError {
	return &InsufficientStockError{
		InvoiceID:           inv.ID,
		InvoiceNumber:       inv.Number,
		CustomerName:        inv.CustomerName,
		UnavailableProducts: result.UnavailableProducts,
	}
}

// Error renders a multi-line human-readable report: a header naming the
// invoice and customer, then one bullet per shortage.
func (e *InsufficientStockError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Insufficient stock for invoice %s (customer: %s):", e.InvoiceNumber, e.CustomerName)
	for _, s := range e.UnavailableProducts {
		fmt.Fprintf(&b, "\n• %s: Required %d, available %d, missing %d",
			s.ProductName, s.RequiredQuantity, s.AvailableStock, s.MissingStock)
	}
	return b.String()
}
