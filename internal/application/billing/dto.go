package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest represents a request to create a quotation
type CreateInvoiceRequest struct {
	CustomerID    uuid.UUID                `json:"customer_id" binding:"required"`
	IssuedAt      *time.Time               `json:"issued_at"`
	Items         []CreateInvoiceItemInput `json:"items" binding:"required,min=1"`
	DiscountType  *string                  `json:"discount_type" binding:"omitempty,oneof=percentage fixed"`
	DiscountValue *decimal.Decimal         `json:"discount_value"`
}

// CreateInvoiceItemInput represents one line of the create request
type CreateInvoiceItemInput struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  int64           `json:"quantity" binding:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
}

// UpdateQuotationRequest replaces the quotation's items and discount wholesale
type UpdateQuotationRequest struct {
	IssuedAt      *time.Time               `json:"issued_at"`
	Items         []CreateInvoiceItemInput `json:"items" binding:"required,min=1"`
	DiscountType  *string                  `json:"discount_type" binding:"omitempty,oneof=percentage fixed"`
	DiscountValue *decimal.Decimal         `json:"discount_value"`
}

// UpdateStatusRequest moves an invoice through its lifecycle
type UpdateStatusRequest struct {
	Status        string `json:"status" binding:"required,oneof=quotation paid canceled"`
	PaymentMethod string `json:"payment_method" binding:"omitempty,oneof=cash card bank_transfer check other"`
}

// InvoiceListFilter represents filter options for invoice lists
type InvoiceListFilter struct {
	Search     string     `form:"search"`
	CustomerID *uuid.UUID `form:"customer_id"`
	Status     *string    `form:"status" binding:"omitempty,oneof=quotation paid canceled"`
	StartDate  *time.Time `form:"start_date"`
	EndDate    *time.Time `form:"end_date"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// InvoiceItemResponse represents a line item in API responses
type InvoiceItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID            uuid.UUID             `json:"id"`
	Number        string                `json:"number"`
	CustomerID    uuid.UUID             `json:"customer_id"`
	CustomerName  string                `json:"customer_name"`
	IssuedAt      time.Time             `json:"issued_at"`
	Items         []InvoiceItemResponse `json:"items"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	DiscountType  string                `json:"discount_type,omitempty"`
	DiscountValue decimal.Decimal       `json:"discount_value"`
	TotalAmount   decimal.Decimal       `json:"total_amount"`
	Status        string                `json:"status"`
	PaymentMethod string                `json:"payment_method,omitempty"`
	PaidAmount    decimal.Decimal       `json:"paid_amount"`
	DebtAmount    decimal.Decimal       `json:"debt_amount"`
	PaymentStatus string                `json:"payment_status,omitempty"`
	PaidAt        *time.Time            `json:"paid_at,omitempty"`
	CanceledAt    *time.Time            `json:"canceled_at,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// StockCheckResponse mirrors the availability report for API consumers
type StockCheckResponse struct {
	Success             bool                    `json:"success"`
	UnavailableProducts []billing.ShortageEntry `json:"unavailable_products"`
}

// ToInvoiceResponse converts an invoice aggregate to its API representation
func ToInvoiceResponse(inv *billing.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, 0, len(inv.Items))
	for _, item := range inv.Items {
		items = append(items, InvoiceItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			SKU:       item.SKU,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal,
		})
	}

	return InvoiceResponse{
		ID:            inv.ID,
		Number:        inv.Number,
		CustomerID:    inv.CustomerID,
		CustomerName:  inv.CustomerName,
		IssuedAt:      inv.IssuedAt,
		Items:         items,
		Subtotal:      inv.Subtotal,
		DiscountType:  string(inv.DiscountType),
		DiscountValue: inv.DiscountValue,
		TotalAmount:   inv.TotalAmount,
		Status:        string(inv.Status),
		PaymentMethod: inv.PaymentMethod.String(),
		PaidAmount:    inv.PaidAmount,
		DebtAmount:    inv.DebtAmount,
		PaymentStatus: string(inv.PaymentStatus),
		PaidAt:        inv.PaidAt,
		CanceledAt:    inv.CanceledAt,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}
