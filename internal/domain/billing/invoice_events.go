package billing

import (
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event types for the billing context
const (
	EventTypeInvoiceCreated  = "billing.invoice.created"
	EventTypeInvoicePaid     = "billing.invoice.paid"
	EventTypeInvoiceCanceled = "billing.invoice.canceled"
)

// InvoiceCreatedEvent is published when a new quotation is created
type InvoiceCreatedEvent struct {
	shared.BaseDomainEvent
	Number       string          `json:"number"`
	CustomerName string          `json:"customer_name"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
}

// NewInvoiceCreatedEvent creates an InvoiceCreatedEvent
func NewInvoiceCreatedEvent(inv *Invoice) *InvoiceCreatedEvent {
	return &InvoiceCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceCreated, "Invoice", inv.ID),
		Number:          inv.Number,
		CustomerName:    inv.CustomerName,
		TotalAmount:     inv.TotalAmount,
	}
}

// InvoicePaidEvent is published when a quotation is committed to a sale
type InvoicePaidEvent struct {
	shared.BaseDomainEvent
	Number        string          `json:"number"`
	CustomerName  string          `json:"customer_name"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentMethod string          `json:"payment_method"`
	ItemCount     int             `json:"item_count"`
}

// NewInvoicePaidEvent creates an InvoicePaidEvent
func NewInvoicePaidEvent(inv *Invoice) *InvoicePaidEvent {
	return &InvoicePaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoicePaid, "Invoice", inv.ID),
		Number:          inv.Number,
		CustomerName:    inv.CustomerName,
		TotalAmount:     inv.TotalAmount,
		PaymentMethod:   inv.PaymentMethod.String(),
		ItemCount:       len(inv.Items),
	}
}

// InvoiceCanceledEvent is published when an invoice is canceled
type InvoiceCanceledEvent struct {
	shared.BaseDomainEvent
	Number         string `json:"number"`
	PreviousStatus string `json:"previous_status"`
}

// NewInvoiceCanceledEvent creates an InvoiceCanceledEvent
func NewInvoiceCanceledEvent(inv *Invoice, from InvoiceStatus) *InvoiceCanceledEvent {
	return &InvoiceCanceledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceCanceled, "Invoice", inv.ID),
		Number:          inv.Number,
		PreviousStatus:  from.String(),
	}
}
