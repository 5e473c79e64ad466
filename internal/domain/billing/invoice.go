package billing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the lifecycle state of an invoice
type InvoiceStatus string

const (
	// InvoiceStatusQuotation is a draft sale; stock is untouched
	InvoiceStatusQuotation InvoiceStatus = "quotation"
	// InvoiceStatusPaid is a committed sale; stock has been deducted. Terminal.
	InvoiceStatusPaid InvoiceStatus = "paid"
	// InvoiceStatusCanceled is a voided quotation; can be reopened
	InvoiceStatusCanceled InvoiceStatus = "canceled"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusQuotation, InvoiceStatusPaid, InvoiceStatusCanceled:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s InvoiceStatus) CanTransitionTo(target InvoiceStatus) bool {
	switch s {
	case InvoiceStatusQuotation:
		return target == InvoiceStatusPaid || target == InvoiceStatusCanceled
	case InvoiceStatusCanceled:
		return target == InvoiceStatusQuotation
	case InvoiceStatusPaid:
		return false // terminal
	}
	return false
}

// PaymentStatus tracks how much of a paid invoice was actually collected
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "paid"    // fully collected
	PaymentStatusPartial PaymentStatus = "partial" // partially collected, rest is debt
	PaymentStatusDebt    PaymentStatus = "debt"    // nothing collected yet
)

// DiscountType represents how an invoice-level discount is expressed
type DiscountType string

const (
	DiscountTypeNone       DiscountType = ""
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

// IsValid checks if the discount type is valid
func (d DiscountType) IsValid() bool {
	switch d {
	case DiscountTypeNone, DiscountTypePercentage, DiscountTypeFixed:
		return true
	}
	return false
}

// InvoiceItem is a line item owned by an invoice.
// LineTotal is always derived from quantity and unit price at construction,
// never trusted from the outside.
type InvoiceItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	InvoiceID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name      string          `gorm:"type:varchar(200);not null"`
	SKU       string          `gorm:"type:varchar(50)"`
	Quantity  int64           `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	LineTotal decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (InvoiceItem) TableName() string {
	return "invoice_items"
}

// NewInvoiceItem creates a new invoice line item
func NewInvoiceItem(invoiceID, productID uuid.UUID, name, sku string, quantity int64, unitPrice valueobject.Money) (*InvoiceItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()
	qty := decimal.NewFromInt(quantity)
	return &InvoiceItem{
		ID:        uuid.New(),
		InvoiceID: invoiceID,
		ProductID: productID,
		Name:      name,
		SKU:       sku,
		Quantity:  quantity,
		UnitPrice: unitPrice.Amount(),
		LineTotal: unitPrice.Amount().Mul(qty),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Invoice represents a sale document, from quotation through payment.
// Status is the central invariant: only the transitions in
// InvoiceStatus.CanTransitionTo are legal.
type Invoice struct {
	shared.BaseAggregateRoot
	Number        string                    `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID    uuid.UUID                 `gorm:"type:uuid;not null;index"`
	CustomerName  string                    `gorm:"type:varchar(200);not null"`
	IssuedAt      time.Time                 `gorm:"not null"`
	Items         []InvoiceItem             `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	Subtotal      decimal.Decimal           `gorm:"type:decimal(18,4);not null;default:0"`
	DiscountType  DiscountType              `gorm:"type:varchar(20)"`
	DiscountValue decimal.Decimal           `gorm:"type:decimal(18,4);not null;default:0"`
	TotalAmount   decimal.Decimal           `gorm:"type:decimal(18,4);not null;default:0"`
	Status        InvoiceStatus             `gorm:"type:varchar(20);not null;default:'quotation';index"`
	PaymentMethod valueobject.PaymentMethod `gorm:"type:varchar(20)"`
	PaidAmount    decimal.Decimal           `gorm:"type:decimal(18,4);not null;default:0"`
	DebtAmount    decimal.Decimal           `gorm:"type:decimal(18,4);not null;default:0"`
	PaymentStatus PaymentStatus             `gorm:"type:varchar(20)"`
	PaidAt        *time.Time
	CanceledAt    *time.Time
}

// TableName returns the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}

// NewInvoice creates a new invoice in quotation status
func NewInvoice(number string, customerID uuid.UUID, customerName string, issuedAt time.Time) (*Invoice, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if len(number) > 50 {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot exceed 50 characters")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if issuedAt.IsZero() {
		issuedAt = time.Now()
	}

	inv := &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		CustomerID:        customerID,
		CustomerName:      customerName,
		IssuedAt:          issuedAt,
		Items:             make([]InvoiceItem, 0),
		Subtotal:          decimal.Zero,
		DiscountValue:     decimal.Zero,
		TotalAmount:       decimal.Zero,
		Status:            InvoiceStatusQuotation,
		PaidAmount:        decimal.Zero,
		DebtAmount:        decimal.Zero,
	}

	inv.AddDomainEvent(NewInvoiceCreatedEvent(inv))

	return inv, nil
}

// AddItem appends a line item. Only allowed while the invoice is a quotation.
func (inv *Invoice) AddItem(productID uuid.UUID, name, sku string, quantity int64, unitPrice valueobject.Money) (*InvoiceItem, error) {
	if inv.Status != InvoiceStatusQuotation {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a non-quotation invoice")
	}

	item, err := NewInvoiceItem(inv.ID, productID, name, sku, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	inv.Items = append(inv.Items, *item)
	inv.recalculateTotals()
	inv.UpdatedAt = time.Now()

	return item, nil
}

// ReplaceItems swaps out all line items at once. Quotation edits replace the
// item set wholesale rather than patching individual lines.
func (inv *Invoice) ReplaceItems(items []InvoiceItem) error {
	if inv.Status != InvoiceStatusQuotation {
		return shared.NewDomainError("INVALID_STATE", "Only quotations can be edited")
	}
	if len(items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Invoice needs at least one item")
	}

	inv.Items = items
	inv.recalculateTotals()
	inv.UpdatedAt = time.Now()
	return nil
}

// ApplyDiscount sets an invoice-level discount
func (inv *Invoice) ApplyDiscount(discountType DiscountType, value decimal.Decimal) error {
	if inv.Status != InvoiceStatusQuotation {
		return shared.NewDomainError("INVALID_STATE", "Cannot apply discount to a non-quotation invoice")
	}
	if !discountType.IsValid() {
		return shared.NewDomainError("INVALID_DISCOUNT", "Unknown discount type")
	}
	if value.IsNegative() {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be negative")
	}
	if discountType == DiscountTypePercentage && value.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_DISCOUNT", "Percentage discount cannot exceed 100")
	}

	inv.DiscountType = discountType
	inv.DiscountValue = value
	inv.recalculateTotals()
	inv.UpdatedAt = time.Now()
	return nil
}

// SetIssuedAt updates the invoice date. Only allowed on quotations.
func (inv *Invoice) SetIssuedAt(issuedAt time.Time) error {
	if inv.Status != InvoiceStatusQuotation {
		return shared.NewDomainError("INVALID_STATE", "Only quotations can be edited")
	}
	inv.IssuedAt = issuedAt
	inv.UpdatedAt = time.Now()
	return nil
}

// TransitionTo validates and performs a status change. The caller is
// responsible for running the stock check before activating a quotation;
// the aggregate only enforces the transition table.
func (inv *Invoice) TransitionTo(target InvoiceStatus, method valueobject.PaymentMethod) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_TRANSITION", fmt.Sprintf("Unknown status %q", target))
	}
	if !inv.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot change invoice from %s to %s", inv.Status, target))
	}

	now := time.Now()
	from := inv.Status
	inv.Status = target

	switch target {
	case InvoiceStatusPaid:
		if method != "" {
			if !method.IsValid() {
				return shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
			}
			inv.PaymentMethod = method
		}
		inv.PaidAt = &now
		// A freshly paid invoice is fully collected unless a debt is
		// registered against it afterwards.
		inv.PaidAmount = inv.TotalAmount
		inv.DebtAmount = decimal.Zero
		inv.PaymentStatus = PaymentStatusPaid
		inv.AddDomainEvent(NewInvoicePaidEvent(inv))
	case InvoiceStatusCanceled:
		inv.CanceledAt = &now
		inv.AddDomainEvent(NewInvoiceCanceledEvent(inv, from))
	case InvoiceStatusQuotation:
		inv.CanceledAt = nil
	}

	inv.UpdatedAt = now
	inv.IncrementVersion()
	return nil
}

// RegisterDebt records that part of the invoice total was not collected.
// The uncollected part becomes a customer debt tracked separately.
func (inv *Invoice) RegisterDebt(debtAmount valueobject.Money) error {
	if !debtAmount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Debt amount must be positive")
	}
	if debtAmount.Amount().GreaterThan(inv.TotalAmount) {
		return shared.NewDomainError("INVALID_AMOUNT",
			fmt.Sprintf("Debt %s exceeds invoice total %s", debtAmount.Amount().StringFixed(2), inv.TotalAmount.StringFixed(2)))
	}

	inv.DebtAmount = debtAmount.Amount()
	inv.PaidAmount = inv.TotalAmount.Sub(debtAmount.Amount())
	if inv.PaidAmount.IsPositive() {
		inv.PaymentStatus = PaymentStatusPartial
	} else {
		inv.PaymentStatus = PaymentStatusDebt
	}
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
	return nil
}

// ApplyDebtPayment increases the collected amount when a debt payment lands
func (inv *Invoice) ApplyDebtPayment(amount valueobject.Money) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	inv.PaidAmount = inv.PaidAmount.Add(amount.Amount())
	inv.DebtAmount = inv.TotalAmount.Sub(inv.PaidAmount)
	if inv.DebtAmount.IsNegative() {
		inv.DebtAmount = decimal.Zero
	}
	if inv.PaidAmount.GreaterThanOrEqual(inv.TotalAmount) {
		inv.PaymentStatus = PaymentStatusPaid
	} else {
		inv.PaymentStatus = PaymentStatusPartial
	}
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
	return nil
}

// ReverseDebtPayment undoes the effect of a deleted debt payment
func (inv *Invoice) ReverseDebtPayment(amount valueobject.Money) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	inv.PaidAmount = inv.PaidAmount.Sub(amount.Amount())
	inv.DebtAmount = inv.TotalAmount.Sub(inv.PaidAmount)
	if inv.PaidAmount.LessThanOrEqual(decimal.Zero) {
		inv.PaidAmount = decimal.Zero
		inv.DebtAmount = inv.TotalAmount
		inv.PaymentStatus = PaymentStatusDebt
	} else {
		inv.PaymentStatus = PaymentStatusPartial
	}
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
	return nil
}

// SettleInFull marks the invoice fully collected. Used when the customer
// debt tracking it is deleted before any payment was made against it.
func (inv *Invoice) SettleInFull() {
	inv.PaidAmount = inv.TotalAmount
	inv.DebtAmount = decimal.Zero
	inv.PaymentStatus = PaymentStatusPaid
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()
}

// recalculateTotals recomputes subtotal and total from the line items
// and the current discount
func (inv *Invoice) recalculateTotals() {
	subtotal := decimal.Zero
	for _, item := range inv.Items {
		subtotal = subtotal.Add(item.LineTotal)
	}
	inv.Subtotal = subtotal

	discount := decimal.Zero
	switch inv.DiscountType {
	case DiscountTypePercentage:
		discount = subtotal.Mul(inv.DiscountValue).Div(decimal.NewFromInt(100)).Round(2)
	case DiscountTypeFixed:
		discount = inv.DiscountValue
	}
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}
	inv.TotalAmount = subtotal.Sub(discount)
}

// IsQuotation returns true if the invoice is still a draft
func (inv *Invoice) IsQuotation() bool {
	return inv.Status == InvoiceStatusQuotation
}

// IsPaid returns true if the invoice is committed
func (inv *Invoice) IsPaid() bool {
	return inv.Status == InvoiceStatusPaid
}

// IsCanceled returns true if the invoice is canceled
func (inv *Invoice) IsCanceled() bool {
	return inv.Status == InvoiceStatusCanceled
}

// ItemCount returns the number of line items
func (inv *Invoice) ItemCount() int {
	return len(inv.Items)
}

// TotalQuantity returns the sum of all line item quantities
func (inv *Invoice) TotalQuantity() int64 {
	var total int64
	for _, item := range inv.Items {
		total += item.Quantity
	}
	return total
}

// GetTotalAmountMoney returns the total as Money
func (inv *Invoice) GetTotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(inv.TotalAmount)
}
