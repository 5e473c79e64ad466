package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// DebtStatus represents the lifecycle of a customer debt
type DebtStatus string

const (
	DebtStatusPending DebtStatus = "pending"
	DebtStatusPartial DebtStatus = "partial"
	DebtStatusPaid    DebtStatus = "paid"
	DebtStatusOverdue DebtStatus = "overdue"
)

// IsValid checks if the debt status is valid
func (s DebtStatus) IsValid() bool {
	switch s {
	case DebtStatusPending, DebtStatusPartial, DebtStatusPaid, DebtStatusOverdue:
		return true
	}
	return false
}

func (s DebtStatus) String() string {
	return string(s)
}

// CustomerDebt tracks the unpaid portion of an invoice as its own ledger
// entity. Invariant: OriginalAmount == RemainingAmount + PaidAmount after
// every mutation.
type CustomerDebt struct {
	shared.BaseAggregateRoot
	CustomerID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	InvoiceID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	OriginalAmount  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	RemainingAmount decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PaidAmount      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	DebtDate        time.Time       `gorm:"not null"`
	DueDate         *time.Time      `gorm:"index"`
	Notes           string          `gorm:"type:text"`
	Status          DebtStatus      `gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedBy       uuid.UUID       `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (CustomerDebt) TableName() string {
	return "customer_debts"
}

// NewCustomerDebt creates a pending debt for the unpaid portion of an invoice.
// The amount ceiling against the invoice total is checked by the caller, which
// holds the invoice.
func NewCustomerDebt(customerID, invoiceID, createdBy uuid.UUID, amount valueobject.Money, debtDate time.Time, dueDate *time.Time, notes string) (*CustomerDebt, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if invoiceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INVOICE", "Invoice ID cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Debt amount must be positive")
	}
	if debtDate.IsZero() {
		debtDate = time.Now()
	}
	if dueDate != nil && dueDate.Before(debtDate) {
		return nil, shared.NewDomainError("INVALID_DUE_DATE", "Due date cannot be before the debt date")
	}

	debt := &CustomerDebt{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		InvoiceID:         invoiceID,
		OriginalAmount:    amount.Amount(),
		RemainingAmount:   amount.Amount(),
		PaidAmount:        decimal.Zero,
		DebtDate:          debtDate,
		DueDate:           dueDate,
		Notes:             notes,
		Status:            DebtStatusPending,
		CreatedBy:         createdBy,
	}

	debt.AddDomainEvent(NewDebtCreatedEvent(debt))

	return debt, nil
}

// ApplyPayment records a payment against the debt. Paying more than the
// remaining amount is rejected before any field changes.
func (d *CustomerDebt) ApplyPayment(amount valueobject.Money) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if amount.Amount().GreaterThan(d.RemainingAmount) {
		return shared.NewDomainError("EXCESS_PAYMENT",
			"Payment "+amount.Amount().String()+" exceeds remaining debt "+d.RemainingAmount.String())
	}

	d.PaidAmount = d.PaidAmount.Add(amount.Amount())
	d.RemainingAmount = d.RemainingAmount.Sub(amount.Amount())
	if d.RemainingAmount.LessThanOrEqual(decimal.Zero) {
		d.RemainingAmount = decimal.Zero
		d.Status = DebtStatusPaid
	} else {
		d.Status = DebtStatusPartial
	}
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	d.AddDomainEvent(NewDebtPaymentAppliedEvent(d, amount.Amount()))

	if d.Status == DebtStatusPaid {
		d.AddDomainEvent(NewDebtSettledEvent(d))
	}

	return nil
}

// ReversePayment undoes the effect of a previously applied payment, used when
// the payment row is deleted. Remaining and paid amounts return to their
// pre-payment values; paid amount is clamped at zero.
func (d *CustomerDebt) ReversePayment(amount valueobject.Money) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Reversal amount must be positive")
	}

	d.PaidAmount = d.PaidAmount.Sub(amount.Amount())
	d.RemainingAmount = d.RemainingAmount.Add(amount.Amount())
	if d.PaidAmount.LessThanOrEqual(decimal.Zero) {
		d.PaidAmount = decimal.Zero
		d.RemainingAmount = d.OriginalAmount
		d.Status = DebtStatusPending
	} else {
		d.Status = DebtStatusPartial
	}
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

// RefreshOverdue flips an unpaid debt past its due date to overdue.
func (d *CustomerDebt) RefreshOverdue(now time.Time) {
	if d.Status == DebtStatusPaid || d.DueDate == nil {
		return
	}
	if d.DueDate.Before(now) {
		d.Status = DebtStatusOverdue
		d.UpdatedAt = time.Now()
	}
}

// IsOverdue reports whether the debt is unpaid and past its due date.
func (d *CustomerDebt) IsOverdue(now time.Time) bool {
	return d.Status != DebtStatusPaid && d.DueDate != nil && d.DueDate.Before(now)
}

// DaysOverdue returns the whole days elapsed since the due date, or 0 when
// the debt is not overdue.
func (d *CustomerDebt) DaysOverdue(now time.Time) int {
	if !d.IsOverdue(now) {
		return 0
	}
	return int(now.Sub(*d.DueDate).Hours() / 24)
}

// IsSettled reports whether the debt is fully paid.
func (d *CustomerDebt) IsSettled() bool {
	return d.Status == DebtStatusPaid
}

// RemainingMoney returns the remaining amount as a money value
func (d *CustomerDebt) RemainingMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(d.RemainingAmount)
}
