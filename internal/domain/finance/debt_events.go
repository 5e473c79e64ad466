package finance

import (
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event types for the finance context
const (
	EventTypeDebtCreated        = "finance.debt.created"
	EventTypeDebtPaymentApplied = "finance.debt.payment_applied"
	EventTypeDebtSettled        = "finance.debt.settled"
)

// DebtCreatedEvent is published when an invoice is partially paid and the
// unpaid remainder becomes a tracked debt
type DebtCreatedEvent struct {
	shared.BaseDomainEvent
	CustomerID     string          `json:"customer_id"`
	InvoiceID      string          `json:"invoice_id"`
	OriginalAmount decimal.Decimal `json:"original_amount"`
}

// NewDebtCreatedEvent creates a DebtCreatedEvent
func NewDebtCreatedEvent(d *CustomerDebt) *DebtCreatedEvent {
	return &DebtCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDebtCreated, "CustomerDebt", d.ID),
		CustomerID:      d.CustomerID.String(),
		InvoiceID:       d.InvoiceID.String(),
		OriginalAmount:  d.OriginalAmount,
	}
}

// DebtPaymentAppliedEvent is published for every payment applied to a debt
type DebtPaymentAppliedEvent struct {
	shared.BaseDomainEvent
	Amount          decimal.Decimal `json:"amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	Status          string          `json:"status"`
}

// NewDebtPaymentAppliedEvent creates a DebtPaymentAppliedEvent
func NewDebtPaymentAppliedEvent(d *CustomerDebt, amount decimal.Decimal) *DebtPaymentAppliedEvent {
	return &DebtPaymentAppliedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDebtPaymentApplied, "CustomerDebt", d.ID),
		Amount:          amount,
		RemainingAmount: d.RemainingAmount,
		Status:          d.Status.String(),
	}
}

// DebtSettledEvent is published when a debt reaches zero remaining
type DebtSettledEvent struct {
	shared.BaseDomainEvent
	CustomerID string          `json:"customer_id"`
	PaidAmount decimal.Decimal `json:"paid_amount"`
}

// NewDebtSettledEvent creates a DebtSettledEvent
func NewDebtSettledEvent(d *CustomerDebt) *DebtSettledEvent {
	return &DebtSettledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDebtSettled, "CustomerDebt", d.ID),
		CustomerID:      d.CustomerID.String(),
		PaidAmount:      d.PaidAmount,
	}
}
