package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/billing"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CustomerDebtSummary aggregates a single customer's debt position
type CustomerDebtSummary struct {
	CustomerID       uuid.UUID       `json:"customer_id"`
	TotalDebts       int64           `json:"total_debts"`
	PendingCount     int64           `json:"pending_count"`
	PartialCount     int64           `json:"partial_count"`
	PaidCount        int64           `json:"paid_count"`
	OverdueCount     int64           `json:"overdue_count"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
	OldestDebtDate   *time.Time      `json:"oldest_debt_date"`
}

// DebtStats aggregates the whole ledger for dashboards
type DebtStats struct {
	TotalDebts        int64           `json:"total_debts"`
	PendingCount      int64           `json:"pending_count"`
	PartialCount      int64           `json:"partial_count"`
	PaidCount         int64           `json:"paid_count"`
	OverdueCount      int64           `json:"overdue_count"`
	TotalOutstanding  decimal.Decimal `json:"total_outstanding"`
	CustomersWithDebt int64           `json:"customers_with_debt"`
}

// CustomerDebtRepository defines persistence operations for customer debts
type CustomerDebtRepository interface {
	shared.Repository[CustomerDebt]
	FindByInvoice(ctx context.Context, invoiceID uuid.UUID) (*CustomerDebt, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]CustomerDebt, error)
	// FindOverdue returns unpaid debts whose due date is before the given
	// time, regardless of whether their stored status caught up yet.
	FindOverdue(ctx context.Context, now time.Time, filter shared.Filter) ([]CustomerDebt, error)
	SummaryByCustomer(ctx context.Context, customerID uuid.UUID) (*CustomerDebtSummary, error)
	Stats(ctx context.Context) (*DebtStats, error)
	// CreateWithInvoice persists a new debt and the invoice's updated
	// paid/debt split in one transaction.
	CreateWithInvoice(ctx context.Context, debt *CustomerDebt, inv *billing.Invoice) error
	// SaveWithPayment persists the mutated debt, the new ledger row and the
	// invoice cascade in one transaction.
	SaveWithPayment(ctx context.Context, debt *CustomerDebt, payment *Payment, inv *billing.Invoice) error
	// DeleteWithInvoice removes the debt and reverts the invoice to fully
	// paid in one transaction.
	DeleteWithInvoice(ctx context.Context, debtID uuid.UUID, inv *billing.Invoice) error
}

// PaymentRepository defines persistence operations for the payment ledger
type PaymentRepository interface {
	shared.Repository[Payment]
	FindByPayable(ctx context.Context, ref PayableRef) ([]Payment, error)
	CountByPayable(ctx context.Context, ref PayableRef) (int64, error)
	FindBySession(ctx context.Context, sessionID uuid.UUID) ([]Payment, error)
	// SaveWithSupplier persists the ledger row and the supplier's updated
	// balance in one transaction.
	SaveWithSupplier(ctx context.Context, payment *Payment, supplier *partner.Supplier) error
	// DeleteWithDebtReversal removes the ledger row and persists the
	// compensated debt and invoice in one transaction.
	DeleteWithDebtReversal(ctx context.Context, paymentID uuid.UUID, debt *CustomerDebt, inv *billing.Invoice) error
	// DeleteWithSupplierReversal removes the ledger row and re-increments
	// the supplier's balance in one transaction.
	DeleteWithSupplierReversal(ctx context.Context, paymentID uuid.UUID, supplier *partner.Supplier) error
}
