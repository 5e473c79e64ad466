package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// CreateDebtRequest registers the unpaid remainder of an invoice as a debt
type CreateDebtRequest struct {
	InvoiceID uuid.UUID       `json:"invoice_id" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	DueDate   *time.Time      `json:"due_date"`
	Notes     string          `json:"notes"`
}

// AddDebtPaymentRequest applies a payment to an existing debt
type AddDebtPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Method      string          `json:"method" binding:"required,oneof=cash card bank_transfer check other"`
	Description string          `json:"description"`
	SessionID   *uuid.UUID      `json:"session_id"`
}

// SupplierDebtRequest increments what the business owes a supplier
type SupplierDebtRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
}

// SupplierPaymentRequest pays down a supplier balance
type SupplierPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Method      string          `json:"method" binding:"required,oneof=cash card bank_transfer check other"`
	Description string          `json:"description"`
}

// RecordPaymentRequest records a standalone income or expense row
type RecordPaymentRequest struct {
	Type        string          `json:"type" binding:"required,oneof=income expense"`
	Category    string          `json:"category" binding:"required,oneof=sale debt_payment supplier_payment other_income other_expense refund"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Method      string          `json:"method" binding:"required,oneof=cash card bank_transfer check other"`
	PaymentDate *time.Time      `json:"payment_date"`
	Description string          `json:"description"`
	SessionID   *uuid.UUID      `json:"session_id"`
}

// DebtListFilter represents filter options for debt lists
type DebtListFilter struct {
	CustomerID *uuid.UUID `form:"customer_id"`
	Status     *string    `form:"status" binding:"omitempty,oneof=pending partial paid overdue"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// PaymentListFilter represents filter options for the payment ledger
type PaymentListFilter struct {
	StartDate *time.Time `form:"start_date"`
	EndDate   *time.Time `form:"end_date"`
	Page      int        `form:"page" binding:"omitempty,min=1"`
	PageSize  int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string     `form:"order_by"`
	OrderDir  string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// DebtResponse represents a customer debt in API responses
type DebtResponse struct {
	ID              uuid.UUID       `json:"id"`
	CustomerID      uuid.UUID       `json:"customer_id"`
	InvoiceID       uuid.UUID       `json:"invoice_id"`
	OriginalAmount  decimal.Decimal `json:"original_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	DebtDate        time.Time       `json:"debt_date"`
	DueDate         *time.Time      `json:"due_date,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	Status          string          `json:"status"`
	DaysOverdue     int             `json:"days_overdue"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// PaymentResponse represents a ledger row in API responses
type PaymentResponse struct {
	ID           uuid.UUID       `json:"id"`
	Type         string          `json:"type"`
	Category     string          `json:"category"`
	Amount       decimal.Decimal `json:"amount"`
	Method       string          `json:"method"`
	PaymentDate  time.Time       `json:"payment_date"`
	Description  string          `json:"description,omitempty"`
	PayableKind  string          `json:"payable_kind,omitempty"`
	PayableID    *uuid.UUID      `json:"payable_id,omitempty"`
	CustomerID   *uuid.UUID      `json:"customer_id,omitempty"`
	SupplierID   *uuid.UUID      `json:"supplier_id,omitempty"`
	UserID       uuid.UUID       `json:"user_id"`
	PosSessionID *uuid.UUID      `json:"pos_session_id,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ToDebtResponse converts a debt aggregate to its API representation
func ToDebtResponse(d *finance.CustomerDebt) DebtResponse {
	return DebtResponse{
		ID:              d.ID,
		CustomerID:      d.CustomerID,
		InvoiceID:       d.InvoiceID,
		OriginalAmount:  d.OriginalAmount,
		RemainingAmount: d.RemainingAmount,
		PaidAmount:      d.PaidAmount,
		DebtDate:        d.DebtDate,
		DueDate:         d.DueDate,
		Notes:           d.Notes,
		Status:          d.Status.String(),
		DaysOverdue:     d.DaysOverdue(time.Now()),
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

// ToPaymentResponse converts a ledger row to its API representation
func ToPaymentResponse(p *finance.Payment) PaymentResponse {
	resp := PaymentResponse{
		ID:           p.ID,
		Type:         string(p.Type),
		Category:     string(p.Category),
		Amount:       p.Amount,
		Method:       p.Method.String(),
		PaymentDate:  p.PaymentDate,
		Description:  p.Description,
		PayableKind:  string(p.Payable.Kind),
		CustomerID:   p.CustomerID,
		SupplierID:   p.SupplierID,
		UserID:       p.UserID,
		PosSessionID: p.PosSessionID,
		CreatedAt:    p.CreatedAt,
	}
	if !p.Payable.IsNone() {
		id := p.Payable.ID
		resp.PayableID = &id
	}
	return resp
}
