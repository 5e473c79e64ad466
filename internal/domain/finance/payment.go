package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PaymentType distinguishes money coming in from money going out
type PaymentType string

const (
	PaymentTypeIncome  PaymentType = "income"
	PaymentTypeExpense PaymentType = "expense"
)

// IsValid checks if the payment type is valid
func (t PaymentType) IsValid() bool {
	return t == PaymentTypeIncome || t == PaymentTypeExpense
}

// PaymentCategory classifies what the ledger row is for
type PaymentCategory string

const (
	PaymentCategorySale            PaymentCategory = "sale"
	PaymentCategoryDebtPayment     PaymentCategory = "debt_payment"
	PaymentCategorySupplierPayment PaymentCategory = "supplier_payment"
	PaymentCategoryOtherIncome     PaymentCategory = "other_income"
	PaymentCategoryOtherExpense    PaymentCategory = "other_expense"
	PaymentCategoryRefund          PaymentCategory = "refund"
)

// IsValid checks if the payment category is valid
func (c PaymentCategory) IsValid() bool {
	switch c {
	case PaymentCategorySale, PaymentCategoryDebtPayment, PaymentCategorySupplierPayment,
		PaymentCategoryOtherIncome, PaymentCategoryOtherExpense, PaymentCategoryRefund:
		return true
	}
	return false
}

// PayableKind tags what a payment is applied against
type PayableKind string

const (
	PayableKindNone         PayableKind = ""
	PayableKindCustomerDebt PayableKind = "customer_debt"
	PayableKindSupplier     PayableKind = "supplier"
)

// PayableRef links a payment to the ledger entity it settles: nothing, a
// customer debt, or a supplier balance. The kind tag decides which; the ID is
// only meaningful when the kind is set.
type PayableRef struct {
	Kind PayableKind `gorm:"column:payable_kind;type:varchar(20);not null;default:''"`
	ID   uuid.UUID   `gorm:"column:payable_id;type:uuid"`
}

// PayableNone returns a reference to nothing, for standalone income/expense rows.
func PayableNone() PayableRef {
	return PayableRef{Kind: PayableKindNone}
}

// PayableCustomerDebt returns a reference to a customer debt
func PayableCustomerDebt(debtID uuid.UUID) PayableRef {
	return PayableRef{Kind: PayableKindCustomerDebt, ID: debtID}
}

// PayableSupplier returns a reference to a supplier balance
func PayableSupplier(supplierID uuid.UUID) PayableRef {
	return PayableRef{Kind: PayableKindSupplier, ID: supplierID}
}

// IsNone reports whether the payment settles nothing
func (r PayableRef) IsNone() bool {
	return r.Kind == PayableKindNone
}

// CustomerDebtID returns the linked debt ID if the reference points at one
func (r PayableRef) CustomerDebtID() (uuid.UUID, bool) {
	if r.Kind != PayableKindCustomerDebt {
		return uuid.Nil, false
	}
	return r.ID, true
}

// SupplierID returns the linked supplier ID if the reference points at one
func (r PayableRef) SupplierID() (uuid.UUID, bool) {
	if r.Kind != PayableKindSupplier {
		return uuid.Nil, false
	}
	return r.ID, true
}

func (r PayableRef) validate() error {
	switch r.Kind {
	case PayableKindNone:
		if r.ID != uuid.Nil {
			return shared.NewDomainError("INVALID_PAYABLE", "Payable ID must be empty when no payable is referenced")
		}
	case PayableKindCustomerDebt, PayableKindSupplier:
		if r.ID == uuid.Nil {
			return shared.NewDomainError("INVALID_PAYABLE", "Payable ID cannot be empty")
		}
	default:
		return shared.NewDomainError("INVALID_PAYABLE", "Unknown payable kind: "+string(r.Kind))
	}
	return nil
}

// Payment is an append-only ledger row for money moved. Deleting one is a
// compensating action handled by the payment service, not a true undo.
type Payment struct {
	shared.BaseAggregateRoot
	Type         PaymentType               `gorm:"type:varchar(10);not null;index"`
	Category     PaymentCategory           `gorm:"type:varchar(30);not null;index"`
	Amount       decimal.Decimal           `gorm:"type:decimal(18,4);not null"`
	Method       valueobject.PaymentMethod `gorm:"type:varchar(20);not null"`
	PaymentDate  time.Time                 `gorm:"not null;index"`
	Description  string                    `gorm:"type:text"`
	Payable      PayableRef                `gorm:"embedded"`
	CustomerID   *uuid.UUID                `gorm:"type:uuid;index"`
	SupplierID   *uuid.UUID                `gorm:"type:uuid;index"`
	UserID       uuid.UUID                 `gorm:"type:uuid;not null;index"`
	PosSessionID *uuid.UUID                `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// NewPayment creates a ledger row. UserID is the acting user, passed in
// explicitly by the caller.
func NewPayment(pType PaymentType, category PaymentCategory, amount valueobject.Money, method valueobject.PaymentMethod, paymentDate time.Time, payable PayableRef, userID uuid.UUID, description string) (*Payment, error) {
	if !pType.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_TYPE", "Invalid payment type: "+string(pType))
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_CATEGORY", "Invalid payment category: "+string(category))
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Invalid payment method: "+string(method))
	}
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if err := payable.validate(); err != nil {
		return nil, err
	}
	if paymentDate.IsZero() {
		paymentDate = time.Now()
	}

	return &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Type:              pType,
		Category:          category,
		Amount:            amount.Amount(),
		Method:            method,
		PaymentDate:       paymentDate,
		Description:       description,
		Payable:           payable,
		UserID:            userID,
	}, nil
}

// NewDebtPayment records income collected against a customer debt
func NewDebtPayment(debt *CustomerDebt, amount valueobject.Money, method valueobject.PaymentMethod, userID uuid.UUID, description string) (*Payment, error) {
	p, err := NewPayment(PaymentTypeIncome, PaymentCategoryDebtPayment, amount, method, time.Now(), PayableCustomerDebt(debt.ID), userID, description)
	if err != nil {
		return nil, err
	}
	customerID := debt.CustomerID
	p.CustomerID = &customerID
	return p, nil
}

// NewSupplierLedgerPayment records an expense row tied to a supplier balance,
// both for debt taken on and for debt paid down.
func NewSupplierLedgerPayment(supplierID uuid.UUID, amount valueobject.Money, method valueobject.PaymentMethod, userID uuid.UUID, description string) (*Payment, error) {
	p, err := NewPayment(PaymentTypeExpense, PaymentCategorySupplierPayment, amount, method, time.Now(), PayableSupplier(supplierID), userID, description)
	if err != nil {
		return nil, err
	}
	sid := supplierID
	p.SupplierID = &sid
	return p, nil
}

// AttachSession stamps the POS session the payment was taken in
func (p *Payment) AttachSession(sessionID uuid.UUID) {
	if sessionID == uuid.Nil {
		return
	}
	sid := sessionID
	p.PosSessionID = &sid
	p.UpdatedAt = time.Now()
}

// AmountMoney returns the payment amount as a money value
func (p *Payment) AmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.Amount)
}
