package partner

import (
	"fmt"
	"strings"
	"time"

	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Supplier represents a vendor the business buys from.
// CurrentDebt is what the business owes the supplier; it never goes negative.
type Supplier struct {
	shared.BaseAggregateRoot
	CompanyName   string          `gorm:"type:varchar(200);not null"`
	ContactName   string          `gorm:"type:varchar(100)"`
	Email         string          `gorm:"type:varchar(150)"`
	Phone         string          `gorm:"type:varchar(30)"`
	CurrentDebt   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	IsActive      bool            `gorm:"not null;default:true"`
	LastPaymentAt *time.Time
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier
func NewSupplier(companyName string) (*Supplier, error) {
	companyName = strings.TrimSpace(companyName)
	if companyName == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Company name cannot be empty")
	}
	if len(companyName) > 200 {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Company name cannot exceed 200 characters")
	}

	return &Supplier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CompanyName:       companyName,
		CurrentDebt:       decimal.Zero,
		IsActive:          true,
	}, nil
}

// AddDebt increases what the business owes this supplier (e.g. a purchase on credit)
func (s *Supplier) AddDebt(amount valueobject.Money) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Debt amount must be positive")
	}
	s.CurrentDebt = s.CurrentDebt.Add(amount.Amount())
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// PayDebt decreases the outstanding debt. Paying more than is owed is rejected
// so the balance can never go negative.
func (s *Supplier) PayDebt(amount valueobject.Money) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if amount.Amount().GreaterThan(s.CurrentDebt) {
		return shared.NewDomainError("EXCESS_PAYMENT",
			fmt.Sprintf("Payment %s exceeds current debt %s", amount.Amount().StringFixed(2), s.CurrentDebt.StringFixed(2)))
	}
	now := time.Now()
	s.CurrentDebt = s.CurrentDebt.Sub(amount.Amount())
	s.LastPaymentAt = &now
	s.UpdatedAt = now
	s.IncrementVersion()
	return nil
}

// RestoreDebt re-adds a previously paid amount. Used when a supplier payment
// record is deleted and its effect has to be compensated.
func (s *Supplier) RestoreDebt(amount valueobject.Money) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Restore amount must be positive")
	}
	s.CurrentDebt = s.CurrentDebt.Add(amount.Amount())
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// HasDebt returns true if anything is owed to the supplier
func (s *Supplier) HasDebt() bool {
	return s.CurrentDebt.IsPositive()
}

// GetCurrentDebtMoney returns the current debt as Money
func (s *Supplier) GetCurrentDebtMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(s.CurrentDebt)
}

// Deactivate marks the supplier as inactive
func (s *Supplier) Deactivate() {
	s.IsActive = false
	s.UpdatedAt = time.Now()
}
