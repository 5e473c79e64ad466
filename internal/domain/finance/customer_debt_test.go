package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestDebt(t *testing.T, amount float64) *CustomerDebt {
	debt, err := NewCustomerDebt(uuid.New(), uuid.New(), uuid.New(),
		valueobject.NewMoneyUSDFromFloat(amount), time.Now(), nil, "")
	require.NoError(t, err)
	return debt
}

// checkLedgerInvariant asserts original == remaining + paid
func checkLedgerInvariant(t *testing.T, d *CustomerDebt) {
	t.Helper()
	assert.True(t, d.OriginalAmount.Equal(d.RemainingAmount.Add(d.PaidAmount)),
		"original %s != remaining %s + paid %s", d.OriginalAmount, d.RemainingAmount, d.PaidAmount)
}

func TestNewCustomerDebt(t *testing.T) {
	t.Run("starts pending with full remaining", func(t *testing.T) {
		debt := createTestDebt(t, 100)
		assert.Equal(t, DebtStatusPending, debt.Status)
		assert.True(t, debt.RemainingAmount.Equal(decimal.NewFromInt(100)))
		assert.True(t, debt.PaidAmount.IsZero())
		checkLedgerInvariant(t, debt)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewCustomerDebt(uuid.New(), uuid.New(), uuid.New(),
			valueobject.ZeroUSD(), time.Now(), nil, "")
		assert.Error(t, err)
	})

	t.Run("rejects due date before debt date", func(t *testing.T) {
		debtDate := time.Now()
		due := debtDate.Add(-24 * time.Hour)
		_, err := NewCustomerDebt(uuid.New(), uuid.New(), uuid.New(),
			valueobject.NewMoneyUSDFromFloat(10), debtDate, &due, "")
		assert.Error(t, err)
	})
}

func TestCustomerDebt_ApplyPayment(t *testing.T) {
	t.Run("partial payment", func(t *testing.T) {
		debt := createTestDebt(t, 100)

		require.NoError(t, debt.ApplyPayment(valueobject.NewMoneyUSDFromFloat(40)))
		assert.True(t, debt.RemainingAmount.Equal(decimal.NewFromInt(60)))
		assert.True(t, debt.PaidAmount.Equal(decimal.NewFromInt(40)))
		assert.Equal(t, DebtStatusPartial, debt.Status)
		checkLedgerInvariant(t, debt)
	})

	t.Run("payments accumulate to paid", func(t *testing.T) {
		debt := createTestDebt(t, 100)
		require.NoError(t, debt.ApplyPayment(valueobject.NewMoneyUSDFromFloat(40)))
		require.NoError(t, debt.ApplyPayment(valueobject.NewMoneyUSDFromFloat(60)))

		assert.True(t, debt.RemainingAmount.IsZero())
		assert.True(t, debt.PaidAmount.Equal(decimal.NewFromInt(100)))
		assert.Equal(t, DebtStatusPaid, debt.Status)
		assert.True(t, debt.IsSettled())
		checkLedgerInvariant(t, debt)
	})

	t.Run("excess payment rejected with no field change", func(t *testing.T) {
		debt := createTestDebt(t, 30)

		err := debt.ApplyPayment(valueobject.NewMoneyUSDFromFloat(50))
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EXCESS_PAYMENT", domainErr.Code)
		assert.True(t, debt.RemainingAmount.Equal(decimal.NewFromInt(30)))
		assert.True(t, debt.PaidAmount.IsZero())
		assert.Equal(t, DebtStatusPending, debt.Status)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		debt := createTestDebt(t, 30)
		assert.Error(t, debt.ApplyPayment(valueobject.ZeroUSD()))
	})
}

func TestCustomerDebt_ReversePayment(t *testing.T) {
	t.Run("restores pre-payment values", func(t *testing.T) {
		debt := createTestDebt(t, 100)
		require.NoError(t, debt.ApplyPayment(valueobject.NewMoneyUSDFromFloat(40)))
		require.NoError(t, debt.ApplyPayment(valueobject.NewMoneyUSDFromFloat(20)))

		require.NoError(t, debt.ReversePayment(valueobject.NewMoneyUSDFromFloat(20)))
		assert.True(t, debt.RemainingAmount.Equal(decimal.NewFromInt(60)))
		assert.True(t, debt.PaidAmount.Equal(decimal.NewFromInt(40)))
		assert.Equal(t, DebtStatusPartial, debt.Status)
		checkLedgerInvariant(t, debt)
	})

	t.Run("reversing the only payment returns to pending", func(t *testing.T) {
		debt := createTestDebt(t, 100)
		require.NoError(t, debt.ApplyPayment(valueobject.NewMoneyUSDFromFloat(40)))

		require.NoError(t, debt.ReversePayment(valueobject.NewMoneyUSDFromFloat(40)))
		assert.True(t, debt.PaidAmount.IsZero())
		assert.True(t, debt.RemainingAmount.Equal(debt.OriginalAmount))
		assert.Equal(t, DebtStatusPending, debt.Status)
		checkLedgerInvariant(t, debt)
	})

	t.Run("reversal on a settled debt reopens it", func(t *testing.T) {
		debt := createTestDebt(t, 100)
		require.NoError(t, debt.ApplyPayment(valueobject.NewMoneyUSDFromFloat(60)))
		require.NoError(t, debt.ApplyPayment(valueobject.NewMoneyUSDFromFloat(40)))
		require.True(t, debt.IsSettled())

		require.NoError(t, debt.ReversePayment(valueobject.NewMoneyUSDFromFloat(40)))
		assert.Equal(t, DebtStatusPartial, debt.Status)
		assert.True(t, debt.RemainingAmount.Equal(decimal.NewFromInt(40)))
		checkLedgerInvariant(t, debt)
	})
}

func TestCustomerDebt_Overdue(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	t.Run("no due date is never overdue", func(t *testing.T) {
		debt := createTestDebt(t, 50)
		assert.False(t, debt.IsOverdue(now))
		assert.Equal(t, 0, debt.DaysOverdue(now))
	})

	t.Run("past due date counts whole days", func(t *testing.T) {
		due := now.Add(-72 * time.Hour)
		debtDate := due.Add(-24 * time.Hour)
		debt, err := NewCustomerDebt(uuid.New(), uuid.New(), uuid.New(),
			valueobject.NewMoneyUSDFromFloat(50), debtDate, &due, "")
		require.NoError(t, err)

		assert.True(t, debt.IsOverdue(now))
		assert.Equal(t, 3, debt.DaysOverdue(now))

		debt.RefreshOverdue(now)
		assert.Equal(t, DebtStatusOverdue, debt.Status)
	})

	t.Run("settled debt past due is not overdue", func(t *testing.T) {
		due := now.Add(-48 * time.Hour)
		debtDate := due.Add(-24 * time.Hour)
		debt, err := NewCustomerDebt(uuid.New(), uuid.New(), uuid.New(),
			valueobject.NewMoneyUSDFromFloat(50), debtDate, &due, "")
		require.NoError(t, err)
		require.NoError(t, debt.ApplyPayment(valueobject.NewMoneyUSDFromFloat(50)))

		assert.False(t, debt.IsOverdue(now))
		assert.Equal(t, 0, debt.DaysOverdue(now))

		debt.RefreshOverdue(now)
		assert.Equal(t, DebtStatusPaid, debt.Status)
	})
}
