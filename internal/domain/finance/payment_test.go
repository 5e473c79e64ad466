package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayableRef(t *testing.T) {
	t.Run("none", func(t *testing.T) {
		ref := PayableNone()
		assert.True(t, ref.IsNone())
		_, ok := ref.CustomerDebtID()
		assert.False(t, ok)
		_, ok = ref.SupplierID()
		assert.False(t, ok)
	})

	t.Run("customer debt", func(t *testing.T) {
		id := uuid.New()
		ref := PayableCustomerDebt(id)
		assert.False(t, ref.IsNone())

		got, ok := ref.CustomerDebtID()
		require.True(t, ok)
		assert.Equal(t, id, got)

		_, ok = ref.SupplierID()
		assert.False(t, ok)
	})

	t.Run("supplier", func(t *testing.T) {
		id := uuid.New()
		ref := PayableSupplier(id)

		got, ok := ref.SupplierID()
		require.True(t, ok)
		assert.Equal(t, id, got)
	})
}

func TestNewPayment(t *testing.T) {
	amount := valueobject.NewMoneyUSDFromFloat(25)
	userID := uuid.New()

	t.Run("standalone income", func(t *testing.T) {
		p, err := NewPayment(PaymentTypeIncome, PaymentCategoryOtherIncome, amount,
			valueobject.PaymentMethodCash, time.Now(), PayableNone(), userID, "consulting")
		require.NoError(t, err)
		assert.Equal(t, PaymentTypeIncome, p.Type)
		assert.True(t, p.Amount.Equal(decimal.NewFromInt(25)))
		assert.True(t, p.Payable.IsNone())
		assert.Equal(t, userID, p.UserID)
	})

	t.Run("rejects invalid type", func(t *testing.T) {
		_, err := NewPayment(PaymentType("transfer"), PaymentCategoryOtherIncome, amount,
			valueobject.PaymentMethodCash, time.Now(), PayableNone(), userID, "")
		assert.Error(t, err)
	})

	t.Run("rejects invalid category", func(t *testing.T) {
		_, err := NewPayment(PaymentTypeIncome, PaymentCategory("tips"), amount,
			valueobject.PaymentMethodCash, time.Now(), PayableNone(), userID, "")
		assert.Error(t, err)
	})

	t.Run("rejects invalid method", func(t *testing.T) {
		_, err := NewPayment(PaymentTypeIncome, PaymentCategoryOtherIncome, amount,
			valueobject.PaymentMethod("crypto"), time.Now(), PayableNone(), userID, "")
		assert.Error(t, err)
	})

	t.Run("rejects zero amount", func(t *testing.T) {
		_, err := NewPayment(PaymentTypeIncome, PaymentCategoryOtherIncome, valueobject.ZeroUSD(),
			valueobject.PaymentMethodCash, time.Now(), PayableNone(), userID, "")
		assert.Error(t, err)
	})

	t.Run("rejects missing user", func(t *testing.T) {
		_, err := NewPayment(PaymentTypeIncome, PaymentCategoryOtherIncome, amount,
			valueobject.PaymentMethodCash, time.Now(), PayableNone(), uuid.Nil, "")
		assert.Error(t, err)
	})

	t.Run("rejects payable ref without an ID", func(t *testing.T) {
		_, err := NewPayment(PaymentTypeIncome, PaymentCategoryDebtPayment, amount,
			valueobject.PaymentMethodCash, time.Now(), PayableRef{Kind: PayableKindCustomerDebt}, userID, "")
		assert.Error(t, err)
	})
}

func TestNewDebtPayment(t *testing.T) {
	debt := createTestDebt(t, 100)
	userID := uuid.New()

	p, err := NewDebtPayment(debt, valueobject.NewMoneyUSDFromFloat(40),
		valueobject.PaymentMethodCard, userID, "installment")
	require.NoError(t, err)

	assert.Equal(t, PaymentTypeIncome, p.Type)
	assert.Equal(t, PaymentCategoryDebtPayment, p.Category)

	debtID, ok := p.Payable.CustomerDebtID()
	require.True(t, ok)
	assert.Equal(t, debt.ID, debtID)
	require.NotNil(t, p.CustomerID)
	assert.Equal(t, debt.CustomerID, *p.CustomerID)
}

func TestNewSupplierLedgerPayment(t *testing.T) {
	supplierID := uuid.New()

	p, err := NewSupplierLedgerPayment(supplierID, valueobject.NewMoneyUSDFromFloat(200),
		valueobject.PaymentMethodBankTransfer, uuid.New(), "restock")
	require.NoError(t, err)

	assert.Equal(t, PaymentTypeExpense, p.Type)
	assert.Equal(t, PaymentCategorySupplierPayment, p.Category)

	got, ok := p.Payable.SupplierID()
	require.True(t, ok)
	assert.Equal(t, supplierID, got)
	require.NotNil(t, p.SupplierID)
	assert.Equal(t, supplierID, *p.SupplierID)
}

func TestPayment_AttachSession(t *testing.T) {
	p, err := NewPayment(PaymentTypeIncome, PaymentCategorySale, valueobject.NewMoneyUSDFromFloat(10),
		valueobject.PaymentMethodCash, time.Now(), PayableNone(), uuid.New(), "")
	require.NoError(t, err)

	sessionID := uuid.New()
	p.AttachSession(sessionID)
	require.NotNil(t, p.PosSessionID)
	assert.Equal(t, sessionID, *p.PosSessionID)

	p.PosSessionID = nil
	p.AttachSession(uuid.Nil)
	assert.Nil(t, p.PosSessionID)
}
