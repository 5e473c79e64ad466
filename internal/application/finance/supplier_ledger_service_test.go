package finance

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/finance"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newSupplierLedgerService() (*SupplierLedgerService, *MockSupplierRepository, *MockPaymentRepository) {
	supplierRepo := new(MockSupplierRepository)
	paymentRepo := new(MockPaymentRepository)
	return NewSupplierLedgerService(supplierRepo, paymentRepo), supplierRepo, paymentRepo
}

func TestSupplierLedgerService_AddDebt(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	service, supplierRepo, paymentRepo := newSupplierLedgerService()
	supplier, err := partner.NewSupplier("Acme Wholesale")
	require.NoError(t, err)

	supplierRepo.On("FindByID", ctx, supplier.ID).Return(supplier, nil)
	paymentRepo.On("SaveWithSupplier", ctx, mock.MatchedBy(func(p *finance.Payment) bool {
		return p.Type == finance.PaymentTypeExpense && p.Category == finance.PaymentCategorySupplierPayment
	}), supplier).Return(nil)

	resp, err := service.AddDebt(ctx, supplier.ID, userID, SupplierDebtRequest{
		Amount: decimal.NewFromInt(200),
	})

	require.NoError(t, err)
	assert.True(t, supplier.CurrentDebt.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, "Debt to Acme Wholesale", resp.Description)
	paymentRepo.AssertExpectations(t)
}

func TestSupplierLedgerService_PayDebt(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	setup := func(t *testing.T, debt int64) (*SupplierLedgerService, *partner.Supplier, *MockSupplierRepository, *MockPaymentRepository) {
		service, supplierRepo, paymentRepo := newSupplierLedgerService()
		supplier, err := partner.NewSupplier("Acme Wholesale")
		require.NoError(t, err)
		if debt > 0 {
			require.NoError(t, supplier.AddDebt(valueobject.NewMoneyUSD(decimal.NewFromInt(debt))))
		}
		supplierRepo.On("FindByID", ctx, supplier.ID).Return(supplier, nil)
		return service, supplier, supplierRepo, paymentRepo
	}

	t.Run("pays down the balance", func(t *testing.T) {
		service, supplier, _, paymentRepo := setup(t, 200)
		paymentRepo.On("SaveWithSupplier", ctx, mock.AnythingOfType("*finance.Payment"), supplier).Return(nil)

		_, err := service.PayDebt(ctx, supplier.ID, userID, SupplierPaymentRequest{
			Amount: decimal.NewFromInt(200), Method: "cash",
		})

		require.NoError(t, err)
		assert.True(t, supplier.CurrentDebt.IsZero())
	})

	t.Run("overpayment is rejected before any write", func(t *testing.T) {
		service, supplier, _, paymentRepo := setup(t, 200)

		_, err := service.PayDebt(ctx, supplier.ID, userID, SupplierPaymentRequest{
			Amount: decimal.NewFromInt(250), Method: "cash",
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EXCESS_PAYMENT", domainErr.Code)
		assert.True(t, supplier.CurrentDebt.Equal(decimal.NewFromInt(200)))
		paymentRepo.AssertNotCalled(t, "SaveWithSupplier", mock.Anything, mock.Anything, mock.Anything)
	})
}
