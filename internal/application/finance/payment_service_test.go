package finance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/billing"
	"github.com/retailpos/backend/internal/domain/finance"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newPaymentService() (*PaymentService, *MockPaymentRepository, *MockDebtRepository, *MockSupplierRepository, *MockInvoiceRepository) {
	paymentRepo := new(MockPaymentRepository)
	debtRepo := new(MockDebtRepository)
	supplierRepo := new(MockSupplierRepository)
	invoiceRepo := new(MockInvoiceRepository)
	return NewPaymentService(paymentRepo, debtRepo, supplierRepo, invoiceRepo), paymentRepo, debtRepo, supplierRepo, invoiceRepo
}

func TestPaymentService_Record(t *testing.T) {
	ctx := context.Background()

	t.Run("standalone expense", func(t *testing.T) {
		service, paymentRepo, _, _, _ := newPaymentService()
		paymentRepo.On("Save", ctx, mock.AnythingOfType("*finance.Payment")).Return(nil)

		resp, err := service.Record(ctx, uuid.New(), RecordPaymentRequest{
			Type:        "expense",
			Category:    "other_expense",
			Amount:      decimal.NewFromInt(75),
			Method:      "cash",
			Description: "window repair",
		})

		require.NoError(t, err)
		assert.Equal(t, "expense", resp.Type)
		assert.Empty(t, resp.PayableKind)
		assert.Nil(t, resp.PayableID)
		paymentRepo.AssertExpectations(t)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		service, paymentRepo, _, _, _ := newPaymentService()

		_, err := service.Record(ctx, uuid.New(), RecordPaymentRequest{
			Type: "income", Category: "tips", Amount: decimal.NewFromInt(1), Method: "cash",
		})

		assert.Error(t, err)
		paymentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestPaymentService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("date range restricts rows and total alike", func(t *testing.T) {
		service, paymentRepo, _, _, _ := newPaymentService()

		start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
		inRange := func(filter shared.Filter) bool {
			return filter.Filters["start_date"] == start && filter.Filters["end_date"] == end
		}

		paymentRepo.On("FindAll", ctx, mock.MatchedBy(inRange)).Return([]finance.Payment{}, nil)
		paymentRepo.On("Count", ctx, mock.MatchedBy(inRange)).Return(int64(0), nil)

		_, total, err := service.List(ctx, PaymentListFilter{StartDate: &start, EndDate: &end})

		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
		paymentRepo.AssertExpectations(t)
	})

	t.Run("no range leaves the filter unrestricted", func(t *testing.T) {
		service, paymentRepo, _, _, _ := newPaymentService()

		unrestricted := func(filter shared.Filter) bool {
			_, hasStart := filter.Filters["start_date"]
			_, hasEnd := filter.Filters["end_date"]
			return !hasStart && !hasEnd
		}

		paymentRepo.On("FindAll", ctx, mock.MatchedBy(unrestricted)).Return([]finance.Payment{}, nil)
		paymentRepo.On("Count", ctx, mock.MatchedBy(unrestricted)).Return(int64(3), nil)

		_, total, err := service.List(ctx, PaymentListFilter{})

		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		paymentRepo.AssertExpectations(t)
	})
}

func TestPaymentService_Delete(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("debt-linked payment reverses debt and invoice", func(t *testing.T) {
		service, paymentRepo, debtRepo, _, invoiceRepo := newPaymentService()

		inv := paidInvoice(t, 100)
		require.NoError(t, inv.RegisterDebt(valueobject.NewMoneyUSDFromFloat(40)))
		debt := debtForInvoice(t, inv, 40)

		// a 15 payment was previously applied to both
		require.NoError(t, debt.ApplyPayment(valueobject.NewMoneyUSDFromFloat(15)))
		require.NoError(t, inv.ApplyDebtPayment(valueobject.NewMoneyUSDFromFloat(15)))

		payment, err := finance.NewDebtPayment(debt, valueobject.NewMoneyUSDFromFloat(15),
			valueobject.PaymentMethodCash, userID, "installment")
		require.NoError(t, err)

		paymentRepo.On("FindByID", ctx, payment.ID).Return(payment, nil)
		debtRepo.On("FindByID", ctx, debt.ID).Return(debt, nil)
		invoiceRepo.On("FindByID", ctx, inv.ID).Return(inv, nil)
		paymentRepo.On("DeleteWithDebtReversal", ctx, payment.ID, debt, inv).Return(nil)

		require.NoError(t, service.Delete(ctx, payment.ID))

		assert.True(t, debt.RemainingAmount.Equal(decimal.NewFromInt(40)))
		assert.True(t, debt.PaidAmount.IsZero())
		assert.Equal(t, finance.DebtStatusPending, debt.Status)
		assert.True(t, inv.PaidAmount.Equal(decimal.NewFromInt(60)))
		assert.Equal(t, billing.PaymentStatusPartial, inv.PaymentStatus)
		paymentRepo.AssertExpectations(t)
	})

	t.Run("supplier payment re-increments the balance", func(t *testing.T) {
		service, paymentRepo, _, supplierRepo, _ := newPaymentService()

		supplier, err := partner.NewSupplier("Acme Wholesale")
		require.NoError(t, err)
		require.NoError(t, supplier.AddDebt(valueobject.NewMoneyUSDFromFloat(200)))
		require.NoError(t, supplier.PayDebt(valueobject.NewMoneyUSDFromFloat(200)))

		payment, err := finance.NewSupplierLedgerPayment(supplier.ID,
			valueobject.NewMoneyUSDFromFloat(200), valueobject.PaymentMethodCash, userID, "")
		require.NoError(t, err)

		paymentRepo.On("FindByID", ctx, payment.ID).Return(payment, nil)
		supplierRepo.On("FindByID", ctx, supplier.ID).Return(supplier, nil)
		paymentRepo.On("DeleteWithSupplierReversal", ctx, payment.ID, supplier).Return(nil)

		require.NoError(t, service.Delete(ctx, payment.ID))

		assert.True(t, supplier.CurrentDebt.Equal(decimal.NewFromInt(200)))
		paymentRepo.AssertExpectations(t)
	})

	t.Run("unlinked payment deletes without reversal", func(t *testing.T) {
		service, paymentRepo, debtRepo, supplierRepo, _ := newPaymentService()

		payment, err := finance.NewPayment(finance.PaymentTypeIncome, finance.PaymentCategoryOtherIncome,
			valueobject.NewMoneyUSDFromFloat(10), valueobject.PaymentMethodCash, time.Now(),
			finance.PayableNone(), userID, "")
		require.NoError(t, err)

		paymentRepo.On("FindByID", ctx, payment.ID).Return(payment, nil)
		paymentRepo.On("Delete", ctx, payment.ID).Return(nil)

		require.NoError(t, service.Delete(ctx, payment.ID))
		debtRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
		supplierRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}
