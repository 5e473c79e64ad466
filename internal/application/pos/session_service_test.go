package pos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/billing"
	"github.com/retailpos/backend/internal/domain/finance"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/pos"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSessionRepository is a mock implementation of SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*pos.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pos.Session), args.Error(1)
}

func (m *MockSessionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]pos.Session, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pos.Session), args.Error(1)
}

func (m *MockSessionRepository) Save(ctx context.Context, session *pos.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSessionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSessionRepository) FindOpenByUser(ctx context.Context, userID uuid.UUID) (*pos.Session, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pos.Session), args.Error(1)
}

func (m *MockSessionRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]pos.Session, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pos.Session), args.Error(1)
}

// MockPaymentRepository is a mock implementation of finance.PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.Payment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Save(ctx context.Context, payment *finance.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPaymentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaymentRepository) FindByPayable(ctx context.Context, ref finance.PayableRef) ([]finance.Payment, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.Payment), args.Error(1)
}

func (m *MockPaymentRepository) CountByPayable(ctx context.Context, ref finance.PayableRef) (int64, error) {
	args := m.Called(ctx, ref)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaymentRepository) FindBySession(ctx context.Context, sessionID uuid.UUID) ([]finance.Payment, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.Payment), args.Error(1)
}

func (m *MockPaymentRepository) SaveWithSupplier(ctx context.Context, payment *finance.Payment, supplier *partner.Supplier) error {
	args := m.Called(ctx, payment, supplier)
	return args.Error(0)
}

func (m *MockPaymentRepository) DeleteWithDebtReversal(ctx context.Context, paymentID uuid.UUID, debt *finance.CustomerDebt, inv *billing.Invoice) error {
	args := m.Called(ctx, paymentID, debt, inv)
	return args.Error(0)
}

func (m *MockPaymentRepository) DeleteWithSupplierReversal(ctx context.Context, paymentID uuid.UUID, supplier *partner.Supplier) error {
	args := m.Called(ctx, paymentID, supplier)
	return args.Error(0)
}

func newSessionService() (*SessionService, *MockSessionRepository, *MockPaymentRepository) {
	sessionRepo := new(MockSessionRepository)
	paymentRepo := new(MockPaymentRepository)
	return NewSessionService(sessionRepo, paymentRepo), sessionRepo, paymentRepo
}

func cashPayment(t *testing.T, sessionID uuid.UUID, pType finance.PaymentType, amount float64) finance.Payment {
	t.Helper()
	category := finance.PaymentCategorySale
	if pType == finance.PaymentTypeExpense {
		category = finance.PaymentCategoryOtherExpense
	}
	p, err := finance.NewPayment(pType, category, valueobject.NewMoneyUSDFromFloat(amount),
		valueobject.PaymentMethodCash, time.Now(), finance.PayableNone(), uuid.New(), "")
	require.NoError(t, err)
	p.AttachSession(sessionID)
	return *p
}

func TestSessionService_Open(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("opens when none is open", func(t *testing.T) {
		service, sessionRepo, _ := newSessionService()
		sessionRepo.On("FindOpenByUser", ctx, userID).Return(nil, shared.ErrNotFound)
		sessionRepo.On("Save", ctx, mock.AnythingOfType("*pos.Session")).Return(nil)

		resp, err := service.Open(ctx, userID, OpenSessionRequest{InitialCash: decimal.NewFromInt(100)})

		require.NoError(t, err)
		assert.Equal(t, "open", resp.Status)
		assert.True(t, resp.InitialCash.Equal(decimal.NewFromInt(100)))
		sessionRepo.AssertExpectations(t)
	})

	t.Run("second open is rejected", func(t *testing.T) {
		service, sessionRepo, _ := newSessionService()
		open, err := pos.NewSession(userID, valueobject.ZeroUSD())
		require.NoError(t, err)
		sessionRepo.On("FindOpenByUser", ctx, userID).Return(open, nil)

		_, err = service.Open(ctx, userID, OpenSessionRequest{})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "SESSION_ALREADY_OPEN", domainErr.Code)
		sessionRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestSessionService_Close(t *testing.T) {
	ctx := context.Background()

	t.Run("expected cash comes from the session's cash ledger", func(t *testing.T) {
		service, sessionRepo, paymentRepo := newSessionService()
		session, err := pos.NewSession(uuid.New(), valueobject.NewMoneyUSDFromFloat(100))
		require.NoError(t, err)

		payments := []finance.Payment{
			cashPayment(t, session.ID, finance.PaymentTypeIncome, 250),
			cashPayment(t, session.ID, finance.PaymentTypeExpense, 30),
		}

		sessionRepo.On("FindByID", ctx, session.ID).Return(session, nil)
		paymentRepo.On("FindBySession", ctx, session.ID).Return(payments, nil)
		sessionRepo.On("Save", ctx, session).Return(nil)

		resp, err := service.Close(ctx, session.ID, CloseSessionRequest{
			FinalCash: decimal.NewFromInt(320),
		})

		require.NoError(t, err)
		assert.Equal(t, "closed", resp.Status)
		// 100 float + 250 in - 30 out = 320 expected, drawer matches
		assert.True(t, resp.ExpectedCash.Equal(decimal.NewFromInt(320)))
		assert.True(t, resp.CashDifference.IsZero())
	})

	t.Run("closing a closed session fails", func(t *testing.T) {
		service, sessionRepo, paymentRepo := newSessionService()
		session, err := pos.NewSession(uuid.New(), valueobject.ZeroUSD())
		require.NoError(t, err)
		require.NoError(t, session.Close(valueobject.ZeroUSD(), valueobject.ZeroUSD(), ""))

		sessionRepo.On("FindByID", ctx, session.ID).Return(session, nil)
		paymentRepo.On("FindBySession", ctx, session.ID).Return([]finance.Payment{}, nil)

		_, err = service.Close(ctx, session.ID, CloseSessionRequest{FinalCash: decimal.Zero})
		assert.Error(t, err)
	})
}
