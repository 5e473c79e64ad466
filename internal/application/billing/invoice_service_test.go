package billing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/billing"
	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockInvoiceRepository is a mock implementation of InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Invoice, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, inv *billing.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) FindByNumber(ctx context.Context, number string) (*billing.Invoice, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]billing.Invoice, error) {
	args := m.Called(ctx, customerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByStatus(ctx context.Context, status billing.InvoiceStatus, filter shared.Filter) ([]billing.Invoice, error) {
	args := m.Called(ctx, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) GenerateNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockInvoiceRepository) SaveWithStockDeduction(ctx context.Context, inv *billing.Invoice, deductions []billing.StockDeduction) error {
	args := m.Called(ctx, inv, deductions)
	return args.Error(0)
}

func (m *MockInvoiceRepository) ReplaceItems(ctx context.Context, inv *billing.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, p *catalog.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindLowStock(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) DeductStock(ctx context.Context, productID uuid.UUID, quantity int64) (bool, error) {
	args := m.Called(ctx, productID, quantity)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) RestoreStock(ctx context.Context, productID uuid.UUID, quantity int64) error {
	args := m.Called(ctx, productID, quantity)
	return args.Error(0)
}

// MockCustomerRepository is a mock implementation of CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, c *partner.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) FindByEmail(ctx context.Context, email string) (*partner.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func newTestService() (*InvoiceService, *MockInvoiceRepository, *MockProductRepository, *MockCustomerRepository) {
	invoiceRepo := new(MockInvoiceRepository)
	productRepo := new(MockProductRepository)
	customerRepo := new(MockCustomerRepository)
	return NewInvoiceService(invoiceRepo, productRepo, customerRepo), invoiceRepo, productRepo, customerRepo
}

func testProduct(t *testing.T, name string, stock int64) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct("SKU-"+name, name, "pcs", valueobject.NewMoneyUSDFromFloat(10))
	require.NoError(t, err)
	if stock > 0 {
		require.NoError(t, p.Receive(stock))
	}
	return p
}

func testCustomer(t *testing.T) *partner.Customer {
	t.Helper()
	c, err := partner.NewCustomer("Maria", "Lopez", "maria@example.com", "")
	require.NoError(t, err)
	return c
}

func TestInvoiceService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a quotation with snapshotted items", func(t *testing.T) {
		service, invoiceRepo, productRepo, customerRepo := newTestService()
		customer := testCustomer(t)
		product := testProduct(t, "Coffee", 10)

		customerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		invoiceRepo.On("GenerateNumber", ctx).Return("INV-2026-0001", nil)
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		invoiceRepo.On("Save", ctx, mock.AnythingOfType("*billing.Invoice")).Return(nil)

		resp, err := service.Create(ctx, CreateInvoiceRequest{
			CustomerID: customer.ID,
			Items: []CreateInvoiceItemInput{
				{ProductID: product.ID, Quantity: 3, UnitPrice: decimal.NewFromInt(12)},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "INV-2026-0001", resp.Number)
		assert.Equal(t, "quotation", resp.Status)
		assert.Equal(t, customer.DisplayName(), resp.CustomerName)
		require.Len(t, resp.Items, 1)
		assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(36)))
		invoiceRepo.AssertExpectations(t)
	})

	t.Run("unknown customer", func(t *testing.T) {
		service, _, _, customerRepo := newTestService()
		id := uuid.New()
		customerRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := service.Create(ctx, CreateInvoiceRequest{CustomerID: id})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("regenerates number when a concurrent create took it", func(t *testing.T) {
		service, invoiceRepo, productRepo, customerRepo := newTestService()
		customer := testCustomer(t)
		product := testProduct(t, "Coffee", 10)

		customerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		invoiceRepo.On("GenerateNumber", ctx).Return("INV-2026-00007", nil).Once()
		invoiceRepo.On("Save", ctx, mock.AnythingOfType("*billing.Invoice")).Return(shared.ErrAlreadyExists).Once()
		invoiceRepo.On("GenerateNumber", ctx).Return("INV-2026-00008", nil).Once()
		invoiceRepo.On("Save", ctx, mock.AnythingOfType("*billing.Invoice")).Return(nil).Once()

		resp, err := service.Create(ctx, CreateInvoiceRequest{
			CustomerID: customer.ID,
			Items: []CreateInvoiceItemInput{
				{ProductID: product.ID, Quantity: 1, UnitPrice: decimal.NewFromInt(5)},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "INV-2026-00008", resp.Number)
		invoiceRepo.AssertExpectations(t)
	})

	t.Run("gives up after repeated number collisions", func(t *testing.T) {
		service, invoiceRepo, productRepo, customerRepo := newTestService()
		customer := testCustomer(t)
		product := testProduct(t, "Coffee", 10)

		customerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		invoiceRepo.On("GenerateNumber", ctx).Return("INV-2026-00007", nil)
		invoiceRepo.On("Save", ctx, mock.AnythingOfType("*billing.Invoice")).Return(shared.ErrAlreadyExists)

		_, err := service.Create(ctx, CreateInvoiceRequest{
			CustomerID: customer.ID,
			Items: []CreateInvoiceItemInput{
				{ProductID: product.ID, Quantity: 1, UnitPrice: decimal.NewFromInt(5)},
			},
		})

		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})
}

func TestInvoiceService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	newQuotation := func(t *testing.T, product *catalog.Product, qty int64) *billing.Invoice {
		t.Helper()
		inv, err := billing.NewInvoice("INV-1", uuid.New(), "Maria Lopez", timeOrZero(nil))
		require.NoError(t, err)
		_, err = inv.AddItem(product.ID, product.Name, product.SKU, qty, valueobject.NewMoneyUSDFromFloat(10))
		require.NoError(t, err)
		return inv
	}

	t.Run("commit to paid deducts stock atomically", func(t *testing.T) {
		service, invoiceRepo, productRepo, _ := newTestService()
		product := testProduct(t, "Coffee", 10)
		inv := newQuotation(t, product, 4)

		invoiceRepo.On("FindByID", ctx, inv.ID).Return(inv, nil)
		productRepo.On("FindByIDs", ctx, mock.Anything).Return([]catalog.Product{*product}, nil)
		invoiceRepo.On("SaveWithStockDeduction", ctx, inv, []billing.StockDeduction{
			{ProductID: product.ID, Quantity: 4},
		}).Return(nil)

		resp, err := service.UpdateStatus(ctx, inv.ID, UpdateStatusRequest{Status: "paid", PaymentMethod: "cash"})

		require.NoError(t, err)
		assert.Equal(t, "paid", resp.Status)
		invoiceRepo.AssertExpectations(t)
	})

	t.Run("insufficient stock blocks the commit", func(t *testing.T) {
		service, invoiceRepo, productRepo, _ := newTestService()
		product := testProduct(t, "Coffee", 2)
		inv := newQuotation(t, product, 5)

		invoiceRepo.On("FindByID", ctx, inv.ID).Return(inv, nil)
		productRepo.On("FindByIDs", ctx, mock.Anything).Return([]catalog.Product{*product}, nil)

		_, err := service.UpdateStatus(ctx, inv.ID, UpdateStatusRequest{Status: "paid", PaymentMethod: "cash"})

		require.Error(t, err)
		var stockErr *billing.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		require.Len(t, stockErr.UnavailableProducts, 1)
		assert.EqualValues(t, 3, stockErr.UnavailableProducts[0].MissingStock)
		assert.True(t, inv.IsQuotation())
		invoiceRepo.AssertNotCalled(t, "SaveWithStockDeduction", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cancel does not touch stock", func(t *testing.T) {
		service, invoiceRepo, _, _ := newTestService()
		product := testProduct(t, "Coffee", 10)
		inv := newQuotation(t, product, 4)

		invoiceRepo.On("FindByID", ctx, inv.ID).Return(inv, nil)
		invoiceRepo.On("Save", ctx, inv).Return(nil)

		resp, err := service.UpdateStatus(ctx, inv.ID, UpdateStatusRequest{Status: "canceled"})

		require.NoError(t, err)
		assert.Equal(t, "canceled", resp.Status)
		invoiceRepo.AssertNotCalled(t, "SaveWithStockDeduction", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("paid invoice rejects further transitions", func(t *testing.T) {
		service, invoiceRepo, productRepo, _ := newTestService()
		product := testProduct(t, "Coffee", 10)
		inv := newQuotation(t, product, 1)
		require.NoError(t, inv.TransitionTo(billing.InvoiceStatusPaid, valueobject.PaymentMethodCash))

		invoiceRepo.On("FindByID", ctx, inv.ID).Return(inv, nil)
		productRepo.On("FindByIDs", ctx, mock.Anything).Return([]catalog.Product{*product}, nil)

		_, err := service.UpdateStatus(ctx, inv.ID, UpdateStatusRequest{Status: "canceled"})
		assert.Error(t, err)
	})
}

func TestInvoiceService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("paid invoices are protected", func(t *testing.T) {
		service, invoiceRepo, _, _ := newTestService()
		inv, err := billing.NewInvoice("INV-1", uuid.New(), "X", timeOrZero(nil))
		require.NoError(t, err)
		_, err = inv.AddItem(uuid.New(), "A", "S", 1, valueobject.NewMoneyUSDFromFloat(1))
		require.NoError(t, err)
		require.NoError(t, inv.TransitionTo(billing.InvoiceStatusPaid, valueobject.PaymentMethodCash))

		invoiceRepo.On("FindByID", ctx, inv.ID).Return(inv, nil)

		err = service.Delete(ctx, inv.ID)
		assert.Error(t, err)
		invoiceRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("quotations can be deleted", func(t *testing.T) {
		service, invoiceRepo, _, _ := newTestService()
		inv, err := billing.NewInvoice("INV-1", uuid.New(), "X", timeOrZero(nil))
		require.NoError(t, err)

		invoiceRepo.On("FindByID", ctx, inv.ID).Return(inv, nil)
		invoiceRepo.On("Delete", ctx, inv.ID).Return(nil)

		require.NoError(t, service.Delete(ctx, inv.ID))
		invoiceRepo.AssertExpectations(t)
	})
}
