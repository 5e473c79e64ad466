package billing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/billing"
	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// invoiceNumberRetries bounds regeneration attempts when concurrent
// creates collide on the same invoice number.
const invoiceNumberRetries = 3

// InvoiceService handles invoice business operations
type InvoiceService struct {
	invoiceRepo    billing.InvoiceRepository
	productRepo    catalog.ProductRepository
	customerRepo   partner.CustomerRepository
	eventPublisher shared.EventPublisher
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(invoiceRepo billing.InvoiceRepository, productRepo catalog.ProductRepository, customerRepo partner.CustomerRepository) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *InvoiceService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new quotation. Line item names, SKUs and prices are
// snapshotted from the catalog at creation time.
func (s *InvoiceService) Create(ctx context.Context, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	number, err := s.invoiceRepo.GenerateNumber(ctx)
	if err != nil {
		return nil, err
	}

	issuedAt := timeOrZero(req.IssuedAt)
	inv, err := billing.NewInvoice(number, customer.ID, customer.DisplayName(), issuedAt)
	if err != nil {
		return nil, err
	}

	for _, input := range req.Items {
		product, err := s.productRepo.FindByID(ctx, input.ProductID)
		if err != nil {
			return nil, err
		}

		price := valueobject.NewMoneyUSD(input.UnitPrice)
		if input.UnitPrice.IsZero() {
			price = valueobject.NewMoneyUSD(product.Price)
		}

		if _, err := inv.AddItem(product.ID, product.Name, product.SKU, input.Quantity, price); err != nil {
			return nil, err
		}
	}

	if err := applyDiscount(inv, req.DiscountType, req.DiscountValue); err != nil {
		return nil, err
	}

	// Number generation reads the current maximum without a lock, so a
	// concurrent create can mint the same number. The unique index turns
	// that into ErrAlreadyExists; regenerate and retry.
	for attempt := 0; ; attempt++ {
		err = s.invoiceRepo.Save(ctx, inv)
		if err == nil {
			break
		}
		if !errors.Is(err, shared.ErrAlreadyExists) || attempt >= invoiceNumberRetries {
			return nil, err
		}
		number, nErr := s.invoiceRepo.GenerateNumber(ctx)
		if nErr != nil {
			return nil, nErr
		}
		inv.Number = number
	}

	s.publishEvents(ctx, inv)

	response := ToInvoiceResponse(inv)
	return &response, nil
}

// GetByID retrieves an invoice by ID
func (s *InvoiceService) GetByID(ctx context.Context, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(inv)
	return &response, nil
}

// GetByNumber retrieves an invoice by its human-facing number
func (s *InvoiceService) GetByNumber(ctx context.Context, number string) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(inv)
	return &response, nil
}

// List retrieves invoices with filtering and pagination
func (s *InvoiceService) List(ctx context.Context, filter InvoiceListFilter) ([]InvoiceResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	if filter.CustomerID != nil {
		domainFilter.Filters["customer_id"] = *filter.CustomerID
	}
	if filter.Status != nil {
		domainFilter.Filters["status"] = *filter.Status
	}
	if filter.StartDate != nil {
		domainFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["end_date"] = *filter.EndDate
	}

	invoices, err := s.invoiceRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.invoiceRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		responses = append(responses, ToInvoiceResponse(&invoices[i]))
	}
	return responses, total, nil
}

// UpdateQuotation replaces a quotation's items and discount wholesale.
// Only invoices still in quotation status can be edited.
func (s *InvoiceService) UpdateQuotation(ctx context.Context, invoiceID uuid.UUID, req UpdateQuotationRequest) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	items := make([]billing.InvoiceItem, 0, len(req.Items))
	for _, input := range req.Items {
		product, err := s.productRepo.FindByID(ctx, input.ProductID)
		if err != nil {
			return nil, err
		}

		price := valueobject.NewMoneyUSD(input.UnitPrice)
		if input.UnitPrice.IsZero() {
			price = valueobject.NewMoneyUSD(product.Price)
		}

		item, err := billing.NewInvoiceItem(inv.ID, product.ID, product.Name, product.SKU, input.Quantity, price)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	if err := inv.ReplaceItems(items); err != nil {
		return nil, err
	}
	if req.IssuedAt != nil {
		if err := inv.SetIssuedAt(*req.IssuedAt); err != nil {
			return nil, err
		}
	}
	if err := applyDiscount(inv, req.DiscountType, req.DiscountValue); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.ReplaceItems(ctx, inv); err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(inv)
	return &response, nil
}

// CheckStock runs the availability check without committing anything
func (s *InvoiceService) CheckStock(ctx context.Context, invoiceID uuid.UUID) (*StockCheckResponse, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	products, err := s.loadProducts(ctx, inv)
	if err != nil {
		return nil, err
	}

	result := billing.CheckStockAvailability(inv, products)
	return &StockCheckResponse{
		Success:             result.Success,
		UnavailableProducts: result.UnavailableProducts,
	}, nil
}

// UpdateStatus moves an invoice to a new lifecycle status. Committing a
// quotation to paid first validates stock availability, then persists the
// status change and the per-item stock decrements in one transaction; the
// decrement itself is conditional, so a concurrent sale of the same units
// makes the transaction fail rather than driving stock negative.
func (s *InvoiceService) UpdateStatus(ctx context.Context, invoiceID uuid.UUID, req UpdateStatusRequest) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	target := billing.InvoiceStatus(req.Status)
	committing := inv.IsQuotation() && target == billing.InvoiceStatusPaid

	var deductions []billing.StockDeduction
	if committing {
		products, err := s.loadProducts(ctx, inv)
		if err != nil {
			return nil, err
		}

		result := billing.CheckStockAvailability(inv, products)
		if !result.Success {
			return nil, billing.NewInsufficientStockError(inv, result)
		}

		for _, item := range inv.Items {
			deductions = append(deductions, billing.StockDeduction{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			})
		}
	}

	method := valueobject.PaymentMethod(req.PaymentMethod)
	if err := inv.TransitionTo(target, method); err != nil {
		return nil, err
	}

	if committing {
		err = s.invoiceRepo.SaveWithStockDeduction(ctx, inv, deductions)
	} else {
		err = s.invoiceRepo.Save(ctx, inv)
	}
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, inv)

	response := ToInvoiceResponse(inv)
	return &response, nil
}

// Delete removes an invoice. Paid invoices are part of the financial record
// and cannot be deleted.
func (s *InvoiceService) Delete(ctx context.Context, invoiceID uuid.UUID) error {
	inv, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return err
	}
	if inv.IsPaid() {
		return shared.NewDomainError("INVALID_STATE", "Paid invoices cannot be deleted")
	}

	return s.invoiceRepo.Delete(ctx, invoiceID)
}

func (s *InvoiceService) loadProducts(ctx context.Context, inv *billing.Invoice) (map[uuid.UUID]*catalog.Product, error) {
	ids := make([]uuid.UUID, 0, len(inv.Items))
	for _, item := range inv.Items {
		ids = append(ids, item.ProductID)
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	return byID, nil
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func applyDiscount(inv *billing.Invoice, discountType *string, value *decimal.Decimal) error {
	if discountType == nil || value == nil {
		return nil
	}
	return inv.ApplyDiscount(billing.DiscountType(*discountType), *value)
}

func (s *InvoiceService) publishEvents(ctx context.Context, inv *billing.Invoice) {
	if s.eventPublisher == nil {
		return
	}
	events := inv.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	inv.ClearDomainEvents()
}
