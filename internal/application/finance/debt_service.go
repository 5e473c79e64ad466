package finance

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/billing"
	"github.com/retailpos/backend/internal/domain/finance"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
)

// DebtService handles the customer debt ledger
type DebtService struct {
	debtRepo       finance.CustomerDebtRepository
	paymentRepo    finance.PaymentRepository
	invoiceRepo    billing.InvoiceRepository
	customerRepo   partner.CustomerRepository
	eventPublisher shared.EventPublisher
}

// NewDebtService creates a new DebtService
func NewDebtService(debtRepo finance.CustomerDebtRepository, paymentRepo finance.PaymentRepository, invoiceRepo billing.InvoiceRepository, customerRepo partner.CustomerRepository) *DebtService {
	return &DebtService{
		debtRepo:     debtRepo,
		paymentRepo:  paymentRepo,
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *DebtService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateFromInvoice registers the unpaid remainder of a paid invoice as a
// tracked debt. The invoice's paid/debt split is updated in the same
// transaction. At most one debt can exist per invoice.
func (s *DebtService) CreateFromInvoice(ctx context.Context, userID uuid.UUID, req CreateDebtRequest) (*DebtResponse, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, req.InvoiceID)
	if err != nil {
		return nil, err
	}

	if existing, err := s.debtRepo.FindByInvoice(ctx, req.InvoiceID); err == nil && existing != nil {
		return nil, shared.NewDomainError("DEBT_EXISTS", "Invoice already has a tracked debt")
	} else if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	amount := valueobject.NewMoneyUSD(req.Amount)
	if err := inv.RegisterDebt(amount); err != nil {
		return nil, err
	}

	debt, err := finance.NewCustomerDebt(inv.CustomerID, inv.ID, userID, amount, inv.IssuedAt, req.DueDate, req.Notes)
	if err != nil {
		return nil, err
	}

	if err := s.debtRepo.CreateWithInvoice(ctx, debt, inv); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, debt.GetDomainEvents())
	debt.ClearDomainEvents()

	response := ToDebtResponse(debt)
	return &response, nil
}

// AddPayment applies a payment to a debt: the debt mutation, the ledger row
// and the invoice cascade commit in one transaction. A missing description is
// defaulted from the customer's display name.
func (s *DebtService) AddPayment(ctx context.Context, debtID, userID uuid.UUID, req AddDebtPaymentRequest) (*DebtResponse, error) {
	debt, err := s.debtRepo.FindByID(ctx, debtID)
	if err != nil {
		return nil, err
	}

	amount := valueobject.NewMoneyUSD(req.Amount)
	if err := debt.ApplyPayment(amount); err != nil {
		return nil, err
	}

	description := req.Description
	if description == "" {
		customer, err := s.customerRepo.FindByID(ctx, debt.CustomerID)
		if err != nil {
			return nil, err
		}
		description = "Debt payment from " + customer.DisplayName()
	}

	payment, err := finance.NewDebtPayment(debt, amount, valueobject.PaymentMethod(req.Method), userID, description)
	if err != nil {
		return nil, err
	}
	if req.SessionID != nil {
		payment.AttachSession(*req.SessionID)
	}

	inv, err := s.invoiceRepo.FindByID(ctx, debt.InvoiceID)
	if err != nil {
		return nil, err
	}
	if err := inv.ApplyDebtPayment(amount); err != nil {
		return nil, err
	}

	if err := s.debtRepo.SaveWithPayment(ctx, debt, payment, inv); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, debt.GetDomainEvents())
	debt.ClearDomainEvents()

	response := ToDebtResponse(debt)
	return &response, nil
}

// Delete removes a debt that has no payment history and reverts the linked
// invoice to fully paid.
func (s *DebtService) Delete(ctx context.Context, debtID uuid.UUID) error {
	debt, err := s.debtRepo.FindByID(ctx, debtID)
	if err != nil {
		return err
	}

	count, err := s.paymentRepo.CountByPayable(ctx, finance.PayableCustomerDebt(debt.ID))
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("HAS_PAYMENTS", "Debt has payment history and cannot be deleted")
	}

	inv, err := s.invoiceRepo.FindByID(ctx, debt.InvoiceID)
	if err != nil {
		return err
	}
	inv.SettleInFull()

	return s.debtRepo.DeleteWithInvoice(ctx, debt.ID, inv)
}

// GetByID retrieves a debt by ID
func (s *DebtService) GetByID(ctx context.Context, debtID uuid.UUID) (*DebtResponse, error) {
	debt, err := s.debtRepo.FindByID(ctx, debtID)
	if err != nil {
		return nil, err
	}
	response := ToDebtResponse(debt)
	return &response, nil
}

// List retrieves debts with filtering and pagination
func (s *DebtService) List(ctx context.Context, filter DebtListFilter) ([]DebtResponse, int64, error) {
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
	if filter.CustomerID != nil {
		domainFilter.Filters["customer_id"] = *filter.CustomerID
	}
	if filter.Status != nil {
		domainFilter.Filters["status"] = *filter.Status
	}

	debts, err := s.debtRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.debtRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]DebtResponse, 0, len(debts))
	for i := range debts {
		responses = append(responses, ToDebtResponse(&debts[i]))
	}
	return responses, total, nil
}

// ListOverdue returns unpaid debts past their due date
func (s *DebtService) ListOverdue(ctx context.Context, filter DebtListFilter) ([]DebtResponse, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	debts, err := s.debtRepo.FindOverdue(ctx, time.Now(), domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]DebtResponse, 0, len(debts))
	for i := range debts {
		responses = append(responses, ToDebtResponse(&debts[i]))
	}
	return responses, nil
}

// CustomerSummary returns a single customer's debt position
func (s *DebtService) CustomerSummary(ctx context.Context, customerID uuid.UUID) (*finance.CustomerDebtSummary, error) {
	return s.debtRepo.SummaryByCustomer(ctx, customerID)
}

// Stats returns ledger-wide debt statistics
func (s *DebtService) Stats(ctx context.Context) (*finance.DebtStats, error) {
	return s.debtRepo.Stats(ctx)
}

func (s *DebtService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
}
