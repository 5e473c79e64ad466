package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/billing"
	"github.com/retailpos/backend/internal/domain/finance"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
)

// PaymentService handles the payment ledger, including the compensating
// reversals that run when a row is deleted.
type PaymentService struct {
	paymentRepo  finance.PaymentRepository
	debtRepo     finance.CustomerDebtRepository
	supplierRepo partner.SupplierRepository
	invoiceRepo  billing.InvoiceRepository
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(paymentRepo finance.PaymentRepository, debtRepo finance.CustomerDebtRepository, supplierRepo partner.SupplierRepository, invoiceRepo billing.InvoiceRepository) *PaymentService {
	return &PaymentService{
		paymentRepo:  paymentRepo,
		debtRepo:     debtRepo,
		supplierRepo: supplierRepo,
		invoiceRepo:  invoiceRepo,
	}
}

// Record writes a standalone income or expense row with no payable link
func (s *PaymentService) Record(ctx context.Context, userID uuid.UUID, req RecordPaymentRequest) (*PaymentResponse, error) {
	paymentDate := time.Now()
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}

	payment, err := finance.NewPayment(
		finance.PaymentType(req.Type),
		finance.PaymentCategory(req.Category),
		valueobject.NewMoneyUSD(req.Amount),
		valueobject.PaymentMethod(req.Method),
		paymentDate,
		finance.PayableNone(),
		userID,
		req.Description,
	)
	if err != nil {
		return nil, err
	}
	if req.SessionID != nil {
		payment.AttachSession(*req.SessionID)
	}

	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}

	response := ToPaymentResponse(payment)
	return &response, nil
}

// GetByID retrieves a ledger row by ID
func (s *PaymentService) GetByID(ctx context.Context, paymentID uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	response := ToPaymentResponse(payment)
	return &response, nil
}

// List retrieves ledger rows with filtering and pagination
func (s *PaymentService) List(ctx context.Context, filter PaymentListFilter) ([]PaymentResponse, int64, error) {
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
	if filter.StartDate != nil {
		domainFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["end_date"] = *filter.EndDate
	}

	payments, err := s.paymentRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.paymentRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		responses = append(responses, ToPaymentResponse(&payments[i]))
	}
	return responses, total, nil
}

// Delete removes a ledger row after reversing its side effects. A row linked
// to a customer debt restores the debt and cascades to the invoice; a
// supplier payment re-increments the supplier's balance. The reversal and
// the delete commit in one transaction.
func (s *PaymentService) Delete(ctx context.Context, paymentID uuid.UUID) error {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return err
	}

	amount := payment.AmountMoney()

	if debtID, ok := payment.Payable.CustomerDebtID(); ok {
		debt, err := s.debtRepo.FindByID(ctx, debtID)
		if err != nil {
			return err
		}
		if err := debt.ReversePayment(amount); err != nil {
			return err
		}

		inv, err := s.invoiceRepo.FindByID(ctx, debt.InvoiceID)
		if err != nil {
			return err
		}
		if err := inv.ReverseDebtPayment(amount); err != nil {
			return err
		}

		return s.paymentRepo.DeleteWithDebtReversal(ctx, payment.ID, debt, inv)
	}

	if supplierID, ok := payment.Payable.SupplierID(); ok {
		supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
		if err != nil {
			return err
		}
		if err := supplier.RestoreDebt(amount); err != nil {
			return err
		}

		return s.paymentRepo.DeleteWithSupplierReversal(ctx, payment.ID, supplier)
	}

	return s.paymentRepo.Delete(ctx, payment.ID)
}
