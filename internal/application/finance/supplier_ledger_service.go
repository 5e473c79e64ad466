package finance

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/finance"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
)

// SupplierLedgerService tracks what the business owes its suppliers
type SupplierLedgerService struct {
	supplierRepo partner.SupplierRepository
	paymentRepo  finance.PaymentRepository
}

// NewSupplierLedgerService creates a new SupplierLedgerService
func NewSupplierLedgerService(supplierRepo partner.SupplierRepository, paymentRepo finance.PaymentRepository) *SupplierLedgerService {
	return &SupplierLedgerService{
		supplierRepo: supplierRepo,
		paymentRepo:  paymentRepo,
	}
}

// AddDebt increments a supplier's balance and records the expense row in one
// transaction.
func (s *SupplierLedgerService) AddDebt(ctx context.Context, supplierID, userID uuid.UUID, req SupplierDebtRequest) (*PaymentResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	amount := valueobject.NewMoneyUSD(req.Amount)
	if err := supplier.AddDebt(amount); err != nil {
		return nil, err
	}

	description := req.Description
	if description == "" {
		description = "Debt to " + supplier.CompanyName
	}

	payment, err := finance.NewSupplierLedgerPayment(supplier.ID, amount, valueobject.PaymentMethodOther, userID, description)
	if err != nil {
		return nil, err
	}

	if err := s.paymentRepo.SaveWithSupplier(ctx, payment, supplier); err != nil {
		return nil, err
	}

	response := ToPaymentResponse(payment)
	return &response, nil
}

// PayDebt pays down a supplier's balance. Paying more than the current debt
// is rejected before any write.
func (s *SupplierLedgerService) PayDebt(ctx context.Context, supplierID, userID uuid.UUID, req SupplierPaymentRequest) (*PaymentResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	amount := valueobject.NewMoneyUSD(req.Amount)
	if err := supplier.PayDebt(amount); err != nil {
		return nil, err
	}

	description := req.Description
	if description == "" {
		description = "Payment to " + supplier.CompanyName
	}

	payment, err := finance.NewSupplierLedgerPayment(supplier.ID, amount, valueobject.PaymentMethod(req.Method), userID, description)
	if err != nil {
		return nil, err
	}

	if err := s.paymentRepo.SaveWithSupplier(ctx, payment, supplier); err != nil {
		return nil, err
	}

	response := ToPaymentResponse(payment)
	return &response, nil
}

// History returns the ledger rows for one supplier
func (s *SupplierLedgerService) History(ctx context.Context, supplierID uuid.UUID) ([]PaymentResponse, error) {
	payments, err := s.paymentRepo.FindByPayable(ctx, finance.PayableSupplier(supplierID))
	if err != nil {
		return nil, err
	}

	responses := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		responses = append(responses, ToPaymentResponse(&payments[i]))
	}
	return responses, nil
}
