package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/retailpos/backend/internal/domain/billing"
	"github.com/retailpos/backend/internal/domain/finance"
	"github.com/retailpos/backend/internal/domain/shared"
)

// GormCustomerDebtRepository implements finance.CustomerDebtRepository using GORM
type GormCustomerDebtRepository struct {
	db *gorm.DB
}

// NewGormCustomerDebtRepository creates a new GormCustomerDebtRepository
func NewGormCustomerDebtRepository(db *gorm.DB) *GormCustomerDebtRepository {
	return &GormCustomerDebtRepository{db: db}
}

// FindByID finds a debt by its ID
func (r *GormCustomerDebtRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.CustomerDebt, error) {
	var debt finance.CustomerDebt
	if err := r.db.WithContext(ctx).First(&debt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &debt, nil
}

// FindByInvoice finds the debt attached to an invoice
func (r *GormCustomerDebtRepository) FindByInvoice(ctx context.Context, invoiceID uuid.UUID) (*finance.CustomerDebt, error) {
	var debt finance.CustomerDebt
	if err := r.db.WithContext(ctx).First(&debt, "invoice_id = ?", invoiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &debt, nil
}

// FindAll finds all debts matching the filter
func (r *GormCustomerDebtRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.CustomerDebt, error) {
	var debts []finance.CustomerDebt
	query := r.applyFilter(r.db.WithContext(ctx).Model(&finance.CustomerDebt{}), filter)
	if err := query.Find(&debts).Error; err != nil {
		return nil, err
	}
	return debts, nil
}

// FindByCustomer finds debts for a customer
func (r *GormCustomerDebtRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]finance.CustomerDebt, error) {
	var debts []finance.CustomerDebt
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&finance.CustomerDebt{}).
			Where("customer_id = ?", customerID),
		filter,
	)
	if err := query.Find(&debts).Error; err != nil {
		return nil, err
	}
	return debts, nil
}

// FindOverdue returns unpaid debts whose due date has passed, regardless of
// whether their stored status caught up yet.
func (r *GormCustomerDebtRepository) FindOverdue(ctx context.Context, now time.Time, filter shared.Filter) ([]finance.CustomerDebt, error) {
	var debts []finance.CustomerDebt
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&finance.CustomerDebt{}).
			Where("status <> ? AND due_date IS NOT NULL AND due_date < ?", finance.DebtStatusPaid, now),
		filter,
	)
	if err := query.Find(&debts).Error; err != nil {
		return nil, err
	}
	return debts, nil
}

// SummaryByCustomer aggregates a customer's debt position
func (r *GormCustomerDebtRepository) SummaryByCustomer(ctx context.Context, customerID uuid.UUID) (*finance.CustomerDebtSummary, error) {
	summary := &finance.CustomerDebtSummary{
		CustomerID:       customerID,
		TotalOutstanding: decimal.Zero,
	}

	type row struct {
		Status      finance.DebtStatus
		Count       int64
		Outstanding decimal.Decimal
	}
	var rows []row
	if err := r.db.WithContext(ctx).Model(&finance.CustomerDebt{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(remaining_amount), 0) AS outstanding").
		Where("customer_id = ?", customerID).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, rw := range rows {
		summary.TotalDebts += rw.Count
		switch rw.Status {
		case finance.DebtStatusPending:
			summary.PendingCount = rw.Count
		case finance.DebtStatusPartial:
			summary.PartialCount = rw.Count
		case finance.DebtStatusPaid:
			summary.PaidCount = rw.Count
		case finance.DebtStatusOverdue:
			summary.OverdueCount = rw.Count
		}
		if rw.Status != finance.DebtStatusPaid {
			summary.TotalOutstanding = summary.TotalOutstanding.Add(rw.Outstanding)
		}
	}

	var oldest finance.CustomerDebt
	err := r.db.WithContext(ctx).Model(&finance.CustomerDebt{}).
		Where("customer_id = ? AND status <> ?", customerID, finance.DebtStatusPaid).
		Order("debt_date ASC").
		First(&oldest).Error
	if err == nil {
		summary.OldestDebtDate = &oldest.DebtDate
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return summary, nil
}

// Stats aggregates the whole ledger for dashboards
func (r *GormCustomerDebtRepository) Stats(ctx context.Context) (*finance.DebtStats, error) {
	stats := &finance.DebtStats{TotalOutstanding: decimal.Zero}

	type row struct {
		Status      finance.DebtStatus
		Count       int64
		Outstanding decimal.Decimal
	}
	var rows []row
	if err := r.db.WithContext(ctx).Model(&finance.CustomerDebt{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(remaining_amount), 0) AS outstanding").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, rw := range rows {
		stats.TotalDebts += rw.Count
		switch rw.Status {
		case finance.DebtStatusPending:
			stats.PendingCount = rw.Count
		case finance.DebtStatusPartial:
			stats.PartialCount = rw.Count
		case finance.DebtStatusPaid:
			stats.PaidCount = rw.Count
		case finance.DebtStatusOverdue:
			stats.OverdueCount = rw.Count
		}
		if rw.Status != finance.DebtStatusPaid {
			stats.TotalOutstanding = stats.TotalOutstanding.Add(rw.Outstanding)
		}
	}

	if err := r.db.WithContext(ctx).Model(&finance.CustomerDebt{}).
		Where("status <> ?", finance.DebtStatusPaid).
		Distinct("customer_id").
		Count(&stats.CustomersWithDebt).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

// Save creates or updates a debt
func (r *GormCustomerDebtRepository) Save(ctx context.Context, debt *finance.CustomerDebt) error {
	return r.db.WithContext(ctx).Save(debt).Error
}

// CreateWithInvoice persists a new debt and the invoice's updated
// paid/debt split in one transaction
func (r *GormCustomerDebtRepository) CreateWithInvoice(ctx context.Context, debt *finance.CustomerDebt, inv *billing.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(debt).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(inv).Error
	})
}

// SaveWithPayment persists the mutated debt, the new ledger row and the
// invoice cascade in one transaction
func (r *GormCustomerDebtRepository) SaveWithPayment(ctx context.Context, debt *finance.CustomerDebt, payment *finance.Payment, inv *billing.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(debt).Error; err != nil {
			return err
		}
		if err := tx.Create(payment).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(inv).Error
	})
}

// DeleteWithInvoice removes the debt and reverts the invoice to fully paid
// in one transaction
func (r *GormCustomerDebtRepository) DeleteWithInvoice(ctx context.Context, debtID uuid.UUID, inv *billing.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&finance.CustomerDebt{}, "id = ?", debtID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(inv).Error
	})
}

// Delete deletes a debt
func (r *GormCustomerDebtRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&finance.CustomerDebt{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts debts matching the filter
func (r *GormCustomerDebtRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&finance.CustomerDebt{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormCustomerDebtRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, DebtSortFields, "debt_date")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

func (r *GormCustomerDebtRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		}
	}
	return query
}

var _ finance.CustomerDebtRepository = (*GormCustomerDebtRepository)(nil)
