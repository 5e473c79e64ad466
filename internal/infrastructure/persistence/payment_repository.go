package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retailpos/backend/internal/domain/billing"
	"github.com/retailpos/backend/internal/domain/finance"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/shared"
)

// GormPaymentRepository implements finance.PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID finds a payment by its ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Payment, error) {
	var payment finance.Payment
	if err := r.db.WithContext(ctx).First(&payment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &payment, nil
}

// FindAll finds all payments matching the filter
func (r *GormPaymentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.Payment, error) {
	var payments []finance.Payment
	query := r.applyFilter(r.db.WithContext(ctx).Model(&finance.Payment{}), filter)
	if err := query.Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// FindByPayable finds payments applied against a debt or supplier balance
func (r *GormPaymentRepository) FindByPayable(ctx context.Context, ref finance.PayableRef) ([]finance.Payment, error) {
	var payments []finance.Payment
	if err := r.db.WithContext(ctx).
		Where("payable_kind = ? AND payable_id = ?", ref.Kind, ref.ID).
		Order("payment_date DESC").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// CountByPayable counts payments applied against a debt or supplier balance
func (r *GormPaymentRepository) CountByPayable(ctx context.Context, ref finance.PayableRef) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&finance.Payment{}).
		Where("payable_kind = ? AND payable_id = ?", ref.Kind, ref.ID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindBySession finds payments taken in a POS session
func (r *GormPaymentRepository) FindBySession(ctx context.Context, sessionID uuid.UUID) ([]finance.Payment, error) {
	var payments []finance.Payment
	if err := r.db.WithContext(ctx).
		Where("pos_session_id = ?", sessionID).
		Order("payment_date ASC").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// Save creates or updates a payment
func (r *GormPaymentRepository) Save(ctx context.Context, payment *finance.Payment) error {
	return r.db.WithContext(ctx).Save(payment).Error
}

// SaveWithSupplier persists the ledger row and the supplier's updated
// balance in one transaction
func (r *GormPaymentRepository) SaveWithSupplier(ctx context.Context, payment *finance.Payment, supplier *partner.Supplier) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(payment).Error; err != nil {
			return err
		}
		return tx.Save(supplier).Error
	})
}

// DeleteWithDebtReversal removes the ledger row and persists the compensated
// debt and invoice in one transaction
func (r *GormPaymentRepository) DeleteWithDebtReversal(ctx context.Context, paymentID uuid.UUID, debt *finance.CustomerDebt, inv *billing.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&finance.Payment{}, "id = ?", paymentID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		if err := tx.Save(debt).Error; err != nil {
			return err
		}
		if inv == nil {
			return nil
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(inv).Error
	})
}

// DeleteWithSupplierReversal removes the ledger row and re-increments the
// supplier's balance in one transaction
func (r *GormPaymentRepository) DeleteWithSupplierReversal(ctx context.Context, paymentID uuid.UUID, supplier *partner.Supplier) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&finance.Payment{}, "id = ?", paymentID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return tx.Save(supplier).Error
	})
}

// Delete deletes a payment
func (r *GormPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&finance.Payment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts payments matching the filter
func (r *GormPaymentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&finance.Payment{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormPaymentRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, PaymentSortFields, "payment_date")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

func (r *GormPaymentRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("description ILIKE ?", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "type":
			query = query.Where("type = ?", value)
		case "category":
			query = query.Where("category = ?", value)
		case "method":
			query = query.Where("method = ?", value)
		case "user_id":
			query = query.Where("user_id = ?", value)
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		case "supplier_id":
			query = query.Where("supplier_id = ?", value)
		case "start_date":
			query = query.Where("payment_date >= ?", value)
		case "end_date":
			query = query.Where("payment_date < ?", value)
		}
	}
	return query
}

var _ finance.PaymentRepository = (*GormPaymentRepository)(nil)
