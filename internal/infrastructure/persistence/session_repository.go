package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retailpos/backend/internal/domain/pos"
	"github.com/retailpos/backend/internal/domain/shared"
)

// GormSessionRepository implements pos.SessionRepository using GORM
type GormSessionRepository struct {
	db *gorm.DB
}

// NewGormSessionRepository creates a new GormSessionRepository
func NewGormSessionRepository(db *gorm.DB) *GormSessionRepository {
	return &GormSessionRepository{db: db}
}

// FindByID finds a session by its ID
func (r *GormSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*pos.Session, error) {
	var session pos.Session
	if err := r.db.WithContext(ctx).First(&session, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// FindOpenByUser returns the user's open session, or shared.ErrNotFound
func (r *GormSessionRepository) FindOpenByUser(ctx context.Context, userID uuid.UUID) (*pos.Session, error) {
	var session pos.Session
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, pos.SessionStatusOpen).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// FindByUser finds a user's sessions, newest first by default
func (r *GormSessionRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]pos.Session, error) {
	var sessions []pos.Session
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&pos.Session{}).
			Where("user_id = ?", userID),
		filter,
	)
	if err := query.Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// FindAll finds all sessions matching the filter
func (r *GormSessionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]pos.Session, error) {
	var sessions []pos.Session
	query := r.applyFilter(r.db.WithContext(ctx).Model(&pos.Session{}), filter)
	if err := query.Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// Save creates or updates a session
func (r *GormSessionRepository) Save(ctx context.Context, session *pos.Session) error {
	return r.db.WithContext(ctx).Save(session).Error
}

// Delete deletes a session
func (r *GormSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&pos.Session{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts sessions matching the filter
func (r *GormSessionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&pos.Session{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormSessionRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, SessionSortFields, "opened_at")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

func (r *GormSessionRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "user_id":
			query = query.Where("user_id = ?", value)
		}
	}
	return query
}

var _ pos.SessionRepository = (*GormSessionRepository)(nil)
