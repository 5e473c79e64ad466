package pos

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
)

// SessionRepository defines persistence operations for POS sessions
type SessionRepository interface {
	shared.Repository[Session]
	// FindOpenByUser returns the user's open session, or shared.ErrNotFound.
	FindOpenByUser(ctx context.Context, userID uuid.UUID) (*Session, error)
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Session, error)
}
