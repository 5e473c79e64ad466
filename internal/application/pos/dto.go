package pos

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/pos"
	"github.com/shopspring/decimal"
)

// OpenSessionRequest opens a cash-drawer session
type OpenSessionRequest struct {
	InitialCash decimal.Decimal `json:"initial_cash"`
}

// CloseSessionRequest closes a session with the counted drawer
type CloseSessionRequest struct {
	FinalCash decimal.Decimal `json:"final_cash" binding:"required"`
	Notes     string          `json:"notes"`
}

// SessionListFilter represents filter options for session lists
type SessionListFilter struct {
	UserID   *uuid.UUID `form:"user_id"`
	Status   *string    `form:"status" binding:"omitempty,oneof=open closed"`
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// SessionResponse represents a session in API responses
type SessionResponse struct {
	ID             uuid.UUID       `json:"id"`
	UserID         uuid.UUID       `json:"user_id"`
	OpenedAt       time.Time       `json:"opened_at"`
	ClosedAt       *time.Time      `json:"closed_at,omitempty"`
	InitialCash    decimal.Decimal `json:"initial_cash"`
	FinalCash      decimal.Decimal `json:"final_cash"`
	ExpectedCash   decimal.Decimal `json:"expected_cash"`
	CashDifference decimal.Decimal `json:"cash_difference"`
	Notes          string          `json:"notes,omitempty"`
	Status         string          `json:"status"`
}

// ToSessionResponse converts a session aggregate to its API representation
func ToSessionResponse(s *pos.Session) SessionResponse {
	return SessionResponse{
		ID:             s.ID,
		UserID:         s.UserID,
		OpenedAt:       s.OpenedAt,
		ClosedAt:       s.ClosedAt,
		InitialCash:    s.InitialCash,
		FinalCash:      s.FinalCash,
		ExpectedCash:   s.ExpectedCash,
		CashDifference: s.CashDifference,
		Notes:          s.Notes,
		Status:         s.Status.String(),
	}
}
