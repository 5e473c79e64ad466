package pos

import (
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event types for the pos context
const (
	EventTypeSessionOpened = "pos.session.opened"
	EventTypeSessionClosed = "pos.session.closed"
)

// SessionOpenedEvent is published when a user opens a cash-drawer session
type SessionOpenedEvent struct {
	shared.BaseDomainEvent
	UserID      string          `json:"user_id"`
	InitialCash decimal.Decimal `json:"initial_cash"`
}

// NewSessionOpenedEvent creates a SessionOpenedEvent
func NewSessionOpenedEvent(s *Session) *SessionOpenedEvent {
	return &SessionOpenedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSessionOpened, "PosSession", s.ID),
		UserID:          s.UserID.String(),
		InitialCash:     s.InitialCash,
	}
}

// SessionClosedEvent is published when a session is reconciled and closed
type SessionClosedEvent struct {
	shared.BaseDomainEvent
	UserID         string          `json:"user_id"`
	ExpectedCash   decimal.Decimal `json:"expected_cash"`
	FinalCash      decimal.Decimal `json:"final_cash"`
	CashDifference decimal.Decimal `json:"cash_difference"`
}

// NewSessionClosedEvent creates a SessionClosedEvent
func NewSessionClosedEvent(s *Session) *SessionClosedEvent {
	return &SessionClosedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSessionClosed, "PosSession", s.ID),
		UserID:          s.UserID.String(),
		ExpectedCash:    s.ExpectedCash,
		FinalCash:       s.FinalCash,
		CashDifference:  s.CashDifference,
	}
}
