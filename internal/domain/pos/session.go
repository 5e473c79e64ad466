package pos

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// SessionStatus represents the state of a POS session
type SessionStatus string

const (
	SessionStatusOpen   SessionStatus = "open"
	SessionStatusClosed SessionStatus = "closed"
)

// IsValid checks if the session status is valid
func (s SessionStatus) IsValid() bool {
	return s == SessionStatusOpen || s == SessionStatusClosed
}

func (s SessionStatus) String() string {
	return string(s)
}

// Session is one cash-drawer shift for a user. A user can hold at most one
// open session at a time; the database backs this with a partial unique index
// on (user_id) where status = 'open'.
type Session struct {
	shared.BaseAggregateRoot
	UserID         uuid.UUID       `gorm:"type:uuid;not null;index:idx_pos_sessions_user_open,where:status = 'open',unique"`
	OpenedAt       time.Time       `gorm:"not null"`
	ClosedAt       *time.Time      ``
	InitialCash    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	FinalCash      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ExpectedCash   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CashDifference decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Notes          string          `gorm:"type:text"`
	Status         SessionStatus   `gorm:"type:varchar(10);not null;default:'open';index"`
}

// TableName returns the table name for GORM
func (Session) TableName() string {
	return "pos_sessions"
}

// NewSession opens a session with the counted opening float
func NewSession(userID uuid.UUID, initialCash valueobject.Money) (*Session, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if initialCash.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Initial cash cannot be negative")
	}

	s := &Session{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		OpenedAt:          time.Now(),
		InitialCash:       initialCash.Amount(),
		FinalCash:         decimal.Zero,
		ExpectedCash:      initialCash.Amount(),
		CashDifference:    decimal.Zero,
		Status:            SessionStatusOpen,
	}

	s.AddDomainEvent(NewSessionOpenedEvent(s))

	return s, nil
}

// Close ends the session. finalCash is the counted drawer; cashIncome is the
// cash taken in during the shift as computed from the payment ledger. The
// difference is counted minus expected, so a short drawer is negative.
func (s *Session) Close(finalCash, cashIncome valueobject.Money, notes string) error {
	if s.Status != SessionStatusOpen {
		return shared.NewDomainError("SESSION_CLOSED", "Session is already closed")
	}
	if finalCash.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Final cash cannot be negative")
	}

	now := time.Now()
	s.ExpectedCash = s.InitialCash.Add(cashIncome.Amount())
	s.FinalCash = finalCash.Amount()
	s.CashDifference = s.FinalCash.Sub(s.ExpectedCash)
	s.ClosedAt = &now
	s.Notes = notes
	s.Status = SessionStatusClosed
	s.UpdatedAt = now
	s.IncrementVersion()

	s.AddDomainEvent(NewSessionClosedEvent(s))

	return nil
}

// IsOpen reports whether the session is still taking sales
func (s *Session) IsOpen() bool {
	return s.Status == SessionStatusOpen
}

// Duration returns how long the session has been (or was) open
func (s *Session) Duration(now time.Time) time.Duration {
	if s.ClosedAt != nil {
		return s.ClosedAt.Sub(s.OpenedAt)
	}
	return now.Sub(s.OpenedAt)
}
