package pos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/finance"
	"github.com/retailpos/backend/internal/domain/pos"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// SessionService handles POS session lifecycle
type SessionService struct {
	sessionRepo    pos.SessionRepository
	paymentRepo    finance.PaymentRepository
	eventPublisher shared.EventPublisher
}

// NewSessionService creates a new SessionService
func NewSessionService(sessionRepo pos.SessionRepository, paymentRepo finance.PaymentRepository) *SessionService {
	return &SessionService{
		sessionRepo: sessionRepo,
		paymentRepo: paymentRepo,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *SessionService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Open starts a session for the user. A user can only hold one open session;
// the check here is backed by a partial unique index, so a concurrent second
// open fails at commit rather than slipping through.
func (s *SessionService) Open(ctx context.Context, userID uuid.UUID, req OpenSessionRequest) (*SessionResponse, error) {
	existing, err := s.sessionRepo.FindOpenByUser(ctx, userID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("SESSION_ALREADY_OPEN", "User already has an open session")
	}

	session, err := pos.NewSession(userID, valueobject.NewMoneyUSD(req.InitialCash))
	if err != nil {
		return nil, err
	}

	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, session)

	response := ToSessionResponse(session)
	return &response, nil
}

// Close reconciles and ends the user's session. Expected cash is the opening
// float plus the cash income recorded against the session in the ledger.
func (s *SessionService) Close(ctx context.Context, sessionID uuid.UUID, req CloseSessionRequest) (*SessionResponse, error) {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cashIncome, err := s.cashIncome(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	if err := session.Close(valueobject.NewMoneyUSD(req.FinalCash), cashIncome, req.Notes); err != nil {
		return nil, err
	}

	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, session)

	response := ToSessionResponse(session)
	return &response, nil
}

// Current returns the user's open session, or shared.ErrNotFound
func (s *SessionService) Current(ctx context.Context, userID uuid.UUID) (*SessionResponse, error) {
	session, err := s.sessionRepo.FindOpenByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	response := ToSessionResponse(session)
	return &response, nil
}

// GetByID retrieves a session by ID
func (s *SessionService) GetByID(ctx context.Context, sessionID uuid.UUID) (*SessionResponse, error) {
	session, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	response := ToSessionResponse(session)
	return &response, nil
}

// List retrieves sessions with filtering and pagination
func (s *SessionService) List(ctx context.Context, filter SessionListFilter) ([]SessionResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.Status != nil {
		domainFilter.Filters["status"] = *filter.Status
	}

	var sessions []pos.Session
	var err error
	if filter.UserID != nil {
		sessions, err = s.sessionRepo.FindByUser(ctx, *filter.UserID, domainFilter)
	} else {
		sessions, err = s.sessionRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.sessionRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]SessionResponse, 0, len(sessions))
	for i := range sessions {
		responses = append(responses, ToSessionResponse(&sessions[i]))
	}
	return responses, total, nil
}

// cashIncome sums the cash income rows stamped with the session
func (s *SessionService) cashIncome(ctx context.Context, sessionID uuid.UUID) (valueobject.Money, error) {
	payments, err := s.paymentRepo.FindBySession(ctx, sessionID)
	if err != nil {
		return valueobject.ZeroUSD(), err
	}

	total := decimal.Zero
	for i := range payments {
		p := &payments[i]
		if p.Method != valueobject.PaymentMethodCash {
			continue
		}
		switch p.Type {
		case finance.PaymentTypeIncome:
			total = total.Add(p.Amount)
		case finance.PaymentTypeExpense:
			total = total.Sub(p.Amount)
		}
	}
	return valueobject.NewMoneyUSD(total), nil
}

func (s *SessionService) publishEvents(ctx context.Context, session *pos.Session) {
	if s.eventPublisher == nil {
		return
	}
	events := session.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	session.ClearDomainEvents()
}
