package agreementmock

import (
	"context"
	"sync"
	"time"

	domain "lendit-backend/internal/domain/agreement"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies agreement.Repository.
// Only fill the function fields a test needs; unfilled ones return
// context.Canceled so accidental calls fail loudly.
type Repo struct {
	CreateFn                    func(ctx context.Context, a *domain.Agreement) error
	GetByAgreementIDFn          func(ctx context.Context, agreementID string) (*domain.Agreement, error)
	GetByAgreementIDForUpdateFn func(ctx context.Context, agreementID string) (*domain.Agreement, error)
	SaveFn                      func(ctx context.Context, a *domain.Agreement) error
	ClaimFn                     func(ctx context.Context, agreementID string, lender domain.LenderFields) error
	UpdateStatusFromFn          func(ctx context.Context, agreementID string, expected, next domain.Status, at time.Time) error
	SoftDeleteFn                func(ctx context.Context, agreementID, deletedBy string) error
	ListOpenRequestsFn          func(ctx context.Context, f domain.BrowseFilter) ([]*domain.Agreement, error)
	ListOwnOpenRequestsFn       func(ctx context.Context, borrowerID string) ([]*domain.Agreement, error)
	ListByParticipantFn         func(ctx context.Context, userID string) ([]*domain.Agreement, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Agreement) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}
func (m *Repo) GetByAgreementID(ctx context.Context, agreementID string) (*domain.Agreement, error) {
	if m.GetByAgreementIDFn != nil {
		return m.GetByAgreementIDFn(ctx, agreementID)
	}
	return nil, context.Canceled
}
func (m *Repo) GetByAgreementIDForUpdate(ctx context.Context, agreementID string) (*domain.Agreement, error) {
	if m.GetByAgreementIDForUpdateFn != nil {
		return m.GetByAgreementIDForUpdateFn(ctx, agreementID)
	}
	return nil, context.Canceled
}
func (m *Repo) Save(ctx context.Context, a *domain.Agreement) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}
func (m *Repo) Claim(ctx context.Context, agreementID string, lender domain.LenderFields) error {
	if m.ClaimFn != nil {
		return m.ClaimFn(ctx, agreementID, lender)
	}
	return context.Canceled
}
func (m *Repo) UpdateStatusFrom(ctx context.Context, agreementID string, expected, next domain.Status, at time.Time) error {
	if m.UpdateStatusFromFn != nil {
		return m.UpdateStatusFromFn(ctx, agreementID, expected, next, at)
	}
	return context.Canceled
}
func (m *Repo) SoftDelete(ctx context.Context, agreementID, deletedBy string) error {
	if m.SoftDeleteFn != nil {
		return m.SoftDeleteFn(ctx, agreementID, deletedBy)
	}
	return nil
}
func (m *Repo) ListOpenRequests(ctx context.Context, f domain.BrowseFilter) ([]*domain.Agreement, error) {
	if m.ListOpenRequestsFn != nil {
		return m.ListOpenRequestsFn(ctx, f)
	}
	return nil, context.Canceled
}
func (m *Repo) ListOwnOpenRequests(ctx context.Context, borrowerID string) ([]*domain.Agreement, error) {
	if m.ListOwnOpenRequestsFn != nil {
		return m.ListOwnOpenRequestsFn(ctx, borrowerID)
	}
	return nil, context.Canceled
}
func (m *Repo) ListByParticipant(ctx context.Context, userID string) ([]*domain.Agreement, error) {
	if m.ListByParticipantFn != nil {
		return m.ListByParticipantFn(ctx, userID)
	}
	return nil, context.Canceled
}

// InMemory is a thread-safe map-backed repository used by concurrency tests;
// its Claim has the same exactly-one-winner guarantee as the SQL
// implementation.
type InMemory struct {
	mu    sync.Mutex
	items map[string]*domain.Agreement
}

var _ domain.Repository = (*InMemory)(nil)

func NewInMemory() *InMemory { return &InMemory{items: map[string]*domain.Agreement{}} }

func (s *InMemory) Create(_ context.Context, a *domain.Agreement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *a
	s.items[a.AgreementID] = &cp
	return nil
}

func (s *InMemory) get(agreementID string) (*domain.Agreement, error) {
	a, ok := s.items[agreementID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (s *InMemory) GetByAgreementID(_ context.Context, agreementID string) (*domain.Agreement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(agreementID)
}

func (s *InMemory) GetByAgreementIDForUpdate(ctx context.Context, agreementID string) (*domain.Agreement, error) {
	return s.GetByAgreementID(ctx, agreementID)
}

func (s *InMemory) Save(_ context.Context, a *domain.Agreement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *a
	s.items[a.AgreementID] = &cp
	return nil
}

func (s *InMemory) Claim(_ context.Context, agreementID string, lender domain.LenderFields) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.items[agreementID]
	if !ok {
		return domain.ErrNotFound
	}
	if a.Status != domain.StatusPending || a.LenderID != "" {
		return domain.ErrConflict
	}
	a.LenderID = lender.LenderID
	a.LenderName = lender.LenderName
	a.LenderEmail = lender.LenderEmail
	a.Status = domain.StatusClaimed
	a.StatusUpdatedAt = time.Now().UTC()
	return nil
}

func (s *InMemory) UpdateStatusFrom(_ context.Context, agreementID string, expected, next domain.Status, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.items[agreementID]
	if !ok {
		return domain.ErrNotFound
	}
	if a.Status != expected {
		return domain.ErrConflict
	}
	a.Status = next
	a.StatusUpdatedAt = at
	return nil
}

func (s *InMemory) SoftDelete(_ context.Context, agreementID, deletedBy string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[agreementID]; !ok {
		return domain.ErrNotFound
	}
	delete(s.items, agreementID)
	return nil
}

func (s *InMemory) ListOpenRequests(_ context.Context, f domain.BrowseFilter) ([]*domain.Agreement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Agreement
	for _, a := range s.items {
		if a.Status != domain.StatusPending || a.LenderID != "" || a.BorrowerID == f.ExcludeBorrowerID {
			continue
		}
		if f.Purpose != "" && a.Purpose != f.Purpose {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (s *InMemory) ListOwnOpenRequests(_ context.Context, borrowerID string) ([]*domain.Agreement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Agreement
	for _, a := range s.items {
		if a.BorrowerID == borrowerID && a.LenderID == "" {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *InMemory) ListByParticipant(_ context.Context, userID string) ([]*domain.Agreement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Agreement
	for _, a := range s.items {
		if a.BorrowerID == userID || a.LenderID == userID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}
