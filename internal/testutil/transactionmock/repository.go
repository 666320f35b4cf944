package transactionmock

import (
	"context"

	"lendit-backend/internal/domain/transaction"
)

var _ transaction.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies transaction.Repository.
type Repo struct {
	CreateFn              func(ctx context.Context, t *transaction.Transaction) error
	GetByTransactionIDFn  func(ctx context.Context, transactionID string) (*transaction.Transaction, error)
	ListByAgreementIDFn   func(ctx context.Context, agreementID string) ([]*transaction.Transaction, error)
	FinalizeStatusFn      func(ctx context.Context, transactionID string, status transaction.Status) error
	SumCompletedByTypeFn  func(ctx context.Context, agreementID string, t transaction.Type) (float64, error)
}

func (m *Repo) Create(ctx context.Context, t *transaction.Transaction) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, t)
	}
	return nil
}
func (m *Repo) GetByTransactionID(ctx context.Context, transactionID string) (*transaction.Transaction, error) {
	if m.GetByTransactionIDFn != nil {
		return m.GetByTransactionIDFn(ctx, transactionID)
	}
	return nil, context.Canceled
}
func (m *Repo) ListByAgreementID(ctx context.Context, agreementID string) ([]*transaction.Transaction, error) {
	if m.ListByAgreementIDFn != nil {
		return m.ListByAgreementIDFn(ctx, agreementID)
	}
	return nil, context.Canceled
}
func (m *Repo) FinalizeStatus(ctx context.Context, transactionID string, status transaction.Status) error {
	if m.FinalizeStatusFn != nil {
		return m.FinalizeStatusFn(ctx, transactionID, status)
	}
	return context.Canceled
}
func (m *Repo) SumCompletedByType(ctx context.Context, agreementID string, t transaction.Type) (float64, error) {
	if m.SumCompletedByTypeFn != nil {
		return m.SumCompletedByTypeFn(ctx, agreementID, t)
	}
	return 0, context.Canceled
}
