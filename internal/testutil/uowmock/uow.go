package uowmock

import (
	"context"
	"errors"

	"lendit-backend/internal/domain/agreement"
	"lendit-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return
// errUnimplemented.
type UoW struct {
	WithinTxFn          func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinAgreementTxFn func(ctx context.Context, agreementID string, fn func(r uow.Repos, a *agreement.Agreement) error) error
}

func New() *UoW { return &UoW{} }

func (m *UoW) Reset() { *m = UoW{} }

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinAgreementTx(ctx context.Context, agreementID string, fn func(r uow.Repos, a *agreement.Agreement) error) error {
	if m.WithinAgreementTxFn != nil {
		return m.WithinAgreementTxFn(ctx, agreementID, fn)
	}
	return errUnimplemented
}

// Passthrough builds a UoW that simply runs the body against the supplied
// repos, fetching the agreement through them for WithinAgreementTx. Most
// usecase tests want exactly this.
func Passthrough(repos uow.Repos) *UoW {
	return &UoW{
		WithinTxFn: func(ctx context.Context, fn func(r uow.Repos) error) error {
			return fn(repos)
		},
		WithinAgreementTxFn: func(ctx context.Context, agreementID string, fn func(r uow.Repos, a *agreement.Agreement) error) error {
			a, err := repos.Agreements.GetByAgreementIDForUpdate(ctx, agreementID)
			if err != nil {
				return agreement.ErrNotFound
			}
			if err := fn(repos, a); err != nil {
				return err
			}
			return nil
		},
	}
}
