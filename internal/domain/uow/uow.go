package uow

import (
	"context"

	"lendit-backend/internal/domain/agreement"
	"lendit-backend/internal/domain/invitation"
	"lendit-backend/internal/domain/notification"
	"lendit-backend/internal/domain/transaction"
)

// Repos bundles the repositories bound to one transaction.
type Repos struct {
	Agreements    agreement.Repository
	Transactions  transaction.Repository
	Notifications notification.Repository
	Invitations   invitation.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the agreement row first, then pass it in
	WithinAgreementTx(ctx context.Context, agreementID string, fn func(r Repos, a *agreement.Agreement) error) error
}
