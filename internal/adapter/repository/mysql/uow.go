package mysql

import (
	"context"

	"lendit-backend/internal/domain/agreement"
	"lendit-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Agreements:    &AgreementRepository{db: tx},
		Transactions:  &TransactionRepository{db: tx},
		Notifications: &NotificationRepository{db: tx},
		Invitations:   &InvitationRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (u *GormUoW) WithinAgreementTx(ctx context.Context, agreementID string, fn func(r uow.Repos, a *agreement.Agreement) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		// lock the agreement row up-front to prevent races
		a, err := r.Agreements.GetByAgreementIDForUpdate(ctx, agreementID)
		if err != nil {
			return err
		}
		return fn(r, a)
	})
}
