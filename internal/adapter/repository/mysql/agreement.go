package mysql

import (
	"context"
	"errors"
	"time"

	domain "lendit-backend/internal/domain/agreement"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AgreementRepository struct{ db *gorm.DB }

func NewAgreementRepository(db *gorm.DB) *AgreementRepository { return &AgreementRepository{db: db} }

// Tx runs fn in a db transaction, passing a repo bound to the tx
func (r *AgreementRepository) Tx(ctx context.Context, fn func(repo domain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AgreementRepository{db: tx})
	})
}

func (r *AgreementRepository) Create(ctx context.Context, a *domain.Agreement) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AgreementRepository) Save(ctx context.Context, a *domain.Agreement) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *AgreementRepository) GetByAgreementID(ctx context.Context, agreementID string) (*domain.Agreement, error) {
	var out domain.Agreement
	res := r.db.WithContext(ctx).Where("agreement_id = ?", agreementID).First(&out)
	return &out, translate(res.Error)
}

// GetByAgreementIDForUpdate locks the row for the rest of the transaction;
// callers must already be inside one. sqlite has no row locks (a write tx
// locks the whole database), so the clause is skipped there.
func (r *AgreementRepository) GetByAgreementIDForUpdate(ctx context.Context, agreementID string) (*domain.Agreement, error) {
	q := r.db.WithContext(ctx)
	if r.db.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var out domain.Agreement
	res := q.Where("agreement_id = ?", agreementID).First(&out)
	return &out, translate(res.Error)
}

// Claim is the single conditional UPDATE behind the lender race: the guard
// matches only a pending, unclaimed row, so one concurrent caller wins and
// the rest fall through to the existence check below.
func (r *AgreementRepository) Claim(ctx context.Context, agreementID string, lender domain.LenderFields) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Agreement{}).
		Where("agreement_id = ? AND status = ? AND (lender_id = '' OR lender_id IS NULL)",
			agreementID, domain.StatusPending).
		Updates(map[string]any{
			"lender_id":         lender.LenderID,
			"lender_name":       lender.LenderName,
			"lender_email":      lender.LenderEmail,
			"status":            domain.StatusClaimed,
			"status_updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var n int64
	if err := r.db.WithContext(ctx).
		Model(&domain.Agreement{}).
		Where("agreement_id = ?", agreementID).
		Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return domain.ErrConflict
}

func (r *AgreementRepository) UpdateStatusFrom(ctx context.Context, agreementID string, expected, next domain.Status, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Agreement{}).
		Where("agreement_id = ? AND status = ?", agreementID, expected).
		Updates(map[string]any{"status": next, "status_updated_at": at})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrConflict
	}
	return nil
}

func (r *AgreementRepository) SoftDelete(ctx context.Context, agreementID, deletedBy string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Agreement{}).
			Where("agreement_id = ?", agreementID).
			Update("deleted_by", deletedBy).Error; err != nil {
			return err
		}
		res := tx.Where("agreement_id = ?", agreementID).Delete(&domain.Agreement{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (r *AgreementRepository) ListOpenRequests(ctx context.Context, f domain.BrowseFilter) ([]*domain.Agreement, error) {
	q := r.db.WithContext(ctx).
		Where("status = ? AND (lender_id = '' OR lender_id IS NULL)", domain.StatusPending)
	if f.ExcludeBorrowerID != "" {
		q = q.Where("borrower_id <> ?", f.ExcludeBorrowerID)
	}
	if f.Purpose != "" {
		q = q.Where("purpose = ?", f.Purpose)
	}
	var out []*domain.Agreement
	err := q.Order("created_at DESC, id DESC").Find(&out).Error
	return out, err
}

func (r *AgreementRepository) ListOwnOpenRequests(ctx context.Context, borrowerID string) ([]*domain.Agreement, error) {
	var out []*domain.Agreement
	err := r.db.WithContext(ctx).
		Where("borrower_id = ? AND (lender_id = '' OR lender_id IS NULL)", borrowerID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *AgreementRepository) ListByParticipant(ctx context.Context, userID string) ([]*domain.Agreement, error) {
	var out []*domain.Agreement
	err := r.db.WithContext(ctx).
		Where("borrower_id = ? OR lender_id = ?", userID, userID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

// translate maps the driver's not-found onto the domain sentinel so callers
// never import gorm.
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}
