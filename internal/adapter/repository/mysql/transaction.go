package mysql

import (
	"context"
	"errors"

	domain "lendit-backend/internal/domain/transaction"

	"gorm.io/gorm"
)

type TransactionRepository struct{ db *gorm.DB }

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, t *domain.Transaction) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TransactionRepository) GetByTransactionID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	var out domain.Transaction
	res := r.db.WithContext(ctx).Where("transaction_id = ?", transactionID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	return &out, res.Error
}

func (r *TransactionRepository) ListByAgreementID(ctx context.Context, agreementID string) ([]*domain.Transaction, error) {
	var out []*domain.Transaction
	err := r.db.WithContext(ctx).
		Where("agreement_id = ?", agreementID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

// FinalizeStatus is guarded on status = pending so a transaction already
// finalized (or never pending) is never rewritten.
func (r *TransactionRepository) FinalizeStatus(ctx context.Context, transactionID string, status domain.Status) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Transaction{}).
		Where("transaction_id = ? AND status = ?", transactionID, domain.StatusPending).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TransactionRepository) SumCompletedByType(ctx context.Context, agreementID string, t domain.Type) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&domain.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("agreement_id = ? AND transaction_type = ? AND status = ?",
			agreementID, t, domain.StatusCompleted).
		Scan(&total).Error
	return total, err
}
