package mysql

import (
	"context"

	domain "lendit-backend/internal/domain/invitation"

	"gorm.io/gorm"
)

type InvitationRepository struct{ db *gorm.DB }

func NewInvitationRepository(db *gorm.DB) *InvitationRepository {
	return &InvitationRepository{db: db}
}

func (r *InvitationRepository) Create(ctx context.Context, inv *domain.Invitation) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *InvitationRepository) GetByToken(ctx context.Context, token string) (*domain.Invitation, error) {
	var out domain.Invitation
	res := r.db.WithContext(ctx).Where("token = ?", token).First(&out)
	return &out, res.Error
}
