package invitation

import (
	"context"
	"time"
)

// Invitation is the deferred-borrower record behind the "offer to an email
// with no account" flow. The invitee signs up through the token; resolution
// of the pending borrower identity happens outside the core.
type Invitation struct {
	ID           uint64 `gorm:"primaryKey;column:id" json:"-"`
	InvitationID string `gorm:"size:32;uniqueIndex:ux_invitations_invitation_id" json:"invitation_id"`

	AgreementID string `gorm:"size:32;index:idx_invitations_agreement" json:"agreement_id"`
	Email       string `gorm:"size:254;index" json:"email"`
	Name        string `gorm:"size:120" json:"name"`
	Token       string `gorm:"size:64;uniqueIndex:ux_invitations_token" json:"invitation_token"`
	Status      string `gorm:"size:16;default:'pending'" json:"status"`
	ExpiresAt   time.Time `json:"expires_at"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Invitation) TableName() string { return "invitations" }

// Expired reports whether the token can no longer be redeemed.
func (i *Invitation) Expired(now time.Time) bool { return now.After(i.ExpiresAt) }

type Repository interface {
	Create(ctx context.Context, inv *Invitation) error
	GetByToken(ctx context.Context, token string) (*Invitation, error)
}
