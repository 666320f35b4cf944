package notification

import (
	"context"
	"time"
)

type Type string

const (
	TypeRequestCreated  Type = "loan_request_created"
	TypeRequestClaimed  Type = "loan_request_claimed"
	TypeOfferReceived   Type = "loan_offer_received"
	TypeAgreementActive Type = "loan_agreement_active"
	TypeAgreementRejected Type = "loan_agreement_rejected"
	TypePaymentReceived Type = "payment_received"
)

// Notification is a write-only side channel informing the counterparty of a
// state transition. Delivery failures never roll the transition back.
type Notification struct {
	ID             uint64 `gorm:"primaryKey;column:id" json:"-"`
	NotificationID string `gorm:"size:32;uniqueIndex:ux_notifications_notification_id" json:"notification_id"`

	UserID      string `gorm:"size:32;index:idx_notifications_user" json:"user_id"`
	Type        Type   `gorm:"size:40" json:"type"`
	Title       string `gorm:"size:160" json:"title"`
	Message     string `gorm:"type:text" json:"message"`
	AgreementID string `gorm:"column:related_agreement_id;size:32;index" json:"related_agreement_id,omitempty"`
	Read        bool   `json:"read"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	ListByUserID(ctx context.Context, userID string, unreadOnly bool) ([]*Notification, error)
	MarkRead(ctx context.Context, notificationID, userID string) error
}
