package transaction

import (
	"errors"
	"time"

	"lendit-backend/internal/domain/payment"
)

var ErrNotFound = errors.New("transaction not found")

type Type string

const (
	TypeDisbursement Type = "disbursement"
	TypeRepayment    Type = "repayment"
	TypeInterest     Type = "interest"
)

// ValidType reports whether t is a known transaction type.
func ValidType(t Type) bool {
	switch t {
	case TypeDisbursement, TypeRepayment, TypeInterest:
		return true
	}
	return false
}

type Status string

const (
	// StatusPending: written for delayed methods; finalized by the external
	// reconciliation process.
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Transaction is an immutable settlement record. Only Status may change
// after creation, and only pending → completed/failed.
type Transaction struct {
	ID            uint64 `gorm:"primaryKey;column:id" json:"-"`
	TransactionID string `gorm:"size:32;uniqueIndex:ux_transactions_transaction_id" json:"transaction_id"`

	AgreementID string         `gorm:"size:32;index:idx_transactions_agreement" json:"agreement_id"`
	Type        Type           `gorm:"column:transaction_type;size:16" json:"transaction_type"`
	Amount      float64        `gorm:"type:decimal(18,2)" json:"amount"`
	Method      payment.Method `gorm:"column:payment_method;size:16" json:"payment_method"`
	// Reference is the backend-specific id/hash returned by the processor.
	Reference string `gorm:"column:payment_reference;size:128;index" json:"payment_reference"`
	PayerID   string `gorm:"size:32" json:"payer_id"`
	RecipientID string `gorm:"size:32" json:"recipient_id"`

	Status    Status    `gorm:"type:enum('pending','completed','failed');default:'pending'" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Transaction) TableName() string { return "transactions" }
