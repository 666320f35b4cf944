package agreement

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"lendit-backend/internal/domain/payment"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusClaimed   Status = "claimed"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// Kind discriminates how an agreement was created. A request starts without
// a lender; an offer carries one from the first write.
type Kind string

const (
	KindRequest Kind = "loan_request"
	KindOffer   Kind = "loan_offer"
)

type Purpose string

const (
	PurposeBusiness        Purpose = "business"
	PurposeEducation       Purpose = "education"
	PurposeMedical         Purpose = "medical"
	PurposeHomeImprovement Purpose = "home_improvement"
	PurposePersonal        Purpose = "personal"
	PurposeOther           Purpose = "other"
)

// ValidPurpose reports whether p is one of the known categories.
func ValidPurpose(p Purpose) bool {
	switch p {
	case PurposeBusiness, PurposeEducation, PurposeMedical,
		PurposeHomeImprovement, PurposePersonal, PurposeOther:
		return true
	}
	return false
}

type Agreement struct {
	ID          uint64 `gorm:"primaryKey;column:id" json:"-"`
	AgreementID string `gorm:"size:32;uniqueIndex:ux_agreements_agreement_id_active" json:"agreement_id"`

	BorrowerID    string `gorm:"size:32;index:idx_agreements_borrower" json:"borrower_id"`
	BorrowerName  string `gorm:"size:120" json:"borrower_name"`
	BorrowerEmail string `gorm:"size:254" json:"borrower_email"`

	// Lender fields stay empty until a claim succeeds; at the SQL level the
	// claim predicate is lender_id = '' (the unclaimed marker).
	LenderID    string `gorm:"size:32;index:idx_agreements_lender" json:"lender_id,omitempty"`
	LenderName  string `gorm:"size:120" json:"lender_name,omitempty"`
	LenderEmail string `gorm:"size:254" json:"lender_email,omitempty"`

	Amount        float64        `gorm:"type:decimal(18,2)" json:"amount"`
	InterestRate  float64        `gorm:"type:decimal(6,2)" json:"interest_rate"`
	DurationMonths int           `gorm:"column:duration_months" json:"duration_months"`
	Purpose       Purpose        `gorm:"size:32" json:"purpose"`
	PaymentMethod payment.Method `gorm:"size:16" json:"payment_method"`
	SmartContract bool           `json:"smart_contract"`

	// Conditions is the serialized key-value payload (see Conditions); kept
	// as text the way the original schema stored it.
	Conditions string `gorm:"type:text" json:"conditions"`

	// ContractLink points at the durable contract artifact produced when the
	// agreement goes active.
	ContractLink string `gorm:"type:text" json:"contract_link,omitempty"`

	Status          Status     `gorm:"type:enum('pending','claimed','active','completed','rejected','cancelled');default:'pending'" json:"status"`
	StatusUpdatedAt time.Time  `gorm:"autoCreateTime" json:"status_updated_at"`
	AcceptedAt      *time.Time `json:"accepted_at,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	DeletedBy string         `gorm:"size:32" json:"-"`
}

func (Agreement) TableName() string { return "loan_agreements" }

// Claimed reports whether a lender is attached.
func (a *Agreement) Claimed() bool { return a.LenderID != "" }

// AcceptEligible is the set of statuses Accept may start from: pending for
// offers, claimed for requests.
func (a *Agreement) AcceptEligible() bool {
	return a.Status == StatusPending || a.Status == StatusClaimed
}

// Conditions is the structured payload carried in Agreement.Conditions. The
// Type field is the request/offer discriminator the browse views filter on.
type Conditions struct {
	Type             Kind    `json:"type"`
	Description      string  `json:"description,omitempty"`
	Collateral       string  `json:"collateral,omitempty"`
	MonthlyIncome    float64 `json:"monthly_income,omitempty"`
	EmploymentStatus string  `json:"employment_status,omitempty"`
	CreditScore      int     `json:"credit_score,omitempty"`

	// Settlement wallet for smart-contract agreements; informational only,
	// no chain interaction happens here.
	WalletAddress string `json:"wallet_address,omitempty"`

	// Snapshot taken when the agreement goes active.
	MonthlyPayment float64 `json:"monthly_payment,omitempty"`
	TotalRepayment float64 `json:"total_repayment,omitempty"`
}

// ParseConditions decodes the payload; malformed input yields the zero
// value, matching how the views treat unparseable records (not a request).
func ParseConditions(raw string) Conditions {
	var c Conditions
	if raw == "" {
		return c
	}
	_ = json.Unmarshal([]byte(raw), &c)
	return c
}

// Encode serializes the payload for storage.
func (c Conditions) Encode() string {
	b, _ := json.Marshal(c)
	return string(b)
}

// SetConditions replaces the stored payload.
func (a *Agreement) SetConditions(c Conditions) { a.Conditions = c.Encode() }

// Kind returns the origin discriminator from the conditions payload.
func (a *Agreement) Kind() Kind { return ParseConditions(a.Conditions).Type }
