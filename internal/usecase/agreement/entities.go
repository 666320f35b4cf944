package agreement

import (
	"time"

	domain "lendit-backend/internal/domain/agreement"
	"lendit-backend/internal/domain/payment"
	"lendit-backend/pkg/finance"
)

// Actor is the authenticated identity performing an operation, supplied by
// the hosting application's session layer. The core trusts it for
// borrower/lender authorization checks but never stores sessions itself.
type Actor struct {
	ID    string
	Name  string
	Email string
}

type CreateRequestInput struct {
	Amount         float64
	InterestRate   float64
	DurationMonths int
	Purpose        domain.Purpose
	PaymentMethod  payment.Method

	Description      string
	Collateral       string
	MonthlyIncome    float64
	EmploymentStatus string
	CreditScore      int
}

// BorrowerRef resolves the counterparty of an offer: either an existing
// account (ID set) or someone to invite by email (ID empty, Email set).
type BorrowerRef struct {
	ID    string
	Name  string
	Email string
}

// PendingInvite reports whether the borrower still has to sign up.
func (b BorrowerRef) PendingInvite() bool { return b.ID == "" }

type CreateOfferInput struct {
	Borrower       BorrowerRef
	Amount         float64
	InterestRate   float64
	DurationMonths int
	Purpose        domain.Purpose
	PaymentMethod  payment.Method
	SmartContract  bool
	WalletAddress  string
	Description    string
}

type AgreementDTO struct {
	AgreementID   string         `json:"agreement_id"`
	BorrowerID    string         `json:"borrower_id"`
	BorrowerName  string         `json:"borrower_name"`
	LenderID      string         `json:"lender_id,omitempty"`
	LenderName    string         `json:"lender_name,omitempty"`
	Amount        float64        `json:"amount"`
	InterestRate  float64        `json:"interest_rate"`
	DurationMonths int           `json:"duration_months"`
	Purpose       domain.Purpose `json:"purpose"`
	PaymentMethod payment.Method `json:"payment_method"`
	SmartContract bool           `json:"smart_contract"`
	WalletAddress string         `json:"wallet_address,omitempty"`
	Status        string         `json:"status"`
	Kind          domain.Kind    `json:"kind"`

	MonthlyPayment float64 `json:"monthly_payment"`
	TotalRepayment float64 `json:"total_repayment"`
	ContractLink   string  `json:"contract_link,omitempty"`

	AcceptedAt *time.Time `json:"accepted_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func toDTO(a *domain.Agreement) *AgreementDTO {
	cond := domain.ParseConditions(a.Conditions)
	dto := &AgreementDTO{
		AgreementID:    a.AgreementID,
		BorrowerID:     a.BorrowerID,
		BorrowerName:   a.BorrowerName,
		LenderID:       a.LenderID,
		LenderName:     a.LenderName,
		Amount:         a.Amount,
		InterestRate:   a.InterestRate,
		DurationMonths: a.DurationMonths,
		Purpose:        a.Purpose,
		PaymentMethod:  a.PaymentMethod,
		SmartContract:  a.SmartContract,
		Status:         string(a.Status),
		Kind:           cond.Type,
		WalletAddress:  cond.WalletAddress,
		MonthlyPayment: cond.MonthlyPayment,
		TotalRepayment: cond.TotalRepayment,
		ContractLink:   a.ContractLink,
		AcceptedAt:     a.AcceptedAt,
		CreatedAt:      a.CreatedAt,
	}
	// Before acceptance no snapshot exists; compute display figures with the
	// same amortized formula so every surface shows identical numbers.
	if dto.MonthlyPayment == 0 && a.DurationMonths > 0 {
		dto.MonthlyPayment = finance.MonthlyPayment(a.Amount, a.InterestRate, a.DurationMonths)
		dto.TotalRepayment = finance.TotalRepayment(a.Amount, a.InterestRate, a.DurationMonths)
	}
	return dto
}

func toDTOs(list []*domain.Agreement) []*AgreementDTO {
	out := make([]*AgreementDTO, 0, len(list))
	for _, a := range list {
		out = append(out, toDTO(a))
	}
	return out
}
