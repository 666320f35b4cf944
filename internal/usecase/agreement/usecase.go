// Package agreement implements the loan agreement lifecycle: creation as a
// request or direct offer, claiming, acceptance, rejection, withdrawal and
// completion. Every transition validates the persisted state, either through
// a conditional write or a locked read inside the unit of work.
package agreement

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	domain "lendit-backend/internal/domain/agreement"
	"lendit-backend/internal/domain/invitation"
	"lendit-backend/internal/domain/notification"
	"lendit-backend/internal/domain/payment"
	"lendit-backend/internal/domain/transaction"
	"lendit-backend/internal/domain/uow"
	"lendit-backend/internal/usecase/contract"
	"lendit-backend/pkg/currency"
	"lendit-backend/pkg/finance"
	"lendit-backend/pkg/id"
)

const inviteTTL = 7 * 24 * time.Hour

type Usecase struct {
	repo   domain.Repository
	notifs notification.Repository
	uow    uow.UnitOfWork
	docs   contract.Generator
	now    func() time.Time
}

func NewUsecase(repo domain.Repository, notifs notification.Repository, tx uow.UnitOfWork, docs contract.Generator) *Usecase {
	return &Usecase{repo: repo, notifs: notifs, uow: tx, docs: docs, now: func() time.Time { return time.Now().UTC() }}
}

// validateTerms enforces the financial-term invariants shared by requests
// and offers. All failures surface before any write.
func validateTerms(amount, rate float64, months int, purpose domain.Purpose, method payment.Method) error {
	if amount <= 0 {
		return domain.NewValidationError("amount", "must be positive")
	}
	if rate < 0 {
		return domain.NewValidationError("interest_rate", "must not be negative")
	}
	if months <= 0 {
		return domain.NewValidationError("duration_months", "must be positive")
	}
	if !domain.ValidPurpose(purpose) {
		return domain.NewValidationError("purpose", fmt.Sprintf("unknown category %q", purpose))
	}
	if _, err := payment.ParseMethod(string(method)); err != nil {
		return domain.NewValidationError("payment_method", err.Error())
	}
	return nil
}

// CreateRequest posts a borrower-initiated open request. The lender side
// stays empty until a claim succeeds.
func (u *Usecase) CreateRequest(ctx context.Context, borrower Actor, in CreateRequestInput) (*AgreementDTO, error) {
	if borrower.ID == "" {
		return nil, domain.NewValidationError("borrower", "missing identity")
	}
	if err := validateTerms(in.Amount, in.InterestRate, in.DurationMonths, in.Purpose, in.PaymentMethod); err != nil {
		return nil, err
	}

	a := &domain.Agreement{
		AgreementID:     id.NewID32(),
		BorrowerID:      borrower.ID,
		BorrowerName:    borrower.Name,
		BorrowerEmail:   borrower.Email,
		Amount:          in.Amount,
		InterestRate:    in.InterestRate,
		DurationMonths:  in.DurationMonths,
		Purpose:         in.Purpose,
		PaymentMethod:   in.PaymentMethod,
		Status:          domain.StatusPending,
		StatusUpdatedAt: u.now(),
	}
	a.SetConditions(domain.Conditions{
		Type:             domain.KindRequest,
		Description:      in.Description,
		Collateral:       in.Collateral,
		MonthlyIncome:    in.MonthlyIncome,
		EmploymentStatus: in.EmploymentStatus,
		CreditScore:      in.CreditScore,
	})

	if err := u.repo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("creating loan request: %w", err)
	}

	u.notify(ctx, borrower.ID, notification.TypeRequestCreated, "Loan request posted",
		fmt.Sprintf("Your request for %s over %d months is now visible to lenders.",
			currency.Format(in.Amount), in.DurationMonths), a.AgreementID)

	return toDTO(a), nil
}

// CreateOffer posts a lender-initiated agreement addressed to a borrower.
// When the borrower has no account yet, an invitation row is created in the
// same transaction and the borrower identity stays unresolved until signup.
func (u *Usecase) CreateOffer(ctx context.Context, lender Actor, in CreateOfferInput) (*AgreementDTO, error) {
	if lender.ID == "" {
		return nil, domain.NewValidationError("lender", "missing identity")
	}
	if in.Borrower.Email == "" {
		return nil, domain.NewValidationError("borrower_email", "required to address an offer")
	}
	if err := validateTerms(in.Amount, in.InterestRate, in.DurationMonths, in.Purpose, in.PaymentMethod); err != nil {
		return nil, err
	}

	a := &domain.Agreement{
		AgreementID:     id.NewID32(),
		BorrowerID:      in.Borrower.ID, // empty while the invite is pending
		BorrowerName:    in.Borrower.Name,
		BorrowerEmail:   in.Borrower.Email,
		LenderID:        lender.ID,
		LenderName:      lender.Name,
		LenderEmail:     lender.Email,
		Amount:          in.Amount,
		InterestRate:    in.InterestRate,
		DurationMonths:  in.DurationMonths,
		Purpose:         in.Purpose,
		PaymentMethod:   in.PaymentMethod,
		SmartContract:   in.SmartContract,
		Status:          domain.StatusPending,
		StatusUpdatedAt: u.now(),
	}
	a.SetConditions(domain.Conditions{
		Type:          domain.KindOffer,
		Description:   in.Description,
		WalletAddress: in.WalletAddress,
	})

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Agreements.Create(ctx, a); err != nil {
			return fmt.Errorf("creating loan offer: %w", err)
		}
		if in.Borrower.PendingInvite() {
			inv := &invitation.Invitation{
				InvitationID: id.NewID32(),
				AgreementID:  a.AgreementID,
				Email:        in.Borrower.Email,
				Name:         in.Borrower.Name,
				Token:        uuid.NewString(),
				Status:       "pending",
				ExpiresAt:    u.now().Add(inviteTTL),
			}
			if err := r.Invitations.Create(ctx, inv); err != nil {
				return fmt.Errorf("creating invitation: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !in.Borrower.PendingInvite() {
		u.notify(ctx, in.Borrower.ID, notification.TypeOfferReceived, "Loan offer received",
			fmt.Sprintf("%s offered you %s at %.2f%% over %d months.",
				lender.Name, currency.Format(in.Amount), in.InterestRate, in.DurationMonths), a.AgreementID)
	}
	return toDTO(a), nil
}

// Claim attaches the calling lender to an open request. The write is a
// single conditional update, so with N concurrent claimers exactly one wins
// and the rest see ErrConflict.
func (u *Usecase) Claim(ctx context.Context, lender Actor, agreementID string) (*AgreementDTO, error) {
	if lender.ID == "" {
		return nil, domain.NewValidationError("lender", "missing identity")
	}

	err := u.repo.Claim(ctx, agreementID, domain.LenderFields{
		LenderID: lender.ID, LenderName: lender.Name, LenderEmail: lender.Email,
	})
	if err != nil {
		return nil, err
	}

	a, err := u.repo.GetByAgreementID(ctx, agreementID)
	if err != nil {
		return nil, err
	}

	u.notify(ctx, a.BorrowerID, notification.TypeRequestClaimed, "Lender found",
		fmt.Sprintf("%s wants to fund your request for %s. Review and accept to activate the loan.",
			lender.Name, currency.Format(a.Amount)), a.AgreementID)

	return toDTO(a), nil
}

// Accept moves a claimed request or a pending offer to active. It stamps the
// acceptance time, snapshots the amortized figures into the conditions
// payload, and (after commit) generates the contract document and notifies
// the lender; those side effects never unwind the transition.
func (u *Usecase) Accept(ctx context.Context, borrower Actor, agreementID string) (*AgreementDTO, error) {
	var accepted *domain.Agreement

	err := u.uow.WithinAgreementTx(ctx, agreementID, func(r uow.Repos, a *domain.Agreement) error {
		if a.BorrowerID != borrower.ID {
			return domain.ErrNotAuthorized
		}
		if !a.AcceptEligible() {
			return fmt.Errorf("%w: cannot accept from %q", domain.ErrInvalidState, a.Status)
		}
		if !a.Claimed() {
			// A request nobody claimed has no counterparty to agree with.
			return fmt.Errorf("%w: no lender attached", domain.ErrInvalidState)
		}

		now := u.now()
		cond := domain.ParseConditions(a.Conditions)
		cond.MonthlyPayment = finance.RoundPaise(finance.MonthlyPayment(a.Amount, a.InterestRate, a.DurationMonths))
		cond.TotalRepayment = finance.TotalRepayment(a.Amount, a.InterestRate, a.DurationMonths)
		a.SetConditions(cond)
		a.Status = domain.StatusActive
		a.StatusUpdatedAt = now
		a.AcceptedAt = &now

		if err := r.Agreements.Save(ctx, a); err != nil {
			return fmt.Errorf("activating agreement: %w", err)
		}
		accepted = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.generateContract(ctx, accepted)

	u.notify(ctx, accepted.LenderID, notification.TypeAgreementActive, "Loan agreement active",
		fmt.Sprintf("%s accepted the agreement for %s. Disbursement can begin.",
			accepted.BorrowerName, currency.Format(accepted.Amount)), accepted.AgreementID)

	return toDTO(accepted), nil
}

// Reject declines a pending offer or a claimed request. Terminal states
// reject re-submission with ErrInvalidState.
func (u *Usecase) Reject(ctx context.Context, borrower Actor, agreementID, reason string) (*AgreementDTO, error) {
	var rejected *domain.Agreement

	err := u.uow.WithinAgreementTx(ctx, agreementID, func(r uow.Repos, a *domain.Agreement) error {
		if a.BorrowerID != borrower.ID {
			return domain.ErrNotAuthorized
		}
		if a.Status != domain.StatusPending && a.Status != domain.StatusClaimed {
			return fmt.Errorf("%w: cannot reject from %q", domain.ErrInvalidState, a.Status)
		}

		a.Status = domain.StatusRejected
		a.StatusUpdatedAt = u.now()
		if err := r.Agreements.Save(ctx, a); err != nil {
			return fmt.Errorf("rejecting agreement: %w", err)
		}
		rejected = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	if rejected.LenderID != "" {
		msg := fmt.Sprintf("%s declined the agreement for %s.", rejected.BorrowerName, currency.Format(rejected.Amount))
		if reason != "" {
			msg += " Reason: " + reason
		}
		u.notify(ctx, rejected.LenderID, notification.TypeAgreementRejected, "Loan agreement declined", msg, rejected.AgreementID)
	}
	return toDTO(rejected), nil
}

// Cancel withdraws the borrower's own still-unclaimed request. The record is
// marked cancelled and soft-deleted so it leaves every view.
func (u *Usecase) Cancel(ctx context.Context, borrower Actor, agreementID string) error {
	return u.uow.WithinAgreementTx(ctx, agreementID, func(r uow.Repos, a *domain.Agreement) error {
		if a.BorrowerID != borrower.ID {
			return domain.ErrNotAuthorized
		}
		if a.Status != domain.StatusPending || a.Claimed() || a.Kind() != domain.KindRequest {
			return fmt.Errorf("%w: only an unclaimed pending request can be withdrawn", domain.ErrInvalidState)
		}

		a.Status = domain.StatusCancelled
		a.StatusUpdatedAt = u.now()
		if err := r.Agreements.Save(ctx, a); err != nil {
			return fmt.Errorf("cancelling request: %w", err)
		}
		return r.Agreements.SoftDelete(ctx, a.AgreementID, borrower.ID)
	})
}

// Complete closes an active agreement once completed repayments cover the
// snapshotted total. Either party may trigger the check.
func (u *Usecase) Complete(ctx context.Context, caller Actor, agreementID string) (*AgreementDTO, error) {
	var completed *domain.Agreement

	err := u.uow.WithinAgreementTx(ctx, agreementID, func(r uow.Repos, a *domain.Agreement) error {
		if caller.ID != a.BorrowerID && caller.ID != a.LenderID {
			return domain.ErrNotAuthorized
		}
		if a.Status != domain.StatusActive {
			return fmt.Errorf("%w: cannot complete from %q", domain.ErrInvalidState, a.Status)
		}

		total := domain.ParseConditions(a.Conditions).TotalRepayment
		repaid, err := r.Transactions.SumCompletedByType(ctx, a.AgreementID, transaction.TypeRepayment)
		if err != nil {
			return fmt.Errorf("summing repayments: %w", err)
		}
		if repaid+0.005 < total {
			return fmt.Errorf("%w: %s of %s repaid", domain.ErrInvalidState,
				currency.Format(repaid), currency.Format(total))
		}

		a.Status = domain.StatusCompleted
		a.StatusUpdatedAt = u.now()
		if err := r.Agreements.Save(ctx, a); err != nil {
			return fmt.Errorf("completing agreement: %w", err)
		}
		completed = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toDTO(completed), nil
}

// Get returns one agreement to one of its parties.
func (u *Usecase) Get(ctx context.Context, caller Actor, agreementID string) (*AgreementDTO, error) {
	a, err := u.repo.GetByAgreementID(ctx, agreementID)
	if err != nil {
		return nil, err
	}
	if caller.ID != a.BorrowerID && caller.ID != a.LenderID {
		return nil, domain.ErrNotAuthorized
	}
	return toDTO(a), nil
}

// generateContract renders the document and saves the link. Best effort: a
// failure is logged, the agreement stays active.
func (u *Usecase) generateContract(ctx context.Context, a *domain.Agreement) {
	if u.docs == nil {
		return
	}
	cond := domain.ParseConditions(a.Conditions)
	start := u.now()
	if a.AcceptedAt != nil {
		start = *a.AcceptedAt
	}
	link, err := u.docs.Generate(ctx, contract.Data{
		AgreementID:    a.AgreementID,
		LenderName:     a.LenderName,
		LenderEmail:    a.LenderEmail,
		BorrowerName:   a.BorrowerName,
		BorrowerEmail:  a.BorrowerEmail,
		Amount:         a.Amount,
		InterestRate:   a.InterestRate,
		DurationMonths: a.DurationMonths,
		Purpose:        string(a.Purpose),
		StartDate:      start,
		MonthlyPayment: cond.MonthlyPayment,
		TotalRepayment: cond.TotalRepayment,
		Schedule:       finance.Schedule(a.Amount, a.InterestRate, a.DurationMonths, start),
		SmartContract:  a.SmartContract,
		WalletAddress:  cond.WalletAddress,
	})
	if err != nil {
		log.Printf("contract generation failed for agreement %s: %v", a.AgreementID, err)
		return
	}
	a.ContractLink = link
	if err := u.repo.Save(ctx, a); err != nil {
		log.Printf("saving contract link for agreement %s: %v", a.AgreementID, err)
	}
}

// notify inserts a notification row for userID. Failures are logged and
// swallowed; the triggering transition is already durable.
func (u *Usecase) notify(ctx context.Context, userID string, t notification.Type, title, message, agreementID string) {
	if u.notifs == nil || userID == "" {
		return
	}
	n := &notification.Notification{
		NotificationID: id.NewID32(),
		UserID:         userID,
		Type:           t,
		Title:          title,
		Message:        message,
		AgreementID:    agreementID,
	}
	if err := u.notifs.Create(ctx, n); err != nil {
		log.Printf("notification %s to %s failed: %v", t, userID, err)
	}
}

// IsNotFound helps handlers distinguish a vanished agreement from a lost
// claim race.
func IsNotFound(err error) bool { return errors.Is(err, domain.ErrNotFound) }
