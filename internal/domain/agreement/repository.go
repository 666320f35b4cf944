package agreement

import (
	"context"
	"time"
)

// LenderFields is the set written by a successful claim.
type LenderFields struct {
	LenderID    string
	LenderName  string
	LenderEmail string
}

// BrowseFilter narrows the open-request browse view.
type BrowseFilter struct {
	ExcludeBorrowerID string
	Purpose           Purpose // empty means all purposes
}

type Repository interface {
	Create(ctx context.Context, a *Agreement) error
	GetByAgreementID(ctx context.Context, agreementID string) (*Agreement, error)
	// GetByAgreementIDForUpdate locks the row; only valid inside a UoW tx.
	GetByAgreementIDForUpdate(ctx context.Context, agreementID string) (*Agreement, error)
	Save(ctx context.Context, a *Agreement) error

	// Claim atomically attaches a lender: a single conditional UPDATE guarded
	// by status='pending' AND lender_id='' so exactly one concurrent caller
	// wins. Returns ErrConflict when the guard matches nothing but the row
	// exists, ErrNotFound when it does not.
	Claim(ctx context.Context, agreementID string, lender LenderFields) error

	// UpdateStatusFrom moves status expected→next in one conditional write.
	// ErrConflict when the agreement is no longer in expected.
	UpdateStatusFrom(ctx context.Context, agreementID string, expected, next Status, at time.Time) error

	// SoftDelete hides a cancelled request from every view, recording who
	// withdrew it.
	SoftDelete(ctx context.Context, agreementID, deletedBy string) error

	// ListOpenRequests: pending, unclaimed, not the excluded borrower's own.
	// The loan_request discriminator check happens in the usecase since
	// conditions is opaque text at the SQL level.
	ListOpenRequests(ctx context.Context, f BrowseFilter) ([]*Agreement, error)
	// ListOwnOpenRequests: the borrower's own still-unclaimed requests.
	ListOwnOpenRequests(ctx context.Context, borrowerID string) ([]*Agreement, error)
	// ListByParticipant: everything the user is on either side of.
	ListByParticipant(ctx context.Context, userID string) ([]*Agreement, error)
}
