package agreement

import (
	"context"

	domain "lendit-backend/internal/domain/agreement"
)

// BrowseOpenRequests is the public lender-facing browse list: pending,
// unclaimed, borrower-initiated records, never the caller's own. purpose
// narrows to one category when set.
func (u *Usecase) BrowseOpenRequests(ctx context.Context, excludeUserID string, purpose domain.Purpose) ([]*AgreementDTO, error) {
	list, err := u.repo.ListOpenRequests(ctx, domain.BrowseFilter{
		ExcludeBorrowerID: excludeUserID,
		Purpose:           purpose,
	})
	if err != nil {
		return nil, err
	}
	return toDTOs(filterRequests(list)), nil
}

// ListOwnOpenRequests returns the caller's still-unclaimed requests (the "my
// open requests" view).
func (u *Usecase) ListOwnOpenRequests(ctx context.Context, userID string) ([]*AgreementDTO, error) {
	list, err := u.repo.ListOwnOpenRequests(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toDTOs(filterRequests(list)), nil
}

// ListOwnAgreements returns everything the caller participates in on either
// side (the dashboard view).
func (u *Usecase) ListOwnAgreements(ctx context.Context, userID string) ([]*AgreementDTO, error) {
	list, err := u.repo.ListByParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toDTOs(list), nil
}

// filterRequests drops records whose conditions payload is not a
// borrower-initiated request; the discriminator lives in opaque text so the
// SQL layer cannot filter on it.
func filterRequests(list []*domain.Agreement) []*domain.Agreement {
	out := list[:0]
	for _, a := range list {
		if a.Kind() == domain.KindRequest {
			out = append(out, a)
		}
	}
	return out
}
