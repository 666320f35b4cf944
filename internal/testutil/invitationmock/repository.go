package invitationmock

import (
	"context"
	"sync"

	"lendit-backend/internal/domain/invitation"
)

var _ invitation.Repository = (*Repo)(nil)

// Repo records created invitations for assertions.
type Repo struct {
	mu      sync.Mutex
	Created []*invitation.Invitation
}

func (m *Repo) Create(_ context.Context, inv *invitation.Invitation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Created = append(m.Created, inv)
	return nil
}

func (m *Repo) GetByToken(_ context.Context, token string) (*invitation.Invitation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, inv := range m.Created {
		if inv.Token == token {
			return inv, nil
		}
	}
	return nil, context.Canceled
}
