package notificationmock

import (
	"context"
	"sync"

	"lendit-backend/internal/domain/notification"
)

var _ notification.Repository = (*Repo)(nil)

// Repo records inserted notifications so tests can assert on side effects;
// set FailCreate to exercise the best-effort path.
type Repo struct {
	mu         sync.Mutex
	Created    []*notification.Notification
	FailCreate error
}

func (m *Repo) Create(_ context.Context, n *notification.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailCreate != nil {
		return m.FailCreate
	}
	m.Created = append(m.Created, n)
	return nil
}

func (m *Repo) ListByUserID(_ context.Context, userID string, unreadOnly bool) ([]*notification.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*notification.Notification
	for _, n := range m.Created {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.Read {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (m *Repo) MarkRead(_ context.Context, notificationID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.Created {
		if n.NotificationID == notificationID && n.UserID == userID {
			n.Read = true
			return nil
		}
	}
	return nil
}

// ByType filters recorded notifications for assertions.
func (m *Repo) ByType(t notification.Type) []*notification.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*notification.Notification
	for _, n := range m.Created {
		if n.Type == t {
			out = append(out, n)
		}
	}
	return out
}
