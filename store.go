package crm

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/carlosyadil/giettenerife-crm/internal/rest"
)

// Store is the data-access layer. Every screen-facing operation on
// clients, visits and reminders goes through it.
//
// List operations never fail: when the backend is unreachable, the query
// errors or the backend is not configured at all, they return an empty
// slice, which the view renders as its empty state. Write operations
// always surface their errors; a caller must never assume a failed write
// happened.
//
// Create and update operations take the acting user explicitly. The
// Store never looks the session up behind the caller's back.
type Store struct {
	b *Backend
}

// NewStore builds a Store on an explicitly constructed Backend.
func NewStore(b *Backend) *Store {
	return &Store{b: b}
}

// record counts the operation and its outcome for the metrics endpoint.
func record(op string, err error) error {
	storeOpsTotal.WithLabelValues(op).Inc()
	if err != nil {
		storeFailuresTotal.WithLabelValues(op).Inc()
	}
	return err
}

// swallowed logs and counts a read failure that is being converted into
// an empty result.
func swallowed(op string, err error) {
	storeFailuresTotal.WithLabelValues(op).Inc()
	log.Debug().Err(err).Str("op", op).Msg("read failed; returning empty result")
}

// --------------------------------------------------------------------
// Clients
// --------------------------------------------------------------------

// ListClients returns all clients ordered by name ascending.
func (s *Store) ListClients(ctx context.Context) []Client {
	const op = "list_clients"
	storeOpsTotal.WithLabelValues(op).Inc()
	if !s.b.Configured() {
		return []Client{}
	}
	out, err := rest.ListClients(ctx, s.b.http, s.b.baseURL)
	if err != nil {
		swallowed(op, err)
		return []Client{}
	}
	return out
}

// GetClient fetches one client by id; ErrNotFound when no row matches.
func (s *Store) GetClient(ctx context.Context, id string) (*Client, error) {
	if !s.b.Configured() {
		return nil, record("get_client", ErrNotConfigured)
	}
	c, err := rest.GetClient(ctx, s.b.http, s.b.baseURL, id)
	return c, record("get_client", err)
}

// CreateClient inserts a new client owned by the acting user.
func (s *Store) CreateClient(ctx context.Context, actor User, req CreateClientRequest) error {
	if !s.b.Configured() {
		return record("create_client", ErrNotConfigured)
	}
	return record("create_client", rest.CreateClient(ctx, s.b.http, s.b.baseURL, actor, req))
}

// UpdateClient patches a client's mutable fields.
func (s *Store) UpdateClient(ctx context.Context, actor User, id string, req UpdateClientRequest) error {
	if !s.b.Configured() {
		return record("update_client", ErrNotConfigured)
	}
	return record("update_client", rest.UpdateClient(ctx, s.b.http, s.b.baseURL, actor, id, req))
}

// DeleteClient removes a client. The backend cascades the deletion to
// the client's visits and reminders; ownership is enforced by its
// row-level policy, not here.
func (s *Store) DeleteClient(ctx context.Context, id string) error {
	if !s.b.Configured() {
		return record("delete_client", ErrNotConfigured)
	}
	return record("delete_client", rest.DeleteClient(ctx, s.b.http, s.b.baseURL, id))
}

// --------------------------------------------------------------------
// Visits
// --------------------------------------------------------------------

// ListVisits returns all visits ordered by date descending.
func (s *Store) ListVisits(ctx context.Context) []Visit {
	const op = "list_visits"
	storeOpsTotal.WithLabelValues(op).Inc()
	if !s.b.Configured() {
		return []Visit{}
	}
	out, err := rest.ListVisits(ctx, s.b.http, s.b.baseURL)
	if err != nil {
		swallowed(op, err)
		return []Visit{}
	}
	return out
}

// ListVisitsByClient returns one client's visits, date descending.
func (s *Store) ListVisitsByClient(ctx context.Context, clientID string) []Visit {
	const op = "list_visits_by_client"
	storeOpsTotal.WithLabelValues(op).Inc()
	if !s.b.Configured() {
		return []Visit{}
	}
	out, err := rest.ListVisitsByClient(ctx, s.b.http, s.b.baseURL, clientID)
	if err != nil {
		swallowed(op, err)
		return []Visit{}
	}
	return out
}

// GetVisit fetches one visit by id; ErrNotFound when no row matches.
func (s *Store) GetVisit(ctx context.Context, id string) (*Visit, error) {
	if !s.b.Configured() {
		return nil, record("get_visit", ErrNotConfigured)
	}
	v, err := rest.GetVisit(ctx, s.b.http, s.b.baseURL, id)
	return v, record("get_visit", err)
}

// CreateVisit inserts a visit owned by the acting user. When the visit
// carries a follow-up date the caller is responsible for also creating
// the Reminder in a second, independent call; the two are not a
// transaction and the Store never creates the reminder implicitly.
func (s *Store) CreateVisit(ctx context.Context, actor User, req CreateVisitRequest) error {
	if !s.b.Configured() {
		return record("create_visit", ErrNotConfigured)
	}
	return record("create_visit", rest.CreateVisit(ctx, s.b.http, s.b.baseURL, actor, req))
}

// UpdateVisit patches a visit. Extended variant; visits are otherwise
// immutable history.
func (s *Store) UpdateVisit(ctx context.Context, actor User, id string, req UpdateVisitRequest) error {
	if !s.b.Configured() {
		return record("update_visit", ErrNotConfigured)
	}
	return record("update_visit", rest.UpdateVisit(ctx, s.b.http, s.b.baseURL, actor, id, req))
}

// DeleteVisit removes a visit. Extended variant.
func (s *Store) DeleteVisit(ctx context.Context, id string) error {
	if !s.b.Configured() {
		return record("delete_visit", ErrNotConfigured)
	}
	return record("delete_visit", rest.DeleteVisit(ctx, s.b.http, s.b.baseURL, id))
}

// --------------------------------------------------------------------
// Reminders
// --------------------------------------------------------------------

// ListReminders returns all reminders ordered by date ascending.
func (s *Store) ListReminders(ctx context.Context) []Reminder {
	const op = "list_reminders"
	storeOpsTotal.WithLabelValues(op).Inc()
	if !s.b.Configured() {
		return []Reminder{}
	}
	out, err := rest.ListReminders(ctx, s.b.http, s.b.baseURL)
	if err != nil {
		swallowed(op, err)
		return []Reminder{}
	}
	return out
}

// GetReminder fetches one reminder by id; ErrNotFound when no row
// matches.
func (s *Store) GetReminder(ctx context.Context, id string) (*Reminder, error) {
	if !s.b.Configured() {
		return nil, record("get_reminder", ErrNotConfigured)
	}
	r, err := rest.GetReminder(ctx, s.b.http, s.b.baseURL, id)
	return r, record("get_reminder", err)
}

// CreateReminder inserts a reminder owned by the acting user, with
// completed starting out false.
func (s *Store) CreateReminder(ctx context.Context, actor User, req CreateReminderRequest) error {
	if !s.b.Configured() {
		return record("create_reminder", ErrNotConfigured)
	}
	return record("create_reminder", rest.CreateReminder(ctx, s.b.http, s.b.baseURL, actor, req))
}

// UpdateReminder patches a reminder's mutable fields.
func (s *Store) UpdateReminder(ctx context.Context, actor User, id string, req UpdateReminderRequest) error {
	if !s.b.Configured() {
		return record("update_reminder", ErrNotConfigured)
	}
	return record("update_reminder", rest.UpdateReminder(ctx, s.b.http, s.b.baseURL, actor, id, req))
}

// ToggleReminder flips a reminder's completed flag. The backend has no
// atomic toggle, so the current state is re-read first and the update
// carries only the completed field; a concurrent edit between the two
// steps wins or loses by last write.
func (s *Store) ToggleReminder(ctx context.Context, actor User, id string) error {
	r, err := s.GetReminder(ctx, id)
	if err != nil {
		return err
	}
	completed := !r.Completed
	return s.UpdateReminder(ctx, actor, id, UpdateReminderRequest{Completed: &completed})
}

// DeleteReminder removes a reminder.
func (s *Store) DeleteReminder(ctx context.Context, id string) error {
	if !s.b.Configured() {
		return record("delete_reminder", ErrNotConfigured)
	}
	return record("delete_reminder", rest.DeleteReminder(ctx, s.b.http, s.b.baseURL, id))
}
