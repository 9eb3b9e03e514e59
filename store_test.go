package crm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlosyadil/giettenerife-crm/internal/supatest"
)

func newTestStore(t *testing.T) (*Store, *Session, *supatest.Server, User) {
	t.Helper()
	srv := supatest.New()
	t.Cleanup(srv.Close)
	srv.AddUser("rep@giet.es", "secret")

	b, err := NewBackend(srv.URL(), "anon-key")
	require.NoError(t, err)
	sess := NewSession(b)
	actor, err := sess.SignIn(context.Background(), "rep@giet.es", "secret")
	require.NoError(t, err)
	return NewStore(b), sess, srv, actor
}

func TestCreateClientThenList(t *testing.T) {
	store, _, srv, actor := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateClient(ctx, actor, CreateClientRequest{Name: "Taller Sur", City: "Adeje"}))
	require.NoError(t, store.CreateClient(ctx, actor, CreateClientRequest{Name: "Auto Norte", ContactPerson: "Ana"}))

	got := store.ListClients(ctx)
	require.Len(t, got, 2)
	// name ascending is the layer's contract
	assert.Equal(t, "Auto Norte", got[0].Name)
	assert.Equal(t, "Taller Sur", got[1].Name)
	assert.Equal(t, "Ana", got[0].ContactPerson)
	assert.Equal(t, "Adeje", got[1].City)
	assert.NotEmpty(t, got[0].ID)
	assert.False(t, got[0].CreatedAt.IsZero())

	for _, row := range srv.Rows("clients") {
		assert.Equal(t, actor.ID, row["user_id"], "owner must be the acting user")
	}
}

func TestCreateClient_ValidationPerformsNoNetworkWrite(t *testing.T) {
	store, _, srv, actor := newTestStore(t)
	before := srv.RequestCount()

	err := store.CreateClient(context.Background(), actor, CreateClientRequest{City: "Adeje"})
	assert.True(t, IsValidation(err), "expected ValidationError, got %v", err)
	assert.Equal(t, before, srv.RequestCount(), "validation failure must not reach the backend")
}

func TestListVisits_DateDescending(t *testing.T) {
	store, _, _, actor := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateClient(ctx, actor, CreateClientRequest{Name: "Taller Sur"}))
	clientID := store.ListClients(ctx)[0].ID

	for _, d := range []string{"2024-01-01", "2024-03-01", "2024-02-01"} {
		date, err := time.Parse("2006-01-02", d)
		require.NoError(t, err)
		require.NoError(t, store.CreateVisit(ctx, actor, CreateVisitRequest{
			ClientID: clientID, Date: date, Type: VisitFollowUp, Result: ResultPending,
		}))
	}

	got := store.ListVisits(ctx)
	require.Len(t, got, 3)
	assert.Equal(t, time.March, got[0].Date.Month())
	assert.Equal(t, time.February, got[1].Date.Month())
	assert.Equal(t, time.January, got[2].Date.Month())

	byClient := store.ListVisitsByClient(ctx, clientID)
	assert.Equal(t, got, byClient)
	assert.Empty(t, store.ListVisitsByClient(ctx, "other-client"))
}

func TestToggleReminder_RoundTrip(t *testing.T) {
	store, _, srv, actor := newTestStore(t)
	ctx := context.Background()

	date := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, store.CreateReminder(ctx, actor, CreateReminderRequest{
		ClientID: "c1", Title: "llamar al taller", Date: date,
	}))
	original := srv.Rows("reminders")[0]
	id := original["id"].(string)

	require.NoError(t, store.ToggleReminder(ctx, actor, id))
	r, err := store.GetReminder(ctx, id)
	require.NoError(t, err)
	assert.True(t, r.Completed)

	require.NoError(t, store.ToggleReminder(ctx, actor, id))
	assert.Equal(t, original, srv.Rows("reminders")[0], "toggle twice must restore the original record")
}

func TestVisitWithFollowUp_PartialFailureWindow(t *testing.T) {
	store, _, srv, actor := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateClient(ctx, actor, CreateClientRequest{Name: "Taller Sur"}))
	clientID := store.ListClients(ctx)[0].ID

	// The two-call protocol: the visit insert lands, the reminder
	// insert is made to fail. No rollback happens; the orphan visit
	// stays. This documents the accepted inconsistency window.
	followUp := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.CreateVisit(ctx, actor, CreateVisitRequest{
		ClientID:     clientID,
		Date:         time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Type:         VisitFirst,
		Result:       ResultInterested,
		FollowUpDate: &followUp,
	}))

	srv.FailNextInsert("reminders")
	err := store.CreateReminder(ctx, actor, CreateReminderRequest{
		ClientID: clientID, Title: "Seguimiento: Taller Sur", Date: followUp,
	})
	require.Error(t, err)

	assert.Len(t, srv.Rows("visits"), 1)
	assert.Empty(t, srv.Rows("reminders"))
}

func TestListReminders_DateAscending(t *testing.T) {
	store, _, _, actor := newTestStore(t)
	ctx := context.Background()

	for _, d := range []string{"2024-03-10", "2024-03-01", "2024-03-05"} {
		date, err := time.Parse("2006-01-02", d)
		require.NoError(t, err)
		require.NoError(t, store.CreateReminder(ctx, actor, CreateReminderRequest{
			ClientID: "c1", Title: "r " + d, Date: date,
		}))
	}
	got := store.ListReminders(ctx)
	require.Len(t, got, 3)
	assert.Equal(t, "r 2024-03-01", got[0].Title)
	assert.Equal(t, "r 2024-03-05", got[1].Title)
	assert.Equal(t, "r 2024-03-10", got[2].Title)
}

func TestDeleteClient_BackendCascades(t *testing.T) {
	store, _, srv, actor := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateClient(ctx, actor, CreateClientRequest{Name: "Taller Sur"}))
	clientID := store.ListClients(ctx)[0].ID
	require.NoError(t, store.CreateVisit(ctx, actor, CreateVisitRequest{
		ClientID: clientID, Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Type: VisitFirst, Result: ResultPending,
	}))
	require.NoError(t, store.CreateReminder(ctx, actor, CreateReminderRequest{
		ClientID: clientID, Title: "llamar", Date: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	}))

	require.NoError(t, store.DeleteClient(ctx, clientID))
	assert.Empty(t, srv.Rows("clients"))
	assert.Empty(t, srv.Rows("visits"))
	assert.Empty(t, srv.Rows("reminders"))
}

func TestReadFailuresYieldEmptyResults(t *testing.T) {
	srv := supatest.New()
	srv.AddUser("rep@giet.es", "secret")
	b, err := NewBackend(srv.URL(), "anon-key")
	require.NoError(t, err)
	sess := NewSession(b)
	_, err = sess.SignIn(context.Background(), "rep@giet.es", "secret")
	require.NoError(t, err)
	store := NewStore(b)

	// Backend goes away: reads come back empty, never as errors.
	srv.Close()
	ctx := context.Background()
	assert.Empty(t, store.ListClients(ctx))
	assert.Empty(t, store.ListVisits(ctx))
	assert.Empty(t, store.ListReminders(ctx))

	// Writes must surface the failure.
	assert.Error(t, store.CreateClient(ctx, User{ID: "u1"}, CreateClientRequest{Name: "x"}))
}

func TestUpdateMissingRowIsNotFound(t *testing.T) {
	store, _, _, actor := newTestStore(t)
	name := "renamed"
	err := store.UpdateClient(context.Background(), actor, "ghost-id", UpdateClientRequest{Name: &name})
	assert.True(t, IsNotFound(err), "expected ErrNotFound, got %v", err)
}

func TestUnconfiguredBackendStore(t *testing.T) {
	b, err := NewBackend("", "")
	require.NoError(t, err)
	store := NewStore(b)
	ctx := context.Background()

	assert.Empty(t, store.ListClients(ctx))
	assert.ErrorIs(t, store.CreateClient(ctx, User{ID: "u1"}, CreateClientRequest{Name: "x"}), ErrNotConfigured)
	_, err = store.GetClient(ctx, "c1")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
