package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/carlosyadil/giettenerife-crm/internal/types"
)

func TestListReminders_OrderAscending(t *testing.T) {
	t.Parallel()
	var gotOrder string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotOrder = r.URL.Query().Get("order")
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": "r1", "client_id": "c1", "title": "llamar", "date": "2024-03-10T00:00:00Z", "completed": false},
		})
	}))
	defer srv.Close()
	got, err := ListReminders(context.Background(), srv.Client(), srv.URL)
	if err != nil || len(got) != 1 || got[0].Title != "llamar" {
		t.Fatalf("ListReminders unexpected: got=%+v err=%v", got, err)
	}
	if gotOrder != "date.asc" {
		t.Fatalf("expected date.asc ordering requested, got %q", gotOrder)
	}
}

func TestCreateReminder_DefaultsCompletedFalse(t *testing.T) {
	t.Parallel()
	var inserted []map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&inserted)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()
	err := CreateReminder(context.Background(), srv.Client(), srv.URL, actor, types.CreateReminderRequest{
		ClientID: "c1", Title: "llamar", Date: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("CreateReminder error: %v", err)
	}
	row := inserted[0]
	if row["completed"] != false || row["user_id"] != "u1" || row["client_id"] != "c1" {
		t.Fatalf("unexpected storage row: %v", row)
	}
}

func TestCreateReminder_RequiredFields(t *testing.T) {
	t.Parallel()
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { calls++ }))
	defer srv.Close()
	var verr *types.ValidationError
	cases := []struct {
		req   types.CreateReminderRequest
		field string
	}{
		{types.CreateReminderRequest{Title: "x", Date: time.Now()}, "clientId"},
		{types.CreateReminderRequest{ClientID: "c1", Date: time.Now()}, "title"},
		{types.CreateReminderRequest{ClientID: "c1", Title: "x"}, "date"},
	}
	for _, tc := range cases {
		err := CreateReminder(context.Background(), srv.Client(), srv.URL, actor, tc.req)
		if !errors.As(err, &verr) || verr.Field != tc.field {
			t.Fatalf("expected validation error for %s, got %v", tc.field, err)
		}
	}
	if calls != 0 {
		t.Fatalf("validation failures must not reach the network, saw %d calls", calls)
	}
}

func TestUpdateReminder_ToggleBody(t *testing.T) {
	t.Parallel()
	var patched map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&patched)
		_ = json.NewEncoder(w).Encode([]map[string]any{{"id": "r1"}})
	}))
	defer srv.Close()
	done := true
	err := UpdateReminder(context.Background(), srv.Client(), srv.URL, actor, "r1", types.UpdateReminderRequest{Completed: &done})
	if err != nil {
		t.Fatalf("UpdateReminder error: %v", err)
	}
	if len(patched) != 1 || patched["completed"] != true {
		t.Fatalf("toggle must carry only the completed field, got %v", patched)
	}
}

func TestDeleteReminder_NonOK(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer srv.Close()
	if err := DeleteReminder(context.Background(), srv.Client(), srv.URL, "r1"); err == nil {
		t.Fatal("expected error for DeleteReminder non-204")
	}
}
