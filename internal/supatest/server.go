// Package supatest runs an in-memory stand-in for the hosted backend:
// the table API under /rest/v1 and the identity provider under /auth/v1.
// It implements just enough PostgREST behavior for the SDK's tests
// (equality filters, order=, Prefer headers) plus the backend-side rules
// the application depends on but does not implement itself: referential
// cascade from clients to their visits and reminders, and apikey gating.
package supatest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type account struct {
	id       string
	email    string
	password string
}

// Server is a fake backend bound to an httptest listener.
type Server struct {
	srv *httptest.Server

	mu          sync.Mutex
	tables      map[string][]map[string]any
	accounts    map[string]account // by email
	sessions    map[string]account // by access token
	requests    int
	failInserts map[string]bool // table -> fail next insert with 500
}

// New starts the fake backend. Callers own Close.
func New() *Server {
	s := &Server{
		tables:      map[string][]map[string]any{"clients": {}, "visits": {}, "reminders": {}},
		accounts:    map[string]account{},
		sessions:    map[string]account{},
		failInserts: map[string]bool{},
	}
	r := mux.NewRouter()
	r.HandleFunc("/rest/v1/{table}", s.handleTable)
	r.HandleFunc("/auth/v1/token", s.handleToken).Methods(http.MethodPost)
	r.HandleFunc("/auth/v1/user", s.handleUser).Methods(http.MethodGet)
	r.HandleFunc("/auth/v1/logout", s.handleLogout).Methods(http.MethodPost)
	s.srv = httptest.NewServer(r)
	return s
}

// URL is the backend's base URL.
func (s *Server) URL() string { return s.srv.URL }

// Close shuts the listener down.
func (s *Server) Close() { s.srv.Close() }

// AddUser registers an account and returns its id.
func (s *Server) AddUser(email, password string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := account{id: uuid.NewString(), email: email, password: password}
	s.accounts[email] = a
	return a.id
}

// Rows returns a deep copy of a table's rows in insertion order, so a
// snapshot is not affected by later writes.
func (s *Server) Rows(table string) []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]map[string]any, 0, len(s.tables[table]))
	for _, row := range s.tables[table] {
		c := make(map[string]any, len(row))
		for k, v := range row {
			c[k] = v
		}
		out = append(out, c)
	}
	return out
}

// RequestCount reports how many requests reached the backend.
func (s *Server) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

// RevokeAll invalidates every issued access token.
func (s *Server) RevokeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = map[string]account{}
}

// FailNextInsert makes the next insert into table answer 500.
func (s *Server) FailNextInsert(table string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failInserts[table] = true
}

// ------------------------------
// Table API
// ------------------------------

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests++

	if r.Header.Get("apikey") == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	table := mux.Vars(r)["table"]
	rows, ok := s.tables[table]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodGet:
		matched := filterRows(rows, r.URL.Query())
		orderRows(matched, r.URL.Query().Get("order"))
		writeJSON(w, http.StatusOK, matched)

	case http.MethodPost:
		if s.failInserts[table] {
			s.failInserts[table] = false
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		var incoming []map[string]any
		if err := json.NewDecoder(r.Body).Decode(&incoming); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		for _, row := range incoming {
			row["id"] = uuid.NewString()
			row["created_at"] = time.Now().UTC().Format(time.RFC3339)
			s.tables[table] = append(s.tables[table], row)
		}
		w.WriteHeader(http.StatusCreated)

	case http.MethodPatch:
		var patch map[string]any
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		updated := []map[string]any{}
		for _, row := range rows {
			if rowMatches(row, r.URL.Query()) {
				for k, v := range patch {
					row[k] = v
				}
				updated = append(updated, row)
			}
		}
		writeJSON(w, http.StatusOK, updated)

	case http.MethodDelete:
		kept := rows[:0:0]
		deleted := []map[string]any{}
		for _, row := range rows {
			if rowMatches(row, r.URL.Query()) {
				deleted = append(deleted, row)
			} else {
				kept = append(kept, row)
			}
		}
		s.tables[table] = kept
		if table == "clients" {
			for _, row := range deleted {
				s.cascadeLocked(row["id"])
			}
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// cascadeLocked mirrors the backend's referential rules: rows pointing
// at a deleted client disappear with it.
func (s *Server) cascadeLocked(clientID any) {
	for _, table := range []string{"visits", "reminders"} {
		kept := s.tables[table][:0:0]
		for _, row := range s.tables[table] {
			if row["client_id"] != clientID {
				kept = append(kept, row)
			}
		}
		s.tables[table] = kept
	}
}

func filterRows(rows []map[string]any, q map[string][]string) []map[string]any {
	out := []map[string]any{}
	for _, row := range rows {
		if rowMatches(row, q) {
			out = append(out, row)
		}
	}
	return out
}

func rowMatches(row map[string]any, q map[string][]string) bool {
	for col, vals := range q {
		if col == "select" || col == "order" {
			continue
		}
		want, ok := strings.CutPrefix(vals[0], "eq.")
		if !ok {
			continue
		}
		got, _ := row[col].(string)
		if got != want {
			return false
		}
	}
	return true
}

// orderRows sorts in place per a PostgREST order=col.dir parameter.
// Timestamps are RFC3339 strings, so lexicographic order is time order.
func orderRows(rows []map[string]any, order string) {
	if order == "" {
		return
	}
	col, dir, _ := strings.Cut(order, ".")
	desc := dir == "desc"
	sort.SliceStable(rows, func(i, j int) bool {
		a, _ := rows[i][col].(string)
		b, _ := rows[j][col].(string)
		if desc {
			return a > b
		}
		return a < b
	})
}

// ------------------------------
// Identity provider
// ------------------------------

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests++

	if r.URL.Query().Get("grant_type") != "password" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "unsupported_grant_type"})
		return
	}
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	a, ok := s.accounts[creds.Email]
	if !ok || a.password != creds.Password {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":             "invalid_grant",
			"error_description": "Invalid login credentials",
		})
		return
	}
	token := "tok-" + uuid.NewString()
	s.sessions[token] = a
	writeJSON(w, http.StatusOK, map[string]any{
		"access_token":  token,
		"token_type":    "bearer",
		"expires_in":    3600,
		"refresh_token": "ref-" + uuid.NewString(),
		"user":          map[string]any{"id": a.id, "email": a.email},
	})
}

func (s *Server) handleUser(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests++

	a, ok := s.sessions[bearer(r)]
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"msg": "invalid JWT"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": a.id, "email": a.email})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests++

	delete(s.sessions, bearer(r))
	w.WriteHeader(http.StatusNoContent)
}

func bearer(r *http.Request) string {
	return strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
