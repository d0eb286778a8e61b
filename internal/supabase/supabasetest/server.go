// Package supabasetest provides an in-memory stand-in for a Supabase project's
// PostgREST and Auth endpoints.
package supabasetest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"lessonhub/internal/supabase"
)

const AnonKey = "test-anon-key"

// RecordedRequest is a request as seen by the fake.
type RecordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// Server serves /rest/v1/<table> from in-memory rows. Routes registered with On
// take precedence.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	tables    map[string][]map[string]any
	overrides map[string]http.HandlerFunc
	requests  []RecordedRequest
	nextID    int
}

func New(t testing.TB) *Server {
	s := &Server{
		tables:    make(map[string][]map[string]any),
		overrides: make(map[string]http.HandlerFunc),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// Client returns a supabase client pointed at the fake.
func (s *Server) Client(opts ...supabase.Option) *supabase.Client {
	return supabase.New(s.URL, AnonKey, opts...)
}

// On overrides METHOD path (path without query string).
func (s *Server) On(method, path string, h http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[method+" "+path] = h
}

func (s *Server) Seed(table string, rows ...map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range rows {
		if _, ok := row["id"]; !ok {
			row["id"] = s.newID()
		}
		s.tables[table] = append(s.tables[table], row)
	}
}

func (s *Server) Rows(table string) []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]map[string]any, len(s.tables[table]))
	copy(out, s.tables[table])
	return out
}

func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// WriteJSON is a helper for override handlers.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	s.requests = append(s.requests, RecordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Header: r.Header.Clone(),
		Body:   body,
	})
	h, ok := s.overrides[r.Method+" "+r.URL.Path]
	s.mu.Unlock()

	if ok {
		r.Body = io.NopCloser(strings.NewReader(string(body)))
		h(w, r)
		return
	}

	table, ok := strings.CutPrefix(r.URL.Path, "/rest/v1/")
	if !ok || table == "" {
		WriteJSON(w, http.StatusNotFound, map[string]string{"message": "no route for " + r.URL.Path})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch r.Method {
	case http.MethodGet:
		WriteJSON(w, http.StatusOK, s.filter(table, r.URL.Query()))
	case http.MethodPost:
		rows, err := decodeRows(body)
		if err != nil {
			WriteJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
			return
		}
		for _, row := range rows {
			if _, ok := row["id"]; !ok {
				row["id"] = s.newID()
			}
			s.tables[table] = append(s.tables[table], row)
		}
		WriteJSON(w, http.StatusCreated, rows)
	case http.MethodPatch:
		patch := map[string]any{}
		if err := json.Unmarshal(body, &patch); err != nil {
			WriteJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
			return
		}
		updated := []map[string]any{}
		for _, row := range s.tables[table] {
			if matches(row, r.URL.Query()) {
				for k, v := range patch {
					row[k] = v
				}
				updated = append(updated, row)
			}
		}
		WriteJSON(w, http.StatusOK, updated)
	case http.MethodDelete:
		kept := s.tables[table][:0]
		for _, row := range s.tables[table] {
			if !matches(row, r.URL.Query()) {
				kept = append(kept, row)
			}
		}
		s.tables[table] = kept
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) filter(table string, q url.Values) []map[string]any {
	out := []map[string]any{}
	for _, row := range s.tables[table] {
		if matches(row, q) {
			out = append(out, row)
		}
	}
	if n, err := strconv.Atoi(q.Get("limit")); err == nil && n < len(out) {
		out = out[:n]
	}
	return out
}

// matches applies eq. filters and ignores every other operator.
func matches(row map[string]any, q url.Values) bool {
	for key, values := range q {
		for _, v := range values {
			want, ok := strings.CutPrefix(v, "eq.")
			if !ok {
				continue
			}
			if fmt.Sprint(row[key]) != want {
				return false
			}
		}
	}
	return true
}

func decodeRows(body []byte) ([]map[string]any, error) {
	trimmed := strings.TrimSpace(string(body))
	if strings.HasPrefix(trimmed, "[") {
		var rows []map[string]any
		err := json.Unmarshal(body, &rows)
		return rows, err
	}
	row := map[string]any{}
	if err := json.Unmarshal(body, &row); err != nil {
		return nil, err
	}
	return []map[string]any{row}, nil
}

// newID must be called with s.mu held.
func (s *Server) newID() string {
	s.nextID++
	return fmt.Sprintf("00000000-0000-0000-0000-%012d", s.nextID)
}
