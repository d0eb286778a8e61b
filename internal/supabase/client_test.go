package supabase

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", "anon")
}

func TestRequestHeadersWithBody(t *testing.T) {
	var got *http.Request
	var gotBody string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`[{"id":"1","title":"Go"}]`))
	})

	rows, err := Rest[[]row](context.Background(), c, http.MethodPost, "courses", "tok", map[string]string{"title": "Go"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Go", rows[0].Title)

	assert.Equal(t, "/rest/v1/courses", got.URL.Path)
	assert.Equal(t, "anon", got.Header.Get("apikey"))
	assert.Equal(t, "Bearer tok", got.Header.Get("Authorization"))
	assert.Equal(t, "return=representation", got.Header.Get("Prefer"))
	assert.JSONEq(t, `{"title":"Go"}`, gotBody)
}

func TestRequestWithoutTokenOrBody(t *testing.T) {
	var got *http.Request
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := Request[[]row](context.Background(), c, http.MethodGet, "/rest/v1/courses?select=*", "", nil)
	require.NoError(t, err)
	assert.Empty(t, got.Header.Get("Authorization"))
	assert.Empty(t, got.Header.Get("Prefer"))
	assert.Equal(t, "*", got.URL.Query().Get("select"))
}

func TestRequestNoContent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	ctx := context.Background()

	_, err := Rest[Unit](ctx, c, http.MethodDelete, "lessons?id=eq.1", "tok", nil)
	assert.NoError(t, err)

	v, err := Rest[*row](ctx, c, http.MethodDelete, "lessons?id=eq.1", "tok", nil)
	assert.NoError(t, err)
	assert.Nil(t, v)

	_, err = Rest[[]row](ctx, c, http.MethodDelete, "lessons?id=eq.1", "tok", nil)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "Failed to parse empty response"))
}

func TestRequestParseFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": 1}`))
	})

	_, err := Rest[[]row](context.Background(), c, http.MethodGet, "courses", "tok", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to parse response: json: cannot unmarshal")
}

func TestRequestErrorEnvelope(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"description", `{"error":"invalid_grant","error_description":"Invalid login credentials"}`, "Invalid login credentials"},
		{"code only", `{"error":"invalid_grant"}`, "invalid_grant"},
		{"raw", `{"message":"permission denied for table courses"}`, `{"message":"permission denied for table courses"}`},
		{"text", `upstream timeout`, `upstream timeout`},
		{"empty", ``, "HTTP 400 Bad Request"},
		{"whitespace", "  \n", "HTTP 400 Bad Request"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(tc.body))
			})
			_, err := Request[Unit](context.Background(), c, http.MethodPost, "/auth/v1/token?grant_type=password", "", map[string]string{})
			require.Error(t, err)
			assert.Equal(t, tc.want, err.Error())

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, http.StatusBadRequest, apiErr.Status)
		})
	}
}

func TestRequestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url, "anon")
	_, err := Rest[[]row](context.Background(), c, http.MethodGet, "courses", "tok", nil)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "Network error: "), err.Error())
}

func TestFirst(t *testing.T) {
	r, err := First([]row{{ID: "a"}, {ID: "b"}}, "No course returned")
	require.NoError(t, err)
	assert.Equal(t, "a", r.ID)

	_, err = First([]row{}, "No course returned")
	assert.ErrorIs(t, err, ErrNoRow)
	assert.Contains(t, err.Error(), "No course returned")
}

func TestRequestUnitIgnoresBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"1"}]`))
	})

	_, err := Rest[Unit](context.Background(), c, http.MethodPatch, "profiles?id=eq.1", "tok", map[string]string{"username": "x"})
	assert.NoError(t, err)
}
