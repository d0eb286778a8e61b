package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusTeapot)
})

func TestBridgeTokenMiddleware(t *testing.T) {
	h := BridgeTokenMiddleware("s3cret", zerolog.Nop())(ok)

	cases := []struct {
		name   string
		method string
		token  string
		want   int
	}{
		{"missing", http.MethodPost, "", http.StatusUnauthorized},
		{"wrong", http.MethodPost, "nope", http.StatusUnauthorized},
		{"valid", http.MethodPost, "s3cret", http.StatusTeapot},
		{"preflight", http.MethodOptions, "", http.StatusTeapot},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, "/v1/commands/sign_in", nil)
			if tc.token != "" {
				req.Header.Set(BridgeTokenHeader, tc.token)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestBridgeTokenDisabled(t *testing.T) {
	rec := httptest.NewRecorder()
	BridgeTokenMiddleware("", zerolog.Nop())(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestLoggerMiddlewareOmitsQuery(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)

	rec := httptest.NewRecorder()
	LoggerMiddleware(log)(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/commands?token=abc", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Contains(t, buf.String(), `"status_code":418`)
	assert.Contains(t, buf.String(), `"path":"/v1/commands"`)
	assert.NotContains(t, buf.String(), "abc")
}
