package service

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"lessonhub/internal/supabase/supabasetest"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const testToken = "user-access-token"

var nopLogger = zerolog.Nop()

func newFake(t *testing.T) *supabasetest.Server {
	t.Helper()
	return supabasetest.New(t)
}

func decodeBody(t *testing.T, body []byte) map[string]any {
	t.Helper()
	m := map[string]any{}
	require.NoError(t, json.Unmarshal(body, &m))
	return m
}

func ptr[T any](v T) *T {
	return &v
}

func mustRead(t *testing.T, r *http.Request) []byte {
	t.Helper()
	b, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	return b
}
