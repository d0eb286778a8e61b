package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/rs/zerolog"
)

// BridgeTokenHeader carries the shared secret between the desktop shell and the bridge.
const BridgeTokenHeader = "X-Bridge-Token"

// BridgeTokenMiddleware rejects requests whose X-Bridge-Token does not match token.
// An empty token disables the check. CORS preflight requests are let through.
func BridgeTokenMiddleware(token string, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if token == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}
			got := r.Header.Get(BridgeTokenHeader)
			if got == "" {
				logger.Error().Str("path", r.URL.Path).Msg("Bridge token missing")
				http.Error(w, "Bridge token missing", http.StatusUnauthorized)
				return
			}
			if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				logger.Error().Str("path", r.URL.Path).Msg("Invalid bridge token")
				http.Error(w, "Invalid bridge token", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
