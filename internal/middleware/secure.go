package middleware

import (
	"net/http"

	"github.com/unrolled/secure"
)

// Secure sets the standard browser hardening headers on every response.
// In development the checks that would break plain-HTTP local use are skipped.
func Secure(dev bool) func(http.Handler) http.Handler {
	sm := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "no-referrer",
		IsDevelopment:      dev,
	})
	return sm.Handler
}
