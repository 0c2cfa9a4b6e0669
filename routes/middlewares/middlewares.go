package middlewares

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/oauth"
)

// Admin checks for the 'admin' role in an OAuth bearer token signed with
// secret.
func Admin(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return chi.Chain(oauth.Authorize(secret, nil), requireRole("admin")).Handler(next)
	}
}

func requireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, _ := r.Context().Value(oauth.ClaimsContext).(map[string]string)
			if !hasRole(claims, role) {
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func hasRole(claims map[string]string, role string) bool {
	rolesClaim, ok := claims["roles"]
	if !ok {
		return false
	}
	for _, r := range strings.Split(rolesClaim, ",") {
		if strings.TrimSpace(r) == role {
			return true
		}
	}
	return false
}
