package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/oauth"
)

func TestHasRole(t *testing.T) {
	cases := []struct {
		claims map[string]string
		want   bool
	}{
		{nil, false},
		{map[string]string{}, false},
		{map[string]string{"roles": "viewer"}, false},
		{map[string]string{"roles": "admin"}, true},
		{map[string]string{"roles": "viewer, admin"}, true},
		{map[string]string{"roles": "administrator"}, false},
	}
	for _, c := range cases {
		if got := hasRole(c.claims, "admin"); got != c.want {
			t.Fatalf("%v: expected %v, got %v", c.claims, c.want, got)
		}
	}
}

func TestRequireRole(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	h := requireRole("admin")(ok)

	for claims, want := range map[string]int{"admin": http.StatusNoContent, "viewer": http.StatusForbidden} {
		req := httptest.NewRequest("GET", "/", nil)
		ctx := context.WithValue(req.Context(), oauth.ClaimsContext, map[string]string{"roles": claims})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req.WithContext(ctx))
		if rec.Code != want {
			t.Fatalf("roles %s: expected %d, got %d", claims, want, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("missing claims: expected 403, got %d", rec.Code)
	}
}
