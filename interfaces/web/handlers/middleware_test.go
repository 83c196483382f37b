package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTenantMiddleware_MatchingSlugPassesThrough(t *testing.T) {
	guard := NewTenantMiddleware()
	reached := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	})

	req := testSessionContext(httptest.NewRequest("GET", "/c/acme/lots", nil))
	req = withURLParam(req, "clientSlug", "acme")
	rec := httptest.NewRecorder()

	guard.RequireTenant(next).ServeHTTP(rec, req)

	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTenantMiddleware_ForeignSlugBlocked(t *testing.T) {
	guard := NewTenantMiddleware()
	reached := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	})

	// Session belongs to acme but the route targets another workspace
	req := testSessionContext(httptest.NewRequest("GET", "/c/globex/lots", nil))
	req = withURLParam(req, "clientSlug", "globex")
	rec := httptest.NewRecorder()

	guard.RequireTenant(next).ServeHTTP(rec, req)

	assert.False(t, reached, "Guarded handler must never run for a foreign tenant")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Access Denied")
	assert.Contains(t, rec.Body.String(), "/c/acme/feed", "Denied page links back to the user's own workspace")
}

func TestTenantMiddleware_NoSessionRedirectsToLogin(t *testing.T) {
	guard := NewTenantMiddleware()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("Handler must not run without a session")
	})

	req := withURLParam(httptest.NewRequest("GET", "/c/acme/lots", nil), "clientSlug", "acme")
	rec := httptest.NewRecorder()

	guard.RequireTenant(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}
