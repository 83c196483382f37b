package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"qadash/application"
	"qadash/interfaces/web/templates/pages"
	"qadash/logging"
)

type contextKey string

const (
	sessionContextKey contextKey = "session"
	clientContextKey  contextKey = "client"
)

// SessionCookieName is the browser session cookie.
const SessionCookieName = "qadash_session"

// AuthMiddleware resolves the session from the cookie or bearer token and
// stores it on the request context. Unauthenticated page requests are
// redirected to the login page; API requests get a 401.
type AuthMiddleware struct {
	authService *application.AuthService
	logger      *logging.Logger
}

// NewAuthMiddleware creates the auth middleware.
func NewAuthMiddleware(authService *application.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		logger:      logging.Default().WithComponent("auth_middleware"),
	}
}

// RequireSession enforces authentication.
func (m *AuthMiddleware) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := m.authService.SessionForToken(extractToken(r))
		if err != nil {
			if strings.HasPrefix(r.URL.Path, "/api/") {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), sessionContextKey, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionFrom returns the session stored by RequireSession.
func SessionFrom(ctx context.Context) *application.Session {
	session, _ := ctx.Value(sessionContextKey).(*application.Session)
	return session
}

func extractToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// TenantMiddleware guards /c/{clientSlug} routes. A signed-in user whose
// client does not match the slug gets the Access Denied page and the route's
// children never run.
type TenantMiddleware struct {
	logger *logging.Logger
}

// NewTenantMiddleware creates the tenant guard.
func NewTenantMiddleware() *TenantMiddleware {
	return &TenantMiddleware{
		logger: logging.Default().WithComponent("tenant_guard"),
	}
}

// RequireTenant enforces that the session's client matches the route slug.
func (m *TenantMiddleware) RequireTenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := SessionFrom(r.Context())
		if session == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		slug := chi.URLParam(r, "clientSlug")
		if slug == "" || slug != session.ClientSlug {
			m.logger.Security("Tenant scope violation",
				"user_id", session.UserID,
				"session_client", session.ClientSlug,
				"requested_client", slug)
			w.WriteHeader(http.StatusForbidden)
			RenderResponse(r.Context(), w, r, pages.AccessDenied(session.ClientSlug))
			return
		}

		next.ServeHTTP(w, r)
	})
}
