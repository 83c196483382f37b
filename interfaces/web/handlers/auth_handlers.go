package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"qadash/application"
	"qadash/interfaces/web/templates/pages"
	"qadash/logging"
)

// AuthHandlers handles login and logout.
type AuthHandlers struct {
	authService *application.AuthService
	logger      *logging.Logger
}

// NewAuthHandlers creates the auth handlers.
func NewAuthHandlers(authService *application.AuthService) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
		logger:      logging.Default().WithComponent("auth_handler"),
	}
}

// LoginPage renders the sign-in form.
func (h *AuthHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	RenderResponse(r.Context(), w, r, pages.Login(""))
}

// Login authenticates a browser form post. Successful logins set the session
// cookie and land on the user's own workspace.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form data", http.StatusBadRequest)
		return
	}

	session, err := h.authService.Login(r.Context(), r.FormValue("email"), r.FormValue("password"))
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			w.WriteHeader(http.StatusUnauthorized)
			RenderResponse(r.Context(), w, r, pages.Login("Invalid email or password"))
			return
		}
		h.logger.Error("Login failed", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/c/"+session.ClientSlug+"/feed", http.StatusSeeOther)
}

// APILogin authenticates a JSON request and returns the bearer token. Used by
// non-browser clients.
func (h *AuthHandlers) APILogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	session, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			http.Error(w, "Invalid email or password", http.StatusUnauthorized)
			return
		}
		h.logger.Error("API login failed", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"token":      session.Token,
		"clientSlug": session.ClientSlug,
	})
}

// Logout drops the session and clears the cookie.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.Logout(extractToken(r))
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
