package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/diewo77/go-profiles/auth"
	"github.com/diewo77/go-profiles/httpx"
	"github.com/diewo77/go-profiles/i18n"
	"github.com/diewo77/go-profiles/internal/middleware"
	"github.com/diewo77/go-profiles/internal/profiles"
)

// AuthHandler serves login, logout and password changes. Only mounted
// when the app runs with accounts enabled.
type AuthHandler struct {
	svc *profiles.Service
}

func NewAuthHandler(svc *profiles.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// LoginForm shows the login page, or skips it for users already signed in.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.UserIDFromContext(r.Context()); ok {
		http.Redirect(w, r, "/profile", statusSeeOther)
		return
	}
	renderPage(w, r, "login.html", map[string]any{
		"Values": map[string]string{},
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login verifies credentials and opens a session. Both an unknown
// username and a wrong password come back as the same 401.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var username, password string
	if httpx.IsJSON(r) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			badBody(w, r)
			return
		}
		username, password = req.Username, req.Password
	} else {
		if err := r.ParseForm(); err != nil {
			badBody(w, r)
			return
		}
		username, password = r.FormValue("username"), r.FormValue("password")
	}

	u, err := h.svc.Authenticate(username, password)
	if errors.Is(err, profiles.ErrBadCredentials) {
		if wantsJSON(r) {
			httpx.JSONError(w, http.StatusUnauthorized, "invalid_credentials", nil)
			return
		}
		lang := middleware.LangFrom(r)
		w.WriteHeader(http.StatusUnauthorized)
		renderPage(w, r, "login.html", map[string]any{
			"Error":  i18n.T(lang, "invalid_credentials"),
			"Values": map[string]string{"username": username},
		})
		return
	}
	if err != nil {
		serverError(w, r, err)
		return
	}

	auth.CreateSession(w, u.ID)
	if wantsJSON(r) {
		httpx.JSON(w, http.StatusOK, u)
		return
	}
	middleware.Flash(w, r, "flash_logged_in")
	http.Redirect(w, r, "/profile", statusSeeOther)
}

// Logout drops the session and returns to the login page.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSession(w)
	middleware.Flash(w, r, "flash_logged_out")
	http.Redirect(w, r, "/login", statusSeeOther)
}

// PasswordForm shows the password change page.
func (h *AuthHandler) PasswordForm(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, "password.html", map[string]any{
		"Errors": map[string]string{},
	})
}

type passwordRequest struct {
	Current string `json:"current_password"`
	New     string `json:"new_password"`
	Confirm string `json:"confirm_password"`
}

// ChangePassword verifies the current password and stores a new hash.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var current, next, confirm string
	if httpx.IsJSON(r) {
		var req passwordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			badBody(w, r)
			return
		}
		current, next, confirm = req.Current, req.New, req.Confirm
	} else {
		if err := r.ParseForm(); err != nil {
			badBody(w, r)
			return
		}
		current = r.FormValue("current_password")
		next = r.FormValue("new_password")
		confirm = r.FormValue("confirm_password")
	}

	err := h.svc.ChangePassword(uid, current, next, confirm)
	var verr *profiles.ValidationError
	switch {
	case err == nil:
		if wantsJSON(r) {
			httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
			return
		}
		middleware.Flash(w, r, "flash_password_saved")
		http.Redirect(w, r, "/profile", statusSeeOther)
	case errors.As(err, &verr):
		localized := localize(r, verr.Fields)
		if wantsJSON(r) {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", localized)
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		renderPage(w, r, "password.html", map[string]any{
			"Errors": firstErrors(localized),
		})
	case errors.Is(err, profiles.ErrNotFound):
		// session outlived the row
		auth.ClearSession(w)
		http.Redirect(w, r, "/login", statusSeeOther)
	default:
		serverError(w, r, err)
	}
}
