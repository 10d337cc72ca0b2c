// Package handlers wires HTTP requests to the profile service. Every
// endpoint answers both browsers (forms in, rendered pages out) and API
// clients (JSON in, JSON out), switching on Content-Type and Accept.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/diewo77/go-profiles/auth"
	"github.com/diewo77/go-profiles/httpx"
	"github.com/diewo77/go-profiles/i18n"
	"github.com/diewo77/go-profiles/internal/middleware"
	"github.com/diewo77/go-profiles/internal/models"
	"github.com/diewo77/go-profiles/internal/profiles"
)

// UserHandler serves registration, profile display, listing and updates.
type UserHandler struct {
	svc *profiles.Service
}

func NewUserHandler(svc *profiles.Service) *UserHandler {
	return &UserHandler{svc: svc}
}

// userRequest is the JSON wire form of a submission. Age is a json.Number
// so clients may send it as a number; forms deliver it as text anyway.
type userRequest struct {
	Username string      `json:"username"`
	Email    string      `json:"email"`
	FullName string      `json:"full_name"`
	Age      json.Number `json:"age"`
	Bio      string      `json:"bio"`
	Password string      `json:"password"`
}

// parseInput reads a submission from either a JSON body or a form post.
func parseInput(r *http.Request) (profiles.Input, error) {
	if httpx.IsJSON(r) {
		var req userRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return profiles.Input{}, err
		}
		return profiles.Input{
			Username: req.Username,
			Email:    req.Email,
			FullName: req.FullName,
			Age:      req.Age.String(),
			Bio:      req.Bio,
			Password: req.Password,
		}, nil
	}
	if err := r.ParseForm(); err != nil {
		return profiles.Input{}, err
	}
	return profiles.Input{
		Username: r.FormValue("username"),
		Email:    r.FormValue("email"),
		FullName: r.FormValue("full_name"),
		Age:      r.FormValue("age"),
		Bio:      r.FormValue("bio"),
		Password: r.FormValue("password"),
	}, nil
}

// formValues rebuilds the redisplay map from a submission. The password is
// never echoed back.
func formValues(in profiles.Input) map[string]string {
	return map[string]string{
		"username":  in.Username,
		"email":     in.Email,
		"full_name": in.FullName,
		"age":       in.Age,
		"bio":       in.Bio,
	}
}

// valuesFromUser prefills the update form from the stored row.
func valuesFromUser(u *models.User) map[string]string {
	vals := map[string]string{
		"username":  u.Username,
		"email":     u.Email,
		"full_name": u.FullName,
		"age":       "",
		"bio":       u.BioValue(),
	}
	if u.HasAge() {
		vals["age"] = strconv.Itoa(u.AgeValue())
	}
	return vals
}

func pathID(r *http.Request) (uint, bool) {
	id64, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || id64 == 0 {
		return 0, false
	}
	return uint(id64), true
}

// RegisterForm shows the empty registration form.
func (h *UserHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, "register.html", map[string]any{
		"Values": map[string]string{},
		"Errors": map[string]string{},
	})
}

// Register creates a profile from a form or JSON submission.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	in, err := parseInput(r)
	if err != nil {
		badBody(w, r)
		return
	}

	u, err := h.svc.Register(in)
	if err != nil {
		h.submitError(w, r, "register.html", in, map[string]any{}, err)
		return
	}

	if wantsJSON(r) {
		httpx.JSON(w, http.StatusCreated, u)
		return
	}
	if h.svc.Config().WithAuth {
		auth.CreateSession(w, u.ID)
		middleware.Flash(w, r, "flash_welcome")
		http.Redirect(w, r, "/profile", statusSeeOther)
		return
	}
	middleware.Flash(w, r, "flash_profile_created")
	http.Redirect(w, r, "/", statusSeeOther)
}

// List shows every profile, newest first. Public variant only.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List()
	if err != nil {
		serverError(w, r, err)
		return
	}
	if wantsJSON(r) {
		httpx.JSON(w, http.StatusOK, users)
		return
	}
	renderPage(w, r, "index.html", map[string]any{"Users": users})
}

// Show displays one profile by path id. Public variant only.
func (h *UserHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		notFoundPage(w, r)
		return
	}
	u, err := h.svc.Get(id)
	if err != nil {
		h.getError(w, r, err)
		return
	}
	if wantsJSON(r) {
		httpx.JSON(w, http.StatusOK, u)
		return
	}
	renderPage(w, r, "profile.html", map[string]any{"User": u})
}

// ProfilePage displays the authenticated user's own profile.
func (h *UserHandler) ProfilePage(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	u, err := h.svc.Get(uid)
	if errors.Is(err, profiles.ErrNotFound) {
		// session outlived the row
		auth.ClearSession(w)
		http.Redirect(w, r, "/login", statusSeeOther)
		return
	}
	if err != nil {
		serverError(w, r, err)
		return
	}
	if wantsJSON(r) {
		httpx.JSON(w, http.StatusOK, u)
		return
	}
	renderPage(w, r, "profile.html", map[string]any{"User": u})
}

// UpdateForm shows the edit form prefilled with the caller's own profile.
func (h *UserHandler) UpdateForm(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	u, err := h.svc.Get(uid)
	if err != nil {
		h.getError(w, r, err)
		return
	}
	renderPage(w, r, "update.html", map[string]any{
		"ID":     u.ID,
		"Values": valuesFromUser(u),
		"Errors": map[string]string{},
	})
}

// Update rewrites the caller's own profile.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	h.update(w, r, uid, "/profile")
}

// EditForm shows the edit form for any profile by path id. Public variant only.
func (h *UserHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		notFoundPage(w, r)
		return
	}
	u, err := h.svc.Get(id)
	if err != nil {
		h.getError(w, r, err)
		return
	}
	renderPage(w, r, "update.html", map[string]any{
		"ID":     u.ID,
		"Values": valuesFromUser(u),
		"Errors": map[string]string{},
	})
}

// UpdateByID rewrites any profile by path id. Public variant only.
func (h *UserHandler) UpdateByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		notFoundPage(w, r)
		return
	}
	h.update(w, r, id, fmt.Sprintf("/profile/%d", id))
}

func (h *UserHandler) update(w http.ResponseWriter, r *http.Request, id uint, successURL string) {
	in, err := parseInput(r)
	if err != nil {
		badBody(w, r)
		return
	}

	u, err := h.svc.Update(id, in)
	if err != nil {
		h.submitError(w, r, "update.html", in, map[string]any{"ID": id}, err)
		return
	}

	if wantsJSON(r) {
		httpx.JSON(w, http.StatusOK, u)
		return
	}
	middleware.Flash(w, r, "flash_profile_updated")
	http.Redirect(w, r, successURL, statusSeeOther)
}

// submitError answers a failed register or update. Validation failures
// carry every violated field; conflicts name the column that lost the
// race with a concurrent writer.
func (h *UserHandler) submitError(w http.ResponseWriter, r *http.Request, tmpl string, in profiles.Input, data map[string]any, err error) {
	var verr *profiles.ValidationError
	var cerr *profiles.ConflictError
	switch {
	case errors.As(err, &verr):
		localized := localize(r, verr.Fields)
		if wantsJSON(r) {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", localized)
			return
		}
		data["Errors"] = firstErrors(localized)
		data["Values"] = formValues(in)
		w.WriteHeader(http.StatusBadRequest)
		renderPage(w, r, tmpl, data)
	case errors.As(err, &cerr):
		if wantsJSON(r) {
			httpx.JSONError(w, http.StatusConflict, conflictCode(cerr.Field), nil)
			return
		}
		lang := middleware.LangFrom(r)
		errs := map[string]string{}
		if cerr.Field != "" {
			errs[cerr.Field] = i18n.T(lang, "taken")
		} else {
			data["Error"] = i18n.T(lang, "conflict")
		}
		data["Errors"] = errs
		data["Values"] = formValues(in)
		w.WriteHeader(http.StatusConflict)
		renderPage(w, r, tmpl, data)
	case errors.Is(err, profiles.ErrNotFound):
		notFoundPage(w, r)
	default:
		serverError(w, r, err)
	}
}

func (h *UserHandler) getError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, profiles.ErrNotFound) {
		notFoundPage(w, r)
		return
	}
	serverError(w, r, err)
}

func conflictCode(field string) string {
	switch field {
	case "username":
		return "username_taken"
	case "email":
		return "email_taken"
	}
	return "conflict"
}

func badBody(w http.ResponseWriter, r *http.Request) {
	if wantsJSON(r) {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_body", nil)
		return
	}
	http.Error(w, "bad request", http.StatusBadRequest)
}
