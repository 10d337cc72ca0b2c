package main

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/diewo77/go-profiles/internal/config"
	"github.com/diewo77/go-profiles/internal/profiles"
	"github.com/diewo77/go-profiles/internal/store"
	"github.com/diewo77/go-profiles/view"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestApp(t *testing.T, withAuth bool) (*App, *profiles.Service) {
	t.Helper()
	name := strings.NewReplacer("/", "_", "=", "_", "#", "_").Replace(t.Name())
	conn, err := gorm.Open(sqlite.Open("file:app_"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	st := store.NewUserStore(conn)
	if err := st.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	cfg := &config.Config{Profile: config.DefaultProfile(withAuth)}
	svc := profiles.New(st, cfg.Profile)
	view.ResetForTests()
	view.SetBaseDir("../../templates")
	return NewApp(svc, cfg), svc
}

func postForm(t *testing.T, app *App, target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	app.ServeHTTP(rr, req)
	return rr
}

func get(t *testing.T, app *App, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	app.ServeHTTP(rr, req)
	return rr
}

func responseCookie(t *testing.T, rr *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestAccountFlowE2E(t *testing.T) {
	app, _ := newTestApp(t, true)

	// Register and pick up the session.
	form := url.Values{}
	form.Set("username", "jdoe")
	form.Set("email", "jdoe@example.com")
	form.Set("full_name", "John Doe")
	form.Set("age", "34")
	form.Set("password", "secret1")
	rr := postForm(t, app, "/register", form)
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/profile" {
		t.Fatalf("register: got %d %q body=%s", rr.Code, rr.Header().Get("Location"), rr.Body.String())
	}
	sess := responseCookie(t, rr, "session")
	if sess == nil {
		t.Fatalf("no session cookie after register")
	}
	flash := responseCookie(t, rr, "flash")
	if flash == nil {
		t.Fatalf("no flash cookie after register")
	}

	// Profile page greets the new account and consumes the flash.
	rr = get(t, app, "/profile", sess, flash)
	if rr.Code != http.StatusOK {
		t.Fatalf("profile: got %d body=%s", rr.Code, rr.Body.String())
	}
	body := rr.Body.String()
	if !strings.Contains(body, "John Doe") {
		t.Fatalf("profile page missing name: %s", body)
	}
	if !strings.Contains(body, "Welcome! Your profile has been created") {
		t.Fatalf("flash not rendered: %s", body)
	}
	if cleared := responseCookie(t, rr, "flash"); cleared == nil || cleared.MaxAge >= 0 {
		t.Fatalf("flash cookie not cleared: %+v", cleared)
	}

	// The edit form comes prefilled, then the update shows up on the page.
	rr = get(t, app, "/update", sess)
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `value="jdoe@example.com"`) {
		t.Fatalf("update form: got %d body=%s", rr.Code, rr.Body.String())
	}
	form = url.Values{}
	form.Set("email", "jdoe@example.com")
	form.Set("full_name", "John D.")
	form.Set("age", "35")
	form.Set("bio", "Now with a bio.")
	rr = postForm(t, app, "/update", form, sess)
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/profile" {
		t.Fatalf("update: got %d %q body=%s", rr.Code, rr.Header().Get("Location"), rr.Body.String())
	}
	rr = get(t, app, "/profile", sess)
	if body := rr.Body.String(); !strings.Contains(body, "John D.") || !strings.Contains(body, "Now with a bio.") {
		t.Fatalf("update not visible: %s", body)
	}

	// Change the password, log out, and come back with the new one.
	form = url.Values{}
	form.Set("current_password", "secret1")
	form.Set("new_password", "rotated9")
	form.Set("confirm_password", "rotated9")
	rr = postForm(t, app, "/password", form, sess)
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/profile" {
		t.Fatalf("password change: got %d %q body=%s", rr.Code, rr.Header().Get("Location"), rr.Body.String())
	}

	rr = get(t, app, "/logout", sess)
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/login" {
		t.Fatalf("logout: got %d %q", rr.Code, rr.Header().Get("Location"))
	}

	form = url.Values{}
	form.Set("username", "jdoe")
	form.Set("password", "rotated9")
	rr = postForm(t, app, "/login", form)
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/profile" {
		t.Fatalf("login with new password: got %d %q body=%s", rr.Code, rr.Header().Get("Location"), rr.Body.String())
	}
	if responseCookie(t, rr, "session") == nil {
		t.Fatalf("no session cookie after login")
	}

	// The old password is gone.
	form.Set("password", "secret1")
	rr = postForm(t, app, "/login", form)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("old password still accepted: got %d", rr.Code)
	}
}

func TestAnonymousIsRedirected(t *testing.T) {
	app, _ := newTestApp(t, true)

	for _, target := range []string{"/profile", "/update", "/password"} {
		rr := get(t, app, target)
		if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/login" {
			t.Fatalf("%s: got %d %q", target, rr.Code, rr.Header().Get("Location"))
		}
	}

	// API clients get a 401 instead of the login page.
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Accept", "application/json")
	rr := httptest.NewRecorder()
	app.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "unauthorized") {
		t.Fatalf("body = %s", rr.Body.String())
	}
}

func TestHomeRedirects(t *testing.T) {
	app, _ := newTestApp(t, true)

	rr := get(t, app, "/")
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/login" {
		t.Fatalf("anonymous home: got %d %q", rr.Code, rr.Header().Get("Location"))
	}

	form := url.Values{}
	form.Set("username", "jdoe")
	form.Set("email", "jdoe@example.com")
	form.Set("full_name", "John Doe")
	form.Set("password", "secret1")
	sess := responseCookie(t, postForm(t, app, "/register", form), "session")
	if sess == nil {
		t.Fatalf("no session cookie")
	}
	rr = get(t, app, "/", sess)
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/profile" {
		t.Fatalf("signed-in home: got %d %q", rr.Code, rr.Header().Get("Location"))
	}
}

func TestLanguageSwitchE2E(t *testing.T) {
	app, _ := newTestApp(t, true)

	rr := get(t, app, "/login?lang=fr")
	if rr.Code != http.StatusOK {
		t.Fatalf("login page: got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Connexion") {
		t.Fatalf("French text missing: %s", rr.Body.String())
	}
	c := responseCookie(t, rr, "lang")
	if c == nil || c.Value != "fr" {
		t.Fatalf("lang cookie not persisted: %+v", c)
	}

	// The stored preference sticks without the query parameter.
	rr = get(t, app, "/login", c)
	if !strings.Contains(rr.Body.String(), "Connexion") {
		t.Fatalf("stored language ignored: %s", rr.Body.String())
	}
}

func TestHealthRoute(t *testing.T) {
	app, _ := newTestApp(t, true)
	rr := get(t, app, "/health")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"status":"ok"`) {
		t.Fatalf("body = %s", rr.Body.String())
	}
}
