package main

import (
	"net/http"

	"github.com/diewo77/go-profiles/auth"
	"github.com/diewo77/go-profiles/httpx"
	"github.com/diewo77/go-profiles/internal/config"
	"github.com/diewo77/go-profiles/internal/handlers"
	"github.com/diewo77/go-profiles/internal/middleware"
	"github.com/diewo77/go-profiles/internal/profiles"
	"github.com/diewo77/go-profiles/view"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux      *http.ServeMux
	cfg      *config.Config
	users    *handlers.UserHandler
	sessions *handlers.AuthHandler
}

// NewApp creates a new application with all routes configured.
func NewApp(svc *profiles.Service, cfg *config.Config) *App {
	app := &App{
		mux:      http.NewServeMux(),
		cfg:      cfg,
		users:    handlers.NewUserHandler(svc),
		sessions: handlers.NewAuthHandler(svc),
	}
	// Templates resolve the language from request preferences and need to
	// know which variant runs to pick navigation and form fields.
	view.SetLangResolver(middleware.LangFrom)
	view.SetGlobal("WithAuth", cfg.Profile.WithAuth)
	app.setupRoutes()
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Apply global middleware: language preferences, plus session context
	// when accounts are enabled.
	handler := middleware.Prefs(a.mux)
	if a.cfg.Profile.WithAuth {
		handler = auth.Middleware(handler)
	}
	handler.ServeHTTP(w, r)
}

// setupRoutes configures all application routes.
func (a *App) setupRoutes() {
	// ─────────────────────────────────────────────────────────────────────────
	// Routes shared by both variants
	// ─────────────────────────────────────────────────────────────────────────
	a.mux.HandleFunc("GET /register", a.users.RegisterForm)
	a.mux.HandleFunc("POST /register", a.users.Register)
	a.mux.HandleFunc("GET /health", a.health)
	a.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	if a.cfg.Profile.WithAuth {
		a.setupAccountRoutes()
		return
	}
	a.setupDirectoryRoutes()
}

// setupAccountRoutes wires the account variant: sessions, a private
// profile page and password management.
func (a *App) setupAccountRoutes() {
	a.mux.HandleFunc("GET /{$}", a.home)
	a.mux.HandleFunc("GET /login", a.sessions.LoginForm)
	a.mux.HandleFunc("POST /login", a.sessions.Login)
	a.mux.HandleFunc("GET /logout", a.sessions.Logout)
	a.mux.HandleFunc("POST /logout", a.sessions.Logout)

	// ─────────────────────────────────────────────────────────────────────────
	// Authenticated routes (require logged-in user)
	// ─────────────────────────────────────────────────────────────────────────
	a.mux.Handle("GET /profile", auth.RequireAuth(http.HandlerFunc(a.users.ProfilePage)))
	a.mux.Handle("GET /update", auth.RequireAuth(http.HandlerFunc(a.users.UpdateForm)))
	a.mux.Handle("POST /update", auth.RequireAuth(http.HandlerFunc(a.users.Update)))
	a.mux.Handle("GET /password", auth.RequireAuth(http.HandlerFunc(a.sessions.PasswordForm)))
	a.mux.Handle("POST /password", auth.RequireAuth(http.HandlerFunc(a.sessions.ChangePassword)))
}

// setupDirectoryRoutes wires the open directory variant: anyone can browse
// the listing and edit any profile.
func (a *App) setupDirectoryRoutes() {
	a.mux.HandleFunc("GET /{$}", a.users.List)
	a.mux.HandleFunc("GET /profile/{id}", a.users.Show)
	a.mux.HandleFunc("GET /update/{id}", a.users.EditForm)
	a.mux.HandleFunc("POST /update/{id}", a.users.UpdateByID)
}

// home sends visitors to their profile or the login page.
func (a *App) home(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.UserIDFromContext(r.Context()); ok {
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (a *App) health(w http.ResponseWriter, _ *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
