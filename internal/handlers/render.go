package handlers

import (
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/diewo77/go-profiles/httpx"
	"github.com/diewo77/go-profiles/i18n"
	"github.com/diewo77/go-profiles/internal/middleware"
	"github.com/diewo77/go-profiles/validation"
	"github.com/diewo77/go-profiles/view"
)

const statusSeeOther = http.StatusSeeOther

// renderPage renders through the shared view layer, attaching any pending
// flash message and clearing its cookie.
func renderPage(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	if c, err := r.Cookie("flash"); err == nil && c.Value != "" {
		if decoded, derr := url.QueryUnescape(c.Value); derr == nil {
			data["Flash"] = decoded
		} else {
			data["Flash"] = c.Value
		}
		http.SetCookie(w, &http.Cookie{Name: "flash", Value: "", Path: "/", Expires: time.Unix(0, 0), MaxAge: -1})
	}
	if err := view.Render(w, r, name, data); err != nil {
		log.Println("render error:", err)
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

// wantsJSON decides the response format: JSON for API clients, HTML for
// browsers. A JSON request body implies a JSON response.
func wantsJSON(r *http.Request) bool {
	return httpx.IsJSON(r) || httpx.WantsJSON(r)
}

// localize translates violation codes into per-field message lists in the
// request language.
func localize(r *http.Request, v validation.Violations) map[string][]string {
	lang := middleware.LangFrom(r)
	out := make(map[string][]string, len(v))
	for field, codes := range v {
		msgs := make([]string, 0, len(codes))
		for _, code := range codes {
			msgs = append(msgs, i18n.T(lang, code))
		}
		out[field] = msgs
	}
	return out
}

// firstErrors flattens localized violations to one message per field for
// form redisplay.
func firstErrors(localized map[string][]string) map[string]string {
	out := make(map[string]string, len(localized))
	for field, msgs := range localized {
		if len(msgs) > 0 {
			out[field] = msgs[0]
		}
	}
	return out
}

func notFoundPage(w http.ResponseWriter, r *http.Request) {
	if wantsJSON(r) {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	w.WriteHeader(http.StatusNotFound)
	renderPage(w, r, "404.html", nil)
}

func serverError(w http.ResponseWriter, r *http.Request, err error) {
	log.Println("internal error:", err)
	if wantsJSON(r) {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	http.Error(w, "internal error", http.StatusInternalServerError)
}
