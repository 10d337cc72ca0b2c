// Package middleware holds the request-scoped plumbing shared by every
// handler: language resolution and flash messages.
package middleware

import (
	"net/http"
	"net/url"

	"github.com/diewo77/go-profiles/i18n"
)

// Prefs resolves the UI language for the request and stores it on the
// context. A ?lang= parameter wins and persists the choice for 30 days;
// otherwise the lang cookie applies, then the Accept-Language header.
func Prefs(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := ""
		if c, err := r.Cookie("lang"); err == nil && c.Value != "" {
			lang = c.Value
		}
		if ql := r.URL.Query().Get("lang"); ql != "" && i18n.Supported(ql) {
			lang = ql
			http.SetCookie(w, &http.Cookie{Name: "lang", Value: lang, Path: "/", MaxAge: 86400 * 30})
		}
		if !i18n.Supported(lang) {
			lang = i18n.DetectLanguage(r.Header.Get("Accept-Language"))
		}
		next.ServeHTTP(w, r.WithContext(i18n.WithLang(r.Context(), lang)))
	})
}

// LangFrom returns the language resolved by Prefs for this request.
func LangFrom(r *http.Request) string {
	return i18n.LangFromContext(r.Context())
}

// Flash queues a one-shot translated message for the next rendered page.
// The cookie value is consumed and cleared by the render helper.
func Flash(w http.ResponseWriter, r *http.Request, code string) {
	msg := i18n.T(LangFrom(r), code)
	http.SetCookie(w, &http.Cookie{Name: "flash", Value: url.QueryEscape(msg), Path: "/"})
}
