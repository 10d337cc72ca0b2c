package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func resolveLang(r *http.Request) (lang string, rec *httptest.ResponseRecorder) {
	rec = httptest.NewRecorder()
	Prefs(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang = LangFrom(r)
	})).ServeHTTP(rec, r)
	return lang, rec
}

func TestPrefsDefaultsToHeader(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Accept-Language", "fr-FR,fr;q=0.8")
	if lang, _ := resolveLang(r); lang != "fr" {
		t.Fatalf("expected fr from header, got %q", lang)
	}

	r = httptest.NewRequest("GET", "/", nil)
	if lang, _ := resolveLang(r); lang != "en" {
		t.Fatalf("expected default en, got %q", lang)
	}
}

func TestPrefsQueryPersistsChoice(t *testing.T) {
	r := httptest.NewRequest("GET", "/?lang=fr", nil)
	lang, rec := resolveLang(r)
	if lang != "fr" {
		t.Fatalf("expected fr from query, got %q", lang)
	}
	cookie := rec.Header().Get("Set-Cookie")
	if !strings.Contains(cookie, "lang=fr") {
		t.Fatalf("language choice not persisted: %q", cookie)
	}

	// unsupported language neither sticks nor persists
	r = httptest.NewRequest("GET", "/?lang=tlh", nil)
	lang, rec = resolveLang(r)
	if lang != "en" {
		t.Fatalf("expected en for unsupported lang, got %q", lang)
	}
	if strings.Contains(rec.Header().Get("Set-Cookie"), "tlh") {
		t.Fatalf("unsupported language persisted")
	}
}

func TestPrefsCookieWins(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.AddCookie(&http.Cookie{Name: "lang", Value: "fr"})
	r.Header.Set("Accept-Language", "en-US")
	if lang, _ := resolveLang(r); lang != "fr" {
		t.Fatalf("expected cookie to win, got %q", lang)
	}
}

func TestFlashTranslatesAndEscapes(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)
	// no Prefs in front, so the default language applies
	Flash(rec, r, "flash_profile_updated")

	var value string
	for _, c := range rec.Result().Cookies() {
		if c.Name == "flash" {
			value = c.Value
		}
	}
	if value == "" {
		t.Fatalf("no flash cookie set")
	}
	decoded, err := url.QueryUnescape(value)
	if err != nil || decoded != "Profile updated" {
		t.Fatalf("unexpected flash value %q (%v)", decoded, err)
	}
}
