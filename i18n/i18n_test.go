package i18n

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectLanguage(t *testing.T) {
	assert.Equal(t, "fr", DetectLanguage("fr-FR,fr;q=0.8"))
	assert.Equal(t, "fr", DetectLanguage("FR-ca"))
	assert.Equal(t, "en", DetectLanguage("en-US,en;q=0.9"))
	// first supported tag wins, not the first tag
	assert.Equal(t, "fr", DetectLanguage("de-DE,fr;q=0.5"))
	assert.Equal(t, "en", DetectLanguage(""))
	assert.Equal(t, "en", DetectLanguage("de-DE,es"))
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("en"))
	assert.True(t, Supported("fr"))
	assert.False(t, Supported("tlh"))
	assert.False(t, Supported(""))
}

func TestTranslations(t *testing.T) {
	assert.Equal(t, "Requis", T("fr", "required"))
	assert.Equal(t, "Required", T("en", "required"))
	// unknown code -> fallback to code
	assert.Equal(t, "__nope__", T("fr", "__nope__"))
	// unknown language -> fallback to en translation if exists
	assert.Equal(t, "Required", T("es", "required"))
}

func TestLangContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "en", LangFromContext(ctx))
	assert.Equal(t, "fr", LangFromContext(WithLang(ctx, "fr")))
}

func TestCatalogsCoverSameCodes(t *testing.T) {
	for code := range translations["en"] {
		assert.Contains(t, translations["fr"], code, "fr catalog missing %q", code)
	}
	for code := range translations["fr"] {
		assert.Contains(t, translations["en"], code, "en catalog missing %q", code)
	}
}
