// Package i18n holds the translation catalog and the request language
// plumbing. English is the default; French is the second catalog.
package i18n

import (
	"context"
	"strings"
)

const defaultLang = "en"

type langKey struct{}

// WithLang stores the resolved language on the context.
func WithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, langKey{}, lang)
}

// LangFromContext returns the stored language, or the default.
func LangFromContext(ctx context.Context) string {
	if lang, ok := ctx.Value(langKey{}).(string); ok && lang != "" {
		return lang
	}
	return defaultLang
}

// Supported reports whether a catalog exists for the language.
func Supported(lang string) bool {
	_, ok := translations[lang]
	return ok
}

// DetectLanguage picks the first supported tag out of an Accept-Language
// header, ignoring quality weights and region subtags.
func DetectLanguage(acceptLanguage string) string {
	for _, part := range strings.Split(acceptLanguage, ",") {
		tag := strings.ToLower(strings.TrimSpace(part))
		if i := strings.IndexByte(tag, ';'); i >= 0 {
			tag = tag[:i]
		}
		if i := strings.IndexByte(tag, '-'); i >= 0 {
			tag = tag[:i]
		}
		if Supported(tag) {
			return tag
		}
	}
	return defaultLang
}

// T translates a code for the given language. Unknown languages fall back
// to the default catalog; unknown codes come back verbatim so a missing
// entry is visible instead of blank.
func T(lang, code string) string {
	if m, ok := translations[lang]; ok {
		if s, ok := m[code]; ok {
			return s
		}
	}
	if s, ok := translations[defaultLang][code]; ok {
		return s
	}
	return code
}

var translations = map[string]map[string]string{
	"en": {
		// validation codes
		"required":      "Required",
		"too_short":     "Too short",
		"too_long":      "Too long",
		"invalid_email": "Invalid email address",
		"not_a_number":  "Must be a whole number",
		"out_of_range":  "Out of range",
		"taken":         "Already taken",
		"conflict":      "Already exists",
		"mismatch":      "Passwords do not match",

		// error codes surfaced by handlers
		"validation_failed":   "Validation failed",
		"username_taken":      "Username already taken",
		"email_taken":         "Email already registered",
		"not_found":           "Profile not found",
		"invalid_credentials": "Invalid username or password",
		"invalid_password":    "Current password is incorrect",
		"unauthorized":        "Login required",

		// flash messages
		"flash_welcome":         "Welcome! Your profile has been created",
		"flash_profile_created": "Profile created",
		"flash_profile_updated": "Profile updated",
		"flash_password_saved":  "Password updated",
		"flash_logged_in":       "Logged in",
		"flash_logged_out":      "Logged out",

		// page chrome
		"app_name":       "Profiles",
		"nav_profiles":   "Profiles",
		"nav_register":   "Register",
		"nav_login":      "Log in",
		"nav_logout":     "Log out",
		"nav_my_profile": "My profile",

		// form labels and actions
		"field_username":   "Username",
		"field_email":      "Email",
		"field_full_name":  "Full name",
		"field_age":        "Age",
		"field_bio":        "Bio",
		"field_password":   "Password",
		"password_current": "Current password",
		"password_new":     "New password",
		"password_confirm": "Confirm new password",
		"action_register":  "Sign up",
		"action_login":     "Log in",
		"action_save":      "Save",
		"action_edit":      "Edit profile",
		"action_back":      "Back to list",
		"change_password":  "Change password",

		// profile page
		"member_since": "Member since",
		"last_updated": "Last updated",
		"no_age":       "Not given",
		"no_bio":       "No bio provided.",
		"no_profiles":  "No profiles yet.",
	},
	"fr": {
		"required":      "Requis",
		"too_short":     "Trop court",
		"too_long":      "Trop long",
		"invalid_email": "Adresse e-mail invalide",
		"not_a_number":  "Doit être un nombre entier",
		"out_of_range":  "Hors limites",
		"taken":         "Déjà pris",
		"conflict":      "Existe déjà",
		"mismatch":      "Les mots de passe ne correspondent pas",

		"validation_failed":   "Échec de la validation",
		"username_taken":      "Nom d'utilisateur déjà pris",
		"email_taken":         "E-mail déjà enregistré",
		"not_found":           "Profil introuvable",
		"invalid_credentials": "Nom d'utilisateur ou mot de passe invalide",
		"invalid_password":    "Mot de passe actuel incorrect",
		"unauthorized":        "Connexion requise",

		"flash_welcome":         "Bienvenue ! Votre profil a été créé",
		"flash_profile_created": "Profil créé",
		"flash_profile_updated": "Profil mis à jour",
		"flash_password_saved":  "Mot de passe mis à jour",
		"flash_logged_in":       "Connecté",
		"flash_logged_out":      "Déconnecté",

		"app_name":       "Profils",
		"nav_profiles":   "Profils",
		"nav_register":   "Inscription",
		"nav_login":      "Connexion",
		"nav_logout":     "Déconnexion",
		"nav_my_profile": "Mon profil",

		"field_username":   "Nom d'utilisateur",
		"field_email":      "E-mail",
		"field_full_name":  "Nom complet",
		"field_age":        "Âge",
		"field_bio":        "Bio",
		"field_password":   "Mot de passe",
		"password_current": "Mot de passe actuel",
		"password_new":     "Nouveau mot de passe",
		"password_confirm": "Confirmer le nouveau mot de passe",
		"action_register":  "S'inscrire",
		"action_login":     "Se connecter",
		"action_save":      "Enregistrer",
		"action_edit":      "Modifier le profil",
		"action_back":      "Retour à la liste",
		"change_password":  "Changer le mot de passe",

		"member_since": "Membre depuis",
		"last_updated": "Dernière mise à jour",
		"no_age":       "Non renseigné",
		"no_bio":       "Aucune bio.",
		"no_profiles":  "Aucun profil pour le moment.",
	},
}
