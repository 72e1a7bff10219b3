// Package flash implements one-shot messages carried across a redirect
// in short-lived cookies. Values are base64-encoded so arbitrary text
// survives cookie value restrictions.
package flash

import (
	"encoding/base64"
	"net/http"
)

const (
	ErrorCookie   = "flash_error"
	SuccessCookie = "flash_success"

	// long enough to survive the redirect, short enough to not linger
	maxAge = 300
)

// Set stores a flash message for the next rendered page.
func Set(w http.ResponseWriter, name, message string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    base64.StdEncoding.EncodeToString([]byte(message)),
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop reads a flash message and clears its cookie. Returns "" when no
// message is pending or the cookie is malformed.
func Pop(w http.ResponseWriter, r *http.Request, name string, secure bool) string {
	cookie, err := r.Cookie(name)
	if err != nil || cookie.Value == "" {
		return ""
	}

	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})

	decoded, err := base64.StdEncoding.DecodeString(cookie.Value)
	if err != nil {
		return ""
	}
	return string(decoded)
}
