package handler

import "net/http"

// CookieSettings controls how the auth cookies are written. MaxAge is in
// seconds and matches the JWT validity window. Secure is on in production so
// the cookie only travels over TLS.
type CookieSettings struct {
	MaxAge int
	Secure bool
}

func setAuthCookie(w http.ResponseWriter, cs CookieSettings, name, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		MaxAge:   cs.MaxAge,
		HttpOnly: true,
		Secure:   cs.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearAuthCookie(w http.ResponseWriter, cs CookieSettings, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cs.Secure,
	})
}
