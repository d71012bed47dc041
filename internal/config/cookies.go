package config

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

// Cookies splits a JWT across two cookies: "auth" carries the readable
// header.payload, "sign" keeps the signature HttpOnly.
type Cookies struct {
	Domain   string
	Secure   bool
	SameSite http.SameSite
}

func NewCookies() (*Cookies, error) {
	cookies := &Cookies{
		Domain:   os.Getenv("COOKIES_DOMAIN"),
		Secure:   !Development(),
		SameSite: http.SameSiteLaxMode,
	}

	if secure, ok := os.LookupEnv("COOKIES_SECURE"); ok {
		cookies.Secure = secure != "0"
	}

	switch strings.ToUpper(os.Getenv("COOKIES_SAMESITE")) {
	case "", "LAX":
		cookies.SameSite = http.SameSiteLaxMode
	case "DEFAULT":
		cookies.SameSite = http.SameSiteDefaultMode
	case "STRICT":
		cookies.SameSite = http.SameSiteStrictMode
	case "NONE":
		cookies.SameSite = http.SameSiteNoneMode
	default:
		return nil, fmt.Errorf("invalid COOKIES_SAMESITE value %q", os.Getenv("COOKIES_SAMESITE"))
	}

	return cookies, nil
}

func (c *Cookies) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth",
		Path:     "/",
		Value:    "delete",
		MaxAge:   -1,
		Domain:   c.Domain,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "sign",
		Path:     "/",
		Value:    "delete",
		MaxAge:   -1,
		HttpOnly: true,
		Domain:   c.Domain,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	})
}

func (c *Cookies) Refresh(w http.ResponseWriter, token string, expires time.Time) error {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return fmt.Errorf("malformed JWT token generated")
	}
	header, payload, signature := parts[0], parts[1], parts[2]
	http.SetCookie(w, &http.Cookie{
		Name:     "auth",
		Path:     "/",
		Value:    header + "." + payload,
		Expires:  expires,
		Domain:   c.Domain,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "sign",
		Path:     "/",
		Value:    signature,
		Expires:  expires,
		HttpOnly: true,
		Domain:   c.Domain,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	})
	return nil
}

// Token reassembles the JWT from the cookie pair.
func (c *Cookies) Token(r *http.Request) (string, error) {
	authCookie, err := r.Cookie("auth")
	if err != nil {
		return "", err
	}
	signCookie, err := r.Cookie("sign")
	if err != nil {
		return "", err
	}
	return authCookie.Value + "." + signCookie.Value, nil
}
