package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"
	"time"
)

// CookieName is the fixed key the logged-in username is stored under.
const CookieName = "prema_auth_user"

type Sessions struct {
	Secret []byte
	TTL    time.Duration
	Secure bool
	Now    func() time.Time
}

func NewSessions(secret string, ttl time.Duration, secure bool) *Sessions {
	return &Sessions{Secret: []byte(secret), TTL: ttl, Secure: secure, Now: time.Now}
}

// Create sets a cookie holding the username and its HMAC signature.
func (s *Sessions) Create(w http.ResponseWriter, username string) {
	value := base64.RawURLEncoding.EncodeToString([]byte(username)) + "." + s.sign(username)
	c := &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if s.TTL > 0 {
		c.Expires = s.Now().Add(s.TTL)
	}
	http.SetCookie(w, c)
}

func (s *Sessions) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Parse validates the cookie and returns the username in it.
func (s *Sessions) Parse(r *http.Request) (string, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	encoded, sig, ok := strings.Cut(c.Value, ".")
	if !ok {
		return "", false
	}
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", false
	}
	username := string(raw)
	if !hmac.Equal([]byte(sig), []byte(s.sign(username))) {
		return "", false
	}
	return username, username != ""
}

func (s *Sessions) sign(username string) string {
	mac := hmac.New(sha256.New, s.Secret)
	mac.Write([]byte(username))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
