// Package auth is a small login layer: a configured table of accounts with
// bcrypt password hashes and a signed cookie carrying the username.
package auth

import (
	"context"
	"errors"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"prema-telhados/go_backend/internal/domain/quote"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type Account struct {
	Username string
	// PasswordHash is a bcrypt hash.
	PasswordHash string
	Estimator    quote.Estimator
}

type Directory struct {
	accounts map[string]Account
}

func NewDirectory(accounts []Account) *Directory {
	d := &Directory{accounts: make(map[string]Account, len(accounts))}
	for _, a := range accounts {
		a.Username = strings.TrimSpace(a.Username)
		if a.Username == "" {
			continue
		}
		d.accounts[a.Username] = a
	}
	return d
}

// dummyHash is compared for unknown usernames.
var dummyHash = sync.OnceValue(func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("prema-unknown-user"), bcrypt.DefaultCost)
	return h
})

// Authenticate checks the password against the bcrypt hash of the trimmed
// username and returns the estimator bound to the account.
func (d *Directory) Authenticate(username, password string) (quote.Estimator, error) {
	username = strings.TrimSpace(username)
	a, ok := d.accounts[username]
	hash := dummyHash()
	if ok {
		hash = []byte(a.PasswordHash)
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil || !ok {
		return quote.Estimator{}, ErrInvalidCredentials
	}
	return d.estimator(a), nil
}

func (d *Directory) Estimator(username string) (quote.Estimator, bool) {
	a, ok := d.accounts[username]
	if !ok {
		return quote.Estimator{}, false
	}
	return d.estimator(a), true
}

func (d *Directory) Exists(username string) bool {
	_, ok := d.accounts[username]
	return ok
}

func (d *Directory) estimator(a Account) quote.Estimator {
	if a.Estimator == (quote.Estimator{}) {
		return quote.Estimator{Name: a.Username}
	}
	return a.Estimator
}

type ctxKey string

const userCtxKey = ctxKey("user")

func WithUser(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, userCtxKey, username)
}

func UserFromContext(ctx context.Context) (string, bool) {
	u, ok := ctx.Value(userCtxKey).(string)
	return u, ok && u != ""
}
