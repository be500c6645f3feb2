package session

import (
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lucasmsqt/notes-app/internal/api"
)

// ErrNoSession means no usable credential is stored. Callers must treat
// it as a terminal navigation to the login view, not a retryable error.
var ErrNoSession = errors.New("no active session")

// Guard gates protected views on the stored credential.
type Guard struct {
	store *Store
}

func NewGuard(store *Store) *Guard {
	return &Guard{store: store}
}

// Credentials returns the stored token and user identity, or
// ErrNoSession when the token is absent or visibly expired.
func (g *Guard) Credentials() (api.Credentials, error) {
	token, err := g.store.Token()
	if err != nil {
		return api.Credentials{}, err
	}
	if token == "" {
		return api.Credentials{}, ErrNoSession
	}
	if expired(token) {
		slog.Info("Stored token expired, treating session as absent")
		return api.Credentials{}, ErrNoSession
	}
	userID, err := g.store.UserID()
	if err != nil {
		return api.Credentials{}, err
	}
	return api.Credentials{Token: token, UserID: userID}, nil
}

// Login persists a fresh credential pair.
func (g *Guard) Login(creds api.Credentials) error {
	return g.store.SetCredentials(creds.Token, creds.UserID)
}

// Logout clears the token and user identity.
func (g *Guard) Logout() error {
	return g.store.ClearCredentials()
}

// expired reports whether the token is a JWT whose exp claim has
// passed. Verification stays server-side; this only decodes the claims
// to avoid sending a token the API is guaranteed to reject. Opaque
// tokens pass on presence alone.
func expired(token string) bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
