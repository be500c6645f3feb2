package session

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lucasmsqt/notes-app/internal/api"
)

func mustCreds(token, userID string) api.Credentials {
	return api.Credentials{Token: token, UserID: userID}
}

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{"exp": expiresAt.Unix(), "user_id": "u1"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestGuardNoToken(t *testing.T) {
	guard := NewGuard(newTestStore(t))

	_, err := guard.Credentials()
	if !errors.Is(err, ErrNoSession) {
		t.Fatalf("Credentials on empty store = %v, want ErrNoSession", err)
	}
}

func TestGuardWithToken(t *testing.T) {
	store := newTestStore(t)
	guard := NewGuard(store)

	if err := guard.Login(mustCreds("opaque-token", "user-1")); err != nil {
		t.Fatalf("Login: %v", err)
	}
	creds, err := guard.Credentials()
	if err != nil {
		t.Fatalf("Credentials: %v", err)
	}
	if creds.Token != "opaque-token" || creds.UserID != "user-1" {
		t.Errorf("got %+v", creds)
	}
}

func TestGuardExpiredJWT(t *testing.T) {
	store := newTestStore(t)
	guard := NewGuard(store)

	_ = guard.Login(mustCreds(signedToken(t, time.Now().Add(-time.Hour)), "u1"))
	if _, err := guard.Credentials(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expired JWT should yield ErrNoSession, got %v", err)
	}

	_ = guard.Login(mustCreds(signedToken(t, time.Now().Add(time.Hour)), "u1"))
	if _, err := guard.Credentials(); err != nil {
		t.Fatalf("valid JWT should pass, got %v", err)
	}
}

func TestGuardLogout(t *testing.T) {
	guard := NewGuard(newTestStore(t))

	_ = guard.Login(mustCreds("tok", "u1"))
	if err := guard.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := guard.Credentials(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("after logout want ErrNoSession, got %v", err)
	}
}
