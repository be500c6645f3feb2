package session

import (
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreCredentialsRoundTrip(t *testing.T) {
	store := newTestStore(t)

	token, err := store.Token()
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if token != "" {
		t.Errorf("fresh store token = %q, want empty", token)
	}

	if err := store.SetCredentials("tok-1", "user-1"); err != nil {
		t.Fatalf("SetCredentials: %v", err)
	}
	token, _ = store.Token()
	userID, _ := store.UserID()
	if token != "tok-1" || userID != "user-1" {
		t.Errorf("got (%q, %q), want (tok-1, user-1)", token, userID)
	}

	// Overwrite on re-login.
	if err := store.SetCredentials("tok-2", "user-1"); err != nil {
		t.Fatalf("SetCredentials overwrite: %v", err)
	}
	if token, _ = store.Token(); token != "tok-2" {
		t.Errorf("token after overwrite = %q, want tok-2", token)
	}

	if err := store.ClearCredentials(); err != nil {
		t.Fatalf("ClearCredentials: %v", err)
	}
	token, _ = store.Token()
	userID, _ = store.UserID()
	if token != "" || userID != "" {
		t.Errorf("after clear got (%q, %q), want empty", token, userID)
	}
}

func TestDarkModeSurvivesLogout(t *testing.T) {
	store := newTestStore(t)

	dark, err := store.DarkMode()
	if err != nil {
		t.Fatalf("DarkMode: %v", err)
	}
	if dark {
		t.Error("fresh store should default to light mode")
	}

	if err := store.SetDarkMode(true); err != nil {
		t.Fatalf("SetDarkMode: %v", err)
	}
	_ = store.SetCredentials("tok", "user")
	_ = store.ClearCredentials()

	if dark, _ = store.DarkMode(); !dark {
		t.Error("dark mode must survive logout")
	}
}

func TestStorePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := store.SetCredentials("tok", "user"); err != nil {
		t.Fatalf("SetCredentials: %v", err)
	}
	store.Close()

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	if token, _ := reopened.Token(); token != "tok" {
		t.Errorf("token after reopen = %q, want tok", token)
	}
}
