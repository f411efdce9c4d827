package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{"sub": "user-1", "exp": exp.Unix()}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return tok
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "token"))

	if _, ok := store.Token(); ok {
		t.Fatalf("fresh store should have no token")
	}
	tok := signedToken(t, time.Now().Add(time.Hour))
	if err := store.Set(tok); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok := store.Token()
	if !ok || got != tok {
		t.Fatalf("token round trip failed")
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok := store.Token(); ok {
		t.Fatalf("token present after clear")
	}
	// clearing twice is fine
	if err := store.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestExpiredTokenTreatedAsAbsent(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "token"))
	if err := store.Set(signedToken(t, time.Now().Add(-time.Hour))); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, ok := store.Token(); ok {
		t.Fatalf("expired token must be treated as absent")
	}
}

func TestExpired(t *testing.T) {
	now := time.Now()
	if Expired(signedToken(t, now.Add(time.Hour)), now) {
		t.Fatalf("future exp reported expired")
	}
	if !Expired(signedToken(t, now.Add(-time.Minute)), now) {
		t.Fatalf("past exp not reported expired")
	}
	// opaque tokens are not our call; the backend answers 401 if so
	if Expired("not-a-jwt", now) {
		t.Fatalf("unparseable token must not be treated as expired")
	}
}

func TestInMemoryStore(t *testing.T) {
	store := NewInMemoryStore("")
	if _, ok := store.Token(); ok {
		t.Fatalf("empty store should have no token")
	}
	if err := store.Set("abc"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if tok, ok := store.Token(); !ok || tok != "abc" {
		t.Fatalf("unexpected token")
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok := store.Token(); ok {
		t.Fatalf("token present after clear")
	}
}
