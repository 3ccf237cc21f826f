package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"claresys/pkg/logger"
	"claresys/pkg/model"
)

func signedToken(t *testing.T, userID, role string, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  expiresAt.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return token
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "claresys", "access_token"))
}

func TestStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)

	token, err := store.Load()
	if err != nil {
		t.Fatalf("Load on empty store: %v", err)
	}
	if token != "" {
		t.Errorf("empty store should yield empty token, got %q", token)
	}

	if err := store.Save("abc.def.ghi"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	token, err = store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if token != "abc.def.ghi" {
		t.Errorf("Load = %q, want abc.def.ghi", token)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	token, _ = store.Load()
	if token != "" {
		t.Errorf("token should be gone after Clear, got %q", token)
	}

	// Clearing twice must not fail.
	if err := store.Clear(); err != nil {
		t.Errorf("second Clear: %v", err)
	}
}

func TestBootstrapRestoresSession(t *testing.T) {
	store := newTestStore(t)
	token := signedToken(t, "8f14e45f-ea4b-4f1a-9d2c-000000000001", "TEACHER", time.Now().Add(time.Hour))
	if err := store.Save(token); err != nil {
		t.Fatal(err)
	}

	s := New(store, logger.Nop())
	if err := s.Bootstrap(); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}

	if !s.IsAuthenticated() {
		t.Fatal("session should be authenticated after bootstrap")
	}
	if s.UserID() != "8f14e45f-ea4b-4f1a-9d2c-000000000001" {
		t.Errorf("UserID = %q", s.UserID())
	}
	if s.Role() != "TEACHER" {
		t.Errorf("Role = %q", s.Role())
	}
}

func TestBootstrapDiscardsExpiredToken(t *testing.T) {
	store := newTestStore(t)
	token := signedToken(t, "user", "STUDENT", time.Now().Add(-time.Hour))
	if err := store.Save(token); err != nil {
		t.Fatal(err)
	}

	s := New(store, logger.Nop())
	if err := s.Bootstrap(); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}

	if s.IsAuthenticated() {
		t.Error("expired token must not authenticate the session")
	}
	if stored, _ := store.Load(); stored != "" {
		t.Error("expired token should be cleared from disk")
	}
}

func TestBootstrapDiscardsGarbageToken(t *testing.T) {
	store := newTestStore(t)
	if err := store.Save("not-a-jwt"); err != nil {
		t.Fatal(err)
	}

	s := New(store, logger.Nop())
	if err := s.Bootstrap(); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	if s.IsAuthenticated() {
		t.Error("garbage token must not authenticate the session")
	}
}

func TestLoginPersistsToken(t *testing.T) {
	store := newTestStore(t)
	s := New(store, logger.Nop())

	login := func(ctx context.Context, email, password string) (*model.AuthResponse, error) {
		return &model.AuthResponse{
			AccessToken: "tok.en.value",
			TokenType:   "bearer",
			UserID:      "u-1",
			Role:        "STUDENT",
		}, nil
	}

	if err := s.Login(context.Background(), login, "ana@uni.edu", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	if s.Token() != "tok.en.value" || s.UserID() != "u-1" || s.Role() != "STUDENT" {
		t.Errorf("session state = %q/%q/%q", s.Token(), s.UserID(), s.Role())
	}
	if stored, _ := store.Load(); stored != "tok.en.value" {
		t.Errorf("persisted token = %q", stored)
	}
}

func TestInvalidateTearsDownEverything(t *testing.T) {
	store := newTestStore(t)
	token := signedToken(t, "u-2", "ADMIN", time.Now().Add(time.Hour))
	if err := store.Save(token); err != nil {
		t.Fatal(err)
	}

	s := New(store, logger.Nop())
	if err := s.Bootstrap(); err != nil {
		t.Fatal(err)
	}

	s.Invalidate()

	if s.IsAuthenticated() {
		t.Error("session should not be authenticated after Invalidate")
	}
	if stored, _ := store.Load(); stored != "" {
		t.Error("token file should be cleared on Invalidate")
	}
}
