package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"claresys/pkg/logger"
	"claresys/pkg/model"
)

var ErrNotAuthenticated = errors.New("no active session")

// LoginFunc performs the credential exchange against the auth collaborator.
type LoginFunc func(ctx context.Context, email, password string) (*model.AuthResponse, error)

// Session is the explicit authentication context passed to controllers.
// It owns the token lifecycle end to end: Bootstrap at startup, Login/Logout
// on user action, Invalidate when any collaborator answers 401.
type Session struct {
	mu    sync.RWMutex
	store *Store
	log   *logger.Logger

	token  string
	userID string
	role   string
}

func New(store *Store, log *logger.Logger) *Session {
	return &Session{
		store: store,
		log:   log,
	}
}

// Token implements client.TokenSource.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

func (s *Session) Role() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role
}

func (s *Session) IsAuthenticated() bool {
	return s.Token() != ""
}

// Bootstrap restores a persisted token. Expired or unreadable tokens are
// discarded so the caller lands in the unauthenticated state instead of
// failing on the first collaborator call.
func (s *Session) Bootstrap() error {
	token, err := s.store.Load()
	if err != nil {
		return err
	}
	if token == "" {
		return nil
	}

	userID, role, expiresAt, err := decodeClaims(token)
	if err != nil {
		s.log.Warn("Discarding unreadable persisted token", "error", err)
		return s.store.Clear()
	}
	if !expiresAt.IsZero() && time.Now().After(expiresAt) {
		s.log.Info("Persisted token expired, re-authentication required")
		return s.store.Clear()
	}

	s.mu.Lock()
	s.token = token
	s.userID = userID
	s.role = role
	s.mu.Unlock()

	s.log.Info("Session restored", "user_id", userID, "role", role)
	return nil
}

func (s *Session) Login(ctx context.Context, login LoginFunc, email, password string) error {
	auth, err := login(ctx, email, password)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.token = auth.AccessToken
	s.userID = auth.UserID
	s.role = auth.Role
	s.mu.Unlock()

	if err := s.store.Save(auth.AccessToken); err != nil {
		s.log.Warn("Session established but token could not be persisted", "error", err)
	}

	s.log.Info("Logged in", "user_id", auth.UserID, "role", auth.Role)
	return nil
}

func (s *Session) Logout() error {
	s.Invalidate()
	return nil
}

// Invalidate tears the session down. Wired as the HTTP client's 401 hook:
// an expired token anywhere forces re-authentication everywhere.
func (s *Session) Invalidate() {
	s.mu.Lock()
	hadSession := s.token != ""
	s.token = ""
	s.userID = ""
	s.role = ""
	s.mu.Unlock()

	if err := s.store.Clear(); err != nil {
		s.log.Warn("Failed to clear persisted token", "error", err)
	}
	if hadSession {
		s.log.Info("Session invalidated")
	}
}

// decodeClaims reads identity claims without verifying the signature.
// Verification is the backend's job; the client only needs sub/role/exp.
func decodeClaims(token string) (userID, role string, expiresAt time.Time, err error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err = parser.ParseUnverified(token, claims); err != nil {
		return "", "", time.Time{}, err
	}

	if sub, subErr := claims.GetSubject(); subErr == nil {
		userID = sub
	}
	if r, ok := claims["role"].(string); ok {
		role = r
	}
	if exp, expErr := claims.GetExpirationTime(); expErr == nil && exp != nil {
		expiresAt = exp.Time
	}
	return userID, role, expiresAt, nil
}
