package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/kube-rca/tasks/internal/config"
	"github.com/kube-rca/tasks/internal/db"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func newTestStore(t *testing.T) *db.SQLite {
	t.Helper()
	store, err := db.OpenSQLite(filepath.Join(t.TempDir(), "tasks.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(store.Close)
	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return store
}

func newTestTokens(t *testing.T, opts ...TokenOption) *TokenService {
	t.Helper()
	tokens, err := NewTokenService(config.AuthConfig{
		JWTSecret:    testSecret,
		JWTAlgorithm: "HS256",
		AccessTTL:    30 * time.Minute,
	}, nil, opts...)
	if err != nil {
		t.Fatalf("new token service: %v", err)
	}
	return tokens
}

func newTestAuth(t *testing.T, store txRunner) *AuthService {
	t.Helper()
	return NewAuthService(store, NewBcryptHasher(bcrypt.MinCost), newTestTokens(t), nil)
}

// failingStore fails every transaction with err.
type failingStore struct {
	err error
}

func (f failingStore) InTx(ctx context.Context, fn func(db.Queries) error) error {
	return f.err
}
