package service

import (
	"context"
	"strings"

	"github.com/kube-rca/tasks/internal/apperr"
	"github.com/kube-rca/tasks/internal/db"
	"github.com/kube-rca/tasks/internal/model"
	"go.uber.org/zap"
)

const tokenTypeBearer = "bearer"

// txRunner - 트랜잭션 단위로 영속성 계층을 여는 인터페이스
type txRunner interface {
	InTx(ctx context.Context, fn func(db.Queries) error) error
}

// AuthService covers registration, login and resolving bearer tokens to users.
type AuthService struct {
	store  txRunner
	hasher PasswordHasher
	tokens *TokenService
	log    *zap.Logger

	// dummyHash is compared against when the username is unknown, so both
	// login failures cost one hash comparison.
	dummyHash string
}

func NewAuthService(store txRunner, hasher PasswordHasher, tokens *TokenService, log *zap.Logger) *AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	dummyHash, err := hasher.Hash("login-timing-placeholder")
	if err != nil {
		log.Warn("failed to prepare dummy password hash", zap.Error(err))
	}
	return &AuthService{
		store:     store,
		hasher:    hasher,
		tokens:    tokens,
		log:       log,
		dummyHash: dummyHash,
	}
}

// Register creates a user. Failures other than validation and duplicate
// usernames are logged and reported as a generic registration failure.
func (s *AuthService) Register(ctx context.Context, username, password string) (*model.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, apperr.Validation("username must not be empty")
	}

	s.log.Info("attempting to register user", zap.String("username", username))

	var user *model.User
	err := s.store.InTx(ctx, func(q db.Queries) error {
		_, err := q.GetUserByUsername(ctx, username)
		if err == nil {
			return errUsernameTaken()
		}
		if !db.IsNotFound(err) {
			return err
		}

		hash, err := s.hasher.Hash(password)
		if err != nil {
			return err
		}

		created, err := q.CreateUser(ctx, username, hash)
		if err != nil {
			if db.IsDuplicate(err) {
				return errUsernameTaken()
			}
			return err
		}
		user = created
		return nil
	})
	if err != nil {
		switch apperr.KindOf(err) {
		case apperr.KindDuplicate:
			s.log.Warn("registration failed: username already exists", zap.String("username", username))
			return nil, err
		case apperr.KindValidation:
			return nil, err
		}
		s.log.Error("error during user registration", zap.String("username", username), zap.Error(err))
		return nil, apperr.Wrap(apperr.Authentication("Registration failed", "An error occurred during registration"), err)
	}

	s.log.Info("registered user", zap.String("username", username), zap.Int64("user_id", user.ID))
	return user, nil
}

// Login verifies credentials and issues an access token. Unknown usernames and
// wrong passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.Token, error) {
	var user *model.User
	err := s.store.InTx(ctx, func(q db.Queries) error {
		found, err := q.GetUserByUsername(ctx, username)
		if err != nil {
			return err
		}
		user = found
		return nil
	})
	if err != nil && !db.IsNotFound(err) {
		s.log.Error("error during login", zap.String("username", username), zap.Error(err))
		return nil, apperr.Wrap(errLoginUnexpected(), err)
	}

	hash := s.dummyHash
	if user != nil {
		hash = user.PasswordHash
	}
	if !s.hasher.Verify(password, hash) || user == nil {
		s.log.Warn("failed login attempt", zap.String("username", username))
		return nil, apperr.Authentication("Login failed", "Incorrect username or password")
	}

	accessToken, err := s.tokens.Issue(user.Username, s.tokens.DefaultTTL())
	if err != nil {
		s.log.Error("error issuing access token", zap.String("username", username), zap.Error(err))
		return nil, apperr.Wrap(errLoginUnexpected(), err)
	}

	s.log.Info("user authenticated", zap.String("username", user.Username))
	return &model.Token{
		AccessToken: accessToken,
		TokenType:   tokenTypeBearer,
	}, nil
}

// Authenticate resolves a bearer token to its user. The user is loaded on
// every call, so a deleted user is rejected even while the token is unexpired.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	username := claims.Subject
	if strings.TrimSpace(username) == "" {
		s.log.Warn("token payload missing subject")
		return nil, InvalidCredentials()
	}

	var user *model.User
	err = s.store.InTx(ctx, func(q db.Queries) error {
		found, err := q.GetUserByUsername(ctx, username)
		if err != nil {
			return err
		}
		user = found
		return nil
	})
	if err != nil {
		if db.IsNotFound(err) {
			s.log.Warn("token subject not found", zap.String("username", username))
		} else {
			s.log.Error("error resolving token subject", zap.String("username", username), zap.Error(err))
		}
		return nil, apperr.Wrap(InvalidCredentials(), err)
	}
	return user, nil
}

func errUsernameTaken() *apperr.Error {
	return apperr.Duplicate("Username already registered")
}

func errLoginUnexpected() *apperr.Error {
	return apperr.Authentication("Login failed", "An error occurred during login")
}
