package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/kube-rca/tasks/internal/apperr"
	"github.com/kube-rca/tasks/internal/config"
	"go.uber.org/zap"
)

// TokenTypeAccess tags tokens usable as bearer credentials.
const TokenTypeAccess = "access"

var ErrMisconfigured = errors.New("auth config invalid")

// AccessClaims is the signed payload of an access token.
type AccessClaims struct {
	Type string `json:"type"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies stateless access tokens. It holds no
// mutable state and is safe for concurrent use.
type TokenService struct {
	secret     []byte
	method     *jwt.SigningMethodHMAC
	defaultTTL time.Duration
	now        func() time.Time
	log        *zap.Logger
}

type TokenOption func(*TokenService)

// WithClock overrides the time source used for iat/exp.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) {
		s.now = now
	}
}

func NewTokenService(cfg config.AuthConfig, log *zap.Logger, opts ...TokenOption) (*TokenService, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("%w: JWT_SECRET is required", ErrMisconfigured)
	}

	alg := cfg.JWTAlgorithm
	if strings.TrimSpace(alg) == "" {
		alg = jwt.SigningMethodHS256.Alg()
	}
	method, ok := jwt.GetSigningMethod(alg).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported JWT_ALGORITHM %q", ErrMisconfigured, alg)
	}

	if cfg.AccessTTL <= 0 {
		return nil, fmt.Errorf("%w: invalid JWT_ACCESS_TTL", ErrMisconfigured)
	}

	if log == nil {
		log = zap.NewNop()
	}

	s := &TokenService{
		secret:     []byte(cfg.JWTSecret),
		method:     method,
		defaultTTL: cfg.AccessTTL,
		now:        time.Now,
		log:        log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *TokenService) DefaultTTL() time.Duration {
	return s.defaultTTL
}

// Issue signs an access token for subject. A non-positive ttl uses the default.
func (s *TokenService) Issue(subject string, ttl time.Duration) (string, error) {
	if strings.TrimSpace(subject) == "" {
		return "", apperr.Validation("token subject must not be empty")
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}

	now := s.now()
	claims := AccessClaims{
		Type: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm, expiry and type. Every failure returns
// the same error; the specific reason only reaches the debug log.
func (s *TokenService) Verify(tokenStr string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		s.log.Debug("token validation failed", zap.Error(err))
		return nil, InvalidCredentials()
	}

	if claims.Type != TokenTypeAccess {
		s.log.Debug("token validation failed", zap.String("reason", "unexpected token type"), zap.String("type", claims.Type))
		return nil, InvalidCredentials()
	}

	return claims, nil
}

// InvalidCredentials is the single error returned for every rejected bearer token.
func InvalidCredentials() *apperr.Error {
	return apperr.Authentication("Authentication failed", "Could not validate credentials")
}
