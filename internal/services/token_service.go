package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims is the payload of an access token. IssuedAtMs repeats iat in
// milliseconds; iat alone only carries whole seconds.
type TokenClaims struct {
	UserID     string `json:"id"`
	IssuedAtMs int64  `json:"iatMs,omitempty"`
	jwt.RegisteredClaims
}

// Identity is what a verified token asserts.
type Identity struct {
	UserID   uuid.UUID
	IssuedAt time.Time
}

// TokenService mints and verifies HS256 access tokens. It holds no state
// besides its configuration.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type TokenOption func(*TokenService)

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) { s.now = now }
}

func NewTokenService(secret string, ttl time.Duration, opts ...TokenOption) *TokenService {
	s := &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue returns a signed token asserting userID.
func (s *TokenService) Issue(userID uuid.UUID) (string, error) {
	return s.issueAt(userID, s.now())
}

func (s *TokenService) issueAt(userID uuid.UUID, now time.Time) (string, error) {
	if len(s.secret) == 0 {
		return "", errors.New("jwt secret not configured")
	}

	claims := TokenClaims{
		UserID:     userID.String(),
		IssuedAtMs: now.UnixMilli(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm and expiry of raw and returns the
// identity it carries.
func (s *TokenService) Verify(raw string) (*Identity, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, s.Keyfunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return IdentityFromClaims(claims)
}

// Keyfunc resolves the verification key. Only HMAC tokens are accepted.
func (s *TokenService) Keyfunc(t *jwt.Token) (any, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
	}
	return s.secret, nil
}

// IdentityFromClaims validates the claims of a token whose signature has
// been checked. Tokens without iat or exp are rejected.
func IdentityFromClaims(claims *TokenClaims) (*Identity, error) {
	userID, err := uuid.Parse(claims.UserID)
	if err != nil || claims.IssuedAt == nil || claims.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}

	issuedAt := claims.IssuedAt.Time
	if claims.IssuedAtMs > 0 {
		issuedAt = time.UnixMilli(claims.IssuedAtMs)
	}
	return &Identity{UserID: userID, IssuedAt: issuedAt}, nil
}
