// Package token issues and verifies signed form-access tokens.
//
// Tokens are stateless HS256 JWTs carrying the invitee's identity. Nothing
// is stored server-side, so a token stays redeemable until it expires;
// feedback records are append-only, which makes replays harmless.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TTL is the fixed lifetime of a form-access token.
const TTL = 24 * time.Hour

// ErrInvalidToken covers bad signatures, malformed tokens, and expiry.
var ErrInvalidToken = errors.New("invalid or expired token")

// Identity is the claim set returned by a successful Verify.
type Identity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type formClaims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type Service struct {
	secret []byte
	now    func() time.Time
}

func NewService(secret string) *Service {
	return &Service{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// Issue signs a token binding name and email for the next 24 hours.
// The jti claim makes individual links identifiable in logs.
func (s *Service) Issue(name, email string) (string, error) {
	now := s.now()
	claims := formClaims{
		Name:  name,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks signature and expiry and returns the embedded identity.
// It has no side effects and may be called any number of times.
func (s *Service) Verify(tokenString string) (Identity, error) {
	var claims formClaims
	tok, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithTimeFunc(s.now))
	if err != nil || !tok.Valid {
		return Identity{}, ErrInvalidToken
	}
	return Identity{Name: claims.Name, Email: claims.Email}, nil
}
