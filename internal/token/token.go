// Package token implements stateless session tokens (issue and verify).
package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// Issuer and Audience are embedded in every token and checked on verify.
	Issuer   = "ripple-api"
	Audience = "ripple-client"
)

// ErrInvalidToken is returned for any token that fails verification: bad
// signature, wrong issuer/audience, malformed claims, or past expiry. There
// is no revocation list; expiry is the only invalidation mechanism.
var ErrInvalidToken = errors.New("invalid or expired token")

// Identity is the authenticated principal embedded in a token.
type Identity struct {
	UserID   uint
	Username string
}

// Service issues and verifies HMAC-signed JWTs. The signing secret is
// process-wide configuration read once at startup.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService returns a token service with the given signing secret and token
// lifetime.
func NewService(secret string, ttl time.Duration) (*Service, error) {
	if secret == "" {
		return nil, errors.New("token signing secret is required")
	}
	if ttl <= 0 {
		return nil, errors.New("token TTL must be positive")
	}
	return &Service{secret: []byte(secret), ttl: ttl}, nil
}

// TTL returns the configured token lifetime.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Issue creates a signed token embedding the identity, expiring after the
// configured TTL.
func (s *Service) Issue(id Identity) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(id.UserID), 10),
		"username": id.Username,
		"iss":      Issuer,
		"aud":      Audience,
		"exp":      now.Add(s.ttl).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"jti":      generateJTI(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify parses and validates a token string, returning the embedded
// identity. All failure modes collapse into ErrInvalidToken; callers must not
// distinguish them in responses.
func (s *Service) Verify(tokenString string) (Identity, error) {
	t, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	},
		jwt.WithIssuer(Issuer),
		jwt.WithAudience(Audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !t.Valid {
		return Identity{}, ErrInvalidToken
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil || userID == 0 {
		return Identity{}, ErrInvalidToken
	}

	username, _ := claims["username"].(string)

	return Identity{UserID: uint(userID), Username: username}, nil
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
