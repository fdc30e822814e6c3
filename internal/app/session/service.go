package session

import (
	"fmt"
	"strconv"
	"time"

	"github.com/form3tech-oss/jwt-go"
)

const tokenLifetime = 24 * time.Hour

// Service mints and verifies HS256 session tokens. The token is the opaque
// credential a client presents on the websocket; the owner id lives in the
// subject claim.
type Service struct {
	secret string
	issuer string
}

// NewService constructs a session service with the signing secret and
// issuer name embedded in every token.
func NewService(secret, issuer string) *Service {
	return &Service{secret: secret, issuer: issuer}
}

// Mint signs a session token for the given owner id.
func (s *Service) Mint(ownerID int) (string, error) {
	if s == nil || s.secret == "" {
		return "", fmt.Errorf("session service is not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"iss": s.issuer,
		"sub": strconv.Itoa(ownerID),
		"iat": now.Unix(),
		"exp": now.Add(tokenLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

// Verify parses a session token and returns the owner id it was minted for.
func (s *Service) Verify(tokenString string) (int, error) {
	if s == nil || s.secret == "" {
		return 0, fmt.Errorf("session service is not configured")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return 0, fmt.Errorf("parse session token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, fmt.Errorf("invalid session token")
	}
	if iss, _ := claims["iss"].(string); iss != s.issuer {
		return 0, fmt.Errorf("unexpected token issuer %q", claims["iss"])
	}

	sub, _ := claims["sub"].(string)
	ownerID, err := strconv.Atoi(sub)
	if err != nil {
		return 0, fmt.Errorf("malformed token subject %q", sub)
	}
	return ownerID, nil
}
