package utils

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	sessionIssuer    = "hydrationtracker-api"
	minSessionSecret = 32
	// TokenTTL bounds both the session token and the auth cookie.
	TokenTTL = 7 * 24 * time.Hour
)

var (
	ErrSessionSecret  = errors.New("JWT_SECRET is required")
	ErrInvalidSession = errors.New("invalid session token")
)

// SessionClaims identify the user a hydration session belongs to. Subject
// mirrors UserID so either can be trusted.
type SessionClaims struct {
	UserID int `json:"user_id"`
	jwt.RegisteredClaims
}

var sessionKey struct {
	once   sync.Once
	secret []byte
	err    error
}

// EnsureJWTReady reports a missing or weak JWT_SECRET at startup instead of
// on the first login.
func EnsureJWTReady() error {
	_, err := signingKey()
	return err
}

func signingKey() ([]byte, error) {
	sessionKey.once.Do(func() {
		raw := strings.TrimSpace(os.Getenv("JWT_SECRET"))
		if raw == "" {
			sessionKey.err = ErrSessionSecret
			return
		}
		if len(raw) < minSessionSecret {
			sessionKey.err = fmt.Errorf("%w: need at least %d characters", ErrSessionSecret, minSessionSecret)
			return
		}
		sessionKey.secret = []byte(raw)
	})
	return sessionKey.secret, sessionKey.err
}

func GenerateToken(userID int) (string, error) {
	return generateTokenAt(userID, time.Now())
}

func generateTokenAt(userID int, issuedAt time.Time) (string, error) {
	if userID <= 0 {
		return "", fmt.Errorf("session for user %d: %w", userID, ErrInvalidSession)
	}
	secret, err := signingKey()
	if err != nil {
		return "", err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			Issuer:    sessionIssuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(TokenTTL)),
		},
	})
	return token.SignedString(secret)
}

// ValidateToken parses a cookie or Bearer token. Every rejection wraps
// ErrInvalidSession; a misconfigured secret is returned as is.
func ValidateToken(raw string) (*SessionClaims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrInvalidSession
	}
	secret, err := signingKey()
	if err != nil {
		return nil, err
	}

	claims := &SessionClaims{}
	_, err = jwt.ParseWithClaims(raw, claims,
		func(*jwt.Token) (interface{}, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	if claims.UserID <= 0 || claims.Subject != strconv.Itoa(claims.UserID) {
		return nil, fmt.Errorf("%w: subject does not match user", ErrInvalidSession)
	}
	return claims, nil
}
