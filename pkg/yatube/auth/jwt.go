package auth

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenIssuer = "yatube"

	// DefaultSessionTTL matches the lifetime of a browser session cookie
	DefaultSessionTTL = 14 * 24 * time.Hour
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Claims is the identity carried by a session token
type Claims struct {
	UserID     uint
	Username   string
	SystemRole string
}

// sessionClaims is the wire form; the user id travels as the subject
type sessionClaims struct {
	Username   string `json:"username"`
	SystemRole string `json:"role"`
	jwt.RegisteredClaims
}

var parser = jwt.NewParser(
	jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	jwt.WithIssuer(tokenIssuer),
	jwt.WithExpirationRequired(),
	jwt.WithIssuedAt(),
)

func signingKey() []byte {
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		return []byte(secret)
	}
	// Development fallback
	return []byte("yatube-dev-secret-change-in-production")
}

// SessionTTL reads YATUBE_SESSION_TTL, falling back to DefaultSessionTTL
func SessionTTL() time.Duration {
	if d, err := time.ParseDuration(os.Getenv("YATUBE_SESSION_TTL")); err == nil && d > 0 {
		return d
	}
	return DefaultSessionTTL
}

// GenerateToken signs a session token for the given user
func GenerateToken(userID uint, username string, systemRole string) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Username:   username,
		SystemRole: systemRole,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL())),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey())
}

// ValidateToken checks the signature, issuer and expiry of a session token
func ValidateToken(tokenString string) (*Claims, error) {
	var sc sessionClaims
	_, err := parser.ParseWithClaims(tokenString, &sc, func(*jwt.Token) (interface{}, error) {
		return signingKey(), nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case err != nil:
		return nil, ErrInvalidToken
	}

	id, err := strconv.ParseUint(sc.Subject, 10, 64)
	if err != nil || id == 0 {
		return nil, ErrInvalidToken
	}

	return &Claims{
		UserID:     uint(id),
		Username:   sc.Username,
		SystemRole: sc.SystemRole,
	}, nil
}
