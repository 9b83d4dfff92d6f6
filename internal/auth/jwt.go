package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "dulin-storefront"

// Claims represents the JWT claims for a session token.
type Claims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// JWTManager handles session token generation and validation.
type JWTManager struct {
	secret         []byte
	sessionExpiry  time.Duration
	rememberExpiry time.Duration
}

// NewJWTManager creates a new JWT manager. sessionExpiry applies to normal
// logins and rememberExpiry to "remember me" logins.
func NewJWTManager(secret string, sessionExpiry, rememberExpiry time.Duration) *JWTManager {
	return &JWTManager{
		secret:         []byte(secret),
		sessionExpiry:  sessionExpiry,
		rememberExpiry: rememberExpiry,
	}
}

// Generate creates a signed session token for the user. remember extends the
// expiry to the long-lived duration.
func (m *JWTManager) Generate(userID int64, email string, remember bool) (string, error) {
	expiry := m.sessionExpiry
	if remember {
		expiry = m.rememberExpiry
	}

	now := time.Now().UTC()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate parses and validates a session token, returning its claims.
func (m *JWTManager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}
