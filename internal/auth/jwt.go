// Package auth issues and verifies the admin bearer token and checks the
// admin passphrase.
package auth

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for tokens that fail signature, expiry or
// shape checks.
var ErrInvalidToken = errors.New("invalid token")

// JWTManager signs and validates admin tokens.
type JWTManager struct {
	keys      map[string][]byte // kid -> HMAC secret
	activeKid string            // kid used for new tokens; "" for single-secret mode
	duration  time.Duration     // How long tokens are valid (24 hours by default)
	now       func() time.Time
}

// Claims is the admin token payload. There is a single admin role, so the
// only custom claim says the bearer is the admin.
type Claims struct {
	Admin bool `json:"admin"`
	jwt.RegisteredClaims
}

// NewJWTManager returns a manager signing with one secret.
func NewJWTManager(secretKey string, duration time.Duration) *JWTManager {
	return &JWTManager{
		keys:     map[string][]byte{"": []byte(secretKey)},
		duration: duration,
		now:      time.Now,
	}
}

// NewJWTManagerFromKeys returns a manager that signs with keys[activeKid]
// and verifies tokens signed by any key in the set, picked by the kid
// header. When activeKid is empty or unknown the lexically first kid is used.
func NewJWTManagerFromKeys(keys map[string]string, activeKid string, duration time.Duration) *JWTManager {
	m := &JWTManager{keys: make(map[string][]byte, len(keys)), duration: duration, now: time.Now}
	kids := make([]string, 0, len(keys))
	for kid, secret := range keys {
		m.keys[kid] = []byte(secret)
		kids = append(kids, kid)
	}
	sort.Strings(kids)
	if _, ok := m.keys[activeKid]; ok {
		m.activeKid = activeKid
	} else if len(kids) > 0 {
		m.activeKid = kids[0]
	}
	return m
}

// GenerateToken issues a signed admin token and its expiry.
func (m *JWTManager) GenerateToken() (string, time.Time, error) {
	issuedAt := m.now()
	expiresAt := issuedAt.Add(m.duration)

	claims := &Claims{
		Admin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	// HS256 (HMAC with SHA-256)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	if m.activeKid != "" {
		token.Header["kid"] = m.activeKid
	}

	tokenString, err := token.SignedString(m.keys[m.activeKid])
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// VerifyToken parses and validates a token and returns its claims. Any
// failure wraps ErrInvalidToken.
func (m *JWTManager) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Security check: ensure token was signed with HMAC (not asymmetric key)
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		kid, _ := token.Header["kid"].(string)
		key, ok := m.keys[kid]
		if !ok {
			return nil, fmt.Errorf("unknown key id %q", kid)
		}
		return key, nil
	}, jwt.WithTimeFunc(m.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || !claims.Admin {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
