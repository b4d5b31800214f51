package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims are the signed session claims. The credential binds identity only;
// the permission level is deliberately absent and re-read from the store on
// every gated call.
type Claims struct {
	TeacherID int64  `json:"teacher_id"`
	Username  string `json:"username"`
	jwt.RegisteredClaims
}

// Codec issues and verifies stateless HS256 session credentials. There is no
// server-side session store; expiry is enforced by the token itself.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec constructs a Codec. ttl should stay short (under an hour); a fresh
// credential is issued at every login.
func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// TTL exposes the configured credential lifetime.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a new credential for the account.
func (c *Codec) Issue(teacherID int64, username string) (string, error) {
	now := time.Now()
	claims := Claims{
		TeacherID: teacherID,
		Username:  username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign credential: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a credential, returning the bound username.
// Implements the gate resolver's CredentialVerifier.
func (c *Codec) Verify(credential string) (string, error) {
	token, err := jwt.ParseWithClaims(credential, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("auth: parse credential: %w", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", errors.New("auth: invalid credential")
	}
	return claims.Username, nil
}
