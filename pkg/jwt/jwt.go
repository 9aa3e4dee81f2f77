package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every parse failure: expiry, bad signature,
// unexpected signing method or malformed claims.
var ErrInvalidToken = errors.New("invalid token")

// Claims carries the standard JWT claims plus the application fields. Role is
// embedded so middleware can authorize without a database round trip.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id"`
	Role      string `json:"role"` // "owner" | "accountant" | "operator"
}

// Signer issues and validates the application's HS256 tokens. Build one at
// startup from config and share it between the login flow and the middleware
// so both sides agree on secret, issuer and lifetime.
type Signer struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewSigner builds a Signer. expMinutes is the token lifetime.
func NewSigner(secret, issuer string, expMinutes int) *Signer {
	return &Signer{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    time.Duration(expMinutes) * time.Minute,
	}
}

// Generate signs a token carrying userID, companyID and role.
func (s *Signer) Generate(userID, companyID, role string) (string, error) {
	if len(s.secret) == 0 {
		return "", fmt.Errorf("jwt: empty secret")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		UserID:    userID,
		CompanyID: companyID,
		Role:      role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse validates the token and returns its claims, or ErrInvalidToken.
func (s *Signer) Parse(tokenString string) (*Claims, error) {
	if len(s.secret) == 0 {
		return nil, fmt.Errorf("jwt: empty secret")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
