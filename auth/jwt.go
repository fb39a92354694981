package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	// TokenTTL is how long an issued bearer token stays valid.
	TokenTTL = 30 * 24 * time.Hour
)

// Claims are the JWT claims carried by every bearer token. The account id
// travels in the registered Subject claim.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Tokens issues and verifies bearer tokens for both identity spaces.
type Tokens struct {
	secret []byte
}

func NewTokens(secret string) (*Tokens, error) {
	if secret == "" {
		return nil, errors.New("auth: empty signing secret")
	}
	return &Tokens{secret: []byte(secret)}, nil
}

// Issue signs a token for the given account id and role.
func (t *Tokens) Issue(accountID, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Parse validates a token and returns its claims.
func (t *Tokens) Parse(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, errors.New("auth: empty token")
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &Claims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return t.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("auth: invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("auth: missing subject")
	}
	if claims.Role != RoleUser && claims.Role != RoleAdmin {
		return nil, errors.New("auth: invalid role")
	}
	return claims, nil
}
