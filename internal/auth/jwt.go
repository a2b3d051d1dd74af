package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultClientTokenTTL is used when a token is minted without an explicit TTL.
const DefaultClientTokenTTL = 90 * 24 * time.Hour

const clientSubject = "api-client"

// ClientClaims identify an API caller.
type ClientClaims struct {
	ClientID string `json:"cid"`
	jwt.RegisteredClaims
}

// SignClientToken signs an HS256 token for clientID.
func SignClientToken(secret string, clientID string, ttl time.Duration) (string, error) {
	clientID = strings.TrimSpace(clientID)
	if secret == "" {
		return "", errors.New("secret is empty")
	}
	if clientID == "" {
		return "", errors.New("client id is empty")
	}
	if ttl <= 0 {
		ttl = DefaultClientTokenTTL
	}
	now := time.Now()
	claims := ClientClaims{
		ClientID: clientID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   clientSubject,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseClientToken verifies tokenString and returns its claims.
func ParseClientToken(secret string, tokenString string) (*ClientClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &ClientClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*ClientClaims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject != clientSubject || claims.ClientID == "" {
		return nil, errors.New("not a client token")
	}
	return claims, nil
}
