package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	errNoToken  = errors.New("no bearer token")
	errBadToken = errors.New("invalid token")
)

type accountClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// signToken issues an HS256 JWT for the account, valid for ttl.
func signToken(secret []byte, ttl time.Duration, accountID, email string) (string, error) {
	now := time.Now()
	claims := accountClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// parseToken verifies signature and expiry and returns the account id.
func parseToken(secret []byte, token string) (string, error) {
	var claims accountClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return "", errBadToken
	}
	return claims.Subject, nil
}

// tokenFromRequest extracts the bearer token from the Authorization header.
func tokenFromRequest(r *http.Request) (string, error) {
	auth := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(auth, "Bearer ")
	if !found || token == "" {
		return "", errNoToken
	}
	return token, nil
}
