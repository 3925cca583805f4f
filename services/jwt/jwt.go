package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

const (
	// AccessTokenValidity is how long an access token stays usable.
	AccessTokenValidity = time.Hour * 24
	// RefreshTokenValidity is how long a refresh token stays usable.
	RefreshTokenValidity = time.Hour * 24 * 7
)

var ErrInvalidToken = errors.New("invalid token")

// GenerateTokenPair returns a signed access and refresh token for the user.
func GenerateTokenPair(email, secret, userID, role string) (string, string, error) {
	if secret == "" {
		return "", "", errors.New("JWT secret is missing")
	}

	accessClaims := jwt.MapClaims{
		"id":    userID,
		"email": email,
		"role":  role,
		"type":  "access",
		"exp":   time.Now().Add(AccessTokenValidity).Unix(),
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString([]byte(secret))
	if err != nil {
		return "", "", err
	}

	refreshClaims := jwt.MapClaims{
		"id":   userID,
		"type": "refresh",
		"exp":  time.Now().Add(RefreshTokenValidity).Unix(),
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString([]byte(secret))
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// ValidateAndGetClaims parses a token and returns its claims if the
// signature checks out and it has not expired.
func ValidateAndGetClaims(tokenString, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
