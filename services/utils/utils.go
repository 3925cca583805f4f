package utils

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// TokenClaims represents the claims expected in a password reset token.
type TokenClaims struct {
	Email string `json:"email"`
	jwt.StandardClaims
}

// GeneratePasswordResetToken issues a short-lived token tied to the
// user's email, mailed out as part of the reset link.
func GeneratePasswordResetToken(email string, secret string) (string, error) {
	if secret == "" {
		return "", errors.New("JWT secret key is missing")
	}

	resetTokenClaims := jwt.MapClaims{
		"email": email,
		"exp":   time.Now().Add(time.Hour * 1).Unix(),
		"type":  "password_reset_token",
	}

	resetToken := jwt.NewWithClaims(jwt.SigningMethodHS256, resetTokenClaims)
	return resetToken.SignedString([]byte(secret))
}

// VerifyResetToken verifies the reset token, returning claims or an error.
func VerifyResetToken(tokenString, secret string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*TokenClaims); ok && token.Valid {
		if claims.ExpiresAt < time.Now().Unix() {
			return nil, errors.New("token has expired")
		}
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

// HashPassword hashes the provided password using bcrypt.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares a plain password with its hashed version.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
