package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

// SessionLifetime is how long an admin session stays valid after login.
const SessionLifetime = 24 * time.Hour

// GenerateJWT issues an admin session token. The login_time claim is the
// session anchor: middleware rejects tokens whose login is older than
// SessionLifetime even if the token itself has not expired yet.
func GenerateJWT(userID int64, email string, roleID int, tokenVersion int64, loginTime time.Time) (string, error) {
	jwtSecret := viper.GetString("JWT_SECRET")

	claims := jwt.MapClaims{
		"user_id":       userID,
		"email":         email,
		"role_id":       roleID,
		"token_version": tokenVersion,
		"login_time":    loginTime.Unix(),
		"exp":           loginTime.Add(SessionLifetime).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(jwtSecret))
	if err != nil {
		fmt.Println("Error signing token:", err)
		return "", err
	}
	return tokenString, nil
}
