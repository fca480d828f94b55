package services

import (
	"time"

	"noteshare/model"
	"noteshare/utils"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateToken mints the bearer token the client sends on every
// authenticated request. Claims carry the user's public identity so
// handlers never need a user lookup for attribution, plus the device
// session ID so revoking the session invalidates the token.
func GenerateToken(user *model.User, sessionID string) (string, error) {
	expirationTime := time.Now().Add(time.Duration(utils.JWTExpirationTime) * time.Second)

	claims := jwt.MapClaims{
		"user_id":    user.UserID,
		"username":   user.Username,
		"email":      user.Email,
		"session_id": sessionID,
		"exp":        expirationTime.Unix(),
		"iat":        time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(utils.JWTSecretKey))
}
