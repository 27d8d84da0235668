package auth

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// issueJWT generates a JWT token for a logged-in user
func issueJWT(email, role, userID, name string) string {
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"role":    role,
		"name":    name,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		// In production, you may want to handle this differently
		return ""
	}

	return signedToken
}
