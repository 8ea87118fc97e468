package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/taskvault/go-todo/config"
)

// TokenTTL là thời hạn của session token
const TokenTTL = 24 * time.Hour

// CookieName là tên cookie chứa session token
const CookieName = "token"

// Claims là danh tính được nhúng trong token
type Claims struct {
	UserID   int64
	Username string
	Role     string
}

var errInvalidToken = errors.New("invalid or expired token")

// GenerateToken tạo JWT token chứa user id, username và role
func GenerateToken(userID int64, username, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"role":     role,
		"exp":      time.Now().Add(TokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.Get().JWTSecret))
}

// ParseToken kiểm tra chữ ký và hạn của token, trả về danh tính bên trong
func ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.Get().JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, errInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errInvalidToken
	}

	// JSON numbers decode as float64
	userID, ok := mapClaims["user_id"].(float64)
	if !ok {
		return nil, errInvalidToken
	}
	username, ok := mapClaims["username"].(string)
	if !ok {
		return nil, errInvalidToken
	}
	role, ok := mapClaims["role"].(string)
	if !ok {
		return nil, errInvalidToken
	}

	return &Claims{
		UserID:   int64(userID),
		Username: username,
		Role:     role,
	}, nil
}
