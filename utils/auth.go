// utils/auth.go
package utils

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	"printshop-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context keys set by AuthMiddleware.
const (
	ContextUserID = "userId"
	ContextEmail  = "email"
	ContextName   = "name"
	ContextRole   = "role"
)

// Generate JWT secret key
func GenerateJWTSecret() string {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		panic("failed to generate JWT secret")
	}
	return base64.StdEncoding.EncodeToString(key)
}

type TokenManager struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, expiry time.Duration) *TokenManager {
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return &TokenManager{
		secret: []byte(secret),
		expiry: expiry,
		now:    time.Now,
	}
}

func (m *TokenManager) Expiry() time.Duration {
	return m.expiry
}

// Generate JWT token
func (m *TokenManager) GenerateToken(user models.User) (string, error) {
	if len(m.secret) == 0 {
		return "", errors.New("JWT secret not set")
	}
	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"name":  user.Name,
		"role":  user.Role,
		"exp":   now.Add(m.expiry).Unix(),
		"iat":   now.Unix(),
	})
	return token.SignedString(m.secret)
}

// ParseToken validates the signature and expiry and returns the user encoded
// in the claims.
func (m *TokenManager) ParseToken(tokenString string) (models.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		return models.User{}, err
	}
	if !token.Valid {
		return models.User{}, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.User{}, errors.New("invalid token claims")
	}
	user := models.User{}
	user.ID, _ = claims["sub"].(string)
	user.Email, _ = claims["email"].(string)
	user.Name, _ = claims["name"].(string)
	user.Role, _ = claims["role"].(string)
	if user.ID == "" {
		return models.User{}, errors.New("invalid token claims")
	}
	return user, nil
}

// Auth middleware
func (m *TokenManager) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			if cookie, err := c.Cookie("token"); err == nil {
				tokenString = cookie
			}
		}
		if tokenString == "" {
			RespondWithError(c, http.StatusUnauthorized, "Authorization header required")
			return
		}

		if len(tokenString) > 7 && strings.ToUpper(tokenString[0:6]) == "BEARER" {
			tokenString = tokenString[7:]
		}

		user, err := m.ParseToken(tokenString)
		if err != nil {
			RespondWithError(c, http.StatusUnauthorized, "Invalid token")
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextEmail, user.Email)
		c.Set(ContextName, user.Name)
		c.Set(ContextRole, user.Role)

		c.Next()
	}
}
