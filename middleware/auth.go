package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"

	"github.com/Radeon2211/eshopping-api-sub000/models"
	"github.com/Radeon2211/eshopping-api-sub000/store"
)

const userContextKey = "user"

// ValidateToken parses the bearer token and loads the account behind it
// into the request context. The secret comes in at construction, not
// from the environment at request time.
func ValidateToken(secret string, users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			c.Abort()
			return
		}
		tokenString = strings.TrimPrefix(tokenString, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("invalid token signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}
		userID, _ := claims["user_id"].(string)

		user, err := users.GetUser(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Account no longer exists"})
			c.Abort()
			return
		}

		c.Set(userContextKey, user)
		c.Set("user_id", user.ID)
		c.Next()
	}
}

// RequireActive rejects accounts that have not finished activation.
// Checkout-affecting endpoints sit behind this gate.
func RequireActive() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		if user.Status != models.UserStatusActive {
			c.JSON(http.StatusForbidden, gin.H{"error": "Account is not activated"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the account loaded by ValidateToken.
func CurrentUser(c *gin.Context) (models.User, bool) {
	val, exists := c.Get(userContextKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := val.(models.User)
	return user, ok
}

// SetCurrentUser places an account in the context directly. Used by
// handler tests to stand in for ValidateToken.
func SetCurrentUser(c *gin.Context, user models.User) {
	c.Set(userContextKey, user)
	c.Set("user_id", user.ID)
}
