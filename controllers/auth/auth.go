package authControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Radeon2211/eshopping-api-sub000/models"
	"github.com/Radeon2211/eshopping-api-sub000/store"
)

type SignupInput struct {
	Username  string `json:"username" binding:"required,min=3,max=20"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=7,max=64"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Phone     string `json:"phone"`
	Street    string `json:"street" binding:"required"`
	ZipCode   string `json:"zipCode" binding:"required"`
	City      string `json:"city" binding:"required"`
	Country   string `json:"country" binding:"required"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ActivateInput struct {
	Token string `json:"token" binding:"required"`
}

// POST /users
func Signup(users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SignupInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}

		user := models.User{
			ID:              uuid.NewString(),
			Username:        input.Username,
			Email:           input.Email,
			PasswordHash:    string(hash),
			FirstName:       input.FirstName,
			LastName:        input.LastName,
			Phone:           input.Phone,
			Status:          models.UserStatusPending,
			ActivationToken: uuid.NewString(),
			Address: models.Address{
				Street:  input.Street,
				ZipCode: input.ZipCode,
				City:    input.City,
				Country: input.Country,
			},
			CreatedAt: time.Now(),
		}

		if err := users.CreateUser(c.Request.Context(), &user); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				c.JSON(http.StatusConflict, gin.H{"error": "Username or email already taken"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
			return
		}

		// Email delivery is handled outside this service; until then the
		// activation token rides along in the response.
		c.JSON(http.StatusCreated, gin.H{
			"user":            user,
			"activationToken": user.ActivationToken,
		})
	}
}

// POST /users/login
func Login(users store.UserStore, secret string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		user, err := users.GetByEmail(c.Request.Context(), input.Email)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": user.ID,
			"exp":     time.Now().Add(ttl).Unix(),
		})
		signed, err := token.SignedString([]byte(secret))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": signed, "user": user})
	}
}

// POST /users/activate
func Activate(users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ActivateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		user, err := users.ActivateByToken(c.Request.Context(), input.Token)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown activation token"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to activate account"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}
