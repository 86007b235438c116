package userControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Radeon2211/eshopping-api-sub000/middleware"
	"github.com/Radeon2211/eshopping-api-sub000/models"
	"github.com/Radeon2211/eshopping-api-sub000/store"
)

type UpdateUserInput struct {
	FirstName *string         `json:"firstName"`
	LastName  *string         `json:"lastName"`
	Phone     *string         `json:"phone"`
	Address   *models.Address `json:"address"`
}

// GET /users/me
func Me() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

// PATCH /users/me
func UpdateMe(users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input UpdateUserInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if input.FirstName != nil {
			updates["first_name"] = *input.FirstName
		}
		if input.LastName != nil {
			updates["last_name"] = *input.LastName
		}
		if input.Phone != nil {
			updates["phone"] = *input.Phone
		}
		if input.Address != nil {
			updates["street"] = input.Address.Street
			updates["zip_code"] = input.Address.ZipCode
			updates["city"] = input.Address.City
			updates["country"] = input.Address.Country
		}

		if len(updates) > 0 {
			if err := users.UpdateUser(c.Request.Context(), user.ID, updates); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update account"})
				return
			}
		}

		updated, err := users.GetUser(c.Request.Context(), user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch account"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": updated})
	}
}

// DELETE /users/me
//
// Removes the account together with its cart and listed products.
// Orders are left alone; their seller/buyer references go null.
func DeleteMe(users store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		if err := users.DeleteUser(c.Request.Context(), user.ID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
	}
}
