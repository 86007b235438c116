package cartControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Radeon2211/eshopping-api-sub000/checkout"
	"github.com/Radeon2211/eshopping-api-sub000/middleware"
	"github.com/Radeon2211/eshopping-api-sub000/models"
	"github.com/Radeon2211/eshopping-api-sub000/store"
)

type CartItemInput struct {
	ProductID string `json:"product" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type UpdateQuantityInput struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// CartItemView pairs a cart entry with its product resolved against the
// live catalog. A deleted product shows up as null, not as an error;
// reconciliation is what eventually drops it.
type CartItemView struct {
	ID       string                `json:"id"`
	Quantity int                   `json:"quantity"`
	Product  *checkout.ProductView `json:"product"`
}

// GET /cart
func GetCart(catalog store.CatalogStore, carts store.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		items, err := carts.GetCart(c.Request.Context(), user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		views := make([]CartItemView, len(items))
		for i, item := range items {
			views[i] = CartItemView{ID: item.ID, Quantity: item.Quantity}
			product, err := catalog.GetProduct(c.Request.Context(), item.ProductID)
			if err == nil {
				view := checkout.ProductToView(product)
				views[i].Product = &view
			} else if !errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"cart": views})
	}
}

// POST /cart
func AddItem(catalog store.CatalogStore, carts store.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if _, err := uuid.Parse(input.ProductID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed product id"})
			return
		}

		product, err := catalog.GetProduct(c.Request.Context(), input.ProductID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product does not exist"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			return
		}
		if product.SellerID == user.ID {
			c.JSON(http.StatusForbidden, gin.H{"error": "You cannot add your own product to the cart"})
			return
		}

		items, err := carts.GetCart(c.Request.Context(), user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		merged := false
		for i := range items {
			if items[i].ProductID != input.ProductID {
				continue
			}
			items[i].Quantity += input.Quantity
			if items[i].Quantity > product.Quantity {
				items[i].Quantity = product.Quantity
			}
			merged = true
			break
		}
		if !merged {
			if len(items) >= models.MaxCartItems {
				c.JSON(http.StatusConflict, gin.H{"error": "Cart is full"})
				return
			}
			quantity := input.Quantity
			if quantity > product.Quantity {
				quantity = product.Quantity
			}
			items = append(items, models.CartItem{
				ID:        uuid.NewString(),
				UserID:    user.ID,
				ProductID: input.ProductID,
				Quantity:  quantity,
				CreatedAt: time.Now(),
			})
		}

		if err := carts.ReplaceCart(c.Request.Context(), user.ID, items); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"cart": items})
	}
}

// PATCH /cart/:itemId
func UpdateItem(catalog store.CatalogStore, carts store.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		itemID := c.Param("itemId")

		var input UpdateQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		items, err := carts.GetCart(c.Request.Context(), user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		found := false
		for i := range items {
			if items[i].ID != itemID {
				continue
			}
			quantity := input.Quantity
			product, err := catalog.GetProduct(c.Request.Context(), items[i].ProductID)
			if err == nil && quantity > product.Quantity {
				quantity = product.Quantity
			}
			items[i].Quantity = quantity
			found = true
			break
		}
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}

		if err := carts.ReplaceCart(c.Request.Context(), user.ID, items); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"cart": items})
	}
}

// DELETE /cart/:itemId
func DeleteItem(carts store.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		itemID := c.Param("itemId")

		items, err := carts.GetCart(c.Request.Context(), user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		kept := items[:0]
		for _, item := range items {
			if item.ID != itemID {
				kept = append(kept, item)
			}
		}
		if len(kept) == len(items) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}

		if err := carts.ReplaceCart(c.Request.Context(), user.ID, kept); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"cart": kept})
	}
}

// DELETE /cart
func ClearCart(carts store.CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		if err := carts.ClearCart(c.Request.Context(), user.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"cart": []models.CartItem{}})
	}
}
