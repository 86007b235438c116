package productControllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Radeon2211/eshopping-api-sub000/checkout"
	"github.com/Radeon2211/eshopping-api-sub000/middleware"
	"github.com/Radeon2211/eshopping-api-sub000/models"
	"github.com/Radeon2211/eshopping-api-sub000/store"
)

// Price bounds for a listing.
var (
	minPrice = decimal.RequireFromString("0.01")
	maxPrice = decimal.NewFromInt(1000000)
)

const maxPhotoBytes = 6 << 20

type ProductInput struct {
	Name        string `json:"name" binding:"required,max=150"`
	Description string `json:"description" binding:"max=800"`
	Price       string `json:"price" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required,min=1"`
	Condition   string `json:"condition" binding:"required"`
}

type ProductUpdateInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *string `json:"price"`
	Quantity    *int    `json:"quantity"`
	Condition   *string `json:"condition"`
}

func parsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, errors.New("price must be a decimal number")
	}
	if price.LessThan(minPrice) || price.GreaterThan(maxPrice) {
		return decimal.Decimal{}, errors.New("price is out of range")
	}
	return price.Round(2), nil
}

// GET /products
func ListProducts(catalog store.CatalogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

		filter := store.ProductFilter{
			Query:    c.Query("q"),
			SellerID: c.Query("seller"),
			Limit:    limit,
			Offset:   offset,
		}
		if raw := c.Query("condition"); raw != "" {
			condition, ok := models.ParseCondition(raw)
			if !ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown condition"})
				return
			}
			filter.Condition = condition
		}

		products, total, err := catalog.ListProducts(c.Request.Context(), filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"products": checkout.ProductsToView(products),
			"total":    total,
		})
	}
}

// GET /products/:id
func GetProduct(catalog store.CatalogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := catalog.GetProduct(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"product": checkout.ProductToView(product)})
	}
}

// GET /products/:id/photo
//
// The only endpoint that serves photo bytes; everything else reduces
// the photo to a presence flag.
func GetProductPhoto(catalog store.CatalogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := catalog.GetProduct(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}
		if !product.HasPhoto() {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product has no photo"})
			return
		}
		c.Data(http.StatusOK, http.DetectContentType(product.Photo), product.Photo)
	}
}

// POST /products
func CreateProduct(catalog store.CatalogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		price, err := parsePrice(input.Price)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		condition, ok := models.ParseCondition(input.Condition)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown condition"})
			return
		}

		product := models.Product{
			ID:          uuid.NewString(),
			Name:        input.Name,
			Description: input.Description,
			Price:       price,
			Quantity:    input.Quantity,
			Condition:   condition,
			SellerID:    user.ID,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}
		if err := catalog.CreateProduct(c.Request.Context(), &product); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		product.Seller = &user
		c.JSON(http.StatusCreated, gin.H{"product": checkout.ProductToView(product)})
	}
}

// PATCH /products/:id
func UpdateProduct(catalog store.CatalogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		product, err := catalog.GetProduct(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}
		if product.SellerID != user.ID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the seller can edit a product"})
			return
		}

		var input ProductUpdateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Name != nil {
			product.Name = *input.Name
		}
		if input.Description != nil {
			product.Description = *input.Description
		}
		if input.Price != nil {
			price, err := parsePrice(*input.Price)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			product.Price = price
		}
		if input.Quantity != nil {
			if *input.Quantity < 1 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be at least 1"})
				return
			}
			product.Quantity = *input.Quantity
		}
		if input.Condition != nil {
			condition, ok := models.ParseCondition(*input.Condition)
			if !ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown condition"})
				return
			}
			product.Condition = condition
		}
		product.UpdatedAt = time.Now()

		if err := catalog.UpdateProduct(c.Request.Context(), &product); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"product": checkout.ProductToView(product)})
	}
}

// PUT /products/:id/photo
func UploadProductPhoto(catalog store.CatalogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		product, err := catalog.GetProduct(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}
		if product.SellerID != user.ID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the seller can edit a product"})
			return
		}

		photo, err := io.ReadAll(io.LimitReader(c.Request.Body, maxPhotoBytes+1))
		if err != nil || len(photo) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Photo body is required"})
			return
		}
		if len(photo) > maxPhotoBytes {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Photo is too large"})
			return
		}

		product.Photo = photo
		product.UpdatedAt = time.Now()
		if err := catalog.UpdateProduct(c.Request.Context(), &product); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save photo"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"product": checkout.ProductToView(product)})
	}
}

// DELETE /products/:id (seller)
func DeleteProduct(catalog store.CatalogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		product, err := catalog.GetProduct(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}
		if product.SellerID != user.ID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the seller can delete a product"})
			return
		}

		if err := catalog.DeleteProduct(c.Request.Context(), product.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
	}
}

// DELETE /admin/products/:id (API key)
func AdminDeleteProduct(catalog store.CatalogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := catalog.DeleteProduct(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
	}
}
