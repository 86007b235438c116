package routes

import (
	"github.com/gin-gonic/gin"

	productControllers "github.com/Radeon2211/eshopping-api-sub000/controllers/product"
	"github.com/Radeon2211/eshopping-api-sub000/middleware"
)

// SetupProductRoutes registers the catalog endpoints. Browsing is
// public; listing management requires an activated seller.
func SetupProductRoutes(r *gin.Engine, d Deps) {
	products := r.Group("/products")
	{
		products.GET("/", productControllers.ListProducts(d.Catalog))
		products.GET("/:id", productControllers.GetProduct(d.Catalog))
		products.GET("/:id/photo", productControllers.GetProductPhoto(d.Catalog))
	}

	seller := r.Group("/products")
	seller.Use(middleware.ValidateToken(d.Cfg.JWTSecret, d.Users), middleware.RequireActive())
	{
		seller.POST("/", productControllers.CreateProduct(d.Catalog))
		seller.PATCH("/:id", productControllers.UpdateProduct(d.Catalog))
		seller.PUT("/:id/photo", productControllers.UploadProductPhoto(d.Catalog))
		seller.DELETE("/:id", productControllers.DeleteProduct(d.Catalog))
	}
}
