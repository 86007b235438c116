package routes

import (
	"github.com/gin-gonic/gin"

	productControllers "github.com/Radeon2211/eshopping-api-sub000/controllers/product"
	"github.com/Radeon2211/eshopping-api-sub000/middleware"
)

// SetupAdminRoutes registers the API-key-protected moderation surface.
func SetupAdminRoutes(r *gin.Engine, d Deps) {
	admin := r.Group("/admin")
	admin.Use(middleware.ValidateAPIKey(d.Cfg.AdminAPIKey))
	{
		admin.DELETE("/products/:id", productControllers.AdminDeleteProduct(d.Catalog))
	}
}
