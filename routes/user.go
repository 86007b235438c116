package routes

import (
	"github.com/gin-gonic/gin"

	cartControllers "github.com/Radeon2211/eshopping-api-sub000/controllers/cart"
	userControllers "github.com/Radeon2211/eshopping-api-sub000/controllers/user"
	"github.com/Radeon2211/eshopping-api-sub000/middleware"
)

// SetupUserRoutes registers profile and cart endpoints (JWT protected;
// cart mutations additionally require an activated account).
func SetupUserRoutes(r *gin.Engine, d Deps) {
	auth := middleware.ValidateToken(d.Cfg.JWTSecret, d.Users)

	me := r.Group("/users/me")
	me.Use(auth)
	{
		me.GET("/", userControllers.Me())
		me.PATCH("/", userControllers.UpdateMe(d.Users))
		me.DELETE("/", userControllers.DeleteMe(d.Users))
	}

	cart := r.Group("/cart")
	cart.Use(auth, middleware.RequireActive())
	{
		cart.GET("/", cartControllers.GetCart(d.Catalog, d.Carts))
		cart.POST("/", cartControllers.AddItem(d.Catalog, d.Carts))
		cart.PATCH("/:itemId", cartControllers.UpdateItem(d.Catalog, d.Carts))
		cart.DELETE("/:itemId", cartControllers.DeleteItem(d.Carts))
		cart.DELETE("/", cartControllers.ClearCart(d.Carts))
	}
}
