package routes

import (
	"github.com/gin-gonic/gin"

	orderControllers "github.com/Radeon2211/eshopping-api-sub000/controllers/order"
	transactionControllers "github.com/Radeon2211/eshopping-api-sub000/controllers/transaction"
	"github.com/Radeon2211/eshopping-api-sub000/middleware"
)

// SetupCheckoutRoutes registers the reconciliation preview and the
// order commit/read endpoints. All of them require an activated account.
func SetupCheckoutRoutes(r *gin.Engine, d Deps) {
	auth := middleware.ValidateToken(d.Cfg.JWTSecret, d.Users)
	active := middleware.RequireActive()

	r.PATCH("/transaction", auth, active, transactionControllers.Preview(d.Catalog, d.Carts))

	orders := r.Group("/orders")
	orders.Use(auth, active)
	{
		orders.POST("/", orderControllers.CreateOrders(d.Catalog, d.Carts, d.Orders))
		orders.GET("/buy", orderControllers.ListBoughtOrders(d.Orders))
		orders.GET("/sell", orderControllers.ListSoldOrders(d.Orders))
		orders.GET("/:id", orderControllers.GetOrder(d.Orders))
	}
}
