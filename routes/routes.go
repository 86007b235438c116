package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Radeon2211/eshopping-api-sub000/config"
	"github.com/Radeon2211/eshopping-api-sub000/store"
)

// Deps bundles the collaborators every route group draws from.
type Deps struct {
	Cfg     config.Config
	Users   store.UserStore
	Catalog store.CatalogStore
	Carts   store.CartStore
	Orders  store.OrderStore
}

// SetupRoutes is the single entry point that wires up all route groups.
func SetupRoutes(r *gin.Engine, d Deps) {
	SetupAuthRoutes(r, d)
	SetupUserRoutes(r, d)
	SetupProductRoutes(r, d)
	SetupCheckoutRoutes(r, d)
	SetupAdminRoutes(r, d)
}
