package routes

import (
	"github.com/gin-gonic/gin"

	authControllers "github.com/Radeon2211/eshopping-api-sub000/controllers/auth"
)

// SetupAuthRoutes registers the public account endpoints.
func SetupAuthRoutes(r *gin.Engine, d Deps) {
	users := r.Group("/users")
	{
		users.POST("/", authControllers.Signup(d.Users))
		users.POST("/login", authControllers.Login(d.Users, d.Cfg.JWTSecret, d.Cfg.TokenTTL))
		users.POST("/activate", authControllers.Activate(d.Users))
	}
}
