package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authcontroller "schoolpay_backend/internals/features/users/auth/controller"
	authmw "schoolpay_backend/internals/middlewares/auth"
)

// AuthRoutes mounts the token endpoints the dashboard login flow uses.
func AuthRoutes(api fiber.Router, db *gorm.DB) {
	h := &authcontroller.AuthController{DB: db}

	api.Post("/api/token", h.Login)
	api.Post("/api/token/refresh", h.Refresh)

	protected := api.Group("", authmw.AuthMiddleware(db))
	protected.Post("/api/logout", h.Logout)
	protected.Get("/api/me", h.Me)
}
