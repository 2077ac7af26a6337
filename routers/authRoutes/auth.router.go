package authRoutes

import (
	controller "mistogo/controllers/auth"
	"mistogo/middleware"
	validator "mistogo/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/api/auth")

	auth.Post("/register", validator.Register(), controller.Register)
	auth.Post("/login", validator.Login(), controller.Login)
	auth.Get("/me", middleware.JWTMiddleware, controller.Me)
}
