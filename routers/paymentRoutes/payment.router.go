package paymentRoutes

import (
	controller "mistogo/controllers/payment"
	"mistogo/middleware"
	validator "mistogo/validators/payment"

	"github.com/gofiber/fiber/v2"
)

func SetupPaymentRoutes(app *fiber.App) {
	payments := app.Group("/api/payments", middleware.ResolveIdentity)

	payments.Post("/signature", middleware.RequireUser, validator.Signature(), controller.Signature)
}
