package paymentValidators

import (
	"mistogo/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type SignatureProduct struct {
	Name  string `json:"name" validate:"required"`
	Count string `json:"count" validate:"required"`
	Price string `json:"price" validate:"required"`
}

type SignatureRequest struct {
	OrderReference string             `json:"orderReference" validate:"required"`
	OrderDate      int64              `json:"orderDate" validate:"required"`
	Amount         string             `json:"amount" validate:"required"`
	Currency       string             `json:"currency" validate:"required,len=3"`
	Products       []SignatureProduct `json:"products" validate:"required,min=1,dive"`
}

func Signature() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SignatureRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if err := validate.Struct(reqData); err != nil {
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "OrderReference":
					errors["orderReference"] = "Order reference is required!"
				case "OrderDate":
					errors["orderDate"] = "Order date (unix seconds) is required!"
				case "Amount":
					errors["amount"] = "Amount is required!"
				case "Currency":
					errors["currency"] = "Currency must be a 3-letter code!"
				default:
					errors["products"] = "At least one product with name, count and price is required!"
				}
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSignature", reqData)
		return c.Next()
	}
}
