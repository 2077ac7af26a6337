package supportValidators

import (
	"strings"

	"mistogo/middleware"
	"mistogo/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type CreateTicketRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Subject  string `json:"subject" validate:"required,min=3,max=200"`
	Message  string `json:"message" validate:"required"`
	Category string `json:"category" validate:"omitempty,max=100"`
}

func CreateTicket() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateTicketRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Email = strings.TrimSpace(reqData.Email)
		reqData.Subject = strings.TrimSpace(reqData.Subject)
		reqData.Message = strings.TrimSpace(reqData.Message)
		reqData.Category = strings.TrimSpace(reqData.Category)

		errors := make(map[string]string)

		if err := validate.Struct(reqData); err != nil {
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "Email":
					errors["email"] = "A valid contact email is required!"
				case "Subject":
					errors["subject"] = "Subject is required (3-200 characters)!"
				case "Message":
					errors["message"] = "Message is required!"
				case "Category":
					errors["category"] = "Category must not exceed 100 characters!"
				}
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreateTicket", reqData)
		return c.Next()
	}
}

type AddMessageRequest struct {
	Message    string `json:"message" validate:"required"`
	AuthorName string `json:"authorName" validate:"omitempty,max=100"`
}

func AddMessage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(AddMessageRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Message = strings.TrimSpace(reqData.Message)
		reqData.AuthorName = strings.TrimSpace(reqData.AuthorName)

		errors := make(map[string]string)

		if reqData.Message == "" {
			errors["message"] = "Message is required!"
		}
		if len(reqData.AuthorName) > 100 {
			errors["authorName"] = "Author name must not exceed 100 characters!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAddMessage", reqData)
		return c.Next()
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

func UpdateStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateStatusRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Status = strings.TrimSpace(strings.ToLower(reqData.Status))

		errors := make(map[string]string)

		if reqData.Status == "" {
			errors["status"] = "Status is required!"
		} else if !models.TicketStatus(reqData.Status).Valid() {
			errors["status"] = "Invalid status! Allowed: pending, in_progress, resolved, closed."
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUpdateStatus", reqData)
		return c.Next()
	}
}

type UpdatePriorityRequest struct {
	Priority string `json:"priority"`
}

func UpdatePriority() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdatePriorityRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Priority = strings.TrimSpace(strings.ToLower(reqData.Priority))

		errors := make(map[string]string)

		if reqData.Priority == "" {
			errors["priority"] = "Priority is required!"
		} else if !models.TicketPriority(reqData.Priority).Valid() {
			errors["priority"] = "Invalid priority! Allowed: low, normal, high, urgent."
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUpdatePriority", reqData)
		return c.Next()
	}
}

type AdminTicketListRequest struct {
	Page     *int    `query:"page"`
	Limit    *int    `query:"limit"`
	Status   *string `query:"status"`
	Priority *string `query:"priority"`
}

func AdminTicketList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(AdminTicketListRequest)

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)

		if reqData.Page != nil && *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}
		if reqData.Limit != nil && *reqData.Limit < 1 {
			errors["limit"] = "Limit must be greater than 0!"
		}
		// The SPA sends "?status=&priority=" for the unfiltered list, so an
		// empty value means the same as an absent parameter.
		if reqData.Status != nil && *reqData.Status != "" {
			*reqData.Status = strings.ToLower(*reqData.Status)
			if !models.TicketStatus(*reqData.Status).Valid() {
				errors["status"] = "Invalid status! Must be one of: pending, in_progress, resolved, closed."
			}
		}
		if reqData.Priority != nil && *reqData.Priority != "" {
			*reqData.Priority = strings.ToLower(*reqData.Priority)
			if !models.TicketPriority(*reqData.Priority).Valid() {
				errors["priority"] = "Invalid priority! Must be one of: low, normal, high, urgent."
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAdminList", reqData)
		return c.Next()
	}
}
