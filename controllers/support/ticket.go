package supportControllers

import (
	"errors"
	"log"

	"mistogo/database"
	"mistogo/middleware"
	"mistogo/models"
	"mistogo/notifications"
	supportService "mistogo/services/support"
	supportValidators "mistogo/validators/support"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func svc() *supportService.Service {
	return supportService.New(database.Database.Db)
}

func respondServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, supportService.ErrNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Ticket not found!", nil)
	case errors.Is(err, supportService.ErrUnauthorized):
		if middleware.CallerID(c) == nil {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Authentication required!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	case errors.Is(err, supportService.ErrValidation):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
	default:
		log.Printf("Support ticket operation failed: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", nil)
	}
}

func ticketID(c *fiber.Ctx) (uint, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return 0, false
	}
	return uint(id), true
}

// CreateTicket opens a ticket for a user or a guest. Notifications go out
// after the commit and never affect the response.
func CreateTicket(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCreateTicket").(*supportValidators.CreateTicketRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	userID := middleware.CallerID(c)

	ticket, err := svc().CreateTicket(reqData.Email, reqData.Subject, reqData.Message, reqData.Category, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	notifications.Enqueue(notifications.Event{
		ID:         uuid.NewString(),
		Kind:       notifications.KindTicketCreated,
		TicketID:   ticket.ID,
		Subject:    ticket.Subject,
		Category:   ticket.Category,
		Body:       reqData.Message,
		AuthorName: reqData.Email,
		Guest:      userID == nil,
	})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":  true,
		"ticketId": ticket.ID,
		"ticket":   ticket,
	})
}

// MyTickets returns the caller's tickets, newest first.
func MyTickets(c *fiber.Ctx) error {
	userID := middleware.CallerID(c)

	tickets, err := svc().ListForUser(*userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Tickets fetched successfully!", tickets)
}

// GetTicket returns one ticket with its ordered message thread.
func GetTicket(c *fiber.Ctx) error {
	id, ok := ticketID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ticket id!", nil)
	}

	ticket, err := svc().GetTicket(id, middleware.CallerID(c), middleware.CallerIsAdmin(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Ticket fetched successfully!", ticket)
}

// AddMessage appends a reply to a ticket's thread.
func AddMessage(c *fiber.Ctx) error {
	id, ok := ticketID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ticket id!", nil)
	}

	reqData, ok := c.Locals("validatedAddMessage").(*supportValidators.AddMessageRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	userID := middleware.CallerID(c)
	isAdmin := middleware.CallerIsAdmin(c)

	msg, ticket, err := svc().AddMessage(id, reqData.Message, userID, isAdmin, reqData.AuthorName)
	if err != nil {
		return respondServiceError(c, err)
	}

	authorName := reqData.AuthorName
	if authorName == "" {
		authorName = ticket.Email
	}
	notifications.Enqueue(notifications.Event{
		ID:         uuid.NewString(),
		Kind:       notifications.KindMessageAdded,
		TicketID:   ticket.ID,
		Subject:    ticket.Subject,
		Category:   ticket.Category,
		Body:       msg.Body,
		AuthorName: authorName,
		Guest:      userID == nil && !isAdmin,
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Message added successfully!", msg)
}

// CloseTicket lets the owner (or an admin) close a ticket.
func CloseTicket(c *fiber.Ctx) error {
	id, ok := ticketID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ticket id!", nil)
	}

	updated, err := svc().UpdateStatus(id, models.StatusClosed, middleware.CallerID(c), middleware.CallerIsAdmin(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	if !updated {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Ticket not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Ticket closed successfully!", nil)
}

// UpdateTicketStatus is the admin status override.
func UpdateTicketStatus(c *fiber.Ctx) error {
	id, ok := ticketID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ticket id!", nil)
	}

	reqData, ok := c.Locals("validatedUpdateStatus").(*supportValidators.UpdateStatusRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	updated, err := svc().UpdateStatus(id, models.TicketStatus(reqData.Status), middleware.CallerID(c), true)
	if err != nil {
		return respondServiceError(c, err)
	}
	if !updated {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Ticket not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Status updated successfully!", nil)
}

// UpdateTicketPriority is the admin priority override.
func UpdateTicketPriority(c *fiber.Ctx) error {
	id, ok := ticketID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ticket id!", nil)
	}

	reqData, ok := c.Locals("validatedUpdatePriority").(*supportValidators.UpdatePriorityRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	updated, err := svc().UpdatePriority(id, models.TicketPriority(reqData.Priority))
	if err != nil {
		return respondServiceError(c, err)
	}
	if !updated {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Ticket not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Priority updated successfully!", nil)
}

// AdminTicketList returns all tickets with optional filters and pagination.
func AdminTicketList(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedAdminList").(*supportValidators.AdminTicketListRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	page := 1
	limit := 10
	if reqData.Page != nil {
		page = *reqData.Page
	}
	if reqData.Limit != nil {
		limit = *reqData.Limit
	}

	status := ""
	priority := ""
	if reqData.Status != nil {
		status = *reqData.Status
	}
	if reqData.Priority != nil {
		priority = *reqData.Priority
	}

	tickets, total, err := svc().ListAll(status, priority, page, limit)
	if err != nil {
		return respondServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Tickets fetched successfully!", fiber.Map{
		"tickets": tickets,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// AdminSupportStats returns ticket counts by status.
func AdminSupportStats(c *fiber.Ctx) error {
	stats, err := svc().Stats()
	if err != nil {
		return respondServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Stats fetched successfully!", stats)
}
