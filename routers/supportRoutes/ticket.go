package supportRoutes

import (
	controller "mistogo/controllers/support"
	"mistogo/middleware"
	validator "mistogo/validators/support"

	"github.com/gofiber/fiber/v2"
)

func SetupSupportRoutes(app *fiber.App) {
	support := app.Group("/api/support", middleware.ResolveIdentity)

	support.Post("/tickets", validator.CreateTicket(), controller.CreateTicket)
	support.Get("/tickets/my", middleware.RequireUser, controller.MyTickets)
	support.Get("/tickets/:id", controller.GetTicket)
	support.Post("/tickets/:id/messages", validator.AddMessage(), controller.AddMessage)
	support.Patch("/tickets/:id/close", controller.CloseTicket)
	support.Patch("/tickets/:id/status", middleware.RequireAdmin, validator.UpdateStatus(), controller.UpdateTicketStatus)
	support.Patch("/tickets/:id/priority", middleware.RequireAdmin, validator.UpdatePriority(), controller.UpdateTicketPriority)
	support.Get("/admin/tickets", middleware.RequireAdmin, validator.AdminTicketList(), controller.AdminTicketList)
	support.Get("/admin/stats", middleware.RequireAdmin, controller.AdminSupportStats)
}
