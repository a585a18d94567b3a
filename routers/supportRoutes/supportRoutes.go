package supportRoutes

import (
	supportController "exim/controllers/support"
	"exim/middleware"
	supportValidator "exim/validators/support"

	"github.com/gofiber/fiber/v2"
)

func SetupSupportRoutes(app *fiber.App) {
	supportGroup := app.Group("/support", middleware.JWTMiddleware)

	supportGroup.Post("/ticket", supportValidator.CreateTicket(), supportController.CreateTicket)
	supportGroup.Get("/ticket/list", supportController.TicketList)
}
