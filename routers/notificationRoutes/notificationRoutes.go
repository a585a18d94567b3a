package notificationRoutes

import (
	notificationController "exim/controllers/notification"
	"exim/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupNotificationRoutes(app *fiber.App) {
	notificationGroup := app.Group("/notification", middleware.JWTMiddleware)

	notificationGroup.Get("/list", notificationController.List)
	notificationGroup.Post("/read/:id", notificationController.MarkRead)
}
