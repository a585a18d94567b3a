package adminRoutes

import (
	adminController "exim/controllers/admin"
	"exim/middleware"
	adminValidator "exim/validators/admin"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"))

	adminGroup.Get("/document/pending", adminController.PendingDocuments)
	adminGroup.Post("/document/verify", adminValidator.Review(false), adminController.VerifyDocument)
	adminGroup.Post("/document/reject", adminValidator.Review(true), adminController.RejectDocument)
}
