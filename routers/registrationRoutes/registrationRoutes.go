package registrationRoutes

import (
	registrationController "exim/controllers/registration"
	"exim/middleware"
	registrationValidator "exim/validators/registration"

	"github.com/gofiber/fiber/v2"
)

func SetupRegistrationRoutes(app *fiber.App) {
	regGroup := app.Group("/registration", middleware.JWTMiddleware)

	regGroup.Get("/dashboard", registrationController.GetDashboard)
	regGroup.Get("/step/:stepId", registrationValidator.StepId(), registrationController.GetStep)
	regGroup.Get("/step/:stepId/slots", registrationValidator.StepId(), registrationController.GetRequiredSlots)
	regGroup.Get("/step/:stepId/progress", registrationValidator.StepId(), registrationController.GetProgress)
	regGroup.Post("/step/:stepId/submit", registrationValidator.StepId(), registrationController.SubmitStep)
	regGroup.Post("/step/:stepId/resubmit", registrationValidator.StepId(), registrationController.ResubmitStep)
	regGroup.Get("/document/:slot/history", registrationController.GetDocumentTimeline)
}
