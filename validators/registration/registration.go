package registrationValidator

import (
	"exim/middleware"
	"exim/models"

	"github.com/gofiber/fiber/v2"
)

// StepId validates the :stepId route parameter against the known steps.
func StepId() fiber.Handler {
	return func(c *fiber.Ctx) error {
		stepId, err := c.ParamsInt("stepId")
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Step id must be a number!", nil)
		}

		if stepId < models.StepGST || stepId > models.StepADCode {
			errors := map[string]string{
				"stepId": "Step id must be between 1 and 5!",
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedStepId", stepId)
		return c.Next()
	}
}
