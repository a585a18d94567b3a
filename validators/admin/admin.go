package adminValidator

import (
	"exim/middleware"
	"exim/models"
	"exim/registration"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ReviewRequest identifies the document under review. A nil StepID targets a
// profile-scoped document.
type ReviewRequest struct {
	UserID uint   `json:"userId"`
	StepID *int   `json:"stepId"`
	Slot   string `json:"slot"`
	Reason string `json:"reason"`
}

// Review validates a verify or reject request.
func Review(requireReason bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ReviewRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.UserID == 0 {
			errors["userId"] = "User id is required!"
		}
		if reqData.StepID != nil && (*reqData.StepID < models.StepGST || *reqData.StepID > models.StepADCode) {
			errors["stepId"] = "Step id must be between 1 and 5!"
		}
		if !registration.SlotVocabulary[reqData.Slot] {
			errors["slot"] = "Unknown document slot!"
		}
		if requireReason && strings.TrimSpace(reqData.Reason) == "" {
			errors["reason"] = "A rejection reason is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedReview", reqData)
		return c.Next()
	}
}
