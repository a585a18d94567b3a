package adminController

import (
	"exim/database"
	"exim/middleware"
	"exim/registration"
	adminValidator "exim/validators/admin"

	"github.com/gofiber/fiber/v2"
)

// PendingDocuments lists uploaded documents awaiting review, oldest first.
func PendingDocuments(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	records, total, err := registration.PendingReviews(database.Database.Db, limit, offset)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch pending documents!", nil)
	}

	response := map[string]interface{}{
		"documents": records,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending Documents.", response)
}

// VerifyDocument marks an uploaded document as verified.
func VerifyDocument(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedReview").(*adminValidator.ReviewRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if err := registration.Default().VerifyDocument(reqData.UserID, reqData.StepID, reqData.Slot); err != nil {
		return middleware.EngineErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Document verified.", nil)
}

// RejectDocument marks an uploaded document as rejected with a reason. The
// owning step drops to rejected so the user can resubmit.
func RejectDocument(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedReview").(*adminValidator.ReviewRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if err := registration.Default().RejectDocument(reqData.UserID, reqData.StepID, reqData.Slot, reqData.Reason); err != nil {
		return middleware.EngineErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Document rejected.", nil)
}
