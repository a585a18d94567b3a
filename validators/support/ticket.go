package supportValidator

import (
	"exim/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// TicketRequest is the validated support ticket payload.
type TicketRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Category    string `json:"category"`
}

var validPriorities = map[string]bool{"low": true, "medium": true, "high": true}
var validCategories = map[string]bool{
	"general": true, "gst": true, "iec": true, "dsc": true, "icegate": true, "adcode": true,
}

// CreateTicket validator middleware
func CreateTicket() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(TicketRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Title)) < 5 {
			errors["title"] = "Title must be at least 5 characters long!"
		}
		if len(strings.TrimSpace(reqData.Description)) < 10 {
			errors["description"] = "Description must be at least 10 characters long!"
		}
		if reqData.Priority != "" && !validPriorities[strings.ToLower(reqData.Priority)] {
			errors["priority"] = "Priority must be low, medium or high!"
		}
		if reqData.Category != "" && !validCategories[strings.ToLower(reqData.Category)] {
			errors["category"] = "Category must be one of general, gst, iec, dsc, icegate, adcode!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Description = strings.TrimSpace(reqData.Description)
		reqData.Priority = strings.ToLower(reqData.Priority)
		reqData.Category = strings.ToLower(reqData.Category)

		c.Locals("validatedSupportTicket", reqData)
		return c.Next()
	}
}
