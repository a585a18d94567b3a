package supportController

import (
	"exim/database"
	"exim/middleware"
	"exim/models"
	supportValidator "exim/validators/support"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func CreateTicket(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	// Check if user exists
	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedSupportTicket").(*supportValidator.TicketRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	ticket := models.SupportTicket{
		UserID:      userId,
		Title:       reqData.Title,
		Description: reqData.Description,
		Status:      "open",
		Priority:    "medium",
		Category:    "general",
	}
	if reqData.Priority != "" {
		ticket.Priority = reqData.Priority
	}
	if reqData.Category != "" {
		ticket.Category = reqData.Category
	}

	if err := database.Database.Db.Create(&ticket).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create support ticket!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Support ticket created successfully!", ticket)
}

func TicketList(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	offset := (page - 1) * limit

	// Build query with filters
	db := database.Database.Db.Model(&models.SupportTicket{}).Where("user_id = ? AND is_deleted = false", userId)

	if status := c.Query("status"); status != "" {
		db = db.Where("status = ?", strings.ToLower(status))
	}
	if category := c.Query("category"); category != "" {
		db = db.Where("category = ?", strings.ToLower(category))
	}

	var total int64
	db.Count(&total)

	var tickets []models.SupportTicket
	if err := db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&tickets).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch tickets!", nil)
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
