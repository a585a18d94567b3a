package notificationController

import (
	"exim/database"
	"exim/middleware"
	"exim/models"
	"exim/registration"

	"github.com/gofiber/fiber/v2"
)

// List returns the user's notifications, newest first.
func List(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	db := database.Database.Db

	var notifications []models.Notification
	if err := db.Where("user_id = ?", userId).
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&notifications).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch notifications!", nil)
	}

	var total, unread int64
	db.Model(&models.Notification{}).Where("user_id = ?", userId).Count(&total)
	db.Model(&models.Notification{}).Where("user_id = ? AND read = ?", userId, false).Count(&unread)

	response := map[string]interface{}{
		"notifications": notifications,
		"unread":        unread,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification List.", response)
}

// MarkRead marks one of the user's notifications as read.
func MarkRead(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	notificationId, err := c.ParamsInt("id")
	if err != nil || notificationId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid notification id!", nil)
	}

	if err := registration.MarkNotificationRead(database.Database.Db, userId, uint(notificationId)); err != nil {
		return middleware.EngineErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification marked as read.", nil)
}
