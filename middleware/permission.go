package middleware

import (
	"exim/database"
	"exim/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RequireRole returns a middleware that checks the authenticated user's role
// against the database, not just the token claim.
func RequireRole(requiredRole string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: User ID not found", nil)
		}

		var user models.User
		err := database.Database.Db.Where("id = ? AND is_deleted = false", userID).First(&user).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
			}
			return JsonResponse(c, fiber.StatusInternalServerError, false, "Server error while checking permissions!", nil)
		}

		if user.Role != requiredRole {
			return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
		}

		return c.Next()
	}
}
