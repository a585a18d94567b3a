package middleware

import (
	"errors"

	"exim/registration"

	"github.com/gofiber/fiber/v2"
)

func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errs map[string]string) error {
	return JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Validation failed!", errs)
}

// EngineErrorResponse maps a registration engine error to the matching HTTP
// status.
func EngineErrorResponse(c *fiber.Ctx, err error) error {
	var validationErr *registration.ValidationError
	var notFoundErr *registration.NotFoundError
	var conflictErr *registration.ConflictError
	var upstreamErr *registration.UpstreamIOError

	switch {
	case errors.As(err, &validationErr):
		return JsonResponse(c, fiber.StatusUnprocessableEntity, false, validationErr.Message, nil)
	case errors.As(err, &notFoundErr):
		return JsonResponse(c, fiber.StatusNotFound, false, notFoundErr.Message, nil)
	case errors.As(err, &conflictErr):
		return JsonResponse(c, fiber.StatusConflict, false, conflictErr.Message, nil)
	case errors.As(err, &upstreamErr):
		return JsonResponse(c, fiber.StatusBadGateway, false, upstreamErr.Message, nil)
	default:
		return JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong, please try again.", nil)
	}
}
