package authValidator

import (
	"exim/middleware"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// SignupRequest is the validated signup payload handed to the controller.
type SignupRequest struct {
	Name               string `json:"name" validate:"required,min=3"`
	Email              string `json:"email" validate:"required,email"`
	Mobile             string `json:"mobile" validate:"omitempty,len=10,numeric"`
	Password           string `json:"password" validate:"required,min=8"`
	BusinessEntityType string `json:"businessEntityType" validate:"omitempty,oneof=individual partnership llp private_limited other"`
	BusinessName       string `json:"businessName" validate:"omitempty,min=2"`
}

// Helper to validate email format
func isValidEmail(email string) bool {
	re := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return re.MatchString(email)
}

// Helper to validate mobile number format
func isValidMobile(mobile string) bool {
	re := regexp.MustCompile(`^\d{10}$`)
	return re.MatchString(mobile)
}

// Signup validator middleware
func Signup() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SignupRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if err := validate.Struct(reqData); err != nil {
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "Name":
					errors["name"] = "Name must be at least 3 characters long!"
				case "Email":
					errors["email"] = "Invalid email!"
				case "Mobile":
					errors["mobile"] = "Invalid mobile number!"
				case "Password":
					errors["password"] = "Password must be at least 8 characters long!"
				case "BusinessEntityType":
					errors["businessEntityType"] = "Business entity type must be one of individual, partnership, llp, private_limited, other!"
				case "BusinessName":
					errors["businessName"] = "Business name is too short!"
				}
			}
		}

		// Respond with errors if any exist
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		reqData.Name = strings.TrimSpace(reqData.Name)
		reqData.BusinessName = strings.TrimSpace(reqData.BusinessName)

		// Pass validated user to the next middleware
		c.Locals("validatedSignup", reqData)
		return c.Next()
	}
}

// Login validator middleware
func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Mobile   string `json:"mobile"`
			Email    string `json:"email"`
			Password string `json:"password"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate credentials
		if reqData.Email == "" && reqData.Mobile == "" {
			errors["credentials"] = "Either email or mobile number is required!"
		} else {
			if reqData.Email != "" && !isValidEmail(reqData.Email) {
				errors["email"] = "Invalid email!"
			}
			if reqData.Mobile != "" && !isValidMobile(reqData.Mobile) {
				errors["mobile"] = "Invalid mobile number!"
			}
		}

		// Validate Password
		if len(strings.TrimSpace(reqData.Password)) < 8 {
			errors["password"] = "Password must be at least 8 characters long!"
		}

		// Respond with errors if any exist
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

// SendOTP validator middleware
func SendOTP() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Mobile string `json:"mobile"`
			Email  string `json:"email"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate credentials
		if reqData.Email == "" && reqData.Mobile == "" {
			errors["credentials"] = "Either email or mobile number is required!"
		} else {
			if reqData.Email != "" && !isValidEmail(reqData.Email) {
				errors["email"] = "Invalid email!"
			}
			if reqData.Mobile != "" && !isValidMobile(reqData.Mobile) {
				errors["mobile"] = "Invalid mobile number!"
			}
		}

		// Respond with errors if any exist
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

// VerifyOTP validates OTP request data
func VerifyOTP() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Mobile string `json:"mobile"`
			Email  string `json:"email"`
			Code   string `json:"code"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate that either email or mobile is provided
		if reqData.Email == "" && reqData.Mobile == "" {
			errors["credentials"] = "Either email or mobile number is required!"
		} else {
			if reqData.Email != "" && !isValidEmail(reqData.Email) {
				errors["email"] = "Invalid email!"
			}
			if reqData.Mobile != "" && !isValidMobile(reqData.Mobile) {
				errors["mobile"] = "Invalid mobile number!"
			}
		}

		// Validate OTP code
		if reqData.Code == "" {
			errors["code"] = "OTP code is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

// ResetPassword validator middleware
func ResetPassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Password string `json:"password"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Password
		if len(strings.TrimSpace(reqData.Password)) < 8 {
			errors["password"] = "Password must be at least 8 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

// Change Login Password validator middleware
func ChangeLoginPassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CurrentPassword string `json:"currentPassword"`
			NewPassword     string `json:"newPassword"`
			CnfPassword     string `json:"cnfPassword"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.CurrentPassword)) == 0 {
			errors["currentPassword"] = "Password is required!"
		}

		if len(strings.TrimSpace(reqData.NewPassword)) == 0 {
			errors["newPassword"] = "Password is required!"
		} else if len(strings.TrimSpace(reqData.NewPassword)) < 8 {
			errors["newPassword"] = "Password must be at least 8 characters long!"
		}

		if reqData.NewPassword != reqData.CnfPassword {
			errors["cnfPassword"] = "Confirm Password Not Match!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}
