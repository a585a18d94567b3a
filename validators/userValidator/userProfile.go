package userValidator

import (
	"exim/middleware"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var ifscRegex = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)

// BusinessProfileRequest carries the resolver-relevant business fields.
type BusinessProfileRequest struct {
	BusinessEntityType string `json:"businessEntityType" form:"businessEntityType"`
	BusinessName       string `json:"businessName" form:"businessName"`
	Address            string `json:"address" form:"address"`
	City               string `json:"city" form:"city"`
	State              string `json:"state" form:"state"`
	PinCode            string `json:"pinCode" form:"pinCode"`
}

// BankAccountRequest is the validated bank details payload.
type BankAccountRequest struct {
	BankName    string `json:"bankName" form:"bankName"`
	AccountNo   string `json:"accountNo" form:"accountNo"`
	HolderName  string `json:"holderName" form:"holderName"`
	IFSCCode    string `json:"ifscCode" form:"ifscCode"`
	BranchName  string `json:"branchName" form:"branchName"`
	AccountType string `json:"accountType" form:"accountType"`
}

var validEntityTypes = map[string]bool{
	"individual": true, "partnership": true, "llp": true, "private_limited": true, "other": true,
}

// UpdateBusinessProfile validator middleware
func UpdateBusinessProfile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(BusinessProfileRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.BusinessEntityType != "" && !validEntityTypes[reqData.BusinessEntityType] {
			errors["businessEntityType"] = "Business entity type must be one of individual, partnership, llp, private_limited, other!"
		}
		if reqData.PinCode != "" && !regexp.MustCompile(`^\d{6}$`).MatchString(reqData.PinCode) {
			errors["pinCode"] = "PIN code must be 6 digits!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		reqData.BusinessName = strings.TrimSpace(reqData.BusinessName)
		reqData.Address = strings.TrimSpace(reqData.Address)

		c.Locals("validatedBusinessProfile", reqData)
		return c.Next()
	}
}

// AddBankAccount validator middleware
func AddBankAccount() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(BankAccountRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.BankName)) < 2 {
			errors["bankName"] = "Bank name is required!"
		}
		if len(strings.TrimSpace(reqData.AccountNo)) < 9 || len(strings.TrimSpace(reqData.AccountNo)) > 18 {
			errors["accountNo"] = "Account number must be between 9 and 18 digits!"
		}
		if len(strings.TrimSpace(reqData.HolderName)) < 3 {
			errors["holderName"] = "Account holder name is required!"
		}
		if !ifscRegex.MatchString(strings.TrimSpace(reqData.IFSCCode)) {
			errors["ifscCode"] = "Invalid IFSC code!"
		}
		if reqData.AccountType != "" && reqData.AccountType != "current" && reqData.AccountType != "savings" {
			errors["accountType"] = "Account type must be current or savings!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		if reqData.AccountType == "" {
			reqData.AccountType = "current"
		}
		reqData.IFSCCode = strings.ToUpper(strings.TrimSpace(reqData.IFSCCode))

		c.Locals("validatedBankAccount", reqData)
		return c.Next()
	}
}
