package userController

import (
	"exim/database"
	"exim/middleware"
	"exim/models"
	"exim/registration"
	userValidator "exim/validators/userValidator"
	"io"
	"log"

	"github.com/gofiber/fiber/v2"
)

// GetProfile returns the logged-in user's profile with document URLs.
func GetProfile(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	user.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User Profile.", fiber.Map{
		"user":              user,
		"profileCompletion": profileCompletion(&user),
	})
}

// profileCompletion is the percentage of the profile basics on file: the
// four profile documents plus business name and address.
func profileCompletion(user *models.User) int {
	parts := []string{
		user.PanCardUrl,
		user.AadharCardUrl,
		user.PhotographUrl,
		user.ProofOfAddressUrl,
		user.BusinessName,
		user.Address,
	}
	filled := 0
	for _, p := range parts {
		if p != "" {
			filled++
		}
	}
	return filled * 100 / len(parts)
}

// UpdateBusinessProfile updates the business fields used by the requirement
// resolver.
func UpdateBusinessProfile(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedBusinessProfile").(*userValidator.BusinessProfileRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if reqData.BusinessEntityType != "" {
		user.BusinessEntityType = registration.NormalizeBusinessType(reqData.BusinessEntityType)
	}
	if reqData.BusinessName != "" {
		user.BusinessName = reqData.BusinessName
	}
	if reqData.Address != "" {
		user.Address = reqData.Address
	}
	if reqData.City != "" {
		user.City = reqData.City
	}
	if reqData.State != "" {
		user.State = reqData.State
	}
	if reqData.PinCode != "" {
		user.PinCode = reqData.PinCode
	}

	if err := database.Database.Db.Save(&user).Error; err != nil {
		log.Printf("Error updating business profile for user %d: %v", userId, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update profile!", nil)
	}

	user.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Business profile updated.", user)
}

// UploadProfileDocument stores one profile document: panCard, aadharCard,
// photograph or proofOfAddress. The slot comes from the form field name
// "type", the file from the "document" part.
func UploadProfileDocument(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	slot := c.FormValue("type")
	header, err := c.FormFile("document")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Document file is required!", nil)
	}

	file, err := header.Open()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to read uploaded file!", nil)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to read uploaded file!", nil)
	}
	if len(data) > models.MaxDocumentSize {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Uploaded file exceeds the 10MB limit!", nil)
	}

	url, err := registration.Default().UploadProfileDocument(userId, registration.PendingFile{
		Slot:     slot,
		Filename: header.Filename,
		Data:     data,
	})
	if err != nil {
		return middleware.EngineErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Document uploaded successfully.", fiber.Map{
		"type": slot,
		"url":  url,
	})
}

// AddBankAccount saves the optional bank details section with its cancelled
// cheque. Bank details contribute to IEC and AD Code progress only once the
// section is started.
func AddBankAccount(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedBankAccount").(*userValidator.BankAccountRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var existing models.BankDetails
	if err := db.Where("user_id = ? AND account_no = ? AND is_deleted = ?", userId, reqData.AccountNo, false).
		First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Bank account already added!", nil)
	}

	chequeUrl := ""
	if header, err := c.FormFile("cancelledCheque"); err == nil {
		file, err := header.Open()
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to read cancelled cheque!", nil)
		}
		data, readErr := io.ReadAll(file)
		file.Close()
		if readErr != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to read cancelled cheque!", nil)
		}
		chequeUrl, err = registration.Default().UploadCancelledCheque(userId, registration.PendingFile{
			Slot:     registration.SlotCancelledCheque,
			Filename: header.Filename,
			Data:     data,
		})
		if err != nil {
			return middleware.EngineErrorResponse(c, err)
		}
	}

	bank := models.BankDetails{
		UserID:          userId,
		BankName:        reqData.BankName,
		AccountNo:       reqData.AccountNo,
		HolderName:      reqData.HolderName,
		IFSCCode:        reqData.IFSCCode,
		BranchName:      reqData.BranchName,
		AccountType:     reqData.AccountType,
		CancelledCheque: chequeUrl,
	}
	if err := db.Create(&bank).Error; err != nil {
		log.Printf("Error saving bank details for user %d: %v", userId, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save bank details!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Bank account added successfully.", bank)
}

// BankList returns the user's saved bank accounts.
func BankList(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var banks []models.BankDetails
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", userId, false).
		Order("id DESC").Find(&banks).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch bank accounts!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Bank Account List.", banks)
}
