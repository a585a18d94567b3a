package registrationController

import (
	"errors"
	"exim/database"
	"exim/middleware"
	"exim/models"
	"exim/registration"
	"io"
	"log"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
)

// GetDashboard returns the user's registration dashboard, creating it on
// first access.
func GetDashboard(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	dash, err := registration.GetOrCreateDashboard(database.Database.Db, userId)
	if err != nil {
		log.Printf("Error loading dashboard for user %d: %v", userId, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch registration dashboard!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Registration Dashboard.", dash)
}

// GetStep returns a single step with its documents.
func GetStep(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	stepId, ok := c.Locals("validatedStepId").(int)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid step id!", nil)
	}

	dash, err := registration.GetOrCreateDashboard(database.Database.Db, userId)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch registration dashboard!", nil)
	}

	step, err := registration.FindStep(dash, stepId)
	if err != nil {
		return middleware.EngineErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Registration Step.", step)
}

// GetRequiredSlots returns the document requirements for a step given the
// user's business entity type, together with the current slot states.
func GetRequiredSlots(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	stepId, ok := c.Locals("validatedStepId").(int)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid step id!", nil)
	}

	slots, states, err := registration.Default().StepSlots(userId, stepId)
	if err != nil {
		return middleware.EngineErrorResponse(c, err)
	}

	type slotView struct {
		Name     string `json:"name"`
		Required bool   `json:"required"`
		Url      string `json:"url"`
		Status   string `json:"status"`
	}

	views := make([]slotView, 0, len(slots))
	for _, slot := range slots {
		state := states[slot.Name]
		views = append(views, slotView{
			Name:     slot.Name,
			Required: slot.AlwaysRequired,
			Url:      state.Url,
			Status:   state.Status,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Required Documents.", fiber.Map{
		"stepId": stepId,
		"slots":  views,
	})
}

// GetProgress returns the completion percentage for a step.
func GetProgress(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	stepId, ok := c.Locals("validatedStepId").(int)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid step id!", nil)
	}

	progress, err := registration.Default().StepProgress(userId, stepId)
	if err != nil {
		return middleware.EngineErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Step Progress.", fiber.Map{
		"stepId":   stepId,
		"progress": progress,
	})
}

// SubmitStep handles a multipart step submission: form values become step
// details, file parts become document uploads keyed by slot name.
func SubmitStep(c *fiber.Ctx) error {
	return handleSubmit(c, false)
}

// ResubmitStep re-opens a rejected step with corrected documents.
func ResubmitStep(c *fiber.Ctx) error {
	return handleSubmit(c, true)
}

func handleSubmit(c *fiber.Ctx, resubmit bool) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	stepId, ok := c.Locals("validatedStepId").(int)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid step id!", nil)
	}

	fields, files, err := parseSubmission(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
	}

	var result *registration.SubmitResult
	if resubmit {
		result, err = registration.Default().ResubmitStep(userId, stepId, fields, files)
	} else {
		result, err = registration.Default().SubmitStep(userId, stepId, fields, files)
	}
	if err != nil {
		return middleware.EngineErrorResponse(c, err)
	}

	status := fiber.StatusOK
	if !result.Success {
		status = fiber.StatusAccepted
	}

	return middleware.JsonResponse(c, status, result.Success, result.Message, result)
}

// GetDocumentTimeline returns the full upload and review history for one
// document slot.
func GetDocumentTimeline(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	slot := c.Params("slot")
	if !registration.SlotVocabulary[slot] {
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Unknown document slot!", nil)
	}

	records, err := registration.DocumentTimeline(database.Database.Db, userId, slot)
	if err != nil {
		log.Printf("Error loading document timeline for user %d slot %s: %v", userId, slot, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch document history!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Document History.", records)
}

// parseSubmission splits a multipart form into detail fields and pending
// uploads. Each file part's field name is the slot it fills.
func parseSubmission(c *fiber.Ctx) (map[string]string, []registration.PendingFile, error) {
	fields := make(map[string]string)
	var files []registration.PendingFile

	form, err := c.MultipartForm()
	if err != nil {
		// Fall back to a plain body with no documents
		body := make(map[string]string)
		if parseErr := c.BodyParser(&body); parseErr != nil {
			return nil, nil, errors.New("Invalid request body!")
		}
		return body, nil, nil
	}

	for key, values := range form.Value {
		if len(values) > 0 {
			fields[key] = values[0]
		}
	}

	for slot, headers := range form.File {
		if len(headers) == 0 {
			continue
		}
		data, err := readFileHeader(headers[0])
		if err != nil {
			return nil, nil, errors.New("Failed to read uploaded file!")
		}
		if len(data) > models.MaxDocumentSize {
			return nil, nil, errors.New("Uploaded file exceeds the 10MB limit!")
		}
		files = append(files, registration.PendingFile{
			Slot:     slot,
			Filename: headers[0].Filename,
			Data:     data,
		})
	}

	return fields, files, nil
}

func readFileHeader(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}
