package registration

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"exim/models"
	"exim/storage"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Orchestrator coordinates step submissions: it recomputes progress server
// side, uploads pending files slot by slot, writes the ledger and the
// denormalized caches in one transaction, and advances the step state
// machine. A per-user mutex serializes the read-modify-write cycle so two
// concurrent submissions cannot lose updates.
type Orchestrator struct {
	db    *gorm.DB
	store storage.Uploader
	locks sync.Map // user id → *sync.Mutex
}

func NewOrchestrator(db *gorm.DB, store storage.Uploader) *Orchestrator {
	return &Orchestrator{db: db, store: store}
}

func (o *Orchestrator) lockUser(userID uint) *sync.Mutex {
	mu, _ := o.locks.LoadOrStore(userID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// PendingFile is a local file the user attached to a submission, keyed by
// the slot it fills.
type PendingFile struct {
	Slot     string
	Filename string
	Data     []byte
}

// SlotResult reports the outcome for one uploaded slot. A failed slot never
// aborts the rest of the batch.
type SlotResult struct {
	Slot  string `json:"slot"`
	Saved bool   `json:"saved"`
	Url   string `json:"url,omitempty"`
	Error string `json:"error,omitempty"`
}

// SubmitResult is the outcome of a step submission.
type SubmitResult struct {
	Success      bool         `json:"success"`
	Message      string       `json:"message"`
	NewStatus    string       `json:"newStatus"`
	Progress     int          `json:"progress"`
	Resubmission bool         `json:"resubmission"`
	Slots        []SlotResult `json:"slots,omitempty"`
}

// SubmitStep validates and persists a step submission. A prior rejected
// status makes it a resubmission automatically.
func (o *Orchestrator) SubmitStep(userID uint, stepID int, fields map[string]string, files []PendingFile) (*SubmitResult, error) {
	return o.submit(userID, stepID, fields, files, false)
}

// ResubmitStep is SubmitStep with the additional assertion that the step was
// rejected before.
func (o *Orchestrator) ResubmitStep(userID uint, stepID int, fields map[string]string, files []PendingFile) (*SubmitResult, error) {
	return o.submit(userID, stepID, fields, files, true)
}

func (o *Orchestrator) submit(userID uint, stepID int, fields map[string]string, files []PendingFile, assertRejected bool) (*SubmitResult, error) {
	mu := o.lockUser(userID)
	mu.Lock()
	defer mu.Unlock()

	user, err := loadUser(o.db, userID)
	if err != nil {
		return nil, err
	}
	dash, err := GetOrCreateDashboard(o.db, userID)
	if err != nil {
		return nil, err
	}
	step, err := FindStep(dash, stepID)
	if err != nil {
		return nil, err
	}

	if assertRejected && step.Status != models.StepRejected {
		return nil, NewConflictError("step %s is %s; resubmission requires a rejected step", step.Name, step.Status)
	}
	if step.Status == models.StepCompleted {
		return nil, NewConflictError("step %s is already completed", step.Name)
	}
	resubmission := step.Status == models.StepRejected

	// Merge submitted fields into the step details so revisits are
	// pre-filled. Nothing is persisted until the precheck passes.
	if step.Details == nil {
		step.Details = datatypes.JSONMap{}
	}
	for key, value := range fields {
		step.Details[key] = strings.TrimSpace(value)
	}

	opts := OptionsFromDetails(step.Details)
	slots := RequiredSlots(user.BusinessEntityType, stepID, opts)
	requiredFields := RequiredFields(stepID, opts)
	sections := OptionalSections(stepID)
	values := detailsToValues(step.Details)

	state, err := o.collectState(user, dash, step, slots)
	if err != nil {
		return nil, err
	}

	// Server-side precheck: the submission must project to 100% with the
	// attached files counted as satisfied. The client-supplied percentage is
	// never trusted. A resubmission may save partial corrections instead.
	projected := projectedState(state, files)
	precheck := Progress(slots, requiredFields, sections, values, projected)
	if precheck < 100 && !resubmission {
		return nil, NewValidationError("incomplete submission: progress is %d%%", precheck)
	}

	// Upload and persist slot by slot. A failed slot is reported and
	// skipped; the remaining slots still save.
	results := make([]SlotResult, 0, len(files))
	anySaved := false
	anyFailed := false
	for _, file := range files {
		if !SlotVocabulary[file.Slot] {
			results = append(results, SlotResult{Slot: file.Slot, Error: "unknown document slot"})
			anyFailed = true
			continue
		}
		url, err := o.store.Upload(file.Data, storage.UploadOptions{
			Folder:       fmt.Sprintf("user-%d/step-%d", userID, stepID),
			PublicID:     file.Slot,
			ResourceType: "auto",
		})
		if err != nil {
			log.Printf("Upload failed for user %d step %d slot %s: %v", userID, stepID, file.Slot, err)
			results = append(results, SlotResult{Slot: file.Slot, Error: "upload failed, please retry"})
			anyFailed = true
			continue
		}
		if err := o.persistUpload(user, step, file.Slot, url); err != nil {
			log.Printf("Persist failed for user %d step %d slot %s: %v", userID, stepID, file.Slot, err)
			results = append(results, SlotResult{Slot: file.Slot, Error: "failed to save document"})
			anyFailed = true
			continue
		}
		results = append(results, SlotResult{Slot: file.Slot, Saved: true, Url: url})
		anySaved = true
	}

	// First interaction moves a pending step to in-progress; a corrected
	// rejected step re-enters the normal flow the same way.
	if step.Status == models.StepPending || (resubmission && (anySaved || len(fields) > 0)) {
		if err := TransitionStep(step, models.StepInProgress); err != nil {
			return nil, err
		}
	}

	state, err = o.collectState(user, dash, step, slots)
	if err != nil {
		return nil, err
	}
	progress := Progress(slots, requiredFields, sections, values, state)

	completed := progress == 100 && !anyFailed
	if completed {
		// A rejected step corrected elsewhere (e.g. a profile re-upload)
		// still re-enters the normal flow before completing.
		if step.Status == models.StepRejected {
			if err := TransitionStep(step, models.StepInProgress); err != nil {
				return nil, err
			}
		}
		if err := TransitionStep(step, models.StepCompleted); err != nil {
			return nil, err
		}
	}

	dash.HasStartedRegistration = true
	if err := o.db.Omit(clause.Associations).Save(step).Error; err != nil {
		return nil, err
	}
	if err := RecomputeOverallProgress(o.db, dash); err != nil {
		return nil, err
	}

	result := &SubmitResult{
		NewStatus:    step.Status,
		Progress:     progress,
		Resubmission: resubmission,
		Slots:        results,
	}
	switch {
	case completed && resubmission:
		result.Success = true
		result.Message = fmt.Sprintf("%s resubmitted and completed.", step.Name)
		o.notify(userID, "Step Completed", fmt.Sprintf("Your resubmission for %s was accepted and the step is now complete.", step.Name), models.NotifySuccess)
	case completed:
		result.Success = true
		result.Message = fmt.Sprintf("%s submitted successfully.", step.Name)
		o.notify(userID, "Step Completed", fmt.Sprintf("Your application for %s has been submitted.", step.Name), models.NotifySuccess)
	case anyFailed:
		saved := 0
		for _, r := range results {
			if r.Saved {
				saved++
			}
		}
		result.Message = fmt.Sprintf("%d of %d documents saved; please retry the failed ones.", saved, len(results))
	case resubmission:
		result.Success = true
		result.Message = fmt.Sprintf("Resubmission saved; %s is %d%% complete.", step.Name, progress)
		o.notify(userID, "Resubmission Received", fmt.Sprintf("Your corrections for %s were saved.", step.Name), models.NotifyInfo)
	default:
		// Progress passed the precheck but a global document disappeared in
		// between; surface it as incomplete rather than advancing.
		result.Message = fmt.Sprintf("%s is %d%% complete.", step.Name, progress)
	}

	return result, nil
}

// StepProgress recomputes the completion percentage of one step from
// persisted state.
func (o *Orchestrator) StepProgress(userID uint, stepID int) (int, error) {
	user, err := loadUser(o.db, userID)
	if err != nil {
		return 0, err
	}
	dash, err := GetOrCreateDashboard(o.db, userID)
	if err != nil {
		return 0, err
	}
	step, err := FindStep(dash, stepID)
	if err != nil {
		return 0, err
	}

	opts := OptionsFromDetails(step.Details)
	slots := RequiredSlots(user.BusinessEntityType, stepID, opts)
	state, err := o.collectState(user, dash, step, slots)
	if err != nil {
		return 0, err
	}
	return Progress(slots, RequiredFields(stepID, opts), OptionalSections(stepID), detailsToValues(step.Details), state), nil
}

// StepSlots resolves the required slots for one of the user's steps together
// with their current satisfaction state.
func (o *Orchestrator) StepSlots(userID uint, stepID int) ([]RequiredSlot, map[string]SlotState, error) {
	user, err := loadUser(o.db, userID)
	if err != nil {
		return nil, nil, err
	}
	dash, err := GetOrCreateDashboard(o.db, userID)
	if err != nil {
		return nil, nil, err
	}
	step, err := FindStep(dash, stepID)
	if err != nil {
		return nil, nil, err
	}

	slots := RequiredSlots(user.BusinessEntityType, stepID, OptionsFromDetails(step.Details))
	state, err := o.collectState(user, dash, step, slots)
	if err != nil {
		return nil, nil, err
	}
	return slots, state, nil
}

// collectState assembles the observed slot state for a step: the step's own
// documents first, then, for unfilled global slots, the newest ledger entry,
// the profile cache, and finally satisfied uploads on sibling steps.
func (o *Orchestrator) collectState(user *models.User, dash *models.RegistrationDashboard, step *models.RegistrationStep, slots []RequiredSlot) (map[string]SlotState, error) {
	state := make(map[string]SlotState)
	for i := range step.Documents {
		doc := &step.Documents[i]
		state[doc.Name] = SlotState{Url: doc.Url, Status: doc.Status}
	}

	for _, slot := range slots {
		if state[slot.Name].Url != "" || !IsGlobalSlot(slot.Name) {
			continue
		}

		rec, err := latestDocument(o.db, user.ID, slot.Name)
		if err != nil {
			return nil, err
		}
		if rec != nil {
			state[slot.Name] = SlotState{Url: rec.Url, Status: rec.Status}
			continue
		}

		if url := profileCacheUrl(user, slot.Name); url != "" {
			state[slot.Name] = SlotState{Url: url, Status: models.DocUploaded}
			continue
		}

		for i := range dash.Steps {
			sibling := &dash.Steps[i]
			if sibling.StepID == step.StepID {
				continue
			}
			for j := range sibling.Documents {
				doc := &sibling.Documents[j]
				if doc.Name == slot.Name && SlotSatisfied(SlotState{Url: doc.Url, Status: doc.Status}) {
					state[slot.Name] = SlotState{Url: doc.Url, Status: doc.Status}
				}
			}
		}
	}

	return state, nil
}

// persistUpload writes one successful upload: a new ledger row, the step
// document cache, and the profile cache when the slot is a profile document,
// all in a single transaction.
func (o *Orchestrator) persistUpload(user *models.User, step *models.RegistrationStep, slot, url string) error {
	now := time.Now()
	stepID := step.StepID

	return o.db.Transaction(func(tx *gorm.DB) error {
		if _, err := recordUpload(tx, user.ID, &stepID, slot, url); err != nil {
			return err
		}

		var doc *models.StepDocument
		for i := range step.Documents {
			if step.Documents[i].Name == slot {
				doc = &step.Documents[i]
				break
			}
		}
		if doc == nil {
			step.Documents = append(step.Documents, models.StepDocument{
				RegistrationStepID: step.ID,
				Name:               slot,
			})
			doc = &step.Documents[len(step.Documents)-1]
		}
		ApplyUpload(doc, url, now)
		if err := tx.Save(doc).Error; err != nil {
			return err
		}

		if column := setProfileCache(user, slot, url); column != "" {
			if err := tx.Model(&models.User{}).Where("id = ?", user.ID).Update(column, url).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// notify emits a feed notification, logging instead of failing the
// submission when the write goes wrong.
func (o *Orchestrator) notify(userID uint, title, message, notifyType string) {
	if _, err := Emit(o.db, userID, title, message, notifyType); err != nil {
		log.Printf("Failed to emit notification for user %d: %v", userID, err)
	}
}

func projectedState(state map[string]SlotState, files []PendingFile) map[string]SlotState {
	projected := make(map[string]SlotState, len(state)+len(files))
	for name, s := range state {
		projected[name] = s
	}
	for _, file := range files {
		projected[file.Slot] = SlotState{Url: "pending:" + file.Filename, Status: models.DocUploaded}
	}
	return projected
}

func detailsToValues(details datatypes.JSONMap) map[string]string {
	values := make(map[string]string, len(details))
	for key, value := range details {
		if s, ok := value.(string); ok {
			values[key] = s
		}
	}
	return values
}

func loadUser(db *gorm.DB, userID uint) (*models.User, error) {
	var user models.User
	err := db.Where("id = ? AND is_deleted = false", userID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("user %d not found", userID)
		}
		return nil, err
	}
	return &user, nil
}
