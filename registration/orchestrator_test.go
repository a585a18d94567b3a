package registration

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"exim/database"
	"exim/models"
	"exim/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// fakeStore uploads in memory and can be told to fail specific slots.
type fakeStore struct {
	fail map[string]bool
}

func (f *fakeStore) Upload(data []byte, opts storage.UploadOptions) (string, error) {
	if f.fail[opts.PublicID] {
		return "", errors.New("storage unavailable")
	}
	return fmt.Sprintf("https://cdn.test/%s/%s", opts.Folder, opts.PublicID), nil
}

func newEngineTest(t *testing.T) (*gorm.DB, *Orchestrator, *fakeStore) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	database.RunMigrations(db)

	store := &fakeStore{fail: map[string]bool{}}
	return db, NewOrchestrator(db, store), store
}

func seedUser(t *testing.T, db *gorm.DB, businessType string) *models.User {
	t.Helper()
	user := &models.User{
		Name:               "Asha Exports",
		Email:              fmt.Sprintf("%s@example.com", t.Name()),
		Mobile:             "9876543210",
		Password:           "not-a-real-hash",
		BusinessEntityType: businessType,
		IsEmailVerified:    true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func filesFor(slots ...string) []PendingFile {
	files := make([]PendingFile, 0, len(slots))
	for _, slot := range slots {
		files = append(files, PendingFile{Slot: slot, Filename: slot + ".pdf", Data: []byte("%PDF-1.4")})
	}
	return files
}

var gstRentedSlots = []string{
	SlotPanCard, SlotAadharCard, SlotPhotograph, SlotProofOfAddress,
	SlotRentAgreement, SlotElectricityBill, SlotNOC,
}

var gstFields = map[string]string{
	FieldBusinessAddress: "12 Marine Drive, Mumbai",
	FieldPremiseType:     PremiseRented,
}

func notificationCount(t *testing.T, db *gorm.DB, userID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Where("user_id = ?", userID).Count(&count).Error)
	return count
}

func TestSubmitRejectsIncompleteStep(t *testing.T) {
	db, orch, _ := newEngineTest(t)
	user := seedUser(t, db, models.EntityIndividual)

	// Fields only, no documents: nowhere near 100%
	_, err := orch.SubmitStep(user.ID, models.StepGST, gstFields, nil)
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Contains(t, validationErr.Message, "incomplete submission")

	// Nothing was persisted and no notification fired
	dash, err := GetOrCreateDashboard(db, user.ID)
	require.NoError(t, err)
	step, err := FindStep(dash, models.StepGST)
	require.NoError(t, err)
	assert.Equal(t, models.StepPending, step.Status)
	assert.Empty(t, step.Details)
	assert.Zero(t, notificationCount(t, db, user.ID))
}

func TestSubmitCompletesStep(t *testing.T) {
	db, orch, _ := newEngineTest(t)
	user := seedUser(t, db, models.EntityIndividual)

	result, err := orch.SubmitStep(user.ID, models.StepGST, gstFields, filesFor(gstRentedSlots...))
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, models.StepCompleted, result.NewStatus)
	assert.Equal(t, 100, result.Progress)
	assert.False(t, result.Resubmission)
	assert.Len(t, result.Slots, len(gstRentedSlots))
	for _, slot := range result.Slots {
		assert.True(t, slot.Saved, "slot %s", slot.Slot)
		assert.NotEmpty(t, slot.Url)
	}

	dash, err := GetOrCreateDashboard(db, user.ID)
	require.NoError(t, err)
	assert.True(t, dash.HasStartedRegistration)
	assert.Equal(t, 20, dash.OverallProgress) // 1 of 5 steps

	step, err := FindStep(dash, models.StepGST)
	require.NoError(t, err)
	assert.Equal(t, models.StepCompleted, step.Status)
	require.NotNil(t, step.CompletedAt)
	require.NotNil(t, step.LastCompletedAt)
	assert.Equal(t, "12 Marine Drive, Mumbai", step.Details[FieldBusinessAddress])

	// One ledger row per uploaded slot
	var ledgerCount int64
	require.NoError(t, db.Model(&models.DocumentRecord{}).Where("user_id = ?", user.ID).Count(&ledgerCount).Error)
	assert.EqualValues(t, len(gstRentedSlots), ledgerCount)

	// The profile cache picked up the profile documents
	var reloaded models.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	assert.NotEmpty(t, reloaded.PanCardUrl)
	assert.NotEmpty(t, reloaded.ProofOfAddressUrl)
}

func TestSubmitCompletedStepConflicts(t *testing.T) {
	db, orch, _ := newEngineTest(t)
	user := seedUser(t, db, models.EntityIndividual)

	_, err := orch.SubmitStep(user.ID, models.StepGST, gstFields, filesFor(gstRentedSlots...))
	require.NoError(t, err)

	_, err = orch.SubmitStep(user.ID, models.StepGST, gstFields, nil)
	require.Error(t, err)
	var conflictErr *ConflictError
	assert.True(t, errors.As(err, &conflictErr))
}

func TestSubmitPartialUploadFailure(t *testing.T) {
	db, orch, store := newEngineTest(t)
	user := seedUser(t, db, models.EntityIndividual)
	store.fail[SlotNOC] = true

	result, err := orch.SubmitStep(user.ID, models.StepGST, gstFields, filesFor(gstRentedSlots...))
	require.NoError(t, err)

	// One failed slot blocks completion but the rest still saved
	assert.False(t, result.Success)
	assert.Equal(t, models.StepInProgress, result.NewStatus)
	assert.Contains(t, result.Message, "6 of 7 documents saved")

	saved := 0
	for _, slot := range result.Slots {
		if slot.Slot == SlotNOC {
			assert.False(t, slot.Saved)
			assert.NotEmpty(t, slot.Error)
			continue
		}
		assert.True(t, slot.Saved, "slot %s", slot.Slot)
		saved++
	}
	assert.Equal(t, 6, saved)

	dash, err := GetOrCreateDashboard(db, user.ID)
	require.NoError(t, err)
	step, err := FindStep(dash, models.StepGST)
	require.NoError(t, err)
	assert.Equal(t, models.StepInProgress, step.Status)
	assert.Nil(t, step.CompletedAt)
	assert.Equal(t, 0, dash.OverallProgress)

	// Retry with just the failed slot now succeeds
	store.fail = map[string]bool{}
	result, err = orch.SubmitStep(user.ID, models.StepGST, nil, filesFor(SlotNOC))
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, models.StepCompleted, result.NewStatus)
}

func TestSubmitUnknownSlotReported(t *testing.T) {
	db, orch, _ := newEngineTest(t)
	user := seedUser(t, db, models.EntityIndividual)

	files := append(filesFor(gstRentedSlots...), PendingFile{Slot: "voterId", Filename: "voter.pdf", Data: []byte("x")})
	result, err := orch.SubmitStep(user.ID, models.StepGST, gstFields, files)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, models.StepInProgress, result.NewStatus)

	var unknown *SlotResult
	for i := range result.Slots {
		if result.Slots[i].Slot == "voterId" {
			unknown = &result.Slots[i]
		}
	}
	require.NotNil(t, unknown)
	assert.Equal(t, "unknown document slot", unknown.Error)
}

func TestRejectionAndResubmission(t *testing.T) {
	db, orch, _ := newEngineTest(t)
	user := seedUser(t, db, models.EntityIndividual)

	_, err := orch.SubmitStep(user.ID, models.StepGST, gstFields, filesFor(gstRentedSlots...))
	require.NoError(t, err)

	dash, err := GetOrCreateDashboard(db, user.ID)
	require.NoError(t, err)
	step, err := FindStep(dash, models.StepGST)
	require.NoError(t, err)
	firstCompleted := *step.CompletedAt

	// Reviewer rejects one document: the whole step drops to rejected
	stepID := models.StepGST
	require.NoError(t, orch.RejectDocument(user.ID, &stepID, SlotRentAgreement, "rent agreement has expired"))

	dash, err = GetOrCreateDashboard(db, user.ID)
	require.NoError(t, err)
	step, err = FindStep(dash, models.StepGST)
	require.NoError(t, err)
	assert.Equal(t, models.StepRejected, step.Status)
	assert.Equal(t, 0, dash.OverallProgress)

	progress, err := orch.StepProgress(user.ID, models.StepGST)
	require.NoError(t, err)
	assert.Equal(t, 89, progress) // 8 of 9 requirements

	// A fresh submit is refused while partial corrections are fine
	_, err = orch.ResubmitStep(user.ID, models.StepADCode, nil, nil)
	var conflictErr *ConflictError
	require.True(t, errors.As(err, &conflictErr))

	// Partial resubmission: updated address only, still short of 100%
	result, err := orch.ResubmitStep(user.ID, models.StepGST,
		map[string]string{FieldBusinessAddress: "14 Marine Drive, Mumbai"}, nil)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.True(t, result.Resubmission)
	assert.Equal(t, models.StepInProgress, result.NewStatus)
	assert.Equal(t, 89, result.Progress)

	// The corrected document completes the step again
	result, err = orch.SubmitStep(user.ID, models.StepGST, nil, filesFor(SlotRentAgreement))
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, models.StepCompleted, result.NewStatus)

	dash, err = GetOrCreateDashboard(db, user.ID)
	require.NoError(t, err)
	step, err = FindStep(dash, models.StepGST)
	require.NoError(t, err)

	// First completion stamp survives the reject/complete cycle
	require.NotNil(t, step.CompletedAt)
	assert.Equal(t, firstCompleted.Unix(), step.CompletedAt.Unix())
	require.NotNil(t, step.LastCompletedAt)
	assert.False(t, step.LastCompletedAt.Before(*step.CompletedAt))

	// The ledger kept both uploads; the rejected one carries its history
	timeline, err := DocumentTimeline(db, user.ID, SlotRentAgreement)
	require.NoError(t, err)
	require.Len(t, timeline, 2)
	assert.Equal(t, models.DocUploaded, timeline[0].Status)
	assert.Equal(t, models.DocRejected, timeline[1].Status)
	assert.Equal(t, "rent agreement has expired", timeline[1].Reason)

	var history []models.StatusChange
	require.NoError(t, json.Unmarshal(timeline[1].History, &history))
	require.Len(t, history, 2)
	assert.Equal(t, models.DocUploaded, history[0].Status)
	assert.Equal(t, models.DocRejected, history[1].Status)
}

func TestResubmitRequiresRejectedStep(t *testing.T) {
	db, orch, _ := newEngineTest(t)
	user := seedUser(t, db, models.EntityIndividual)

	_, err := orch.ResubmitStep(user.ID, models.StepGST, gstFields, nil)
	require.Error(t, err)
	var conflictErr *ConflictError
	require.True(t, errors.As(err, &conflictErr))
	assert.Contains(t, conflictErr.Message, "resubmission requires a rejected step")
}

func TestProfileUploadsPropagateToSteps(t *testing.T) {
	db, orch, _ := newEngineTest(t)
	user := seedUser(t, db, models.EntityIndividual)

	for _, slot := range []string{SlotPanCard, SlotAadharCard, SlotPhotograph, SlotProofOfAddress} {
		url, err := orch.UploadProfileDocument(user.ID, PendingFile{Slot: slot, Filename: slot + ".jpg", Data: []byte("img")})
		require.NoError(t, err)
		assert.NotEmpty(t, url)
	}

	// The four profile documents already count toward GST: 4 of 9
	progress, err := orch.StepProgress(user.ID, models.StepGST)
	require.NoError(t, err)
	assert.Equal(t, 44, progress)

	// Completing GST requires no profile re-uploads
	result, err := orch.SubmitStep(user.ID, models.StepGST, gstFields,
		filesFor(SlotRentAgreement, SlotElectricityBill, SlotNOC))
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, models.StepCompleted, result.NewStatus)
}

func TestCertificatesPropagateAcrossSteps(t *testing.T) {
	db, orch, _ := newEngineTest(t)
	user := seedUser(t, db, models.EntityIndividual)

	for _, slot := range []string{SlotPanCard, SlotAadharCard, SlotPhotograph, SlotProofOfAddress} {
		_, err := orch.UploadProfileDocument(user.ID, PendingFile{Slot: slot, Filename: slot + ".jpg", Data: []byte("img")})
		require.NoError(t, err)
	}

	// ICEGATE uploads the IEC certificate and AD code letter
	result, err := orch.SubmitStep(user.ID, models.StepICEGATE, nil,
		filesFor(SlotIECCertificate, SlotADCodeLetterFromBank, SlotGSTCertificate))
	require.NoError(t, err)
	assert.True(t, result.Success)

	// AD Code shares two of its three certificates with ICEGATE: only the DSC
	// certificate is still missing. 6 of 7 slots.
	progress, err := orch.StepProgress(user.ID, models.StepADCode)
	require.NoError(t, err)
	assert.Equal(t, 86, progress)
}

func TestProfileRejectionBlocksDependentSteps(t *testing.T) {
	db, orch, _ := newEngineTest(t)
	user := seedUser(t, db, models.EntityIndividual)

	for _, slot := range []string{SlotPanCard, SlotAadharCard, SlotPhotograph, SlotProofOfAddress} {
		_, err := orch.UploadProfileDocument(user.ID, PendingFile{Slot: slot, Filename: slot + ".jpg", Data: []byte("img")})
		require.NoError(t, err)
	}

	before, err := orch.StepProgress(user.ID, models.StepGST)
	require.NoError(t, err)

	// Reject the profile-scoped pan card: its cache URL stays but the ledger
	// verdict stops it counting anywhere
	require.NoError(t, orch.RejectDocument(user.ID, nil, SlotPanCard, "pan card is blurred"))

	after, err := orch.StepProgress(user.ID, models.StepGST)
	require.NoError(t, err)
	assert.Less(t, after, before)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	assert.NotEmpty(t, reloaded.PanCardUrl)
}

func TestMarkNotificationRead(t *testing.T) {
	db, _, _ := newEngineTest(t)
	user := seedUser(t, db, models.EntityIndividual)

	notification, err := Emit(db, user.ID, "Welcome", "Hello there", models.NotifyInfo)
	require.NoError(t, err)
	assert.False(t, notification.Read)

	require.NoError(t, MarkNotificationRead(db, user.ID, notification.ID))

	var reloaded models.Notification
	require.NoError(t, db.First(&reloaded, notification.ID).Error)
	assert.True(t, reloaded.Read)

	// Marking twice is a no-op; a foreign notification is not found
	require.NoError(t, MarkNotificationRead(db, user.ID, notification.ID))
	err = MarkNotificationRead(db, user.ID+1, notification.ID)
	var notFound *NotFoundError
	assert.True(t, errors.As(err, &notFound))
}
