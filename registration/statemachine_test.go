package registration

import (
	"testing"
	"time"

	"exim/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanStepTransition(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{models.StepPending, models.StepInProgress, true},
		{models.StepPending, models.StepRejected, true},
		{models.StepPending, models.StepCompleted, false},
		{models.StepInProgress, models.StepCompleted, true},
		{models.StepInProgress, models.StepRejected, true},
		{models.StepCompleted, models.StepRejected, true},
		{models.StepCompleted, models.StepInProgress, false},
		{models.StepCompleted, models.StepPending, false},
		{models.StepRejected, models.StepInProgress, true},
		{models.StepRejected, models.StepCompleted, false},
		{models.StepRejected, models.StepPending, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.ok, CanStepTransition(c.from, c.to), "%s → %s", c.from, c.to)
	}

	// Same-state transitions are no-ops, never conflicts
	for _, s := range []string{models.StepPending, models.StepInProgress, models.StepCompleted, models.StepRejected} {
		assert.True(t, CanStepTransition(s, s))
	}
}

func TestTransitionStepIllegal(t *testing.T) {
	step := &models.RegistrationStep{Status: models.StepRejected}
	err := TransitionStep(step, models.StepCompleted)
	require.Error(t, err)
	assert.IsType(t, &ConflictError{}, err)
	assert.Equal(t, models.StepRejected, step.Status)
}

func TestTransitionStepCompletionTimestamps(t *testing.T) {
	step := &models.RegistrationStep{Status: models.StepInProgress}

	require.NoError(t, TransitionStep(step, models.StepCompleted))
	require.NotNil(t, step.CompletedAt)
	require.NotNil(t, step.LastCompletedAt)
	firstCompleted := *step.CompletedAt

	// Reject and complete again: the first completion stamp survives
	require.NoError(t, TransitionStep(step, models.StepRejected))
	require.NoError(t, TransitionStep(step, models.StepInProgress))
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, TransitionStep(step, models.StepCompleted))

	assert.Equal(t, firstCompleted, *step.CompletedAt)
	assert.True(t, step.LastCompletedAt.After(firstCompleted))
}

func TestApplyUploadClearsRejection(t *testing.T) {
	now := time.Now()
	doc := &models.StepDocument{
		Name:   SlotRentAgreement,
		Url:    "https://cdn/old.pdf",
		Status: models.DocRejected,
		Reason: "document is illegible",
	}

	ApplyUpload(doc, "https://cdn/new.pdf", now)

	assert.Equal(t, "https://cdn/new.pdf", doc.Url)
	assert.Equal(t, models.DocUploaded, doc.Status)
	assert.Empty(t, doc.Reason)
	require.NotNil(t, doc.UploadedAt)
	assert.Equal(t, now, *doc.UploadedAt)
}

func TestReviewDocumentRules(t *testing.T) {
	// Nothing uploaded yet
	empty := &models.StepDocument{Name: SlotPanCard}
	err := ReviewDocument(empty, models.DocVerified, "")
	require.Error(t, err)
	assert.IsType(t, &ValidationError{}, err)

	// Rejection without a reason
	uploaded := &models.StepDocument{Name: SlotPanCard, Url: "u", Status: models.DocUploaded}
	err = ReviewDocument(uploaded, models.DocRejected, "  ")
	require.Error(t, err)
	assert.IsType(t, &ValidationError{}, err)
	assert.Equal(t, models.DocUploaded, uploaded.Status)

	// Rejection with a reason sticks
	require.NoError(t, ReviewDocument(uploaded, models.DocRejected, "name mismatch"))
	assert.Equal(t, models.DocRejected, uploaded.Status)
	assert.Equal(t, "name mismatch", uploaded.Reason)

	// A rejected document cannot be verified without a fresh upload
	err = ReviewDocument(uploaded, models.DocVerified, "")
	require.Error(t, err)
	assert.IsType(t, &ConflictError{}, err)

	// Re-upload then verify
	ApplyUpload(uploaded, "https://cdn/corrected.pdf", time.Now())
	require.NoError(t, ReviewDocument(uploaded, models.DocVerified, ""))
	assert.Equal(t, models.DocVerified, uploaded.Status)
	assert.Empty(t, uploaded.Reason)

	// Unknown verdicts are refused
	err = ReviewDocument(uploaded, "escalated", "")
	require.Error(t, err)
	assert.IsType(t, &ValidationError{}, err)
}
