package registration

import (
	"strings"
	"time"

	"exim/models"
)

// Legal step transitions. Completion is terminal except through the
// rejection branch; a rejected step re-enters the normal flow as
// in-progress on resubmission.
var stepTransitions = map[string]map[string]bool{
	models.StepPending: {
		models.StepInProgress: true,
		models.StepRejected:   true,
	},
	models.StepInProgress: {
		models.StepCompleted: true,
		models.StepRejected:  true,
	},
	models.StepCompleted: {
		models.StepRejected: true,
	},
	models.StepRejected: {
		models.StepInProgress: true,
	},
}

// CanStepTransition reports whether from → to is a legal step transition.
// Staying in the same state is always allowed.
func CanStepTransition(from, to string) bool {
	if from == to {
		return true
	}
	return stepTransitions[from][to]
}

// TransitionStep applies a step status transition, or returns a
// ConflictError when the transition is illegal. The first transition into
// completed stamps CompletedAt; it is never cleared afterwards.
// LastCompletedAt moves on every completion.
func TransitionStep(step *models.RegistrationStep, to string) error {
	if step.Status == to {
		return nil
	}
	if !CanStepTransition(step.Status, to) {
		return NewConflictError("illegal step transition: %s → %s", step.Status, to)
	}
	if to == models.StepCompleted {
		now := time.Now()
		if step.CompletedAt == nil {
			step.CompletedAt = &now
		}
		step.LastCompletedAt = &now
	}
	step.Status = to
	return nil
}

// ApplyUpload records a successful upload on a document slot. Re-uploading
// overwrites the slot in place and clears any prior rejection; the ledger
// keeps the history.
func ApplyUpload(doc *models.StepDocument, url string, at time.Time) {
	doc.Url = url
	doc.Status = models.DocUploaded
	doc.Reason = ""
	doc.UploadedAt = &at
}

// ReviewDocument applies a reviewer verdict to a document slot. A rejection
// requires a reason; a slot with no upload on file cannot be reviewed.
func ReviewDocument(doc *models.StepDocument, verdict, reason string) error {
	if doc.Url == "" {
		return NewValidationError("document %s has no upload to review", doc.Name)
	}
	switch verdict {
	case models.DocVerified:
		if doc.Status == models.DocRejected {
			return NewConflictError("document %s is rejected and must be re-uploaded first", doc.Name)
		}
		doc.Status = models.DocVerified
		doc.Reason = ""
	case models.DocRejected:
		if strings.TrimSpace(reason) == "" {
			return NewValidationError("a rejection reason is required")
		}
		doc.Status = models.DocRejected
		doc.Reason = reason
	default:
		return NewValidationError("unknown review verdict: %s", verdict)
	}
	return nil
}
