package registration

import (
	"fmt"
	"strings"

	"exim/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RejectDocument applies a reviewer rejection to a document slot. A step
// slot drags its whole step to rejected regardless of the other documents;
// a nil stepID targets a profile document. The old URL stays on file for
// display, but the slot stops counting toward progress until re-uploaded.
func (o *Orchestrator) RejectDocument(userID uint, stepID *int, slot, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return NewValidationError("a rejection reason is required")
	}
	return o.review(userID, stepID, slot, models.DocRejected, reason)
}

// VerifyDocument applies a reviewer approval to a document slot.
func (o *Orchestrator) VerifyDocument(userID uint, stepID *int, slot string) error {
	return o.review(userID, stepID, slot, models.DocVerified, "")
}

func (o *Orchestrator) review(userID uint, stepID *int, slot, verdict, reason string) error {
	mu := o.lockUser(userID)
	mu.Lock()
	defer mu.Unlock()

	if !SlotVocabulary[slot] {
		return NewValidationError("unknown document slot: %s", slot)
	}
	user, err := loadUser(o.db, userID)
	if err != nil {
		return err
	}

	if stepID == nil {
		return o.reviewProfileDocument(user, slot, verdict, reason)
	}

	dash, err := GetOrCreateDashboard(o.db, userID)
	if err != nil {
		return err
	}
	step, err := FindStep(dash, *stepID)
	if err != nil {
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
		return NewNotFoundError("document %s not found on step %s", slot, step.Name)
	}

	if err := ReviewDocument(doc, verdict, reason); err != nil {
		return err
	}

	err = o.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(doc).Error; err != nil {
			return err
		}
		if err := recordReview(tx, userID, stepID, slot, verdict, reason); err != nil {
			return err
		}
		if verdict == models.DocRejected {
			if err := TransitionStep(step, models.StepRejected); err != nil {
				return err
			}
			if err := tx.Omit(clause.Associations).Save(step).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if verdict == models.DocRejected {
		// A previously completed step just dropped out of the completed
		// count.
		if err := RecomputeOverallProgress(o.db, dash); err != nil {
			return err
		}
		o.notify(userID, "Document Rejected",
			fmt.Sprintf("Your %s for %s was rejected: %s. Please re-upload and resubmit.", slot, step.Name, reason),
			models.NotifyError)
	} else {
		o.notify(userID, "Document Verified",
			fmt.Sprintf("Your %s for %s has been verified.", slot, step.Name),
			models.NotifySuccess)
	}
	return nil
}

func (o *Orchestrator) reviewProfileDocument(user *models.User, slot, verdict, reason string) error {
	if profileCacheUrl(user, slot) == "" {
		rec, err := latestDocument(o.db, user.ID, slot)
		if err != nil {
			return err
		}
		if rec == nil {
			return NewNotFoundError("profile document %s not found", slot)
		}
	}

	if err := recordReview(o.db, user.ID, nil, slot, verdict, reason); err != nil {
		return err
	}

	if verdict == models.DocRejected {
		o.notify(user.ID, "Document Rejected",
			fmt.Sprintf("Your profile document %s was rejected: %s. Please upload it again.", slot, reason),
			models.NotifyError)
	} else {
		o.notify(user.ID, "Document Verified",
			fmt.Sprintf("Your profile document %s has been verified.", slot),
			models.NotifySuccess)
	}
	return nil
}

// PendingReviews lists ledger entries awaiting a reviewer verdict, oldest
// first.
func PendingReviews(db *gorm.DB, limit, offset int) ([]models.DocumentRecord, int64, error) {
	var records []models.DocumentRecord
	var total int64

	query := db.Model(&models.DocumentRecord{}).
		Where("status = ? AND is_deleted = false", models.DocUploaded)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("id ASC").Limit(limit).Offset(offset).Find(&records).Error
	return records, total, err
}
