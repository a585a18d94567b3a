package registration

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"exim/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// recordUpload appends a new row to the document ledger. One row per upload;
// later reviews append to this row's history.
func recordUpload(tx *gorm.DB, userID uint, stepID *int, slot, url string) (*models.DocumentRecord, error) {
	history, err := json.Marshal([]models.StatusChange{{
		Status:    models.DocUploaded,
		Timestamp: time.Now().Format(time.RFC3339),
	}})
	if err != nil {
		return nil, err
	}

	rec := models.DocumentRecord{
		Ref:     uuid.NewString(),
		UserID:  userID,
		StepID:  stepID,
		Type:    slot,
		Url:     url,
		Status:  models.DocUploaded,
		History: datatypes.JSON(history),
	}
	if err := tx.Create(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// recordReview updates the latest ledger row for a slot with the reviewer
// verdict and appends the change to its history. A slot with no ledger row
// is logged and skipped so review of legacy cache-only documents still works.
func recordReview(tx *gorm.DB, userID uint, stepID *int, slot, verdict, reason string) error {
	var rec models.DocumentRecord
	query := tx.Where("user_id = ? AND type = ? AND is_deleted = false", userID, slot)
	if stepID != nil {
		query = query.Where("step_id = ?", *stepID)
	}
	if err := query.Order("id DESC").First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("No ledger record for user %d slot %s; review not recorded in ledger", userID, slot)
			return nil
		}
		return err
	}

	var history []models.StatusChange
	if len(rec.History) > 0 {
		if err := json.Unmarshal(rec.History, &history); err != nil {
			log.Printf("Corrupt ledger history on record %d: %v", rec.ID, err)
			history = nil
		}
	}
	history = append(history, models.StatusChange{
		Status:    verdict,
		Timestamp: time.Now().Format(time.RFC3339),
		Reason:    reason,
	})
	raw, err := json.Marshal(history)
	if err != nil {
		return err
	}

	rec.Status = verdict
	rec.Reason = reason
	rec.History = datatypes.JSON(raw)
	return tx.Save(&rec).Error
}

// latestDocument returns the most recent ledger row for a user and slot in
// any scope, or nil when the slot has never been uploaded.
func latestDocument(db *gorm.DB, userID uint, slot string) (*models.DocumentRecord, error) {
	var rec models.DocumentRecord
	err := db.Where("user_id = ? AND type = ? AND is_deleted = false", userID, slot).
		Order("id DESC").
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// DocumentTimeline returns every ledger row for a user and slot, newest
// first, for audit display.
func DocumentTimeline(db *gorm.DB, userID uint, slot string) ([]models.DocumentRecord, error) {
	var records []models.DocumentRecord
	err := db.Where("user_id = ? AND type = ? AND is_deleted = false", userID, slot).
		Order("id DESC").
		Find(&records).Error
	return records, err
}
