package registration

import (
	"fmt"
	"log"

	"exim/models"
	"exim/storage"

	"gorm.io/gorm"
)

// UploadProfileDocument stores a profile-scoped document: pan card, aadhar
// card, photograph or proof of address. The upload lands in the ledger with
// no step scope and refreshes the profile cache, so every step that shares
// the slot picks it up.
func (o *Orchestrator) UploadProfileDocument(userID uint, file PendingFile) (string, error) {
	mu := o.lockUser(userID)
	mu.Lock()
	defer mu.Unlock()

	user, err := loadUser(o.db, userID)
	if err != nil {
		return "", err
	}

	if setProfileCacheColumn(file.Slot) == "" {
		return "", NewValidationError("slot %s is not a profile document", file.Slot)
	}

	url, err := o.store.Upload(file.Data, storage.UploadOptions{
		Folder:       fmt.Sprintf("user-%d/profile", userID),
		PublicID:     file.Slot,
		ResourceType: "auto",
	})
	if err != nil {
		log.Printf("Profile upload failed for user %d slot %s: %v", userID, file.Slot, err)
		return "", &UpstreamIOError{Message: "document upload failed", Err: err}
	}

	err = o.db.Transaction(func(tx *gorm.DB) error {
		if _, err := recordUpload(tx, userID, nil, file.Slot, url); err != nil {
			return err
		}
		column := setProfileCache(user, file.Slot, url)
		return tx.Model(&models.User{}).Where("id = ?", userID).Update(column, url).Error
	})
	if err != nil {
		return "", err
	}

	o.notify(userID, "Document Uploaded", fmt.Sprintf("Your %s was uploaded and is awaiting review.", file.Slot), models.NotifyInfo)
	return url, nil
}

// UploadCancelledCheque stores the cancelled cheque tied to the user's bank
// details and returns its URL. The ledger row carries no step scope.
func (o *Orchestrator) UploadCancelledCheque(userID uint, file PendingFile) (string, error) {
	mu := o.lockUser(userID)
	mu.Lock()
	defer mu.Unlock()

	if _, err := loadUser(o.db, userID); err != nil {
		return "", err
	}

	url, err := o.store.Upload(file.Data, storage.UploadOptions{
		Folder:       fmt.Sprintf("user-%d/profile", userID),
		PublicID:     SlotCancelledCheque,
		ResourceType: "auto",
	})
	if err != nil {
		log.Printf("Cancelled cheque upload failed for user %d: %v", userID, err)
		return "", &UpstreamIOError{Message: "document upload failed", Err: err}
	}

	err = o.db.Transaction(func(tx *gorm.DB) error {
		_, err := recordUpload(tx, userID, nil, SlotCancelledCheque, url)
		return err
	})
	if err != nil {
		return "", err
	}
	return url, nil
}

func setProfileCacheColumn(slot string) string {
	var scratch models.User
	return setProfileCache(&scratch, slot, "")
}
