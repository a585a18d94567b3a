package registration

import (
	"errors"
	"math"

	"exim/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type defaultStep struct {
	ID   int
	Name string
	Icon string
}

var defaultSteps = []defaultStep{
	{models.StepGST, "GST Registration", "receipt-tax"},
	{models.StepIEC, "Import Export Code (IEC)", "globe"},
	{models.StepDSC, "Digital Signature Certificate (DSC)", "finger-print"},
	{models.StepICEGATE, "ICEGATE Registration", "server"},
	{models.StepADCode, "AD Code Registration", "library"},
}

// GetOrCreateDashboard loads a user's registration dashboard, creating it
// with the five default steps on first access.
func GetOrCreateDashboard(db *gorm.DB, userID uint) (*models.RegistrationDashboard, error) {
	var dash models.RegistrationDashboard
	err := db.Preload("Steps", func(tx *gorm.DB) *gorm.DB { return tx.Order("step_id ASC") }).
		Preload("Steps.Documents").
		Where("user_id = ? AND is_deleted = false", userID).
		First(&dash).Error
	if err == nil {
		return &dash, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	dash = models.RegistrationDashboard{UserID: userID}
	for _, s := range defaultSteps {
		dash.Steps = append(dash.Steps, models.RegistrationStep{
			StepID:  s.ID,
			Name:    s.Name,
			Icon:    s.Icon,
			Status:  models.StepPending,
			Details: datatypes.JSONMap{},
		})
	}
	if err := db.Create(&dash).Error; err != nil {
		return nil, err
	}
	return &dash, nil
}

// FindStep returns the step with the given numeric identity.
func FindStep(dash *models.RegistrationDashboard, stepID int) (*models.RegistrationStep, error) {
	for i := range dash.Steps {
		if dash.Steps[i].StepID == stepID {
			return &dash.Steps[i], nil
		}
	}
	return nil, NewNotFoundError("registration step %d not found", stepID)
}

// RecomputeOverallProgress refreshes the dashboard-level percentage:
// round(100 × completed steps / total steps). Called on every step status
// change.
func RecomputeOverallProgress(db *gorm.DB, dash *models.RegistrationDashboard) error {
	if len(dash.Steps) == 0 {
		dash.OverallProgress = 0
	} else {
		completed := 0
		for i := range dash.Steps {
			if dash.Steps[i].Status == models.StepCompleted {
				completed++
			}
		}
		dash.OverallProgress = int(math.Round(float64(completed) * 100 / float64(len(dash.Steps))))
	}
	return db.Model(dash).Updates(map[string]interface{}{
		"overall_progress":         dash.OverallProgress,
		"has_started_registration": dash.HasStartedRegistration,
	}).Error
}
