package utils

import (
	"exim/database"
	"exim/models"
	"exim/registration"
	"fmt"
	"log"
	"time"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// purgeExpiredOTPs soft-deletes OTP records past their expiry window.
func purgeExpiredOTPs() {
	db := database.Database.Db

	result := db.Model(&models.OTP{}).
		Where("(expires_at < ? OR is_used = true) AND is_deleted = false", time.Now()).
		Update("is_deleted", true)
	if result.Error != nil {
		logScheduler("Error purging expired OTPs: " + result.Error.Error())
		return
	}
	if result.RowsAffected > 0 {
		logScheduler(fmt.Sprintf("Purged %d expired OTP records", result.RowsAffected))
	}
}

// remindStaleSteps nudges users whose in-progress or rejected steps have had
// no activity for a week.
func remindStaleSteps() {
	db := database.Database.Db
	cutoff := now.BeginningOfDay().AddDate(0, 0, -7)

	var steps []models.RegistrationStep
	if err := db.Where("status IN ? AND updated_at < ? AND is_deleted = false",
		[]string{models.StepInProgress, models.StepRejected}, cutoff).
		Find(&steps).Error; err != nil {
		logScheduler("Error fetching stale steps: " + err.Error())
		return
	}

	for _, step := range steps {
		var dash models.RegistrationDashboard
		if err := db.Where("id = ?", step.DashboardID).First(&dash).Error; err != nil {
			continue
		}

		title := "Registration Reminder"
		message := fmt.Sprintf("Your %s has been waiting since %s. Complete it to keep your onboarding moving.",
			step.Name, step.UpdatedAt.Format("02 Jan 2006"))
		if step.Status == models.StepRejected {
			title = "Action Required"
			message = fmt.Sprintf("Your %s was rejected and still needs corrections. Please re-upload the rejected documents.", step.Name)
		}

		if _, err := registration.Emit(db, dash.UserID, title, message, models.NotifyWarning); err != nil {
			logScheduler("Error emitting reminder: " + err.Error())
			continue
		}

		// Fan the reminder out over email as well
		var user models.User
		if err := db.Where("id = ? AND is_deleted = false", dash.UserID).First(&user).Error; err == nil && user.IsEmailVerified {
			go func(u models.User, t, m string) {
				if err := SendNotificationEmail(u.Email, u.Name, t, m); err != nil {
					logScheduler("Error sending reminder email: " + err.Error())
				}
			}(user, title, message)
		}
	}

	if len(steps) > 0 {
		logScheduler(fmt.Sprintf("Sent %d stale step reminders", len(steps)))
	}
}

// StartSchedulers wires the background cron jobs: hourly OTP cleanup and a
// daily reminder sweep at 09:00.
func StartSchedulers() *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("@hourly", purgeExpiredOTPs); err != nil {
		log.Fatalf("Failed to schedule OTP purge: %v", err)
	}
	if _, err := c.AddFunc("0 9 * * *", remindStaleSteps); err != nil {
		log.Fatalf("Failed to schedule step reminders: %v", err)
	}

	c.Start()
	logScheduler("Background schedulers started")
	return c
}
