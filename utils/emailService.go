package utils

import (
	"exim/config"
	"fmt"
	"log"
	"net/smtp"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendOTPEmail delivers a verification OTP over SMTP.
func SendOTPEmail(otp, email string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password // App password

	to := []string{email}

	subject := "Subject: OTP Verification Code for EximDesk\nMIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"

	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 500px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px; box-shadow: 0 2px 8px rgba(0, 0, 0, 0.1);">
					<h2 style="color: #333333; text-align: center;">EximDesk OTP Verification</h2>
					<p style="font-size: 16px; color: #555555; text-align: center;">Your One Time Password (OTP) is:</p>
					<h1 style="text-align: center; color: #4CAF50; font-size: 40px; margin: 20px 0;">%s</h1>
					<p style="font-size: 14px; color: #999999; text-align: center;">Do not share this OTP with anyone.</p>
					<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 30px;">Thank you for using our service.</p>
				</div>
			</body>
		</html>
	`, otp)

	message := []byte(subject + "\n" + body)

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, message)
	if err != nil {
		log.Println("Error sending email:", err)
		return err
	}

	log.Println("Email sent successfully to", email)
	return nil
}

// SendNotificationEmail fans a feed notification out over SendGrid. Callers
// fire it in a goroutine; a delivery failure never blocks the transition
// that produced the notification.
func SendNotificationEmail(email, name, title, message string) error {
	if config.AppConfig.SendGridKey == "" {
		log.Println("SendGrid not configured, skipping notification email to", email)
		return nil
	}

	from := mail.NewEmail("EximDesk", config.AppConfig.EmailSender)
	to := mail.NewEmail(name, email)

	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 600px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px; box-shadow: 0 2px 8px rgba(0, 0, 0, 0.1);">
					<h2 style="color: #333333; text-align: center;">%s</h2>
					<p style="font-size: 16px; color: #555555;">Dear %s,</p>
					<p style="font-size: 16px; color: #555555;">%s</p>
					<p style="font-size: 14px; color: #666666;">Log in to your dashboard to see the latest status of your registrations.</p>
					<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 20px;">EximDesk Team</p>
				</div>
			</body>
		</html>
	`, title, name, message)

	email_ := mail.NewSingleEmail(from, title+" - EximDesk", to, message, body)
	client := sendgrid.NewSendClient(config.AppConfig.SendGridKey)

	resp, err := client.Send(email_)
	if err != nil {
		log.Println("Error sending notification email:", err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("Notification email rejected with status %d", resp.StatusCode)
		return fmt.Errorf("notification email rejected with status %d", resp.StatusCode)
	}

	log.Println("Notification email sent successfully to", email)
	return nil
}
