package utils

import (
	"exim/config"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/go-resty/resty/v2"
)

// GenerateOTP generates a 6-digit OTP
func GenerateOTP() string {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	otp := ""
	for i := 0; i < 6; i++ {
		otp += fmt.Sprintf("%d", rng.Intn(10))
	}
	return otp
}

// SendOTPToMobile delivers an OTP over the DLT SMS route.
func SendOTPToMobile(mobile, otp string) error {
	senderID := "EXMDSK"
	messageID := "197302" // DLT Template ID

	// OTP and validity window in minutes
	variables := fmt.Sprintf("%s|10", otp)

	resp, err := resty.New().R().
		SetQueryParams(map[string]string{
			"authorization":    config.AppConfig.LocalTextApi,
			"route":            "dlt",
			"sender_id":        senderID,
			"message":          messageID,
			"variables_values": variables,
			"flash":            "0",
			"numbers":          mobile,
		}).
		Get(config.AppConfig.LocalTextApiUrl)
	if err != nil {
		log.Printf("Error while sending OTP: %v", err)
		return err
	}

	if resp.IsError() {
		log.Printf("Failed to send OTP, response code: %d", resp.StatusCode())
		return fmt.Errorf("failed to send OTP, code: %d", resp.StatusCode())
	}

	log.Println("OTP sent successfully to", mobile)
	return nil
}
