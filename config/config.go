package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	JWTKey    string
	SaltRound int

	LocalTextApi    string
	LocalTextApiUrl string

	EmailSender string
	Password    string // SMTP Password
	SendGridKey string // SendGrid API key for notification emails

	StorageApiURL string // Remote document storage endpoint (empty = local disk)
	StorageApiKey string
	UploadDir     string // Local upload directory when remote storage is off
	BaseURL       string // Public base URL for locally served uploads
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	// Initialize AppConfig with values from environment variables
	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		LocalTextApi:    getEnv("LOCAL_SMS_API_KEY", "defaultSecret"),
		LocalTextApiUrl: getEnv("LOCAL_SMS_API_URL", "https://www.fast2sms.com/dev/bulkV2"),

		EmailSender: getEnv("EMAIL_SENDER", "defaultSecret"),
		Password:    getEnv("PASSWORD", "defaultSecret"),
		SendGridKey: getEnv("SENDGRID_API_KEY", ""),

		StorageApiURL: getEnv("STORAGE_API_URL", ""),
		StorageApiKey: getEnv("STORAGE_API_KEY", ""),
		UploadDir:     getEnv("UPLOAD_DIR", "./uploads"),
		BaseURL:       getEnv("BASE_URL", "http://localhost:3000"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.StorageApiURL == "" {
		log.Println("Storage API not configured. Documents will be stored on local disk.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
