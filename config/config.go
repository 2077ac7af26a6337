package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTKey          string
	PasswordHMACKey string

	SMTPHost     string
	SMTPPort     string
	SMTPSender   string
	SMTPPassword string
	SupportInbox string

	TelegramBotToken string
	TelegramChatID   string

	WayForPayMerchant string
	WayForPaySecret   string
	WayForPayDomain   string

	TicketRetentionDays int
	NotifyWorkers       int
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port: getEnv("PORT", "3000"),

		DBHost:     getEnv("DB_HOST", "127.0.0.1"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "mistogo"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "mistogo"),

		JWTKey:          getEnv("JWT_SECRET_KEY", "defaultSecret"),
		PasswordHMACKey: getEnv("PASSWORD_HMAC_KEY", "defaultSecret"),

		SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     getEnv("SMTP_PORT", "465"),
		SMTPSender:   getEnv("SMTP_SENDER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SupportInbox: getEnv("SUPPORT_INBOX", ""),

		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:   getEnv("TELEGRAM_CHAT_ID", ""),

		WayForPayMerchant: getEnv("WAYFORPAY_MERCHANT", ""),
		WayForPaySecret:   getEnv("WAYFORPAY_SECRET", ""),
		WayForPayDomain:   getEnv("WAYFORPAY_DOMAIN", "mistogo.ua"),

		TicketRetentionDays: getEnvInt("TICKET_RETENTION_DAYS", 7),
		NotifyWorkers:       getEnvInt("NOTIFY_WORKERS", 2),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.PasswordHMACKey == "defaultSecret" {
		log.Println("Warning: Using default PASSWORD_HMAC_KEY. Update it in your environment.")
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
