package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	FrontendURL string
	// SendGrid Configuration
	SendGridAPIKey        string
	MailDefaultSender     string
	MailOwnerRecipient    string
	RequirementsTemplate  string // SendGrid dynamic template id for requirements receipts
	RequirementsRecipient string
	FallbackContactEmail  string
	MailTimeoutSeconds    int
	// reCAPTCHA Configuration (contact form; fail-open when unset)
	RecaptchaSiteKey   string
	RecaptchaSecretKey string
	// Session Configuration
	SessionSecret string
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds int
	RateLimitFormThreshold int
}

func LoadConfig() (*Config, error) {
	// Load .env file (only effective locally, ignored in production if absent)
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "https://palmertech.co.uk"), "/"),
		// SendGrid Configuration
		SendGridAPIKey:        getEnv("SENDGRID_API_KEY", ""),
		MailDefaultSender:     getEnv("MAIL_DEFAULT_SENDER", "no-reply@palmertech.co.uk"),
		MailOwnerRecipient:    getEnv("MAIL_OWNER_RECIPIENT", "contact@palmertech.co.uk"),
		RequirementsTemplate:  getEnv("REQUIREMENTS_TEMPLATE_ID", ""),
		RequirementsRecipient: getEnv("REQUIREMENTS_RECIPIENT", getEnv("MAIL_OWNER_RECIPIENT", "contact@palmertech.co.uk")),
		FallbackContactEmail:  getEnv("FALLBACK_CONTACT_EMAIL", "contact@palmertech.co.uk"),
		MailTimeoutSeconds:    getEnvInt("MAIL_TIMEOUT_SECONDS", 15),
		// reCAPTCHA Configuration
		RecaptchaSiteKey:   getEnv("RECAPTCHA_SITE_KEY", ""),
		RecaptchaSecretKey: getEnv("RECAPTCHA_SECRET_KEY", ""),
		// Session Configuration
		SessionSecret: getEnv("SESSION_SECRET", getEnv("SECRET_KEY", "")),
		// Redis/Upstash Configuration
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// Rate Limiting Configuration (with sensible defaults)
		RateLimitWindowSeconds: getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60), // 1 minute window
		RateLimitFormThreshold: getEnvInt("RATE_LIMIT_FORM_THRESHOLD", 10), // 10 form posts per window
	}

	// Basic validation to avoid confusing failures later
	if cfg.SessionSecret == "" {
		log.Println("WARNING: SESSION_SECRET is missing. Form tokens and enquiry links cannot be issued.")
	}
	if cfg.SendGridAPIKey == "" {
		log.Println("WARNING: SENDGRID_API_KEY not configured; email features disabled.")
	}
	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Sessions and rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
