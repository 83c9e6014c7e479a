package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DefaultPort                  = "8080"
	DefaultSessionLifetimeMin    = 10080 // 7 days
	DefaultLockoutThreshold      = 5
	DefaultLockoutDurationMin    = 15
	DefaultPasswordMinLength     = 8
	DefaultVerificationExpiryMin = 1440 // 24 hours
	DefaultSessionSweepMin       = 60
)

type Config struct {
	Env   string
	Port  string
	DBURL string

	SessionLifetimeMin int
	LockoutThreshold   int
	LockoutDurationMin int
	PasswordMinLength  int

	VerificationTokenSecret string
	VerificationExpiryMin   int

	SessionSweepMin int

	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
	SMTPFrom string
}

// Load reads configuration from the environment, preferring already-set env
// vars over the optional config/.env.<env> file.
func Load() *Config {
	env := getEnv("ENV", "development")
	loadEnvFile(env)

	return &Config{
		Env:   env,
		Port:  getEnv("PORT", DefaultPort),
		DBURL: mustGetEnv("DB_URL"),

		SessionLifetimeMin: getEnvAsInt("SESSION_LIFETIME_MIN", DefaultSessionLifetimeMin),
		LockoutThreshold:   getEnvAsInt("LOCKOUT_THRESHOLD", DefaultLockoutThreshold),
		LockoutDurationMin: getEnvAsInt("LOCKOUT_DURATION_MIN", DefaultLockoutDurationMin),
		PasswordMinLength:  getEnvAsInt("PASSWORD_MIN_LENGTH", DefaultPasswordMinLength),

		VerificationTokenSecret: mustGetEnv("VERIFICATION_TOKEN_SECRET"),
		VerificationExpiryMin:   getEnvAsInt("VERIFICATION_EXPIRY_MIN", DefaultVerificationExpiryMin),

		SessionSweepMin: getEnvAsInt("SESSION_SWEEP_INTERVAL_MIN", DefaultSessionSweepMin),

		SMTPHost: getEnv("SMTP_HOST", ""),
		SMTPPort: getEnv("SMTP_PORT", "587"),
		SMTPUser: getEnv("SMTP_USER", ""),
		SMTPPass: getEnv("SMTP_PASS", ""),
		SMTPFrom: getEnv("SMTP_FROM", ""),
	}
}

func loadEnvFile(env string) {
	file := "config/.env.dev"
	if env == "production" {
		file = "config/.env.prod"
	}
	if _, err := os.Stat(file); err != nil {
		return
	}
	// Existing env vars win over file values.
	if err := godotenv.Load(file); err != nil {
		log.Printf("Failed to load %s: %v", file, err)
	}
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required environment variable: %s", key)
	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}
