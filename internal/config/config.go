package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	Port          string
	Env           string
	LogLevel      string
	PublicBaseURL string

	// Twilio WhatsApp transport
	TwilioAccountSID   string
	TwilioAuthToken    string
	TwilioWhatsAppFrom string

	// Session store
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SessionTTL    time.Duration

	// Long-term transcript store (optional)
	DatabaseURL string

	// Catalog source
	CatalogFile            string
	CatalogSheetID         string
	CatalogSheetRange      string
	GoogleAPIKey           string
	CatalogRefreshInterval time.Duration

	// Delegated assistant
	GeminiAPIKey     string
	GeminiModelID    string
	AssistantTimeout time.Duration

	// Conversation engine
	ReplyThrottle  time.Duration
	BufferQuiet    time.Duration
	HistoryLimit   int
	BufferCapacity int
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", ""),

		TwilioAccountSID:   getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:    getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioWhatsAppFrom: getEnv("TWILIO_WHATSAPP_FROM", ""),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
		SessionTTL:    getEnvAsDuration("SESSION_TTL", 30*24*time.Hour),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		CatalogFile:            getEnv("CATALOG_FILE", "catalog.json"),
		CatalogSheetID:         getEnv("CATALOG_SHEET_ID", ""),
		CatalogSheetRange:      getEnv("CATALOG_SHEET_RANGE", "Prices!A2:F"),
		GoogleAPIKey:           getEnv("GOOGLE_API_KEY", ""),
		CatalogRefreshInterval: getEnvAsDuration("CATALOG_REFRESH_INTERVAL", 15*time.Minute),

		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		GeminiModelID:    getEnv("GEMINI_MODEL_ID", "gemini-2.5-flash"),
		AssistantTimeout: getEnvAsDuration("ASSISTANT_TIMEOUT", 8*time.Second),

		ReplyThrottle:  getEnvAsDuration("REPLY_THROTTLE", 10*time.Second),
		BufferQuiet:    getEnvAsDuration("BUFFER_QUIET_WINDOW", 3*time.Second),
		HistoryLimit:   getEnvAsInt("HISTORY_LIMIT", 10),
		BufferCapacity: getEnvAsInt("BUFFER_CAPACITY", 256),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
