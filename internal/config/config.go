// Package config provides environment configuration for the API server.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application.
type Config struct {
	// Server settings
	ServerPort         string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration

	// Postgres (product catalog)
	PostgresDSN            string
	CatalogRefreshInterval time.Duration

	// MongoDB (conversation store)
	MongoURI      string
	MongoDatabase string
	StoreTimeout  time.Duration

	// NATS settings
	NATSURL      string
	NATSCAFile   string
	NATSCertFile string
	NATSKeyFile  string
	NATSToken    string

	// JWT settings
	JWTSecret string

	// LLM settings
	AnthropicAPIKey string
	OpenAIAPIKey    string
	LLMModel        string
	LLMTimeout      time.Duration

	// Sales agent settings
	MaxConversationHistory int
	SimilarityThreshold    float64
	MaxRelevantProducts    int
	HandoverMaxTurns       int

	// Phrase lists (curated, product configuration rather than code)
	ConfirmationPhrases []string
	InterestPhrases     []string
	RemovalPhrases      []string

	// Rate limiting
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Logging
	LogLevel string

	// Tracing
	TracingEndpoint string
	TracingEnabled  bool
}

// Default phrase lists, overridable through the environment. The explicit
// confirmation list is the only path to a true readiness decision.
var (
	defaultConfirmationPhrases = []string{
		"i'll take it",
		"i'll buy",
		"i'll purchase",
		"i want to purchase",
		"yes, i want to buy",
		"let's do it",
		"proceed with order",
		"confirm my order",
		"complete the purchase",
	}
	defaultInterestPhrases = []string{
		"sounds good",
		"i like this",
		"seems perfect",
		"looks great",
		"tell me more",
	}
	defaultRemovalPhrases = []string{
		"i don't need the",
		"i don't want the",
		"remove the",
		"forget the",
	}
)

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		// Server
		ServerPort:         getEnv("PORT", "8080"),
		ServerReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
		ServerWriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 60*time.Second),

		// Postgres
		PostgresDSN:            getEnv("POSTGRES_DSN", "host=localhost user=user password=password dbname=sales_db port=5432 sslmode=disable"),
		CatalogRefreshInterval: getDurationEnv("CATALOG_REFRESH_INTERVAL", 5*time.Minute),

		// MongoDB
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017/"),
		MongoDatabase: getEnv("MONGO_DB_NAME", "conversations_db"),
		StoreTimeout:  getDurationEnv("STORE_TIMEOUT", 5*time.Second),

		// NATS
		NATSURL:      getEnv("NATS_URL", "nats://localhost:4222"),
		NATSCAFile:   getEnv("NATS_CA_FILE", ""),
		NATSCertFile: getEnv("NATS_CERT_FILE", ""),
		NATSKeyFile:  getEnv("NATS_KEY_FILE", ""),
		NATSToken:    getEnv("NATS_TOKEN", ""),

		// JWT
		JWTSecret: getEnv("JWT_SECRET", "development-secret-change-in-production"),

		// LLM
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		LLMModel:        getEnv("LLM_MODEL", ""),
		LLMTimeout:      getDurationEnv("LLM_TIMEOUT", 15*time.Second),

		// Sales agent
		MaxConversationHistory: getIntEnv("MAX_CONVERSATION_HISTORY", 20),
		SimilarityThreshold:    getFloatEnv("SIMILARITY_THRESHOLD", 0.7),
		MaxRelevantProducts:    getIntEnv("MAX_RELEVANT_PRODUCTS", 3),
		HandoverMaxTurns:       getIntEnv("HANDOVER_MAX_TURNS", 15),

		// Phrases
		ConfirmationPhrases: getListEnv("CONFIRMATION_PHRASES", defaultConfirmationPhrases),
		InterestPhrases:     getListEnv("INTEREST_PHRASES", defaultInterestPhrases),
		RemovalPhrases:      getListEnv("REMOVAL_PHRASES", defaultRemovalPhrases),

		// Rate limiting
		RateLimitRequests: getIntEnv("RATE_LIMIT_REQUESTS", 60),
		RateLimitWindow:   getDurationEnv("RATE_LIMIT_WINDOW", time.Minute),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "info"),

		// Tracing
		TracingEndpoint: getEnv("TRACING_ENDPOINT", "localhost:4318"),
		TracingEnabled:  getBoolEnv("TRACING_ENABLED", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
