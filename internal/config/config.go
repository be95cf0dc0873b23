package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App  AppConfig
	Aws  AwsConfig
	Auth AuthConfig
	Ai   AIConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	StoreDriver        string // "dynamo" or "memory"
	CaptureStore       string // "memory" or "redis"
	JournalSink        string // "dynamo" or "csv"
	JournalCsvPath     string
	TracingEnabled     bool
	OtlpEndpoint       string
}

type AwsConfig struct {
	Region           string
	HistoryTable     string
	CredentialsTable string
	ProfilesTable    string
	JournalTable     string
}

type AuthConfig struct {
	JwtSecret   string
	TokenExpiry time.Duration
}

type AIConfig struct {
	LLMProvider   string // "bedrock" or "ollama"
	LLMModel      string
	OllamaBaseURL string
	ModelTimeout  time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			StoreDriver:        getEnv("STORE_DRIVER", "dynamo"),
			CaptureStore:       getEnv("CAPTURE_STORE", "memory"),
			JournalSink:        getEnv("JOURNAL_SINK", "dynamo"),
			JournalCsvPath:     getEnv("JOURNAL_CSV_PATH", "journal_entries.csv"),
			TracingEnabled:     getEnvAsBool("TRACING_ENABLED", false),
			OtlpEndpoint:       getEnv("OTLP_ENDPOINT", "localhost:4318"),
		},
		Aws: AwsConfig{
			Region:           getEnv("AWS_REGION", "us-west-2"),
			HistoryTable:     getEnv("HISTORY_TABLE", "ChatBotBeStill"),
			CredentialsTable: getEnv("CREDENTIALS_TABLE", "ChatbotCredentials"),
			ProfilesTable:    getEnv("PROFILES_TABLE", "UserProfiles"),
			JournalTable:     getEnv("JOURNAL_TABLE", "JournalEntries"),
		},
		Auth: AuthConfig{
			JwtSecret:   getEnv("JWT_SECRET", ""),
			TokenExpiry: getEnvAsDuration("TOKEN_EXPIRY", 8*time.Hour),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "bedrock"),
			LLMModel:      getEnv("LLM_MODEL", "amazon.titan-text-express-v1"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			ModelTimeout:  getEnvAsDuration("MODEL_TIMEOUT", 60*time.Second),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
