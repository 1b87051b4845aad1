package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Chat    ChatConfig
	Storage StorageConfig
	Auth    AuthConfig
	Events  EventsConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	OtelEnabled        bool
	OtelEndpoint       string
}

type ChatConfig struct {
	APIURL               string        // Remote chat endpoint (POST)
	Timeout              time.Duration // Per attempt, before falling back
	MaxRetries           uint          // Extra attempts against the remote endpoint
	RetryInitialInterval time.Duration
	HistoryLimit         int
	SimulatedLatency     time.Duration
	AutoSendTTL          time.Duration
	AutoSendDelay        time.Duration
	WorkspaceTTL         time.Duration
}

type StorageConfig struct {
	Backend  string // "memory" | "redis" | "postgres"
	RedisURL string
	DSN      string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type EventsConfig struct {
	Topic   string
	NatsURL string
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
			OtelEnabled:        getEnv("OTEL_ENABLED", "false") == "true",
			OtelEndpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
		Chat: ChatConfig{
			APIURL:               getEnv("CHAT_API_URL", "http://localhost:8000/api/v1/chat"),
			Timeout:              getEnvAsMillis("CHAT_TIMEOUT_MS", 12000),
			MaxRetries:           uint(getEnvAsInt("CHAT_MAX_RETRIES", 0)),
			RetryInitialInterval: getEnvAsMillis("CHAT_RETRY_INTERVAL_MS", 500),
			HistoryLimit:         getEnvAsInt("CHAT_HISTORY_LIMIT", 6),
			SimulatedLatency:     getEnvAsMillis("CHAT_SIMULATED_LATENCY_MS", 1500),
			AutoSendTTL:          getEnvAsMillis("AUTO_SEND_TTL_MS", 5*60*1000),
			AutoSendDelay:        getEnvAsMillis("AUTO_SEND_DELAY_MS", 0),
			WorkspaceTTL:         getEnvAsMillis("WORKSPACE_TTL_MS", 60*60*1000),
		},
		Storage: StorageConfig{
			Backend:  getEnv("STORAGE_BACKEND", "memory"),
			RedisURL: getEnv("REDIS_URL", ""),
			DSN:      getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", "change-me"),
			TokenTTL:  getEnvAsMillis("JWT_TTL_MS", 24*60*60*1000),
		},
		Events: EventsConfig{
			Topic:   getEnv("EVENTS_TOPIC", "chat_events"),
			NatsURL: getEnv("NATS_URL", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsMillis(key string, fallback int) time.Duration {
	return time.Duration(getEnvAsInt(key, fallback)) * time.Millisecond
}
