package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Jwt      JwtConfig
	OpenAi   OpenAiConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	LlmLogFilePath     string
	CorsAllowedOrigins string
	NatsURL            string
	ActivityTopic      string
}

type DatabaseConfig struct {
	Connection string
}

type JwtConfig struct {
	Secret    string
	ExpiresIn time.Duration
}

type OpenAiConfig struct {
	BaseURL       string
	APIKey        string
	DefaultModel  string
	StreamTimeout time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			LlmLogFilePath:     getEnv("LLM_LOG_FILE_PATH", "logs/llm.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			ActivityTopic:      getEnv("ACTIVITY_TOPIC_NAME", "USER_ACTIVITY"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Jwt: JwtConfig{
			Secret:    getEnv("JWT_SECRET", ""),
			ExpiresIn: time.Duration(getEnvAsInt("JWT_EXPIRES_IN_HOURS", 24)) * time.Hour,
		},
		OpenAi: OpenAiConfig{
			BaseURL:       getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			APIKey:        getEnv("OPENAI_API_KEY", ""),
			DefaultModel:  getEnv("OPENAI_DEFAULT_MODEL", "gpt-4o-mini"),
			StreamTimeout: time.Duration(getEnvAsInt("STREAM_TIMEOUT_SECONDS", 60)) * time.Second,
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
