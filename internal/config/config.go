package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	Together string
}

type AIConfig struct {
	TogetherBaseURL           string
	OllamaBaseURL             string
	SciraURL                  string
	SciraAnswerTimeoutSeconds int
	SciraCacheTTLSeconds      int
	// ContextWindowTurns bounds how many prior turns context mode prepends.
	ContextWindowTurns int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			Together: getEnv("TOGETHER_API_KEY", ""),
		},
		Ai: AIConfig{
			TogetherBaseURL:           getEnv("TOGETHER_BASE_URL", "https://api.together.xyz/v1"),
			OllamaBaseURL:             getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			SciraURL:                  getEnv("SCIRA_URL", "https://scira.ai/"),
			SciraAnswerTimeoutSeconds: getEnvAsInt("SCIRA_ANSWER_TIMEOUT_SECONDS", 40),
			SciraCacheTTLSeconds:      getEnvAsInt("SCIRA_CACHE_TTL_SECONDS", 300),
			ContextWindowTurns:        getEnvAsInt("CONTEXT_WINDOW_TURNS", 10),
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
