package config

import (
	"os"
	"strconv"

	"summy-bot/internal/domain"
)

// Storage backends selectable via STORAGE_BACKEND.
const (
	BackendGCP      = "gcp"
	BackendSupabase = "supabase"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort          string
	LogLevel            string
	GCPProject          string
	ConfigCollection    string
	ArticleBucket       string
	StorageBackend      string
	SupabaseURL         string
	SupabaseKey         string
	SupabaseConfigTable string
	SupabaseBucket      string
	OpenAIModel         string
	FetchTimeout        int
	MaxPDFSize          int64
	TelegramTokenSecret string
	OpenAITokenSecret   string
	AllowedUsersSecret  string
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:          getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		GCPProject:          getEnvOrDefault("GCP_PROJECT", ""),
		ConfigCollection:    getEnvOrDefault("CONFIG_COLLECTION", "ConfigCollection"),
		ArticleBucket:       getEnvOrDefault("ARTICLE_BUCKET", "summy-telegrambot-bucket"),
		StorageBackend:      getEnvOrDefault("STORAGE_BACKEND", BackendGCP),
		SupabaseURL:         getEnvOrDefault("SUPABASE_URL", ""),
		SupabaseKey:         getEnvOrDefault("SUPABASE_ANON_KEY", ""),
		SupabaseConfigTable: getEnvOrDefault("SUPABASE_CONFIG_TABLE", "bot_config"),
		SupabaseBucket:      getEnvOrDefault("SUPABASE_BUCKET", "summy-articles"),
		OpenAIModel:         getEnvOrDefault("OPENAI_MODEL", "gpt-4-turbo-preview"),
		FetchTimeout:        getEnvIntOrDefault("FETCH_TIMEOUT_SECONDS", 30),
		MaxPDFSize:          getEnvInt64OrDefault("MAX_PDF_SIZE", 20*1024*1024), // 20MB default
		TelegramTokenSecret: getEnvOrDefault("TELEGRAM_TOKEN_SECRET", "Telegram_Token"),
		OpenAITokenSecret:   getEnvOrDefault("OPENAI_TOKEN_SECRET", "OpenAI_Token"),
		AllowedUsersSecret:  getEnvOrDefault("ALLOWED_USERS_SECRET", "Telegram_Allowed_Users_ID"),
	}
}

// GetServerPort returns the ops server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetGCPProject returns the Google Cloud project ID
func (c *AppConfig) GetGCPProject() string {
	return c.GCPProject
}

// GetConfigCollection returns the Firestore collection holding user configs
func (c *AppConfig) GetConfigCollection() string {
	return c.ConfigCollection
}

// GetArticleBucket returns the GCS bucket holding last articles and summaries
func (c *AppConfig) GetArticleBucket() string {
	return c.ArticleBucket
}

// GetStorageBackend returns the selected storage backend
func (c *AppConfig) GetStorageBackend() string {
	return c.StorageBackend
}

// GetSupabaseURL returns the Supabase URL
func (c *AppConfig) GetSupabaseURL() string {
	return c.SupabaseURL
}

// GetSupabaseKey returns the Supabase anon key
func (c *AppConfig) GetSupabaseKey() string {
	return c.SupabaseKey
}

// GetSupabaseConfigTable returns the Postgres table holding user configs
func (c *AppConfig) GetSupabaseConfigTable() string {
	return c.SupabaseConfigTable
}

// GetSupabaseBucket returns the Supabase storage bucket for articles
func (c *AppConfig) GetSupabaseBucket() string {
	return c.SupabaseBucket
}

// GetOpenAIModel returns the completion model name
func (c *AppConfig) GetOpenAIModel() string {
	return c.OpenAIModel
}

// GetFetchTimeout returns the URL fetch timeout in seconds
func (c *AppConfig) GetFetchTimeout() int {
	return c.FetchTimeout
}

// GetMaxPDFSize returns the maximum accepted PDF size in bytes
func (c *AppConfig) GetMaxPDFSize() int64 {
	return c.MaxPDFSize
}

// GetTelegramTokenSecret returns the secret name for the bot token
func (c *AppConfig) GetTelegramTokenSecret() string {
	return c.TelegramTokenSecret
}

// GetOpenAITokenSecret returns the secret name for the completion API key
func (c *AppConfig) GetOpenAITokenSecret() string {
	return c.OpenAITokenSecret
}

// GetAllowedUsersSecret returns the secret name for the user allow-list
func (c *AppConfig) GetAllowedUsersSecret() string {
	return c.AllowedUsersSecret
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
