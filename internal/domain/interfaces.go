package domain

import "context"

// ConfigRepository stores per-user configuration records.
type ConfigRepository interface {
	Get(ctx context.Context, userID int64) (*UserConfig, error)
	Put(ctx context.Context, cfg *UserConfig) error
}

// StateRepository stores the last article and last summary per user,
// last-write-wins.
type StateRepository interface {
	StoreArticle(ctx context.Context, article *Article) error
	LastArticle(ctx context.Context, userID int64) (*Article, error)
	StoreSummary(ctx context.Context, summary *Summary) error
	LastSummary(ctx context.Context, userID int64) (*Summary, error)
}

// SecretSource resolves secrets needed at startup (bot token, API key,
// allow-list).
type SecretSource interface {
	Get(ctx context.Context, name string) (string, error)
}

// CompletionClient sends a finished prompt to the text-completion API.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetLogLevel() string
	GetGCPProject() string
	GetConfigCollection() string
	GetArticleBucket() string
	GetStorageBackend() string
	GetSupabaseURL() string
	GetSupabaseKey() string
	GetSupabaseConfigTable() string
	GetSupabaseBucket() string
	GetOpenAIModel() string
	GetFetchTimeout() int
	GetMaxPDFSize() int64
	GetTelegramTokenSecret() string
	GetOpenAITokenSecret() string
	GetAllowedUsersSecret() string
}
