package config

import (
	"context"
	"fmt"
	"io"
	"time"

	"summy-bot/internal/domain"
	"summy-bot/internal/repository"
	"summy-bot/internal/service"
	"summy-bot/pkg/logger"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/storage"
)

// Container holds all application dependencies
type Container struct {
	Config domain.Config
	Logger domain.Logger

	ConfigRepository domain.ConfigRepository
	StateRepository  domain.StateRepository
	Completion       domain.CompletionClient

	ConfigService *service.ConfigService
	Extractor     *service.Extractor
	PDFProcessor  *service.PDFProcessor
	Summarizer    *service.Summarizer

	TelegramToken string
	AllowedUsers  []int64

	closers []io.Closer
}

// NewContainer creates a new dependency injection container. Secrets are
// resolved through Secret Manager when a GCP project is configured,
// otherwise from the environment.
func NewContainer(ctx context.Context) (*Container, error) {
	config := NewConfig()
	appLogger := logger.NewLogger(config.GetLogLevel())

	c := &Container{
		Config: config,
		Logger: appLogger,
	}

	secrets, err := c.newSecretSource(ctx, config, appLogger)
	if err != nil {
		return nil, fmt.Errorf("secret source: %w", err)
	}

	telegramToken, err := secrets.Get(ctx, config.GetTelegramTokenSecret())
	if err != nil {
		return nil, fmt.Errorf("telegram token: %w", err)
	}
	openAIToken, err := secrets.Get(ctx, config.GetOpenAITokenSecret())
	if err != nil {
		return nil, fmt.Errorf("openai token: %w", err)
	}
	allowedRaw, err := secrets.Get(ctx, config.GetAllowedUsersSecret())
	if err != nil {
		return nil, fmt.Errorf("allowed users: %w", err)
	}
	c.TelegramToken = telegramToken
	c.AllowedUsers = repository.ParseAllowedUsers(allowedRaw)

	if err := c.initStorage(ctx, config, appLogger); err != nil {
		return nil, err
	}

	c.Completion = repository.NewOpenAIClient(openAIToken, config.GetOpenAIModel(), appLogger)

	c.ConfigService = service.NewConfigService(c.ConfigRepository, appLogger)
	c.Extractor = service.NewExtractor(time.Duration(config.GetFetchTimeout())*time.Second, appLogger)
	c.PDFProcessor = service.NewPDFProcessor(appLogger)
	c.Summarizer = service.NewSummarizer(c.Completion, appLogger)

	return c, nil
}

func (c *Container) newSecretSource(ctx context.Context, config domain.Config, appLogger domain.Logger) (domain.SecretSource, error) {
	if project := config.GetGCPProject(); project != "" {
		source, err := repository.NewSecretManagerSource(ctx, project, appLogger)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, source)
		return source, nil
	}
	appLogger.Warn("GCP_PROJECT not set, reading secrets from the environment")
	return repository.NewEnvSecretSource(), nil
}

// initStorage picks the persistence backend. GCP (Firestore and Cloud
// Storage) is the default; Supabase remains available for deployments
// that predate the GCP migration.
func (c *Container) initStorage(ctx context.Context, config domain.Config, appLogger domain.Logger) error {
	if config.GetStorageBackend() == BackendSupabase {
		supabaseClient := repository.NewSupabaseClient(config, appLogger)
		if err := supabaseClient.Initialize(); err != nil {
			return fmt.Errorf("supabase client: %w", err)
		}
		c.ConfigRepository = repository.NewSupabaseConfigRepository(supabaseClient, config.GetSupabaseConfigTable(), appLogger)
		c.StateRepository = repository.NewSupabaseStateRepository(config, appLogger)
		return nil
	}

	firestoreClient, err := firestore.NewClient(ctx, config.GetGCPProject())
	if err != nil {
		return fmt.Errorf("firestore client: %w", err)
	}
	c.closers = append(c.closers, firestoreClient)
	c.ConfigRepository = repository.NewFirestoreConfigRepository(firestoreClient, config.GetConfigCollection(), appLogger)

	storageClient, err := storage.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("storage client: %w", err)
	}
	c.closers = append(c.closers, storageClient)
	c.StateRepository = repository.NewGCSStateRepository(storageClient, config.GetArticleBucket(), appLogger)
	return nil
}

// Close releases every client the container owns.
func (c *Container) Close() {
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil {
			c.Logger.Warn("Failed to close client", "error", err.Error())
		}
	}
}
