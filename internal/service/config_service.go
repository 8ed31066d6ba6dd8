package service

import (
	"context"
	"errors"
	"time"

	"summy-bot/internal/domain"
	apperrors "summy-bot/pkg/errors"
)

// ConfigService manages per-user configuration with read-or-initialize
// semantics.
type ConfigService struct {
	repo   domain.ConfigRepository
	logger domain.Logger
}

// NewConfigService creates a new config service
func NewConfigService(repo domain.ConfigRepository, logger domain.Logger) *ConfigService {
	return &ConfigService{
		repo:   repo,
		logger: logger,
	}
}

// Get returns the user's configuration, creating it with defaults on first
// read.
func (s *ConfigService) Get(ctx context.Context, userID int64) (*domain.UserConfig, error) {
	cfg, err := s.repo.Get(ctx, userID)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, domain.ErrConfigNotFound) {
		return nil, apperrors.NewStorageError("failed to read config", err)
	}

	cfg = domain.DefaultConfig(userID)
	cfg.UpdatedAt = time.Now().UTC()
	if err := s.repo.Put(ctx, cfg); err != nil {
		// Serve defaults even when persisting them fails.
		s.logger.Warn("Failed to initialize config", "error", err, "user_id", userID)
	}
	return cfg, nil
}

// Update validates and overwrites the user's configuration.
func (s *ConfigService) Update(ctx context.Context, userID int64, lang string, wordsLimit, maxChars int) (*domain.UserConfig, error) {
	cfg := &domain.UserConfig{
		UserID:     userID,
		Lang:       lang,
		WordsLimit: wordsLimit,
		MaxChars:   maxChars,
		UpdatedAt:  time.Now().UTC(),
	}
	if err := cfg.Validate(); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if err := s.repo.Put(ctx, cfg); err != nil {
		return nil, apperrors.NewStorageError("failed to update config", err)
	}
	return cfg, nil
}
