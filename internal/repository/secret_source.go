package repository

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"summy-bot/internal/domain"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

// SecretManagerSource resolves secrets from Google Secret Manager.
type SecretManagerSource struct {
	client  *secretmanager.Client
	project string
	logger  domain.Logger
}

// NewSecretManagerSource creates a secret source backed by Google Secret Manager
func NewSecretManagerSource(ctx context.Context, project string, logger domain.Logger) (*SecretManagerSource, error) {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create secret manager client: %w", err)
	}
	return &SecretManagerSource{
		client:  client,
		project: project,
		logger:  logger,
	}, nil
}

// Get retrieves the latest version of a secret
func (s *SecretManagerSource) Get(ctx context.Context, name string) (string, error) {
	req := &secretmanagerpb.AccessSecretVersionRequest{
		Name: fmt.Sprintf("projects/%s/secrets/%s/versions/latest", s.project, name),
	}
	resp, err := s.client.AccessSecretVersion(ctx, req)
	if err != nil {
		s.logger.Error("Failed to access secret", err, "secret", name)
		return "", fmt.Errorf("failed to access secret %s: %w", name, err)
	}
	return string(resp.Payload.GetData()), nil
}

// Close releases the underlying client
func (s *SecretManagerSource) Close() error {
	return s.client.Close()
}

// EnvSecretSource resolves secrets from environment variables for local runs.
// The secret name is upper-cased, so Telegram_Token reads TELEGRAM_TOKEN.
type EnvSecretSource struct{}

// NewEnvSecretSource creates an environment-backed secret source
func NewEnvSecretSource() *EnvSecretSource {
	return &EnvSecretSource{}
}

// Get reads the secret from the environment
func (s *EnvSecretSource) Get(ctx context.Context, name string) (string, error) {
	value := os.Getenv(strings.ToUpper(name))
	if value == "" {
		return "", fmt.Errorf("%s: %w", name, domain.ErrSecretNotFound)
	}
	return value, nil
}

// ParseAllowedUsers parses a comma-separated allow-list of Telegram user IDs.
// Blank and malformed entries are skipped.
func ParseAllowedUsers(raw string) []int64 {
	parts := strings.Split(raw, ",")
	users := make([]int64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			continue
		}
		users = append(users, id)
	}
	return users
}
