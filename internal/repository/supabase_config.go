package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"summy-bot/internal/domain"
)

// SupabaseConfigRepository implements domain.ConfigRepository on a Postgres
// table reached through PostgREST, one row per user.
type SupabaseConfigRepository struct {
	supabaseClient domain.SupabaseClient
	table          string
	logger         domain.Logger
}

type configRow struct {
	UserID     string `json:"user_id"`
	Lang       string `json:"lang"`
	WordsLimit int    `json:"words_limit"`
	MaxChars   int    `json:"max_chars"`
	UpdatedAt  string `json:"updated_at"`
}

// NewSupabaseConfigRepository creates a Supabase-backed config repository
func NewSupabaseConfigRepository(supabaseClient domain.SupabaseClient, table string, logger domain.Logger) *SupabaseConfigRepository {
	return &SupabaseConfigRepository{
		supabaseClient: supabaseClient,
		table:          table,
		logger:         logger,
	}
}

// Get retrieves a user's configuration row
func (r *SupabaseConfigRepository) Get(ctx context.Context, userID int64) (*domain.UserConfig, error) {
	client := r.supabaseClient.DB()
	if client == nil {
		return nil, fmt.Errorf("supabase client not initialized")
	}

	data, _, err := client.From(r.table).
		Select("*", "", false).
		Eq("user_id", userKey(userID)).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get config: %w", err)
	}

	var rows []configRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(rows) == 0 {
		return nil, domain.ErrConfigNotFound
	}

	return rowToConfig(rows[0])
}

// Put upserts a user's configuration row
func (r *SupabaseConfigRepository) Put(ctx context.Context, cfg *domain.UserConfig) error {
	client := r.supabaseClient.DB()
	if client == nil {
		return fmt.Errorf("supabase client not initialized")
	}

	row := map[string]interface{}{
		"user_id":     userKey(cfg.UserID),
		"lang":        cfg.Lang,
		"words_limit": cfg.WordsLimit,
		"max_chars":   cfg.MaxChars,
		"updated_at":  cfg.UpdatedAt.UTC().Format(time.RFC3339),
	}

	_, _, err := client.From(r.table).
		Upsert(row, "user_id", "", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to put config: %w", err)
	}

	r.logger.Info("Config updated", "user_id", cfg.UserID, "lang", cfg.Lang, "words_limit", cfg.WordsLimit)
	return nil
}

func rowToConfig(row configRow) (*domain.UserConfig, error) {
	userID, err := strconv.ParseInt(row.UserID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed user_id %q: %w", row.UserID, err)
	}

	cfg := &domain.UserConfig{
		UserID:     userID,
		Lang:       row.Lang,
		WordsLimit: row.WordsLimit,
		MaxChars:   row.MaxChars,
	}
	if row.UpdatedAt != "" {
		if ts, err := time.Parse(time.RFC3339, row.UpdatedAt); err == nil {
			cfg.UpdatedAt = ts
		}
	}
	return cfg, nil
}
