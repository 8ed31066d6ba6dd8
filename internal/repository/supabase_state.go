package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"summy-bot/internal/domain"
)

// SupabaseStateRepository implements domain.StateRepository against the
// Supabase storage HTTP API. Articles and summaries are JSON blobs keyed
// by user ID, overwritten in place.
type SupabaseStateRepository struct {
	baseURL string
	apiKey  string
	bucket  string
	client  *http.Client
	logger  domain.Logger
}

// NewSupabaseStateRepository creates a Supabase-storage-backed state repository
func NewSupabaseStateRepository(config domain.Config, logger domain.Logger) *SupabaseStateRepository {
	return &SupabaseStateRepository{
		baseURL: config.GetSupabaseURL(),
		apiKey:  config.GetSupabaseKey(),
		bucket:  config.GetSupabaseBucket(),
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

// StoreArticle overwrites the user's last article blob
func (r *SupabaseStateRepository) StoreArticle(ctx context.Context, article *domain.Article) error {
	if err := r.upload(ctx, articleKey(article.UserID), article); err != nil {
		return err
	}
	r.logger.Info("Article stored", "user_id", article.UserID, "source", article.Source, "chars", len(article.Text))
	return nil
}

// LastArticle retrieves the user's last article blob
func (r *SupabaseStateRepository) LastArticle(ctx context.Context, userID int64) (*domain.Article, error) {
	var article domain.Article
	if err := r.download(ctx, articleKey(userID), &article, domain.ErrArticleNotFound); err != nil {
		return nil, err
	}
	return &article, nil
}

// StoreSummary overwrites the user's last summary blob
func (r *SupabaseStateRepository) StoreSummary(ctx context.Context, summary *domain.Summary) error {
	if err := r.upload(ctx, summaryKey(summary.UserID), summary); err != nil {
		return err
	}
	r.logger.Info("Summary stored", "user_id", summary.UserID, "chars", len(summary.Text))
	return nil
}

// LastSummary retrieves the user's last summary blob
func (r *SupabaseStateRepository) LastSummary(ctx context.Context, userID int64) (*domain.Summary, error) {
	var summary domain.Summary
	if err := r.download(ctx, summaryKey(userID), &summary, domain.ErrSummaryNotFound); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *SupabaseStateRepository) upload(ctx context.Context, path string, value interface{}) error {
	body, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding object %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		r.objectURL(path),
		bytes.NewReader(body),
	)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Content-Type", "application/json")
	// Overwrite instead of failing when the object already exists.
	req.Header.Set("x-upsert", "true")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("uploading object %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("storage upload failed for %s: status %d", path, resp.StatusCode)
	}
	return nil
}

func (r *SupabaseStateRepository) download(ctx context.Context, path string, value interface{}, notFound error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.objectURL(path), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("downloading object %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusBadRequest {
		return notFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("storage download failed for %s: status %d", path, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading object %s: %w", path, err)
	}
	if err := json.Unmarshal(data, value); err != nil {
		return fmt.Errorf("decoding object %s: %w", path, err)
	}
	return nil
}

func (r *SupabaseStateRepository) objectURL(path string) string {
	return r.baseURL + "/storage/v1/object/" + r.bucket + "/" + path
}
