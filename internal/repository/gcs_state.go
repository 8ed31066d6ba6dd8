package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"summy-bot/internal/domain"

	"cloud.google.com/go/storage"
)

// GCSStateRepository implements domain.StateRepository on Google Cloud
// Storage. Articles and summaries are JSON objects keyed by user ID.
type GCSStateRepository struct {
	client *storage.Client
	bucket string
	logger domain.Logger
}

// NewGCSStateRepository creates a GCS-backed state repository
func NewGCSStateRepository(client *storage.Client, bucket string, logger domain.Logger) *GCSStateRepository {
	return &GCSStateRepository{
		client: client,
		bucket: bucket,
		logger: logger,
	}
}

// StoreArticle overwrites the user's last article object
func (r *GCSStateRepository) StoreArticle(ctx context.Context, article *domain.Article) error {
	if err := r.writeJSON(ctx, articleKey(article.UserID), article); err != nil {
		return err
	}
	r.logger.Info("Article stored", "user_id", article.UserID, "source", article.Source, "chars", len(article.Text))
	return nil
}

// LastArticle retrieves the user's last article object
func (r *GCSStateRepository) LastArticle(ctx context.Context, userID int64) (*domain.Article, error) {
	var article domain.Article
	if err := r.readJSON(ctx, articleKey(userID), &article); err != nil {
		if err == storage.ErrObjectNotExist {
			return nil, domain.ErrArticleNotFound
		}
		return nil, err
	}
	return &article, nil
}

// StoreSummary overwrites the user's last summary object
func (r *GCSStateRepository) StoreSummary(ctx context.Context, summary *domain.Summary) error {
	if err := r.writeJSON(ctx, summaryKey(summary.UserID), summary); err != nil {
		return err
	}
	r.logger.Info("Summary stored", "user_id", summary.UserID, "chars", len(summary.Text))
	return nil
}

// LastSummary retrieves the user's last summary object
func (r *GCSStateRepository) LastSummary(ctx context.Context, userID int64) (*domain.Summary, error) {
	var summary domain.Summary
	if err := r.readJSON(ctx, summaryKey(userID), &summary); err != nil {
		if err == storage.ErrObjectNotExist {
			return nil, domain.ErrSummaryNotFound
		}
		return nil, err
	}
	return &summary, nil
}

func (r *GCSStateRepository) writeJSON(ctx context.Context, key string, value interface{}) error {
	w := r.client.Bucket(r.bucket).Object(key).NewWriter(ctx)
	w.ContentType = "application/json"
	if err := json.NewEncoder(w).Encode(value); err != nil {
		w.Close()
		return fmt.Errorf("encoding object %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("writing object %s: %w", key, err)
	}
	return nil
}

func (r *GCSStateRepository) readJSON(ctx context.Context, key string, value interface{}) error {
	reader, err := r.client.Bucket(r.bucket).Object(key).NewReader(ctx)
	if err != nil {
		if err == storage.ErrObjectNotExist {
			return err
		}
		return fmt.Errorf("opening object %s: %w", key, err)
	}
	defer reader.Close()

	if err := json.NewDecoder(reader).Decode(value); err != nil {
		return fmt.Errorf("decoding object %s: %w", key, err)
	}
	return nil
}

func articleKey(userID int64) string {
	return fmt.Sprintf("articles/%d.json", userID)
}

func summaryKey(userID int64) string {
	return fmt.Sprintf("summaries/%d.json", userID)
}
