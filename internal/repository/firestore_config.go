package repository

import (
	"context"
	"fmt"
	"strconv"

	"summy-bot/internal/domain"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreConfigRepository implements domain.ConfigRepository on Firestore,
// one document per user in the config collection.
type FirestoreConfigRepository struct {
	client     *firestore.Client
	collection string
	logger     domain.Logger
}

// NewFirestoreConfigRepository creates a Firestore-backed config repository
func NewFirestoreConfigRepository(client *firestore.Client, collection string, logger domain.Logger) *FirestoreConfigRepository {
	return &FirestoreConfigRepository{
		client:     client,
		collection: collection,
		logger:     logger,
	}
}

// Get retrieves a user's configuration document
func (r *FirestoreConfigRepository) Get(ctx context.Context, userID int64) (*domain.UserConfig, error) {
	doc, err := r.client.Collection(r.collection).Doc(userKey(userID)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to get config: %w", err)
	}

	var cfg domain.UserConfig
	if err := doc.DataTo(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Put overwrites a user's configuration document
func (r *FirestoreConfigRepository) Put(ctx context.Context, cfg *domain.UserConfig) error {
	_, err := r.client.Collection(r.collection).Doc(userKey(cfg.UserID)).Set(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to put config: %w", err)
	}
	r.logger.Info("Config updated", "user_id", cfg.UserID, "lang", cfg.Lang, "words_limit", cfg.WordsLimit)
	return nil
}

func userKey(userID int64) string {
	return strconv.FormatInt(userID, 10)
}
