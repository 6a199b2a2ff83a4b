package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const draftTTL = 24 * time.Hour

// RecipeDraft is an extraction result parked in Redis so the UI can review it
// before committing to storage.
type RecipeDraft struct {
	ID        string       `json:"id"`
	CreatedAt time.Time    `json:"created_at"`
	Parsed    ParsedRecipe `json:"parsed"`
	RawText   string       `json:"raw_text"`
}

// DraftStore persists extraction drafts in Redis with a 24h TTL.
type DraftStore struct {
	redis *redis.Client
}

// NewDraftStore creates a new DraftStore instance
func NewDraftStore(client *redis.Client) *DraftStore {
	return &DraftStore{redis: client}
}

// Save stores a fresh draft and returns it with its generated id.
func (s *DraftStore) Save(ctx context.Context, parsed *ParsedRecipe, rawText string) (*RecipeDraft, error) {
	draft := &RecipeDraft{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
		Parsed:    *parsed,
		RawText:   rawText,
	}

	data, err := json.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal draft: %w", err)
	}

	if err := s.redis.Set(ctx, draftKey(draft.ID), data, draftTTL).Err(); err != nil {
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}

	return draft, nil
}

// Get retrieves a draft; expired or unknown ids report ErrNotFound.
func (s *DraftStore) Get(ctx context.Context, id string) (*RecipeDraft, error) {
	data, err := s.redis.Get(ctx, draftKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}

	var draft RecipeDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}
	return &draft, nil
}

// Delete removes a draft.
func (s *DraftStore) Delete(ctx context.Context, id string) error {
	removed, err := s.redis.Del(ctx, draftKey(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	if removed == 0 {
		return ErrNotFound
	}
	return nil
}

func draftKey(id string) string {
	return fmt.Sprintf("recipe:draft:%s", id)
}
