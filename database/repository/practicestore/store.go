package practicestore

import (
	"context"
	"encoding/json"
	"time"

	"lanspeech/models"

	"github.com/go-redis/redis/v8"
)

const summaryKeyPrefix = "practice:summary:"

// RedisSummaryStore keeps ended-session summaries so the presentation layer
// can show recent practice history. The conversation engine itself never
// touches storage.
type RedisSummaryStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSummaryStore(client *redis.Client, ttl time.Duration) *RedisSummaryStore {
	return &RedisSummaryStore{client: client, ttl: ttl}
}

func (s *RedisSummaryStore) Save(ctx context.Context, userID string, summary models.SessionSummary) error {
	b, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, summaryKeyPrefix+userID+":"+summary.SessionID, b, s.ttl).Err()
}

func (s *RedisSummaryStore) List(ctx context.Context, userID string) ([]models.SessionSummary, error) {
	keys, err := s.client.Keys(ctx, summaryKeyPrefix+userID+":*").Result()
	if err != nil {
		return nil, err
	}
	summaries := make([]models.SessionSummary, 0, len(keys))
	for _, key := range keys {
		data, err := s.client.Get(ctx, key).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, err
		}
		var summary models.SessionSummary
		if err := json.Unmarshal([]byte(data), &summary); err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
