package responder

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"agendabot/models"
)

const contextPrefix = "chat:ctx:"

// ConversationContext is the short-lived per-client state the responder
// keeps between messages. It expires with the Redis TTL, which is what ends
// a stale session from the responder's point of view.
type ConversationContext struct {
	LastMessage string    `json:"lastMessage"`
	LastReply   string    `json:"lastReply"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// RedisContextStore stores conversation context in Redis with a TTL.
type RedisContextStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisContextStore(client *redis.Client, ttl time.Duration) *RedisContextStore {
	return &RedisContextStore{client: client, ttl: ttl}
}

func (s *RedisContextStore) Get(ctx context.Context, clientName string) (*ConversationContext, error) {
	key := contextPrefix + models.ClientKey(clientName)
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return &ConversationContext{}, nil
	}
	if err != nil {
		return nil, err
	}
	var cc ConversationContext
	if err := json.Unmarshal([]byte(data), &cc); err != nil {
		return nil, err
	}
	return &cc, nil
}

func (s *RedisContextStore) Set(ctx context.Context, clientName string, cc *ConversationContext) error {
	key := contextPrefix + models.ClientKey(clientName)
	b, err := json.Marshal(cc)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, s.ttl).Err()
}

func (s *RedisContextStore) Clear(ctx context.Context, clientName string) error {
	return s.client.Del(ctx, contextPrefix+models.ClientKey(clientName)).Err()
}
