package history

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "served"

// RedisStore keeps one Redis set per player.
type RedisStore struct {
	client *redis.Client
	prefix string
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore wraps a Redis client. prefix defaults to "served".
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(playerID string) string {
	return s.prefix + ":" + playerID
}

func (s *RedisStore) Members(ctx context.Context, playerID string) ([]int, error) {
	raw, err := s.client.SMembers(ctx, s.key(playerID)).Result()
	if err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(raw))
	for _, member := range raw {
		id, err := strconv.Atoi(member)
		if err != nil {
			// Foreign junk in the set is skipped rather than failing the plan.
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *RedisStore) Add(ctx context.Context, playerID string, questionIDs ...int) error {
	if len(questionIDs) == 0 {
		return nil
	}
	members := make([]interface{}, len(questionIDs))
	for i, id := range questionIDs {
		members[i] = id
	}
	return s.client.SAdd(ctx, s.key(playerID), members...).Err()
}

func (s *RedisStore) Contains(ctx context.Context, playerID string, questionID int) (bool, error) {
	return s.client.SIsMember(ctx, s.key(playerID), questionID).Result()
}

func (s *RedisStore) Clear(ctx context.Context, playerID string) error {
	return s.client.Del(ctx, s.key(playerID)).Err()
}
