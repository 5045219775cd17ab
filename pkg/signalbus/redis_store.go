package signalbus

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "signal:"

// RedisStore is the shared signal store for multi-process deployments. Put
// both SETs the channel key (so polling and late subscribers read the latest
// value) and PUBLISHes it (so live subscribers in other processes are
// notified without waiting on a poll tick).
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Put(ctx context.Context, channel string, value []byte) error {
	key := redisKeyPrefix + channel
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return err
	}
	// Publish failure is tolerable: polling picks the value up.
	return s.client.Publish(ctx, key, value).Err()
}

func (s *RedisStore) Get(ctx context.Context, channel string) ([]byte, error) {
	val, err := s.client.Get(ctx, redisKeyPrefix+channel).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return val, nil
}

func (s *RedisStore) Watch(ctx context.Context, channel string, notify func(value []byte)) (func(), error) {
	sub := s.client.Subscribe(ctx, redisKeyPrefix+channel)

	// Force the subscription onto the wire before returning so a Put issued
	// right after Subscribe is not missed.
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, err
	}

	go func() {
		for msg := range sub.Channel() {
			notify([]byte(msg.Payload))
		}
	}()

	return func() { sub.Close() }, nil
}
