package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"events-api/internal/model"
	apperrors "events-api/pkg/app_errors"

	"github.com/redis/go-redis/v9"
)

type EventCache interface {
	// Get returns ErrCacheMiss when the event is not cached.
	Get(ctx context.Context, id int) (*model.Event, error)
	Set(ctx context.Context, event *model.Event) error
	Invalidate(ctx context.Context, id int) error
}

type RedisEventCacheImpl struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisEventCache(client *redis.Client, ttl time.Duration) EventCache {
	return &RedisEventCacheImpl{
		client: client,
		ttl:    ttl,
	}
}

func (c *RedisEventCacheImpl) getKey(id int) string {
	return fmt.Sprintf("event:%d", id)
}

func (c *RedisEventCacheImpl) Get(ctx context.Context, id int) (*model.Event, error) {
	result, err := c.client.HGetAll(ctx, c.getKey(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, apperrors.ErrCacheMiss
	}
	return decodeEvent(id, result)
}

// Set writes the hash and its expiry in one MULTI so a reader never sees a
// cached entry without a TTL.
func (c *RedisEventCacheImpl) Set(ctx context.Context, event *model.Event) error {
	key := c.getKey(event.ID)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, map[string]interface{}{
			"event_name":     event.EventName,
			"starting_time":  model.FormatTime(event.StartingTime),
			"ending_time":    model.FormatTime(event.EndingTime),
			"image":          event.Image,
			"discount_rate":  event.DiscountRate,
			"discount_rules": event.DiscountRules,
			"price":          event.Price,
		})
		if c.ttl > 0 {
			pipe.Expire(ctx, key, c.ttl)
		}
		return nil
	})
	return err
}

func (c *RedisEventCacheImpl) Invalidate(ctx context.Context, id int) error {
	return c.client.Del(ctx, c.getKey(id)).Err()
}

func decodeEvent(id int, fields map[string]string) (*model.Event, error) {
	event := &model.Event{
		ID:        id,
		EventName: fields["event_name"],
		Image:     fields["image"],
	}

	var err error
	if event.StartingTime, err = model.ParseTime(fields["starting_time"]); err != nil {
		return nil, fmt.Errorf("invalid starting_time: %v", err)
	}
	if event.EndingTime, err = model.ParseTime(fields["ending_time"]); err != nil {
		return nil, fmt.Errorf("invalid ending_time: %v", err)
	}
	if event.DiscountRate, err = strconv.Atoi(fields["discount_rate"]); err != nil {
		return nil, fmt.Errorf("invalid discount_rate: %v", err)
	}
	if event.DiscountRules, err = strconv.Atoi(fields["discount_rules"]); err != nil {
		return nil, fmt.Errorf("invalid discount_rules: %v", err)
	}
	if event.Price, err = strconv.Atoi(fields["price"]); err != nil {
		return nil, fmt.Errorf("invalid price: %v", err)
	}
	return event, nil
}

// NoopEventCache is used when redis is disabled; every lookup misses.
type NoopEventCache struct{}

func NewNoopEventCache() EventCache {
	return NoopEventCache{}
}

// IsNoop reports whether c discards every write.
func IsNoop(c EventCache) bool {
	_, ok := c.(NoopEventCache)
	return ok
}

func (NoopEventCache) Get(ctx context.Context, id int) (*model.Event, error) {
	return nil, apperrors.ErrCacheMiss
}

func (NoopEventCache) Set(ctx context.Context, event *model.Event) error {
	return nil
}

func (NoopEventCache) Invalidate(ctx context.Context, id int) error {
	return nil
}
