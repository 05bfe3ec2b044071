package data

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/stake-plus/spycat-agency/src/api/agency"
)

const (
	breedPrefix  = "breed:"
	StreamEvents = "spycats.events"
	// streamMaxLen caps the event stream; trimming is approximate.
	streamMaxLen = 10000
)

func ConnectRedis(url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return redis.NewClient(opt), nil
}

// EventStream publishes lifecycle events to a Redis stream.
type EventStream struct {
	rdb    redis.Cmdable
	stream string
}

func NewEventStream(rdb redis.Cmdable) *EventStream {
	return &EventStream{rdb: rdb, stream: StreamEvents}
}

func (e *EventStream) Publish(ctx context.Context, ev agency.Event) error {
	_, err := e.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: e.stream,
		MaxLen: streamMaxLen,
		Approx: true,
		Values: map[string]interface{}{
			"id":         uuid.NewString(),
			"type":       ev.Type,
			"cat_id":     ev.CatID,
			"mission_id": ev.MissionID,
			"target_id":  ev.TargetID,
			"time":       ev.At.Unix(),
		},
	}).Result()
	return err
}

// BreedCache stores breed lookup verdicts so repeated cat registrations do
// not hit the upstream taxonomy.
type BreedCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewBreedCache(rdb redis.Cmdable, ttl time.Duration) *BreedCache {
	return &BreedCache{rdb: rdb, ttl: ttl}
}

func breedKey(breed string) string {
	return breedPrefix + strings.ToLower(strings.TrimSpace(breed))
}

// Lookup returns the cached verdict; found is false on a cache miss.
func (b *BreedCache) Lookup(ctx context.Context, breed string) (known, found bool, err error) {
	v, err := b.rdb.Get(ctx, breedKey(breed)).Result()
	if errors.Is(err, redis.Nil) {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	return v == "1", true, nil
}

func (b *BreedCache) Remember(ctx context.Context, breed string, known bool) error {
	v := "0"
	if known {
		v = "1"
	}
	return b.rdb.Set(ctx, breedKey(breed), v, b.ttl).Err()
}
