package data

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stake-plus/spycat-agency/src/api/agency"
)

// fakeRedis overrides the handful of commands the adapters use; anything else
// panics through the nil embedded interface.
type fakeRedis struct {
	redis.Cmdable
	kv    map[string]string
	ttls  map[string]time.Duration
	xadds []*redis.XAddArgs
	err   error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{kv: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.kv[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd {
	f.kv[key] = value.(string)
	f.ttls[key] = ttl
	return redis.NewStatusResult("OK", f.err)
}

func (f *fakeRedis) XAdd(_ context.Context, a *redis.XAddArgs) *redis.StringCmd {
	f.xadds = append(f.xadds, a)
	return redis.NewStringResult("1-0", f.err)
}

func TestBreedCache(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	c := NewBreedCache(rdb, time.Hour)

	_, found, err := c.Lookup(ctx, "Siamese")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Remember(ctx, "Siamese", true))
	require.NoError(t, c.Remember(ctx, "Dragon", false))
	assert.Equal(t, time.Hour, rdb.ttls["breed:siamese"])

	known, found, err := c.Lookup(ctx, " SIAMESE ")
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, known)

	known, found, err = c.Lookup(ctx, "dragon")
	require.NoError(t, err)
	assert.True(t, found)
	assert.False(t, known)

	rdb.err = errors.New("connection refused")
	_, _, err = c.Lookup(ctx, "siamese")
	assert.Error(t, err)
}

func TestEventStream_Publish(t *testing.T) {
	rdb := newFakeRedis()
	at := time.Unix(1700000000, 0)

	err := NewEventStream(rdb).Publish(context.Background(), agency.Event{
		Type: agency.EventMissionAssigned, MissionID: 7, CatID: 3, At: at,
	})
	require.NoError(t, err)
	require.Len(t, rdb.xadds, 1)

	a := rdb.xadds[0]
	assert.Equal(t, StreamEvents, a.Stream)
	assert.True(t, a.Approx)
	assert.EqualValues(t, streamMaxLen, a.MaxLen)

	values := a.Values.(map[string]interface{})
	assert.Equal(t, agency.EventMissionAssigned, values["type"])
	assert.Equal(t, uint64(7), values["mission_id"])
	assert.Equal(t, uint64(3), values["cat_id"])
	assert.Equal(t, at.Unix(), values["time"])
	assert.NotEmpty(t, values["id"])
}
