package cache

import (
	"context"
	"testing"
	"time"

	"ripple/internal/observability"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func setupTestCache(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestAside_MissThenHit(t *testing.T) {
	setupTestCache(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *cachedUser) func() error {
		return func() error {
			fetches++
			dest.ID = 7
			dest.Username = "ada"
			return nil
		}
	}

	var first cachedUser
	require.NoError(t, Aside(ctx, UserKey(7), &first, UserTTL, fetch(&first)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "ada", first.Username)

	var second cachedUser
	require.NoError(t, Aside(ctx, UserKey(7), &second, UserTTL, fetch(&second)))
	assert.Equal(t, 1, fetches, "second read should be served from cache")
	assert.Equal(t, "ada", second.Username)
}

func TestAside_CountsHitsAndMisses(t *testing.T) {
	setupTestCache(t)
	ctx := context.Background()

	misses := testutil.ToFloat64(observability.CacheHits.WithLabelValues("user", "miss"))
	hits := testutil.ToFloat64(observability.CacheHits.WithLabelValues("user", "hit"))

	fetch := func(dest *cachedUser) func() error {
		return func() error {
			dest.ID = 11
			return nil
		}
	}

	var first cachedUser
	require.NoError(t, Aside(ctx, UserKey(11), &first, UserTTL, fetch(&first)))
	var second cachedUser
	require.NoError(t, Aside(ctx, UserKey(11), &second, UserTTL, fetch(&second)))

	assert.Equal(t, misses+1, testutil.ToFloat64(observability.CacheHits.WithLabelValues("user", "miss")))
	assert.Equal(t, hits+1, testutil.ToFloat64(observability.CacheHits.WithLabelValues("user", "hit")))
}

func TestAside_FetchErrorIsNotCached(t *testing.T) {
	setupTestCache(t)
	ctx := context.Background()

	var dest cachedUser
	wantErr := assert.AnError
	err := Aside(ctx, UserKey(9), &dest, UserTTL, func() error { return wantErr })
	assert.ErrorIs(t, err, wantErr)

	found, err := GetJSON(ctx, UserKey(9), &dest)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidatePost_AlsoDropsFeed(t *testing.T) {
	mr := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, PostKey(3), cachedUser{ID: 3}, PostTTL))
	require.NoError(t, SetJSON(ctx, FeedKey(), []cachedUser{{ID: 3}}, FeedTTL))

	InvalidatePost(ctx, 3)

	assert.False(t, mr.Exists(PostKey(3)))
	assert.False(t, mr.Exists(FeedKey()))
}

func TestGetJSON_NoClient(t *testing.T) {
	SetClient(nil)
	var dest cachedUser
	found, err := GetJSON(context.Background(), UserKey(1), &dest)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSetJSON_TTL(t *testing.T) {
	mr := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, UserKey(1), cachedUser{ID: 1}, time.Minute))
	mr.FastForward(2 * time.Minute)

	var dest cachedUser
	found, err := GetJSON(ctx, UserKey(1), &dest)
	require.NoError(t, err)
	assert.False(t, found, "entry should expire after TTL")
}
