package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedis_UnavailableDegradesToMiss(t *testing.T) {
	r := NewRedisFromClient(nil, 0, nil)
	ctx := context.Background()

	assert.False(t, r.Available())
	assert.ErrorIs(t, r.Ping(ctx), ErrUnavailable)

	var out map[string]int
	found, err := r.GetJSON(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, r.SetJSON(ctx, "k", map[string]int{"a": 1}, time.Minute))
	require.NoError(t, r.Delete(ctx, "k"))
	require.NoError(t, r.DeleteByPattern(ctx, "k*"))
	require.NoError(t, r.ReleaseLease(ctx, "k", "token"))
	require.NoError(t, r.BumpVersion(ctx, "v"))
	v, err := r.Version(ctx, "v")
	require.NoError(t, err)
	assert.Zero(t, v)
	require.NoError(t, r.Close())

	_, ok, err := r.AcquireLease(ctx, "k", time.Second)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestRedis_NilReceiver(t *testing.T) {
	var r *Redis
	assert.False(t, r.Available())
	found, err := r.GetJSON(context.Background(), "k", &struct{}{})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestKeys_ListKeysMatchCandidatePattern(t *testing.T) {
	id := uuid.New()
	other := uuid.New()

	prefix := strings.SplitN(RecommendationPattern(id), "*", 2)[0]

	list := RecommendationListKey(id, 3, 50, 20)
	stats := RecommendationStatsKey(id, 3)

	for _, k := range []string{list, stats} {
		assert.True(t, strings.HasPrefix(k, prefix))
		assert.Contains(t, k, ":"+id.String()+":")
	}
	assert.NotContains(t, RecommendationListKey(other, 3, 50, 20), id.String())
	assert.NotEqual(t, RecommendationListKey(id, 3, 50, 20), RecommendationListKey(id, 3, 60, 20))
	// The lease and version keys have no trailing segment so pattern invalidation never drops them.
	assert.False(t, strings.HasSuffix(GenerationLeaseKey(id), ":"))
	assert.False(t, strings.HasPrefix(RecommendationVersionKey(id), prefix))
	for _, p := range RecommendationReadPatterns() {
		assert.False(t, strings.HasPrefix(RecommendationVersionKey(id), strings.TrimSuffix(p, "*")))
	}
}

func TestKeys_VersionSeparatesEntries(t *testing.T) {
	id := uuid.New()
	assert.NotEqual(t, RecommendationListKey(id, 1, 50, 20), RecommendationListKey(id, 2, 50, 20))
	assert.NotEqual(t, RecommendationStatsKey(id, 1), RecommendationStatsKey(id, 2))
}
