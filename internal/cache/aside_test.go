package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedTag struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func setupMiniredis(t *testing.T) {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
}

func TestAside_FetchesOnceThenServesFromCache(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *[]cachedTag) func() error {
		return func() error {
			fetches++
			*dest = []cachedTag{{ID: 1, Name: "go"}, {ID: 2, Name: "postgres"}}
			return nil
		}
	}

	var first []cachedTag
	require.NoError(t, Aside(ctx, TagListKey, &first, TagListTTL, fetch(&first)))
	assert.Equal(t, 1, fetches)
	assert.Len(t, first, 2)

	var second []cachedTag
	require.NoError(t, Aside(ctx, TagListKey, &second, TagListTTL, fetch(&second)))
	assert.Equal(t, 1, fetches, "second read must be served from cache")
	assert.Equal(t, first, second)
}

func TestAside_InvalidateForcesRefetch(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	fetches := 0
	var out []cachedTag
	fetch := func() error {
		fetches++
		out = []cachedTag{{ID: 1, Name: "go"}}
		return nil
	}

	require.NoError(t, Aside(ctx, PostKey(42), &out, PostTTL, fetch))
	InvalidatePost(ctx, 42)
	require.NoError(t, Aside(ctx, PostKey(42), &out, PostTTL, fetch))

	assert.Equal(t, 2, fetches)
}

func TestAside_NilClientAlwaysFetches(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	fetches := 0
	var out int
	fetch := func() error {
		fetches++
		out = 7
		return nil
	}

	require.NoError(t, Aside(ctx, "whatever", &out, time.Minute, fetch))
	require.NoError(t, Aside(ctx, "whatever", &out, time.Minute, fetch))

	assert.Equal(t, 2, fetches)
	assert.Equal(t, 7, out)
}
