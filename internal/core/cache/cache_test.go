package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "dashboard:report:kpis", Key("kpis"))
	assert.Equal(t, "dashboard:report:kpis:2024-03-01", Key("kpis", "2024-03-01"))
	assert.Equal(t, "dashboard:report:peak:a:b", Key("peak", "a", "b"))
}

func TestNoopCache(t *testing.T) {
	var c Cache = NoopCache{}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", map[string]int{"a": 1}, time.Minute))

	var dest map[string]int
	hit, err := c.Get(ctx, "k", &dest)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, dest)
	assert.NoError(t, c.Close())
}

func TestNewRedisCache_InvalidURL(t *testing.T) {
	c, err := NewRedisCache("not-a-redis-url")
	assert.Nil(t, c)
	assert.ErrorContains(t, err, "failed to parse redis url")
}
