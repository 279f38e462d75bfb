package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cacheredis "github.com/phananhtu/authcore/internal/cache/redis"
	"github.com/phananhtu/authcore/internal/model"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(cacheredis.NewCache(client)), mr
}

func TestCache_PutGet(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)

	snap := model.AccountSnapshot{
		ID:       uuid.New(),
		Number:   123,
		Username: "alice",
		Email:    "alice@example.com",
		Image:    "/upload/images/alice.jpg",
	}

	require.NoError(t, c.Put(ctx, "123clitoken-xyz", snap, time.Minute))

	got, err := c.Get(ctx, "123clitoken-xyz")
	require.NoError(t, err)
	assert.Equal(t, snap, got)
}

func TestCache_Get_Expired(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	snap := model.AccountSnapshot{ID: uuid.New(), Username: "alice"}
	require.NoError(t, c.Put(ctx, "sub", snap, time.Second))

	mr.FastForward(2 * time.Second)

	_, err := c.Get(ctx, "sub")
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestCache_Get_Missing(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)

	_, err := c.Get(ctx, "never-stored")
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestCache_OldHandleOrphanedAfterNewPut(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)

	snap := model.AccountSnapshot{ID: uuid.New(), Number: 7, Username: "bob"}
	require.NoError(t, c.Put(ctx, "7clitoken-old", snap, time.Minute))
	require.NoError(t, c.Put(ctx, "7clitoken-new", snap, time.Minute))

	// Both entries readable until TTL; the old one is simply no longer
	// referenced by any outstanding token.
	_, err := c.Get(ctx, "7clitoken-old")
	require.NoError(t, err)
	_, err = c.Get(ctx, "7clitoken-new")
	require.NoError(t, err)
}
