package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/pinkcart/go-backend/internal/cfg"
	"github.com/pinkcart/go-backend/internal/domain"
	"github.com/pinkcart/go-backend/internal/repository/redis/converter"
	"github.com/pinkcart/go-backend/pkg/clients"
	"github.com/pinkcart/go-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) (*CacheRepo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rc := &cfg.RedisCfg{Addr: mr.Addr(), ProductTTL: 3 * time.Minute}
	client := clients.NewRedisClient(rc)
	t.Cleanup(func() { _ = client.Close() })

	return NewCacheRepo(client, converter.ProductConverter{}, rc, logger.NewNop()), mr
}

func TestCacheRepo_SetGet(t *testing.T) {
	repo, mr := newRepo(t)
	ctx := context.Background()
	orig := int64(4500)
	p := &domain.Product{
		ID: "p1", Name: "Aesthetic LED Mirror", Price: 2800, OriginalPrice: &orig,
		Category: "Cute Lighting", CategoryID: "cute-lighting", IsActive: true,
		Images:    []string{"/led-mirror-hearts.jpg"},
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		UpdatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	require.NoError(t, repo.SetProduct(ctx, p))
	assert.Equal(t, 3*time.Minute, mr.TTL("product:p1"))

	got, ok, err := repo.GetProduct(ctx, "p1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, p, got)
}

func TestCacheRepo_Miss(t *testing.T) {
	repo, _ := newRepo(t)

	got, ok, err := repo.GetProduct(context.Background(), "absent")

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestCacheRepo_CorruptEntryIsEvicted(t *testing.T) {
	repo, mr := newRepo(t)
	require.NoError(t, mr.Set("product:p1", "{not json"))

	_, ok, err := repo.GetProduct(context.Background(), "p1")

	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, mr.Exists("product:p1"))
}

func TestCacheRepo_IDMismatchIsEvicted(t *testing.T) {
	repo, mr := newRepo(t)
	require.NoError(t, mr.Set("product:p1", `{"id":"p2","name":"x"}`))

	_, ok, err := repo.GetProduct(context.Background(), "p1")

	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, mr.Exists("product:p1"))
}

func TestCacheRepo_DeleteProducts(t *testing.T) {
	repo, mr := newRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.SetProduct(ctx, &domain.Product{ID: "a"}))
	require.NoError(t, repo.SetProduct(ctx, &domain.Product{ID: "b"}))

	require.NoError(t, repo.DeleteProducts(ctx, []string{"a", "b"}))
	require.NoError(t, repo.DeleteProducts(ctx, nil))

	assert.False(t, mr.Exists("product:a"))
	assert.False(t, mr.Exists("product:b"))
}

func TestCacheRepo_ServerDown(t *testing.T) {
	repo, mr := newRepo(t)
	mr.Close()

	_, _, err := repo.GetProduct(context.Background(), "p1")

	assert.Error(t, err)
}
