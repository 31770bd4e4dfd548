package repository

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/lingua-center-api/pkg/errors"
)

func TestCacheRepositoryWithoutClient(t *testing.T) {
	repo := NewCacheRepository(nil)
	var dest map[string]int

	assert.ErrorIs(t, repo.Get(context.Background(), "lingua:dash:overview", &dest), appErrors.ErrCacheMiss)
	assert.NoError(t, repo.Set(context.Background(), "lingua:dash:overview", map[string]int{"students": 1}, time.Minute))
	assert.NoError(t, repo.Delete(context.Background(), "lingua:tpl:welcome"))
}

func TestCacheRepositoryUnreachableServerIsNotAMiss(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	defer client.Close()
	repo := NewCacheRepository(client)

	var dest map[string]int
	err := repo.Get(context.Background(), "lingua:dash:overview", &dest)
	require.Error(t, err)
	assert.NotErrorIs(t, err, appErrors.ErrCacheMiss)
	assert.NotErrorIs(t, err, ErrCacheCorrupt)
}
