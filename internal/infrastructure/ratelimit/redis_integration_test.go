//go:build integration

package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForLog("Ready to accept connections").
				WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err())
	return client
}

// Two server instances sharing Redis must share one budget.
func TestRedisRateLimiter_SharedAcrossInstances(t *testing.T) {
	client := startRedis(t)
	a := NewRedisRateLimiter(client)
	b := NewRedisRateLimiter(client)
	ctx := context.Background()
	limits := Limits{PerMinute: 10}

	var (
		mu      sync.Mutex
		allowed int
		wg      sync.WaitGroup
	)
	instances := []*RedisRateLimiter{a, b}
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(l *RedisRateLimiter) {
			defer wg.Done()
			ok, err := l.Allow(ctx, "contact:10.0.0.1", limits)
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}(instances[i%2])
	}
	wg.Wait()

	assert.Equal(t, 10, allowed)
}
