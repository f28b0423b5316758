//go:build integration

package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"selfservice/internal/platform/config"
	"selfservice/pkg/testutil/containers"
)

func TestNewConnectsAndReportsHealth(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx := context.Background()
	rc := containers.NewRedisContainer(t)
	defer rc.Terminate(ctx)

	client, err := New(ctx, config.RedisConfig{
		URL:          rc.Addr,
		PoolSize:     2,
		MinIdleConns: 1,
		DialTimeout:  time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	require.NoError(t, err)
	require.NotNil(t, client)
	defer client.Close()

	require.NoError(t, client.Health(ctx))
}
