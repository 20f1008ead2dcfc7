//go:build integration

package rediscache_test

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/yungbote/navgraph/internal/platform/logger"
	"github.com/yungbote/navgraph/internal/platform/rediscache"
)

func TestRedisCacheRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if exec.CommandContext(ctx, "docker", "info").Run() != nil {
		t.Skip("Skipping test: Docker not available")
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start redis container: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	addr, err := container.PortEndpoint(ctx, "6379/tcp", "")
	if err != nil {
		t.Fatalf("redis endpoint: %v", err)
	}

	log, _ := logger.New("test")
	cache, err := rediscache.New(log, rediscache.Config{Addr: addr, KeyPrefix: "it:"})
	if err != nil {
		t.Fatalf("rediscache.New: %v", err)
	}
	t.Cleanup(func() { _ = cache.Close() })

	var got []string
	if hit, err := cache.GetJSON(ctx, "refs", &got); hit || err != nil {
		t.Fatalf("expected a clean miss, got hit=%v err=%v", hit, err)
	}
	if err := cache.SetJSON(ctx, "refs", []string{"a", "b"}, time.Minute); err != nil {
		t.Fatalf("SetJSON: %v", err)
	}
	hit, err := cache.GetJSON(ctx, "refs", &got)
	if err != nil || !hit || len(got) != 2 || got[0] != "a" {
		t.Fatalf("GetJSON: hit=%v err=%v got=%v", hit, err, got)
	}
}
