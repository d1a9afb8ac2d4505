package testutils

import (
	"github.com/jchen-way/DraftOptimizer/containers"
	"github.com/jchen-way/DraftOptimizer/lock"
	"github.com/redis/go-redis/v9"
)

// TestRedis is a redis container with a client connected to it.
type TestRedis struct {
	container *containers.RedisContainer
	Client    *redis.Client
}

func NewTestRedis() *TestRedis {
	container := containers.NewRedisContainer()
	return &TestRedis{
		container: container,
		Client:    container.Client(),
	}
}

// Locker returns a league locker backed by the container.
func (r *TestRedis) Locker() lock.Locker {
	return lock.NewRedisLocker(r.Client, lock.DefaultTTL)
}

func (r *TestRedis) Shutdown() {
	r.Client.Close()
	r.container.Shutdown()
}
