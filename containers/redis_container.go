package containers

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

const redisImage = "redis:7.2-alpine"

type RedisContainer struct {
	container *tcredis.RedisContainer
}

func NewRedisContainer() *RedisContainer {
	container, err := tcredis.Run(context.Background(), redisImage)
	if err != nil {
		log.Fatalf("error starting redis container: %v", err)
	}

	return &RedisContainer{
		container: container,
	}
}

func (c *RedisContainer) Shutdown() {
	err := c.container.Terminate(context.Background())
	if err != nil {
		log.Fatalf("error terminating redis container: %v", err)
	}
}

// Client returns a new client connected to the container.
func (c *RedisContainer) Client() *redis.Client {
	connStr, err := c.container.ConnectionString(context.Background())
	if err != nil {
		log.Fatalf("error getting redis connection string: %v", err)
	}
	opts, err := redis.ParseURL(connStr)
	if err != nil {
		log.Fatalf("error parsing redis connection string: %v", err)
	}
	return redis.NewClient(opts)
}
