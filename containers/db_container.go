package containers

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jchen-way/DraftOptimizer/schema"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	postgresImage   = "postgres:16.3-alpine"
	draftDatabase   = "draft_optimizer"
	draftUser       = "draftuser"
	draftPassword   = "secret"
	startupDeadline = 30 * time.Second
)

// DBContainer is a throwaway postgres with the draft schema applied.
type DBContainer struct {
	container *postgres.PostgresContainer
	connStr   string
}

func NewDBContainer() *DBContainer {
	ctx, cancel := context.WithTimeout(context.Background(), startupDeadline)
	defer cancel()

	container, err := postgres.Run(ctx, postgresImage,
		postgres.WithDatabase(draftDatabase),
		postgres.WithUsername(draftUser),
		postgres.WithPassword(draftPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(startupDeadline)),
	)
	if err != nil {
		log.Fatalf("error starting postgres container: %v", err)
	}

	// the container has no TLS configured
	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		log.Fatalf("error getting postgres connection string: %v", err)
	}

	c := &DBContainer{container: container, connStr: connStr}
	if err := c.applySchema(ctx); err != nil {
		c.Shutdown()
		log.Fatalf("error applying draft schema: %v", err)
	}
	return c
}

// applySchema runs the embedded DDL in one round trip. Without arguments pgx uses the
// simple protocol, which accepts several statements at once.
func (c *DBContainer) applySchema(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, c.connStr)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	_, err = conn.Exec(ctx, schema.SQL)
	return err
}

func (c *DBContainer) Shutdown() {
	if err := c.container.Terminate(context.Background()); err != nil {
		log.Fatalf("error terminating postgres container: %v", err)
	}
}

func (c *DBContainer) ConnectionString() string {
	return c.connStr
}
