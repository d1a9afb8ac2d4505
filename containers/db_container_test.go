package containers

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
)

func TestDBContainer_appliesSchema(t *testing.T) {
	c := NewDBContainer()
	defer c.Shutdown()
	ctx := context.Background()

	conn, err := pgx.Connect(ctx, c.ConnectionString())
	if err != nil {
		t.Fatalf("error connecting: %v", err)
	}
	defer conn.Close(ctx)

	for _, table := range []string{"leagues", "teams", "players", "roster_slots", "draft_history"} {
		var exists bool
		err := conn.QueryRow(ctx, `SELECT to_regclass($1) IS NOT NULL`, table).Scan(&exists)
		if err != nil {
			t.Fatalf("error checking table %s: %v", table, err)
		}
		if !exists {
			t.Errorf("expected table %s to exist", table)
		}
	}

	// the DDL can run against an existing database
	if err := c.applySchema(ctx); err != nil {
		t.Errorf("applying the schema twice should succeed: %v", err)
	}

	var count int
	if err := conn.QueryRow(ctx, `SELECT count(*) FROM leagues`).Scan(&count); err != nil {
		t.Fatalf("error counting leagues: %v", err)
	}
	if count != 0 {
		t.Errorf("expected an empty database, got %d leagues", count)
	}
}
