package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/itbasis/go-clock"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jchen-way/DraftOptimizer/model"
)

var (
	ErrLeagueNotFound error = model.NotFoundf("League not found")
	ErrTeamNotFound   error = model.NotFoundf("Team not found")
	ErrPlayerNotFound error = model.NotFoundf("Player not found")
)

func New(ctx context.Context, connString string, clock clock.Clock) (DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}

	return &postgresDB{pool: pool, clock: clock}, nil
}

type postgresDB struct {
	pool  *pgxpool.Pool
	clock clock.Clock
}

const leagueColumns = `id, name, total_budget, roster_slots, bench_slots, scoring_categories,
	draft_phase, keeper_finalized, keeper_finalized_at, taxi_round_started_at, created`

func (db *postgresDB) ListLeagues(ctx context.Context) ([]model.League, error) {
	const query = `SELECT ` + leagueColumns + ` FROM leagues ORDER BY created DESC, id`

	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing leagues: %w", err)
	}
	defer rows.Close()

	results := make([]model.League, 0, 4)
	for rows.Next() {
		l, err := scanLeague(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning league: %w", err)
		}
		results = append(results, *l)
	}
	return results, rows.Err()
}

func (db *postgresDB) GetLeague(ctx context.Context, id string) (*model.League, error) {
	const query = `SELECT ` + leagueColumns + ` FROM leagues WHERE id=@id`

	args := pgx.NamedArgs{
		"id": id,
	}
	l, err := scanLeague(db.pool.QueryRow(ctx, query, args))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeagueNotFound
		}
		return nil, fmt.Errorf("error scanning league %s: %w", id, err)
	}
	return l, nil
}

func (db *postgresDB) AddLeague(ctx context.Context, l *model.League) error {
	const query = `INSERT INTO leagues (
		id,
		name,
		total_budget,
		roster_slots,
		bench_slots,
		scoring_categories,
		draft_phase,
		keeper_finalized,
		keeper_finalized_at,
		taxi_round_started_at,
		created
	) VALUES (
		@id,
		@name,
		@totalBudget,
		@rosterSlots,
		@benchSlots,
		@scoringCategories,
		@draftPhase,
		@keeperFinalized,
		@keeperFinalizedAt,
		@taxiRoundStartedAt,
		@created
	)`

	l.ID = uuid.NewString()
	l.Created = db.clock.Now().UTC()
	_, err := db.pool.Exec(ctx, query, namedArgsForLeague(l))
	if err != nil {
		return fmt.Errorf("error inserting league: %w", err)
	}
	return nil
}

func (db *postgresDB) UpdateLeague(ctx context.Context, l *model.League) error {
	const query = `UPDATE leagues
		SET name=@name,
			total_budget=@totalBudget,
			roster_slots=@rosterSlots,
			bench_slots=@benchSlots,
			scoring_categories=@scoringCategories
		WHERE id=@id`

	tag, err := db.pool.Exec(ctx, query, namedArgsForLeague(l))
	if err != nil {
		return fmt.Errorf("error updating league (%s): %w", l.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrLeagueNotFound
	}
	return nil
}

func (db *postgresDB) DeleteLeague(ctx context.Context, id string) error {
	const query = `DELETE FROM leagues WHERE id=@id`

	args := pgx.NamedArgs{
		"id": id,
	}
	tag, err := db.pool.Exec(ctx, query, args)
	if err != nil {
		return fmt.Errorf("error deleting league (%s): %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrLeagueNotFound
	}
	return nil
}

func scanLeague(row pgx.Row) (*model.League, error) {
	var result model.League
	var categories []string
	var phase string
	var finalizedAt, taxiStartedAt, created pgtype.Timestamptz
	err := row.Scan(
		&result.ID,
		&result.Name,
		&result.TotalBudget,
		&result.RosterSlots,
		&result.BenchSlots,
		&categories,
		&phase,
		&result.KeeperFinalized,
		&finalizedAt,
		&taxiStartedAt,
		&created)

	if err != nil {
		return nil, err
	}

	for _, c := range categories {
		result.ScoringCategories = append(result.ScoringCategories, model.Category(c))
	}
	result.DraftPhase = model.DraftPhase(phase)
	result.KeeperFinalizedAt = timeOrNil(finalizedAt)
	result.TaxiRoundStartedAt = timeOrNil(taxiStartedAt)
	result.Created = created.Time.UTC()

	return &result, nil
}

func namedArgsForLeague(l *model.League) pgx.NamedArgs {
	categories := make([]string, len(l.ScoringCategories))
	for i, c := range l.ScoringCategories {
		categories[i] = string(c)
	}
	slots := l.RosterSlots
	if slots == nil {
		slots = model.RosterSlots{}
	}

	return pgx.NamedArgs{
		"id":                 l.ID,
		"name":               l.Name,
		"totalBudget":        l.TotalBudget,
		"rosterSlots":        slots,
		"benchSlots":         l.BenchSlots,
		"scoringCategories":  categories,
		"draftPhase":         string(l.Phase()),
		"keeperFinalized":    l.KeeperFinalized,
		"keeperFinalizedAt":  timestamptz(l.KeeperFinalizedAt),
		"taxiRoundStartedAt": timestamptz(l.TaxiRoundStartedAt),
		"created":            timestamptz(&l.Created),
	}
}

func timestamptz(t *time.Time) pgtype.Timestamptz {
	if t == nil || t.IsZero() {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{
		Time:             t.UTC(),
		InfinityModifier: pgtype.Finite,
		Valid:            true,
	}
}

func timeOrNil(t pgtype.Timestamptz) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}

func valueOrEmpty(v sql.NullString) string {
	if v.Valid {
		return v.String
	}
	return ""
}

func nullString(s string) sql.NullString {
	return sql.NullString{
		String: s,
		Valid:  s != "",
	}
}

// DBPosition stores positions as text and normalizes them when read back.
type DBPosition struct {
	position model.Position
}

func (p *DBPosition) ScanText(v pgtype.Text) error {
	if !v.Valid {
		p.position = ""
		return nil
	}
	p.position = model.ParsePosition(v.String)
	return nil
}

func (p *DBPosition) TextValue() (pgtype.Text, error) {
	return pgtype.Text{
		String: string(p.position),
		Valid:  true,
	}, nil
}
