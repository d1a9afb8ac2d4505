package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jchen-way/DraftOptimizer/model"
)

const playerColumns = `id, league_id, name, mlb_team, eligible_positions, projections, adp,
	projected_value, is_drafted, drafted_by, drafted_for, draft_phase, active_position, created`

func (db *postgresDB) ListPlayers(ctx context.Context, leagueID string) ([]model.Player, error) {
	const query = `SELECT ` + playerColumns + ` FROM players WHERE league_id=@leagueID ORDER BY name, id`

	args := pgx.NamedArgs{
		"leagueID": leagueID,
	}
	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error listing players: %w", err)
	}
	defer rows.Close()

	results := make([]model.Player, 0, 256)
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning player: %w", err)
		}
		results = append(results, *p)
	}
	return results, rows.Err()
}

func (db *postgresDB) GetPlayer(ctx context.Context, id string) (*model.Player, error) {
	const query = `SELECT ` + playerColumns + ` FROM players WHERE id=@id`

	args := pgx.NamedArgs{
		"id": id,
	}
	p, err := scanPlayer(db.pool.QueryRow(ctx, query, args))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("error scanning player %s: %w", id, err)
	}
	return p, nil
}

func (db *postgresDB) AddPlayers(ctx context.Context, players []model.Player) (int, error) {
	const query = `INSERT INTO players (
		id,
		league_id,
		name,
		mlb_team,
		eligible_positions,
		projections,
		adp,
		projected_value,
		created
	) VALUES (
		@id,
		@leagueID,
		@name,
		@mlbTeam,
		@eligiblePositions,
		@projections,
		@adp,
		@projectedValue,
		@created
	) ON CONFLICT DO NOTHING`

	if len(players) == 0 {
		return 0, nil
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	now := db.clock.Now().UTC()
	batch := &pgx.Batch{}
	for i := range players {
		p := &players[i]
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		p.Created = now
		batch.Queue(query, namedArgsForPlayer(p))
	}

	inserted := 0
	results := tx.SendBatch(ctx, batch)
	for range players {
		tag, err := results.Exec()
		if err != nil {
			results.Close()
			return 0, fmt.Errorf("error inserting player: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}
	if err := results.Close(); err != nil {
		return 0, fmt.Errorf("error inserting players: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("error commiting player transaction: %w", err)
	}
	return inserted, nil
}

func (db *postgresDB) ClearPlayers(ctx context.Context, leagueID string) error {
	const query = `DELETE FROM players WHERE league_id=@leagueID`

	args := pgx.NamedArgs{
		"leagueID": leagueID,
	}
	if _, err := db.pool.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error clearing players of league %s: %w", leagueID, err)
	}
	return nil
}

func (db *postgresDB) HasDraftActivity(ctx context.Context, leagueID string) (bool, error) {
	const query = `SELECT
		EXISTS (SELECT 1 FROM players WHERE league_id=@leagueID AND is_drafted)
		OR EXISTS (SELECT 1 FROM draft_history WHERE league_id=@leagueID)
		OR EXISTS (SELECT 1 FROM roster_slots rs JOIN teams t ON t.id = rs.team_id WHERE t.league_id=@leagueID)`

	args := pgx.NamedArgs{
		"leagueID": leagueID,
	}
	var active bool
	if err := db.pool.QueryRow(ctx, query, args).Scan(&active); err != nil {
		return false, fmt.Errorf("error checking draft activity of league %s: %w", leagueID, err)
	}
	return active, nil
}

// saveDraftState writes the draft fields of a player.
func saveDraftState(ctx context.Context, tx pgx.Tx, p *model.Player) error {
	const query = `UPDATE players
		SET is_drafted=@isDrafted,
			drafted_by=@draftedBy,
			drafted_for=@draftedFor,
			draft_phase=@draftPhase,
			active_position=@activePosition
		WHERE id=@id`

	tag, err := tx.Exec(ctx, query, namedArgsForPlayer(p))
	if err != nil {
		return fmt.Errorf("error updating player (%s): %w", p.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

func scanPlayer(row pgx.Row) (*model.Player, error) {
	var result model.Player
	var positions []string
	var draftedBy sql.NullString
	var adp pgtype.Float8
	var projectedValue pgtype.Int4
	var phase string
	var active DBPosition
	var created pgtype.Timestamptz
	err := row.Scan(
		&result.ID,
		&result.LeagueID,
		&result.Name,
		&result.MLBTeam,
		&positions,
		&result.Projections,
		&adp,
		&projectedValue,
		&result.IsDrafted,
		&draftedBy,
		&result.DraftedFor,
		&phase,
		&active,
		&created)

	if err != nil {
		return nil, err
	}

	result.EligiblePositions = model.NormalizePositions(positions)
	if adp.Valid {
		v := adp.Float64
		result.ADP = &v
	}
	if projectedValue.Valid {
		v := int(projectedValue.Int32)
		result.ProjectedValue = &v
	}
	result.DraftedBy = valueOrEmpty(draftedBy)
	result.DraftPhase = model.DraftPhase(phase)
	result.ActivePosition = active.position
	result.Created = created.Time.UTC()

	return &result, nil
}

func namedArgsForPlayer(p *model.Player) pgx.NamedArgs {
	positions := make([]string, len(p.EligiblePositions))
	for i, pos := range p.EligiblePositions {
		positions[i] = string(pos)
	}
	projections := p.Projections
	if projections == nil {
		projections = model.Projections{}
	}
	adp := pgtype.Float8{}
	if p.ADP != nil {
		adp = pgtype.Float8{Float64: *p.ADP, Valid: true}
	}
	projectedValue := pgtype.Int4{}
	if p.ProjectedValue != nil {
		projectedValue = pgtype.Int4{Int32: int32(*p.ProjectedValue), Valid: true}
	}

	return pgx.NamedArgs{
		"id":                p.ID,
		"leagueID":          p.LeagueID,
		"name":              p.Name,
		"mlbTeam":           p.MLBTeam,
		"eligiblePositions": positions,
		"projections":       projections,
		"adp":               adp,
		"projectedValue":    projectedValue,
		"isDrafted":         p.IsDrafted,
		"draftedBy":         nullString(p.DraftedBy),
		"draftedFor":        p.DraftedFor,
		"draftPhase":        string(p.DraftPhase),
		"activePosition":    &DBPosition{position: p.ActivePosition},
		"created":           timestamptz(&p.Created),
	}
}
