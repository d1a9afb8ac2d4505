package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jchen-way/DraftOptimizer/model"
)

const teamColumns = `id, league_id, owner_name, team_name, is_my_team, budget_total, budget_spent, created`

func (db *postgresDB) ListTeams(ctx context.Context, leagueID string) ([]model.Team, error) {
	const query = `SELECT ` + teamColumns + ` FROM teams WHERE league_id=@leagueID ORDER BY created, seq`

	args := pgx.NamedArgs{
		"leagueID": leagueID,
	}
	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error listing teams: %w", err)
	}
	defer rows.Close()

	results := make([]model.Team, 0, 12)
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning team: %w", err)
		}
		results = append(results, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rosters, err := db.getRosters(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	for i := range results {
		results[i].Roster = rosters[results[i].ID]
	}
	return results, nil
}

func (db *postgresDB) GetTeam(ctx context.Context, id string) (*model.Team, error) {
	const query = `SELECT ` + teamColumns + ` FROM teams WHERE id=@id`

	args := pgx.NamedArgs{
		"id": id,
	}
	t, err := scanTeam(db.pool.QueryRow(ctx, query, args))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("error scanning team %s: %w", id, err)
	}

	rosters, err := db.getRosters(ctx, t.LeagueID)
	if err != nil {
		return nil, err
	}
	t.Roster = rosters[t.ID]
	return t, nil
}

func (db *postgresDB) AddTeam(ctx context.Context, t *model.Team) error {
	const query = `INSERT INTO teams (
		id,
		league_id,
		owner_name,
		team_name,
		is_my_team,
		budget_total,
		budget_spent,
		created
	) VALUES (
		@id,
		@leagueID,
		@ownerName,
		@teamName,
		@isMyTeam,
		@budgetTotal,
		@budgetSpent,
		@created
	)`

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	t.ID = uuid.NewString()
	t.Created = db.clock.Now().UTC()
	t.RecomputeBudget()
	if _, err := tx.Exec(ctx, query, namedArgsForTeam(t)); err != nil {
		return fmt.Errorf("error inserting team: %w", err)
	}
	if err := clearOtherMyTeams(ctx, tx, t); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error commiting team transaction: %w", err)
	}
	return nil
}

func (db *postgresDB) UpdateTeam(ctx context.Context, t *model.Team) error {
	const query = `UPDATE teams
		SET owner_name=@ownerName,
			team_name=@teamName,
			is_my_team=@isMyTeam,
			budget_total=@budgetTotal
		WHERE id=@id`

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, query, namedArgsForTeam(t))
	if err != nil {
		return fmt.Errorf("error updating team (%s): %w", t.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTeamNotFound
	}
	if err := clearOtherMyTeams(ctx, tx, t); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error commiting team transaction: %w", err)
	}
	return nil
}

func (db *postgresDB) DeleteTeam(ctx context.Context, id string) error {
	const query = `DELETE FROM teams WHERE id=@id`

	args := pgx.NamedArgs{
		"id": id,
	}
	tag, err := db.pool.Exec(ctx, query, args)
	if err != nil {
		return fmt.Errorf("error deleting team (%s): %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTeamNotFound
	}
	return nil
}

func clearOtherMyTeams(ctx context.Context, tx pgx.Tx, t *model.Team) error {
	if !t.IsMyTeam {
		return nil
	}
	const query = `UPDATE teams SET is_my_team=FALSE WHERE league_id=@leagueID AND id<>@id AND is_my_team`

	args := pgx.NamedArgs{
		"leagueID": t.LeagueID,
		"id":       t.ID,
	}
	if _, err := tx.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error clearing my team flag: %w", err)
	}
	return nil
}

// getRosters loads the rosters of every team in a league keyed by team id.
func (db *postgresDB) getRosters(ctx context.Context, leagueID string) (map[string][]model.RosterSlot, error) {
	const query = `SELECT rs.team_id, rs.player_id, rs.position, rs.cost, rs.draft_phase
		FROM roster_slots rs JOIN teams t ON t.id = rs.team_id
		WHERE t.league_id=@leagueID
		ORDER BY rs.team_id, rs.slot_order`

	args := pgx.NamedArgs{
		"leagueID": leagueID,
	}
	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error loading rosters: %w", err)
	}
	defer rows.Close()

	rosters := make(map[string][]model.RosterSlot)
	for rows.Next() {
		var teamID, phase string
		var pos DBPosition
		var slot model.RosterSlot
		if err := rows.Scan(&teamID, &slot.PlayerID, &pos, &slot.Cost, &phase); err != nil {
			return nil, fmt.Errorf("error scanning roster slot: %w", err)
		}
		slot.Position = pos.position
		slot.DraftPhase = model.DraftPhase(phase)
		rosters[teamID] = append(rosters[teamID], slot)
	}
	return rosters, rows.Err()
}

// saveRoster replaces the stored roster of t.
func saveRoster(ctx context.Context, tx pgx.Tx, t *model.Team) error {
	const remove = `DELETE FROM roster_slots WHERE team_id=@teamID`
	const insert = `INSERT INTO roster_slots (
		team_id,
		player_id,
		slot_order,
		position,
		cost,
		draft_phase
	) VALUES (
		@teamID,
		@playerID,
		@slotOrder,
		@position,
		@cost,
		@draftPhase
	)`

	if _, err := tx.Exec(ctx, remove, pgx.NamedArgs{"teamID": t.ID}); err != nil {
		return fmt.Errorf("error clearing roster of team %s: %w", t.ID, err)
	}
	if len(t.Roster) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for i, slot := range t.Roster {
		batch.Queue(insert, pgx.NamedArgs{
			"teamID":     t.ID,
			"playerID":   slot.PlayerID,
			"slotOrder":  i,
			"position":   &DBPosition{position: slot.Position},
			"cost":       slot.Cost,
			"draftPhase": string(slot.DraftPhase),
		})
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("error saving roster of team %s: %w", t.ID, err)
	}
	return nil
}

func scanTeam(row pgx.Row) (*model.Team, error) {
	var result model.Team
	var created pgtype.Timestamptz
	err := row.Scan(
		&result.ID,
		&result.LeagueID,
		&result.OwnerName,
		&result.TeamName,
		&result.IsMyTeam,
		&result.Budget.Total,
		&result.Budget.Spent,
		&created)

	if err != nil {
		return nil, err
	}

	result.Created = created.Time.UTC()
	result.RecomputeBudget()
	return &result, nil
}

func namedArgsForTeam(t *model.Team) pgx.NamedArgs {
	return pgx.NamedArgs{
		"id":          t.ID,
		"leagueID":    t.LeagueID,
		"ownerName":   t.OwnerName,
		"teamName":    t.TeamName,
		"isMyTeam":    t.IsMyTeam,
		"budgetTotal": t.Budget.Total,
		"budgetSpent": t.Budget.Spent,
		"created":     timestamptz(&t.Created),
	}
}
