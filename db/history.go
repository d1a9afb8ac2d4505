package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jchen-way/DraftOptimizer/model"
)

func (db *postgresDB) ListHistory(ctx context.Context, leagueID string, limit int) ([]model.DraftHistoryEntry, error) {
	const query = `SELECT id, seq, league_id, player_id, team_id, amount, phase, created
		FROM draft_history WHERE league_id=@leagueID
		ORDER BY created DESC, seq DESC
		LIMIT @limit`

	var lim *int
	if limit > 0 {
		lim = &limit
	}
	args := pgx.NamedArgs{
		"leagueID": leagueID,
		"limit":    lim,
	}
	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error listing draft history: %w", err)
	}
	defer rows.Close()

	results := make([]model.DraftHistoryEntry, 0, 64)
	for rows.Next() {
		var e model.DraftHistoryEntry
		var phase string
		var created pgtype.Timestamptz
		if err := rows.Scan(&e.ID, &e.Seq, &e.LeagueID, &e.PlayerID, &e.TeamID, &e.Amount, &phase, &created); err != nil {
			return nil, fmt.Errorf("error scanning draft history: %w", err)
		}
		e.Phase = model.DraftPhase(phase)
		e.Created = created.Time.UTC()
		results = append(results, e)
	}
	return results, rows.Err()
}

func (db *postgresDB) ApplyMutation(ctx context.Context, m *model.DraftMutation) error {
	if m.Empty() {
		return nil
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if m.League != nil {
		if err := saveLeagueDraftState(ctx, tx, m.League); err != nil {
			return err
		}
	}
	if m.Team != nil {
		if err := saveTeamDraftState(ctx, tx, m.Team); err != nil {
			return err
		}
	}
	if m.Player != nil {
		if err := saveDraftState(ctx, tx, m.Player); err != nil {
			return err
		}
	}
	// roster slots reference the player, so they are written after it
	if m.Team != nil {
		if err := saveRoster(ctx, tx, m.Team); err != nil {
			return err
		}
	}
	if m.RemoveHistory != nil {
		if err := deleteHistory(ctx, tx, m.RemoveHistory); err != nil {
			return err
		}
	}
	if m.AddHistory != nil {
		if err := insertHistory(ctx, tx, m.AddHistory); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error commiting draft transaction: %w", err)
	}
	return nil
}

func saveLeagueDraftState(ctx context.Context, tx pgx.Tx, l *model.League) error {
	const query = `UPDATE leagues
		SET draft_phase=@draftPhase,
			keeper_finalized=@keeperFinalized,
			keeper_finalized_at=@keeperFinalizedAt,
			taxi_round_started_at=@taxiRoundStartedAt
		WHERE id=@id`

	tag, err := tx.Exec(ctx, query, namedArgsForLeague(l))
	if err != nil {
		return fmt.Errorf("error updating league draft state (%s): %w", l.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrLeagueNotFound
	}
	return nil
}

func saveTeamDraftState(ctx context.Context, tx pgx.Tx, t *model.Team) error {
	const query = `UPDATE teams SET budget_spent=@budgetSpent WHERE id=@id`

	tag, err := tx.Exec(ctx, query, namedArgsForTeam(t))
	if err != nil {
		return fmt.Errorf("error updating team budget (%s): %w", t.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTeamNotFound
	}
	return nil
}

func insertHistory(ctx context.Context, tx pgx.Tx, e *model.DraftHistoryEntry) error {
	const query = `INSERT INTO draft_history (
		id,
		league_id,
		player_id,
		team_id,
		amount,
		phase,
		created
	) VALUES (
		@id,
		@leagueID,
		@playerID,
		@teamID,
		@amount,
		@phase,
		@created
	) RETURNING seq`

	args := pgx.NamedArgs{
		"id":       e.ID,
		"leagueID": e.LeagueID,
		"playerID": e.PlayerID,
		"teamID":   e.TeamID,
		"amount":   e.Amount,
		"phase":    string(e.Phase),
		"created":  timestamptz(&e.Created),
	}
	if err := tx.QueryRow(ctx, query, args).Scan(&e.Seq); err != nil {
		return fmt.Errorf("error inserting draft history: %w", err)
	}
	return nil
}

func deleteHistory(ctx context.Context, tx pgx.Tx, e *model.DraftHistoryEntry) error {
	const query = `DELETE FROM draft_history WHERE id=@id`

	tag, err := tx.Exec(ctx, query, pgx.NamedArgs{"id": e.ID})
	if err != nil {
		return fmt.Errorf("error deleting draft history (%s): %w", e.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return model.Conflictf("Draft history entry was already removed")
	}
	return nil
}
