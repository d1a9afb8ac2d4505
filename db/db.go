package db

import (
	"context"

	"github.com/jchen-way/DraftOptimizer/model"
)

type DB interface {
	ListLeagues(ctx context.Context) ([]model.League, error)
	GetLeague(ctx context.Context, id string) (*model.League, error)
	// AddLeague assigns the ID and creation time of the league.
	AddLeague(ctx context.Context, league *model.League) error
	// UpdateLeague saves the league settings. Draft state is only changed through ApplyMutation.
	UpdateLeague(ctx context.Context, league *model.League) error
	// DeleteLeague removes the league along with its teams, players and history.
	DeleteLeague(ctx context.Context, id string) error

	// ListTeams returns the teams of a league in creation order, rosters included.
	ListTeams(ctx context.Context, leagueID string) ([]model.Team, error)
	GetTeam(ctx context.Context, id string) (*model.Team, error)
	// AddTeam and UpdateTeam clear the my team flag on every other team of the
	// league when the saved team has it set.
	AddTeam(ctx context.Context, team *model.Team) error
	UpdateTeam(ctx context.Context, team *model.Team) error
	DeleteTeam(ctx context.Context, id string) error

	ListPlayers(ctx context.Context, leagueID string) ([]model.Player, error)
	GetPlayer(ctx context.Context, id string) (*model.Player, error)
	// AddPlayers inserts new players and skips any that collide with an existing
	// player of the same name and MLB team. It returns how many were inserted.
	AddPlayers(ctx context.Context, players []model.Player) (int, error)
	ClearPlayers(ctx context.Context, leagueID string) error
	// HasDraftActivity reports whether any player was drafted, any history was
	// logged or any team has a roster in the league.
	HasDraftActivity(ctx context.Context, leagueID string) (bool, error)

	// ListHistory returns the league's history newest first. A limit <= 0 returns all of it.
	ListHistory(ctx context.Context, leagueID string, limit int) ([]model.DraftHistoryEntry, error)
	// ApplyMutation writes every part of a draft action in a single transaction.
	ApplyMutation(ctx context.Context, m *model.DraftMutation) error
}
