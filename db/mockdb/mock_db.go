package mockdb

import (
	"context"

	"github.com/jchen-way/DraftOptimizer/model"
	"github.com/stretchr/testify/mock"
)

type DB struct {
	mock.Mock
}

func (db *DB) ListLeagues(ctx context.Context) ([]model.League, error) {
	args := db.Called(ctx)

	var r []model.League
	if args.Get(0) != nil {
		r = args.Get(0).([]model.League)
	}
	return r, args.Error(1)
}

func (db *DB) GetLeague(ctx context.Context, id string) (*model.League, error) {
	args := db.Called(ctx, id)

	var l *model.League
	if args.Get(0) != nil {
		l = args.Get(0).(*model.League)
	}
	return l, args.Error(1)
}

func (db *DB) AddLeague(ctx context.Context, league *model.League) error {
	args := db.Called(ctx, league)
	return args.Error(0)
}

func (db *DB) UpdateLeague(ctx context.Context, league *model.League) error {
	args := db.Called(ctx, league)
	return args.Error(0)
}

func (db *DB) DeleteLeague(ctx context.Context, id string) error {
	args := db.Called(ctx, id)
	return args.Error(0)
}

func (db *DB) ListTeams(ctx context.Context, leagueID string) ([]model.Team, error) {
	args := db.Called(ctx, leagueID)

	var r []model.Team
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Team)
	}
	return r, args.Error(1)
}

func (db *DB) GetTeam(ctx context.Context, id string) (*model.Team, error) {
	args := db.Called(ctx, id)

	var t *model.Team
	if args.Get(0) != nil {
		t = args.Get(0).(*model.Team)
	}
	return t, args.Error(1)
}

func (db *DB) AddTeam(ctx context.Context, team *model.Team) error {
	args := db.Called(ctx, team)
	return args.Error(0)
}

func (db *DB) UpdateTeam(ctx context.Context, team *model.Team) error {
	args := db.Called(ctx, team)
	return args.Error(0)
}

func (db *DB) DeleteTeam(ctx context.Context, id string) error {
	args := db.Called(ctx, id)
	return args.Error(0)
}

func (db *DB) ListPlayers(ctx context.Context, leagueID string) ([]model.Player, error) {
	args := db.Called(ctx, leagueID)

	var r []model.Player
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Player)
	}
	return r, args.Error(1)
}

func (db *DB) GetPlayer(ctx context.Context, id string) (*model.Player, error) {
	args := db.Called(ctx, id)

	var p *model.Player
	if args.Get(0) != nil {
		p = args.Get(0).(*model.Player)
	}
	return p, args.Error(1)
}

func (db *DB) AddPlayers(ctx context.Context, players []model.Player) (int, error) {
	args := db.Called(ctx, players)
	return args.Int(0), args.Error(1)
}

func (db *DB) ClearPlayers(ctx context.Context, leagueID string) error {
	args := db.Called(ctx, leagueID)
	return args.Error(0)
}

func (db *DB) HasDraftActivity(ctx context.Context, leagueID string) (bool, error) {
	args := db.Called(ctx, leagueID)
	return args.Bool(0), args.Error(1)
}

func (db *DB) ListHistory(ctx context.Context, leagueID string, limit int) ([]model.DraftHistoryEntry, error) {
	args := db.Called(ctx, leagueID, limit)

	var r []model.DraftHistoryEntry
	if args.Get(0) != nil {
		r = args.Get(0).([]model.DraftHistoryEntry)
	}
	return r, args.Error(1)
}

func (db *DB) ApplyMutation(ctx context.Context, m *model.DraftMutation) error {
	args := db.Called(ctx, m)
	return args.Error(0)
}
