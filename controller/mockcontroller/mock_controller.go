package mockcontroller

import (
	"context"

	"github.com/jchen-way/DraftOptimizer/analysis"
	"github.com/jchen-way/DraftOptimizer/controller"
	"github.com/jchen-way/DraftOptimizer/draft"
	"github.com/jchen-way/DraftOptimizer/model"
	"github.com/stretchr/testify/mock"
)

type C struct {
	mock.Mock
}

func (c *C) ListLeagues(ctx context.Context) ([]model.League, error) {
	args := c.Called(ctx)

	var r []model.League
	if args.Get(0) != nil {
		r = args.Get(0).([]model.League)
	}
	return r, args.Error(1)
}

func (c *C) GetLeague(ctx context.Context, id string) (*model.League, error) {
	args := c.Called(ctx, id)

	var r *model.League
	if args.Get(0) != nil {
		r = args.Get(0).(*model.League)
	}
	return r, args.Error(1)
}

func (c *C) AddLeague(ctx context.Context, settings controller.LeagueSettings) (*model.League, error) {
	args := c.Called(ctx, settings)

	var r *model.League
	if args.Get(0) != nil {
		r = args.Get(0).(*model.League)
	}
	return r, args.Error(1)
}

func (c *C) UpdateLeague(ctx context.Context, id string, settings controller.LeagueSettings) (*model.League, error) {
	args := c.Called(ctx, id, settings)

	var r *model.League
	if args.Get(0) != nil {
		r = args.Get(0).(*model.League)
	}
	return r, args.Error(1)
}

func (c *C) DeleteLeague(ctx context.Context, id string) error {
	args := c.Called(ctx, id)
	return args.Error(0)
}

func (c *C) ClearPlayerPool(ctx context.Context, leagueID string) error {
	args := c.Called(ctx, leagueID)
	return args.Error(0)
}

func (c *C) ListTeams(ctx context.Context, leagueID string) ([]model.Team, error) {
	args := c.Called(ctx, leagueID)

	var r []model.Team
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Team)
	}
	return r, args.Error(1)
}

func (c *C) AddTeam(ctx context.Context, in controller.TeamInput) (*model.Team, error) {
	args := c.Called(ctx, in)

	var r *model.Team
	if args.Get(0) != nil {
		r = args.Get(0).(*model.Team)
	}
	return r, args.Error(1)
}

func (c *C) UpdateTeam(ctx context.Context, id string, in controller.TeamInput) (*model.Team, error) {
	args := c.Called(ctx, id, in)

	var r *model.Team
	if args.Get(0) != nil {
		r = args.Get(0).(*model.Team)
	}
	return r, args.Error(1)
}

func (c *C) DeleteTeam(ctx context.Context, id string) error {
	args := c.Called(ctx, id)
	return args.Error(0)
}

func (c *C) GetRoster(ctx context.Context, teamID string) (*controller.RosterView, error) {
	args := c.Called(ctx, teamID)

	var r *controller.RosterView
	if args.Get(0) != nil {
		r = args.Get(0).(*controller.RosterView)
	}
	return r, args.Error(1)
}

func (c *C) ListPlayers(ctx context.Context, q controller.PlayerQuery) ([]controller.PlayerValue, error) {
	args := c.Called(ctx, q)

	var r []controller.PlayerValue
	if args.Get(0) != nil {
		r = args.Get(0).([]controller.PlayerValue)
	}
	return r, args.Error(1)
}

func (c *C) GetPlayer(ctx context.Context, id string) (*model.Player, error) {
	args := c.Called(ctx, id)

	var r *model.Player
	if args.Get(0) != nil {
		r = args.Get(0).(*model.Player)
	}
	return r, args.Error(1)
}

func (c *C) AddCustomPlayer(ctx context.Context, in controller.CustomPlayer) (*model.Player, error) {
	args := c.Called(ctx, in)

	var r *model.Player
	if args.Get(0) != nil {
		r = args.Get(0).(*model.Player)
	}
	return r, args.Error(1)
}

func (c *C) ImportPlayers(ctx context.Context, leagueID string, rows []controller.ImportRow) (*controller.ImportResult, error) {
	args := c.Called(ctx, leagueID, rows)

	var r *controller.ImportResult
	if args.Get(0) != nil {
		r = args.Get(0).(*controller.ImportResult)
	}
	return r, args.Error(1)
}

func (c *C) Bid(ctx context.Context, playerID string, teamID string, amount *int) (*controller.DraftResult, error) {
	args := c.Called(ctx, playerID, teamID, amount)

	var r *controller.DraftResult
	if args.Get(0) != nil {
		r = args.Get(0).(*controller.DraftResult)
	}
	return r, args.Error(1)
}

func (c *C) Keeper(ctx context.Context, playerID string, teamID string, price *int) (*controller.DraftResult, error) {
	args := c.Called(ctx, playerID, teamID, price)

	var r *controller.DraftResult
	if args.Get(0) != nil {
		r = args.Get(0).(*controller.DraftResult)
	}
	return r, args.Error(1)
}

func (c *C) UndoLast(ctx context.Context, leagueID string) (*model.DraftHistoryEntry, error) {
	args := c.Called(ctx, leagueID)

	var r *model.DraftHistoryEntry
	if args.Get(0) != nil {
		r = args.Get(0).(*model.DraftHistoryEntry)
	}
	return r, args.Error(1)
}

func (c *C) SwapPosition(ctx context.Context, playerID string, newPosition string) (*controller.DraftResult, error) {
	args := c.Called(ctx, playerID, newPosition)

	var r *controller.DraftResult
	if args.Get(0) != nil {
		r = args.Get(0).(*controller.DraftResult)
	}
	return r, args.Error(1)
}

func (c *C) FinalizeKeepers(ctx context.Context, leagueID string) (*draft.KeeperSummary, error) {
	args := c.Called(ctx, leagueID)

	var r *draft.KeeperSummary
	if args.Get(0) != nil {
		r = args.Get(0).(*draft.KeeperSummary)
	}
	return r, args.Error(1)
}

func (c *C) ReopenKeepers(ctx context.Context, leagueID string) error {
	args := c.Called(ctx, leagueID)
	return args.Error(0)
}

func (c *C) StartTaxiRound(ctx context.Context, leagueID string) (*controller.TaxiStatus, error) {
	args := c.Called(ctx, leagueID)

	var r *controller.TaxiStatus
	if args.Get(0) != nil {
		r = args.Get(0).(*controller.TaxiStatus)
	}
	return r, args.Error(1)
}

func (c *C) DraftHistory(ctx context.Context, leagueID string) ([]controller.HistoryItem, error) {
	args := c.Called(ctx, leagueID)

	var r []controller.HistoryItem
	if args.Get(0) != nil {
		r = args.Get(0).([]controller.HistoryItem)
	}
	return r, args.Error(1)
}

func (c *C) ExportDraftLog(ctx context.Context, leagueID string) (*controller.DraftExport, error) {
	args := c.Called(ctx, leagueID)

	var r *controller.DraftExport
	if args.Get(0) != nil {
		r = args.Get(0).(*controller.DraftExport)
	}
	return r, args.Error(1)
}

func (c *C) PostDraftAnalysis(ctx context.Context, leagueID string) (*analysis.Report, error) {
	args := c.Called(ctx, leagueID)

	var r *analysis.Report
	if args.Get(0) != nil {
		r = args.Get(0).(*analysis.Report)
	}
	return r, args.Error(1)
}
