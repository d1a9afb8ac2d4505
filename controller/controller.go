package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/itbasis/go-clock"
	"github.com/jchen-way/DraftOptimizer/analysis"
	"github.com/jchen-way/DraftOptimizer/config"
	"github.com/jchen-way/DraftOptimizer/db"
	"github.com/jchen-way/DraftOptimizer/draft"
	"github.com/jchen-way/DraftOptimizer/lock"
	"github.com/jchen-way/DraftOptimizer/model"
	"github.com/jchen-way/DraftOptimizer/valuation"
)

// C encapsulates business logic without worrying about any web layers
type C interface {
	ListLeagues(ctx context.Context) ([]model.League, error)
	GetLeague(ctx context.Context, id string) (*model.League, error)
	AddLeague(ctx context.Context, settings LeagueSettings) (*model.League, error)
	// Only the settings that are set are changed.
	UpdateLeague(ctx context.Context, id string, settings LeagueSettings) (*model.League, error)
	DeleteLeague(ctx context.Context, id string) error
	// Removes every player of the league. Fails once the draft has started.
	ClearPlayerPool(ctx context.Context, leagueID string) error

	ListTeams(ctx context.Context, leagueID string) ([]model.Team, error)
	AddTeam(ctx context.Context, in TeamInput) (*model.Team, error)
	UpdateTeam(ctx context.Context, id string, in TeamInput) (*model.Team, error)
	DeleteTeam(ctx context.Context, id string) error
	GetRoster(ctx context.Context, teamID string) (*RosterView, error)

	// List the players of a league with their live valuation.
	ListPlayers(ctx context.Context, q PlayerQuery) ([]PlayerValue, error)
	GetPlayer(ctx context.Context, id string) (*model.Player, error)
	AddCustomPlayer(ctx context.Context, in CustomPlayer) (*model.Player, error)
	ImportPlayers(ctx context.Context, leagueID string, rows []ImportRow) (*ImportResult, error)

	Bid(ctx context.Context, playerID, teamID string, amount *int) (*DraftResult, error)
	Keeper(ctx context.Context, playerID, teamID string, price *int) (*DraftResult, error)
	UndoLast(ctx context.Context, leagueID string) (*model.DraftHistoryEntry, error)
	SwapPosition(ctx context.Context, playerID, newPosition string) (*DraftResult, error)
	FinalizeKeepers(ctx context.Context, leagueID string) (*draft.KeeperSummary, error)
	ReopenKeepers(ctx context.Context, leagueID string) error
	StartTaxiRound(ctx context.Context, leagueID string) (*TaxiStatus, error)

	// The most recent history entries of a league, newest first.
	DraftHistory(ctx context.Context, leagueID string) ([]HistoryItem, error)
	ExportDraftLog(ctx context.Context, leagueID string) (*DraftExport, error)
	PostDraftAnalysis(ctx context.Context, leagueID string) (*analysis.Report, error)
}

type controller struct {
	clock    clock.Clock
	db       db.DB
	locker   lock.Locker
	machine  *draft.Machine
	valuator *valuation.Valuator
	defaults config.LeagueDefaults
}

func New(clock clock.Clock, db db.DB, locker lock.Locker, tuning valuation.Tuning, defaults config.LeagueDefaults) (C, error) {
	if db == nil {
		return nil, errors.New("db must be provided")
	}
	if locker == nil {
		locker = lock.NewMemoryLocker()
	}
	c := &controller{
		clock:    clock,
		db:       db,
		locker:   locker,
		machine:  draft.New(clock),
		valuator: valuation.New(tuning),
		defaults: defaults,
	}
	return c, nil
}

// withLeague holds the league lock while fn runs against a fresh snapshot. The
// snapshot includes the requested players and the player of the latest pick.
func (c *controller) withLeague(ctx context.Context, leagueID string, playerIDs []string, fn func(s *draft.Snapshot) error) error {
	unlock, err := c.locker.Lock(ctx, leagueID)
	if err != nil {
		return err
	}
	defer unlock()

	s, err := c.loadSnapshot(ctx, leagueID, playerIDs)
	if err != nil {
		return err
	}
	return fn(s)
}

func (c *controller) loadSnapshot(ctx context.Context, leagueID string, playerIDs []string) (*draft.Snapshot, error) {
	league, err := c.db.GetLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	teams, err := c.db.ListTeams(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("error loading teams: %w", err)
	}
	history, err := c.db.ListHistory(ctx, leagueID, 0)
	if err != nil {
		return nil, fmt.Errorf("error loading draft history: %w", err)
	}

	s := &draft.Snapshot{
		League:  league,
		Teams:   teams,
		History: history,
		Players: make(map[string]*model.Player, len(playerIDs)+1),
	}
	if last := model.LatestEntry(history); last != nil {
		playerIDs = append(playerIDs, last.PlayerID)
	}
	for _, id := range playerIDs {
		if _, found := s.Players[id]; found || id == "" {
			continue
		}
		p, err := c.db.GetPlayer(ctx, id)
		if errors.Is(err, db.ErrPlayerNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("error loading player: %w", err)
		}
		s.Players[id] = p
	}
	return s, nil
}

func (c *controller) apply(ctx context.Context, m *model.DraftMutation) error {
	if m.Empty() {
		return nil
	}
	if err := c.db.ApplyMutation(ctx, m); err != nil {
		return fmt.Errorf("error saving draft action: %w", err)
	}
	return nil
}
