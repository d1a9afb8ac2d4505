package controller

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/jchen-way/DraftOptimizer/db"
	"github.com/jchen-way/DraftOptimizer/db/mockdb"
	"github.com/jchen-way/DraftOptimizer/lock"
	"github.com/jchen-way/DraftOptimizer/lock/mocklock"
	"github.com/jchen-way/DraftOptimizer/model"
	"github.com/stretchr/testify/mock"
)

func TestAddLeague(t *testing.T) {
	ctx := context.Background()
	d := &mockdb.DB{}
	d.On("AddLeague", mock.Anything, mock.AnythingOfType("*model.League")).Return(nil)
	ctrl := newTestController(t, d, lock.NewMemoryLocker())

	l, err := ctrl.AddLeague(ctx, LeagueSettings{
		Name:              strPtr(" Home League "),
		TotalBudget:       "300.9",
		BenchSlots:        -2,
		RosterSlots:       map[string]any{"c": 1, "of": "3", "bn": 4, "dh": 1, "p": -1},
		ScoringCategories: []string{"home_runs", "hr", "obp"},
	})
	assertNoError(t, err)

	if l.Name != "Home League" || l.TotalBudget != 300 || l.BenchSlots != testDefaults.BenchSlots {
		t.Errorf("unexpected league: %+v", l)
	}
	slots := model.RosterSlots{
		model.POS_C: 1, model.POS_1B: 1, model.POS_2B: 1, model.POS_3B: 1,
		model.POS_SS: 1, model.POS_OF: 3, model.POS_UTIL: 1, model.POS_P: 9,
	}
	if !reflect.DeepEqual(slots, l.RosterSlots) {
		t.Errorf("unexpected roster slots - wanted: %v, got: %v", slots, l.RosterSlots)
	}
	if !reflect.DeepEqual([]model.Category{model.CAT_HR, model.CAT_OBP}, l.ScoringCategories) {
		t.Errorf("unexpected categories: %v", l.ScoringCategories)
	}
	if l.DraftPhase != model.PhaseMain {
		t.Errorf("expected a new league to start in the main phase, got: %s", l.DraftPhase)
	}

	defaults, err := ctrl.AddLeague(ctx, LeagueSettings{Name: strPtr("Defaults")})
	assertNoError(t, err)
	if defaults.TotalBudget != testDefaults.TotalBudget || !reflect.DeepEqual(model.DefaultRosterSlots(), defaults.RosterSlots) {
		t.Errorf("expected the default settings, got: %+v", defaults)
	}

	tests := map[string]struct {
		settings LeagueSettings
		message  string
	}{
		"no name":       {settings: LeagueSettings{}, message: "name is required"},
		"blank name":    {settings: LeagueSettings{Name: strPtr("  ")}, message: "name is required"},
		"zero budget":   {settings: LeagueSettings{Name: strPtr("A"), TotalBudget: 0}, message: "totalBudget must be a positive number"},
		"budget string": {settings: LeagueSettings{Name: strPtr("A"), TotalBudget: "lots"}, message: "totalBudget must be a positive number"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ctrl.AddLeague(ctx, tc.settings)
			assertKind(t, model.ErrValidation, tc.message, err)
		})
	}
	d.AssertNumberOfCalls(t, "AddLeague", 2)
}

func TestUpdateLeague(t *testing.T) {
	ctx := context.Background()
	league := testLeague("league-1")
	league.TotalBudget = 200

	d := &mockdb.DB{}
	expectSnapshot(d, league, []model.Team{})
	var saved *model.League
	d.On("UpdateLeague", mock.Anything, mock.AnythingOfType("*model.League")).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*model.League)
	}).Return(nil)
	d.On("GetLeague", mock.Anything, "missing").Return(nil, db.ErrLeagueNotFound)
	ctrl := newTestController(t, d, lock.NewMemoryLocker())

	l, err := ctrl.UpdateLeague(ctx, league.ID, LeagueSettings{BenchSlots: "2.7"})
	assertNoError(t, err)
	if saved == nil || saved.BenchSlots != 2 || saved.TotalBudget != 200 || saved.Name != league.Name {
		t.Errorf("expected only the bench to change, got: %+v", saved)
	}
	if l.BenchSlots != 2 {
		t.Errorf("unexpected result: %+v", l)
	}
	if league.BenchSlots != 6 {
		t.Errorf("the loaded league should not be modified")
	}

	_, err = ctrl.UpdateLeague(ctx, league.ID, LeagueSettings{Name: strPtr(" ")})
	assertKind(t, model.ErrValidation, "name cannot be empty", err)
	_, err = ctrl.UpdateLeague(ctx, "missing", LeagueSettings{Name: strPtr("A")})
	assertKind(t, model.ErrNotFound, "League not found", err)
	d.AssertNumberOfCalls(t, "UpdateLeague", 1)
}

func TestClearPlayerPool(t *testing.T) {
	ctx := context.Background()
	league := testLeague("league-1")

	tests := map[string]struct {
		active  bool
		cleared bool
	}{
		"before the draft": {active: false, cleared: true},
		"after a pick":     {active: true, cleared: false},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			d := &mockdb.DB{}
			d.On("GetLeague", mock.Anything, league.ID).Return(league, nil)
			d.On("HasDraftActivity", mock.Anything, league.ID).Return(tc.active, nil)
			d.On("ClearPlayers", mock.Anything, league.ID).Return(nil)
			ctrl := newTestController(t, d, lock.NewMemoryLocker())

			err := ctrl.ClearPlayerPool(ctx, league.ID)
			if tc.cleared {
				assertNoError(t, err)
				d.AssertCalled(t, "ClearPlayers", mock.Anything, league.ID)
			} else {
				assertKind(t, model.ErrConflict, "Cannot clear player pool after keeper or draft picks exist.", err)
				d.AssertNotCalled(t, "ClearPlayers", mock.Anything, league.ID)
			}
		})
	}
}

func TestLeagueLockErrors(t *testing.T) {
	ctx := context.Background()
	lockErr := errors.New("timed out waiting for league lock")

	d := &mockdb.DB{}
	l := &mocklock.Locker{}
	l.On("Lock", mock.Anything, "league-1").Return(nil, lockErr)
	ctrl := newTestController(t, d, l)

	if err := ctrl.ClearPlayerPool(ctx, "league-1"); !errors.Is(err, lockErr) {
		t.Errorf("expected the lock error, got: %v", err)
	}
	if err := ctrl.DeleteLeague(ctx, "league-1"); !errors.Is(err, lockErr) {
		t.Errorf("expected the lock error, got: %v", err)
	}
	if _, err := ctrl.UndoLast(ctx, "league-1"); !errors.Is(err, lockErr) {
		t.Errorf("expected the lock error, got: %v", err)
	}
	if _, err := ctrl.StartTaxiRound(ctx, "league-1"); !errors.Is(err, lockErr) {
		t.Errorf("expected the lock error, got: %v", err)
	}

	// nothing is read or written without the lock
	if len(d.Calls) != 0 {
		t.Errorf("expected no db calls, got: %d", len(d.Calls))
	}
	l.AssertNumberOfCalls(t, "Lock", 4)
}

func TestLeagueUnlocksAfterFailure(t *testing.T) {
	ctx := context.Background()
	unlocked := 0

	d := &mockdb.DB{}
	d.On("GetLeague", mock.Anything, "missing").Return(nil, db.ErrLeagueNotFound)
	l := &mocklock.Locker{}
	l.On("Lock", mock.Anything, "missing").Return(func() { unlocked++ }, nil)
	ctrl := newTestController(t, d, l)

	_, err := ctrl.FinalizeKeepers(ctx, "missing")
	assertKind(t, model.ErrNotFound, "League not found", err)
	err = ctrl.ReopenKeepers(ctx, "missing")
	assertKind(t, model.ErrNotFound, "League not found", err)

	if unlocked != 2 {
		t.Errorf("expected the lock to be released twice, got: %d", unlocked)
	}
}

func TestParseRosterSlots(t *testing.T) {
	tests := map[string]struct {
		input    map[string]any
		expected model.RosterSlots
	}{
		"strings and floats": {
			input: map[string]any{"C": "2", "1B": 1.9, "2B": 0, "3B": 0, "SS": 0, "OF": 0, "UTIL": 0, "P": 0},
			expected: model.RosterSlots{
				model.POS_C: 2, model.POS_1B: 1, model.POS_2B: 0, model.POS_3B: 0,
				model.POS_SS: 0, model.POS_OF: 0, model.POS_UTIL: 0, model.POS_P: 0,
			},
		},
		"all zero": {
			input:    map[string]any{"C": 0, "1B": 0, "2B": 0, "3B": 0, "SS": 0, "OF": 0, "UTIL": 0, "P": 0},
			expected: model.DefaultRosterSlots(),
		},
		"unknown and invalid": {
			input:    map[string]any{"BN": 3, "IL": 2, "OF": "many", " util ": 2},
			expected: withSlot(model.DefaultRosterSlots(), model.POS_UTIL, 2),
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			r := parseRosterSlots(tc.input)
			if !reflect.DeepEqual(tc.expected, r) {
				t.Errorf("expected %v, got: %v", tc.expected, r)
			}
		})
	}
}

func withSlot(slots model.RosterSlots, pos model.Position, count int) model.RosterSlots {
	slots[pos] = count
	return slots
}
