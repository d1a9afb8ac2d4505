package controller

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/jchen-way/DraftOptimizer/db"
	"github.com/jchen-way/DraftOptimizer/db/mockdb"
	"github.com/jchen-way/DraftOptimizer/lock"
	"github.com/jchen-way/DraftOptimizer/model"
	"github.com/jchen-way/DraftOptimizer/testutils"
	"github.com/stretchr/testify/mock"
)

func testLeague(id string) *model.League {
	l := &model.League{ID: id, Name: "Mock League", BenchSlots: -1}
	l.ApplyDefaults()
	return l
}

// expectSnapshot mocks the reads of a locked league operation.
func expectSnapshot(d *mockdb.DB, league *model.League, teams []model.Team) {
	d.On("GetLeague", mock.Anything, league.ID).Return(league, nil)
	d.On("ListTeams", mock.Anything, league.ID).Return(teams, nil)
	d.On("ListHistory", mock.Anything, league.ID, 0).Return([]model.DraftHistoryEntry{}, nil)
}

func TestImportPlayers(t *testing.T) {
	ctx := context.Background()
	league := testLeague("league-1")

	d := &mockdb.DB{}
	d.On("GetLeague", mock.Anything, league.ID).Return(league, nil)
	d.On("ListPlayers", mock.Anything, league.ID).Return([]model.Player{{Name: "Aaron Judge", MLBTeam: "NYY"}}, nil)
	var saved []model.Player
	// one of the two rows loses a race with another import
	d.On("AddPlayers", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).([]model.Player)
	}).Return(1, nil)

	ctrl := newTestController(t, d, lock.NewMemoryLocker())
	rows := []ImportRow{
		{Name: " aaron judge ", MLBTeam: "nyy"},
		{Name: "  ", MLBTeam: "BOS"},
		{
			Name:              "Mookie Betts",
			MLBTeam:           "lad",
			EligiblePositions: PositionList{"SS", "2b", "ss"},
			ProjectedValue:    "$31.6",
			ADP:               "12.5",
			Projections:       map[string]any{"hr": 24.0, "avg": "0.281", "note": " ", "": 1},
		},
		{Name: "Mookie Betts", MLBTeam: "LAD", EligiblePositions: PositionList{"OF"}},
		{Name: "Shohei Ohtani", MLBTeam: "LAD"},
	}

	res, err := ctrl.ImportPlayers(ctx, league.ID, rows)
	assertNoError(t, err)
	expected := ImportResult{Message: "Imported 1 player.", ImportedCount: 1, SkippedCount: 4, TotalReceived: 5}
	if *res != expected {
		t.Errorf("unexpected result - wanted: %+v, got: %+v", expected, *res)
	}

	if len(saved) != 2 {
		t.Fatalf("expected 2 players sent to the db, got: %d", len(saved))
	}
	betts := saved[0]
	if betts.LeagueID != league.ID || betts.MLBTeam != "LAD" {
		t.Errorf("unexpected player: %+v", betts)
	}
	if !reflect.DeepEqual(betts.EligiblePositions, []model.Position{model.POS_SS, model.POS_2B}) {
		t.Errorf("unexpected positions: %v", betts.EligiblePositions)
	}
	if betts.ProjectedValue == nil || *betts.ProjectedValue != 32 || betts.ADP == nil || *betts.ADP != 12.5 {
		t.Errorf("unexpected value or adp: %v, %v", betts.ProjectedValue, betts.ADP)
	}
	if !reflect.DeepEqual(betts.Projections, model.Projections{"HR": 24.0, "AVG": 0.281}) {
		t.Errorf("unexpected projections: %v", betts.Projections)
	}
	if !reflect.DeepEqual(saved[1].EligiblePositions, []model.Position{model.POS_UTIL}) || saved[1].ProjectedValue != nil {
		t.Errorf("expected a UTIL player without value, got: %+v", saved[1])
	}
	d.AssertExpectations(t)
}

func TestImportPlayers_errors(t *testing.T) {
	tooMany := make([]ImportRow, MaxImportRows+1)
	for i := range tooMany {
		tooMany[i] = ImportRow{Name: fmt.Sprintf("Player %d", i)}
	}
	saveErr := errors.New("connection reset")

	tests := map[string]struct {
		leagueID string
		rows     []ImportRow
		setup    func(d *mockdb.DB)
		kind     error
		message  string
		cause    error
	}{
		"missing league id": {
			rows:    []ImportRow{{Name: "A"}},
			kind:    model.ErrValidation,
			message: "leagueId is required",
		},
		"no rows": {
			leagueID: "league-1",
			kind:     model.ErrValidation,
			message:  "players array cannot be empty",
		},
		"too many rows": {
			leagueID: "league-1",
			rows:     tooMany,
			kind:     model.ErrValidation,
			message:  "players array is too large (max 3000 rows per import)",
		},
		"unknown league": {
			leagueID: "missing",
			rows:     []ImportRow{{Name: "A"}},
			setup: func(d *mockdb.DB) {
				d.On("GetLeague", mock.Anything, "missing").Return(nil, db.ErrLeagueNotFound)
			},
			kind:    model.ErrNotFound,
			message: "League not found",
		},
		"only duplicates": {
			leagueID: "league-1",
			rows:     []ImportRow{{Name: "Aaron Judge", MLBTeam: "nyy"}, {Name: ""}},
			setup: func(d *mockdb.DB) {
				d.On("GetLeague", mock.Anything, "league-1").Return(testLeague("league-1"), nil)
				d.On("ListPlayers", mock.Anything, "league-1").Return([]model.Player{{Name: "Aaron Judge", MLBTeam: "NYY"}}, nil)
			},
			kind:    model.ErrValidation,
			message: "No valid players to import after validation and duplicate filtering.",
		},
		"save fails": {
			leagueID: "league-1",
			rows:     []ImportRow{{Name: "A"}},
			setup: func(d *mockdb.DB) {
				d.On("GetLeague", mock.Anything, "league-1").Return(testLeague("league-1"), nil)
				d.On("ListPlayers", mock.Anything, "league-1").Return([]model.Player{}, nil)
				d.On("AddPlayers", mock.Anything, mock.Anything).Return(0, saveErr)
			},
			cause: saveErr,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			d := &mockdb.DB{}
			if tc.setup != nil {
				tc.setup(d)
			}
			ctrl := newTestController(t, d, lock.NewMemoryLocker())

			_, err := ctrl.ImportPlayers(context.Background(), tc.leagueID, tc.rows)
			if tc.cause != nil {
				if !errors.Is(err, tc.cause) {
					t.Errorf("expected error wrapping %v, got: %v", tc.cause, err)
				}
			} else {
				assertKind(t, tc.kind, tc.message, err)
				d.AssertNotCalled(t, "AddPlayers", mock.Anything, mock.Anything)
			}
			d.AssertExpectations(t)
		})
	}
}

func TestListPlayers(t *testing.T) {
	ctx := context.Background()
	league := testLeague("league-1")

	players := make([]model.Player, len(testutils.FixturePlayers))
	for i, p := range testutils.FixturePlayers {
		players[i] = *p.Clone()
		players[i].ID = fmt.Sprintf("p%d", i)
		players[i].LeagueID = league.ID
	}
	// Judge and Clase are already taken
	players[4].MarkDrafted("t1", 40, model.PhaseMain, model.POS_OF)
	players[10].MarkDrafted("t1", 12, model.PhaseMain, model.POS_P)
	teams := []model.Team{{ID: "t1", LeagueID: league.ID, Budget: model.Budget{Total: 260, Spent: 52, Remaining: 208}}}

	d := &mockdb.DB{}
	d.On("GetLeague", mock.Anything, league.ID).Return(league, nil)
	d.On("ListPlayers", mock.Anything, league.ID).Return(players, nil)
	d.On("ListTeams", mock.Anything, league.ID).Return(teams, nil)
	ctrl := newTestController(t, d, lock.NewMemoryLocker())

	all, err := ctrl.ListPlayers(ctx, PlayerQuery{LeagueID: league.ID})
	assertNoError(t, err)
	if len(all) != len(players) {
		t.Fatalf("expected %d players, got: %d", len(players), len(all))
	}
	for i := 1; i < len(all); i++ {
		if comparePlayerValues(all[i-1], all[i]) > 0 {
			t.Errorf("players out of order at %d: %s before %s", i, all[i-1].Name, all[i].Name)
		}
	}
	if all[len(all)-1].IsDrafted != true || all[0].IsDrafted {
		t.Errorf("expected drafted players last")
	}
	for _, p := range all {
		if !p.IsDrafted && (p.Valuation == nil || p.ProjectedValue == nil) {
			t.Errorf("expected a valuation for %s", p.Name)
		}
	}

	tests := map[string]struct {
		query    PlayerQuery
		expected []string
	}{
		"name": {
			query:    PlayerQuery{LeagueID: league.ID, Query: " JU "},
			expected: []string{"Aaron Judge", "Juan Soto"},
		},
		"position alias": {
			query:    PlayerQuery{LeagueID: league.ID, Position: "c", Drafted: boolPtr(false)},
			expected: []string{"Adley Rutschman", "Cal Raleigh"},
		},
		"drafted": {
			query:    PlayerQuery{LeagueID: league.ID, Drafted: boolPtr(true)},
			expected: []string{"Aaron Judge", "Emmanuel Clase"},
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			res, err := ctrl.ListPlayers(ctx, tc.query)
			assertNoError(t, err)
			names := make(map[string]bool, len(res))
			for _, p := range res {
				names[p.Name] = true
			}
			if len(res) != len(tc.expected) {
				t.Errorf("expected %v, got %d players: %v", tc.expected, len(res), names)
			}
			for _, n := range tc.expected {
				if !names[n] {
					t.Errorf("expected %s in the results", n)
				}
			}
		})
	}

	limited, err := ctrl.ListPlayers(ctx, PlayerQuery{LeagueID: league.ID, Limit: 3})
	assertNoError(t, err)
	if len(limited) != 3 || limited[0].ID != all[0].ID {
		t.Errorf("expected the 3 most valuable players, got: %d", len(limited))
	}

	_, err = ctrl.ListPlayers(ctx, PlayerQuery{})
	assertKind(t, model.ErrValidation, "leagueId query param is required", err)
}

func TestClampLimit(t *testing.T) {
	tests := map[string]struct {
		limit    int
		expected int
	}{
		"default":  {limit: 0, expected: DefaultPlayerLimit},
		"negative": {limit: -5, expected: 1},
		"in range": {limit: 25, expected: 25},
		"too big":  {limit: 50000, expected: MaxPlayerLimit},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if r := clampLimit(tc.limit); r != tc.expected {
				t.Errorf("expected %d, got: %d", tc.expected, r)
			}
		})
	}
}

func TestComparePlayerValues(t *testing.T) {
	value := func(name string, v *int, drafted bool, adp float64) PlayerValue {
		return PlayerValue{Player: model.Player{Name: name, ProjectedValue: v, IsDrafted: drafted, ADP: &adp}}
	}
	tests := map[string]struct {
		a, b     PlayerValue
		expected int
	}{
		"undrafted first":       {a: value("A", intPtr(1), false, 300), b: value("B", intPtr(40), true, 1), expected: -1},
		"higher value first":    {a: value("B", intPtr(40), false, 200), b: value("A", intPtr(20), false, 5), expected: -1},
		"missing value is zero": {a: value("A", nil, false, 1), b: value("B", intPtr(1), false, 200), expected: 1},
		"name breaks ties":      {a: value("Zack", intPtr(5), false, 1), b: value("Adam", intPtr(5), false, 200), expected: 1},
		"adp is ignored":        {a: value("Same", intPtr(5), false, 1), b: value("Same", intPtr(5), false, 200), expected: 0},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if r := comparePlayerValues(tc.a, tc.b); r != tc.expected {
				t.Errorf("expected %d, got: %d", tc.expected, r)
			}
		})
	}
}

func TestAddCustomPlayer(t *testing.T) {
	ctx := context.Background()
	league := testLeague("league-1")

	d := &mockdb.DB{}
	d.On("GetLeague", mock.Anything, league.ID).Return(league, nil)
	d.On("GetLeague", mock.Anything, "missing").Return(nil, db.ErrLeagueNotFound)
	d.On("AddPlayers", mock.Anything, mock.MatchedBy(func(p []model.Player) bool {
		return p[0].Name == "Cal Raleigh"
	})).Return(0, nil)
	d.On("AddPlayers", mock.Anything, mock.Anything).Return(1, nil)
	ctrl := newTestController(t, d, lock.NewMemoryLocker())

	p, err := ctrl.AddCustomPlayer(ctx, CustomPlayer{
		LeagueID:          league.ID,
		Name:              " Prospect ",
		MLBTeam:           "sd",
		EligiblePositions: []string{"sp", "RP", ""},
		ProjectedValue:    "12.4",
	})
	assertNoError(t, err)
	if p.Name != "Prospect" || p.MLBTeam != "SD" || p.ProjectedValue == nil || *p.ProjectedValue != 12 {
		t.Errorf("unexpected player: %+v", p)
	}
	if !reflect.DeepEqual(p.EligiblePositions, []model.Position{model.POS_P}) {
		t.Errorf("unexpected positions: %v", p.EligiblePositions)
	}

	tests := map[string]struct {
		in      CustomPlayer
		kind    error
		message string
	}{
		"no name": {
			in:      CustomPlayer{LeagueID: league.ID, Name: " "},
			kind:    model.ErrValidation,
			message: "leagueId and name are required",
		},
		"no positions": {
			in:      CustomPlayer{LeagueID: league.ID, Name: "A", EligiblePositions: []string{" "}},
			kind:    model.ErrValidation,
			message: "At least one eligible position is required",
		},
		"bad value": {
			in:      CustomPlayer{LeagueID: league.ID, Name: "A", EligiblePositions: []string{"C"}, ProjectedValue: "lots"},
			kind:    model.ErrValidation,
			message: "projectedValue must be a number",
		},
		"unknown league": {
			in:      CustomPlayer{LeagueID: "missing", Name: "A", EligiblePositions: []string{"C"}},
			kind:    model.ErrNotFound,
			message: "League not found",
		},
		"duplicate": {
			in:      CustomPlayer{LeagueID: league.ID, Name: "Cal Raleigh", MLBTeam: "sea", EligiblePositions: []string{"C"}},
			kind:    model.ErrConflict,
			message: "A player named Cal Raleigh (SEA) already exists in this league",
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ctrl.AddCustomPlayer(ctx, tc.in)
			assertKind(t, tc.kind, tc.message, err)
		})
	}
}

func TestPositionList_UnmarshalJSON(t *testing.T) {
	tests := map[string]struct {
		input    string
		expected PositionList
	}{
		"string":       {input: `"SS/2B, of"`, expected: PositionList{"SS", "2B", "of"}},
		"array":        {input: `["C", null, "UTIL"]`, expected: PositionList{"C", "UTIL"}},
		"other values": {input: `12`, expected: nil},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var l PositionList
			if err := l.UnmarshalJSON([]byte(tc.input)); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(tc.expected, l) {
				t.Errorf("expected %v, got: %v", tc.expected, l)
			}
		})
	}
}
