package valuation

import (
	"testing"

	"github.com/jchen-way/DraftOptimizer/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlayer(id string, positions []model.Position, adp float64, projections model.Projections) model.Player {
	return model.Player{
		ID:                id,
		Name:              id,
		EligiblePositions: positions,
		ADP:               &adp,
		Projections:       projections,
	}
}

func slotsOnly(slots model.RosterSlots) model.RosterSlots {
	result := model.RosterSlots{}
	for _, pos := range model.MainRosterPositions {
		result[pos] = 0
	}
	for pos, count := range slots {
		result[pos] = count
	}
	return result
}

func TestValue_aliasCategories(t *testing.T) {
	league := &model.League{
		TotalBudget:       260,
		ScoringCategories: []model.Category{"RUNS", "HOME_RUNS", "WINS", "STRIKEOUTS", "ERA", "WHIP"},
		RosterSlots:       slotsOnly(model.RosterSlots{model.POS_OF: 1, model.POS_P: 1}),
	}
	players := []model.Player{
		newPlayer("p1", []model.Position{model.POS_OF}, 20, model.Projections{"R": 100.0, "HOME_RUNS": 35.0, "RBI": 95.0, "SB": 18.0, "AVG": 0.298}),
		newPlayer("p2", []model.Position{model.POS_P}, 22, model.Projections{"W": 16.0, "STRIKEOUTS": 220.0, "ERA": 2.9, "WHIP": 1.04}),
		newPlayer("p3", []model.Position{model.POS_P}, 140, model.Projections{"WINS": 9.0, "K": 135.0, "ERA": 4.2, "WHIP": 1.31}),
	}

	results := New(DefaultTuning()).Value(Input{Players: players, League: league, TeamCount: 2})
	require.Len(t, results, 3)

	hitter, ace, weak := results["p1"], results["p2"], results["p3"]
	assert.Equal(t, ModelVersion, hitter.Valuation.ModelVersion)
	assert.Greater(t, ace.ProjectedValue, weak.ProjectedValue)
	assert.Contains(t, ace.Valuation.PositionFactors, model.POS_P)
}

func TestValue_pitcherBaselineRiskExceedsHitter(t *testing.T) {
	league := &model.League{TotalBudget: 260}
	players := []model.Player{
		newPlayer("h1", []model.Position{model.POS_OF}, 50, model.Projections{"HR": 20.0, "RBI": 70.0, "SB": 10.0, "AVG": 0.275}),
		newPlayer("h2", []model.Position{model.POS_OF}, 60, model.Projections{"HR": 15.0, "RBI": 65.0, "SB": 8.0, "AVG": 0.268}),
		newPlayer("p1", []model.Position{model.POS_P}, 50, model.Projections{"W": 12.0, "SV": 0.0, "K": 170.0, "ERA": 3.5, "WHIP": 1.15}),
		newPlayer("p2", []model.Position{model.POS_P}, 60, model.Projections{"W": 10.0, "SV": 0.0, "K": 150.0, "ERA": 3.8, "WHIP": 1.22}),
	}

	results := New(DefaultTuning()).Value(Input{Players: players, League: league, TeamCount: 2})
	assert.Greater(t, results["p1"].Valuation.InjuryRiskPct, results["h1"].Valuation.InjuryRiskPct)
}

func TestValue_teamDemandAndStringProjections(t *testing.T) {
	league := &model.League{
		TotalBudget:       260,
		ScoringCategories: []model.Category{"RUNS", "RBI", "AVG", "WINS", "ERA"},
		RosterSlots:       slotsOnly(model.RosterSlots{model.POS_1B: 1, model.POS_P: 1}),
	}
	teams := []model.Team{
		{Roster: []model.RosterSlot{{Position: model.POS_1B, DraftPhase: model.PhaseMain}}},
		{},
	}
	players := []model.Player{
		newPlayer("h1", []model.Position{model.POS_1B}, 40, model.Projections{"RUNS": "95", "RBI": "102", "BATTING_AVG": "0.301"}),
		newPlayer("h2", []model.Position{model.POS_1B}, 170, model.Projections{"R": "61", "RBI": "58", "AVG": "0.248"}),
		newPlayer("p1", []model.Position{model.POS_P}, 45, model.Projections{"WINS": "15", "ERA": "3.05"}),
		newPlayer("p2", []model.Position{model.POS_P}, 185, model.Projections{"W": "8", "ERA": "4.60"}),
	}

	results := New(DefaultTuning()).Value(Input{Players: players, League: league, TeamCount: 2, Teams: teams})
	assert.Greater(t, results["h1"].ProjectedValue, results["h2"].ProjectedValue)
	assert.Greater(t, results["p1"].ProjectedValue, results["p2"].ProjectedValue)
}

func TestValue_categoriesRankPitchersWithSimilarADP(t *testing.T) {
	league := &model.League{
		TotalBudget:       260,
		ScoringCategories: []model.Category{"RUNS", "RBI", "AVG", "WINS", "ERA"},
		RosterSlots:       slotsOnly(model.RosterSlots{model.POS_1B: 1, model.POS_P: 1}),
	}
	players := []model.Player{
		newPlayer("h1", []model.Position{model.POS_1B}, 40, model.Projections{"RUNS": "95", "RBI": "102", "BATTING_AVG": "0.301"}),
		newPlayer("h2", []model.Position{model.POS_1B}, 170, model.Projections{"R": "61", "RBI": "58", "AVG": "0.248"}),
		newPlayer("p1", []model.Position{model.POS_P}, 50, model.Projections{"WINS": "15", "ERA": "3.05"}),
		newPlayer("p2", []model.Position{model.POS_P}, 51, model.Projections{"W": "8", "ERA": "4.60"}),
	}

	results := New(DefaultTuning()).Value(Input{Players: players, League: league, TeamCount: 2})
	strong, weak := results["p1"], results["p2"]
	assert.Greater(t, strong.ProjectedValue, weak.ProjectedValue)
	assert.Greater(t, strong.Valuation.CategoryScore, 0.0)
	assert.Less(t, weak.Valuation.CategoryScore, 0.0)
}

func TestValue_boundedByTopCap(t *testing.T) {
	tuning := DefaultTuning()
	budgets := []int{0, 50, 260, 1000}
	players := []model.Player{
		newPlayer("a", []model.Position{model.POS_SS}, 1, model.Projections{"HR": 40.0, "RBI": 120.0, "SB": 30.0, "AVG": 0.320}),
		newPlayer("b", []model.Position{model.POS_SS}, 80, model.Projections{"HR": 20.0, "RBI": 80.0, "SB": 10.0, "AVG": 0.270}),
		newPlayer("c", []model.Position{model.POS_OF, model.POS_UTIL}, 250, model.Projections{"HR": 5.0, "RBI": 30.0, "SB": 2.0, "AVG": 0.210}),
		{ID: "d", EligiblePositions: []model.Position{model.POS_C}},
	}

	for _, budget := range budgets {
		league := &model.League{TotalBudget: budget}
		topCap := tuning.TopCap(budget)
		for id, r := range New(tuning).Value(Input{Players: players, League: league, TeamCount: 12}) {
			assert.GreaterOrEqual(t, r.ProjectedValue, 1, "player %s budget %d", id, budget)
			assert.LessOrEqual(t, r.ProjectedValue, topCap, "player %s budget %d", id, budget)
		}
	}
}

func TestValue_draftedPoolFallsBackToAllPlayers(t *testing.T) {
	league := &model.League{TotalBudget: 260}
	players := []model.Player{
		newPlayer("a", []model.Position{model.POS_OF}, 10, model.Projections{"HR": 40.0}),
		newPlayer("b", []model.Position{model.POS_OF}, 100, model.Projections{"HR": 10.0}),
	}
	players[0].IsDrafted = true
	players[1].IsDrafted = true

	results := New(DefaultTuning()).Value(Input{Players: players, League: league, TeamCount: 2})
	require.Len(t, results, 2)
	assert.Greater(t, results["a"].ProjectedValue, results["b"].ProjectedValue)
	assert.NotZero(t, results["a"].Valuation.CategoryScore)
}

func TestValue_emptyPool(t *testing.T) {
	results := New(DefaultTuning()).Value(Input{League: &model.League{}})
	assert.Empty(t, results)
}

func TestTopCap(t *testing.T) {
	tuning := DefaultTuning()
	tests := map[string]struct {
		budget   int
		expected int
	}{
		"default budget": {budget: 260, expected: 62},
		"unset budget":   {budget: 0, expected: 62},
		"small league":   {budget: 100, expected: 35},
		"huge league":    {budget: 1000, expected: 75},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tuning.TopCap(tc.budget))
		})
	}
}
