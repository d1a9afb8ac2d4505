package valuation

import "github.com/jchen-way/DraftOptimizer/model"

const (
	hitterBaselineRisk  = 0.045
	pitcherBaselineRisk = 0.08

	minInjuryRisk = 0.03
	maxInjuryRisk = 0.5

	fullSeasonGames      = 162
	ilDaysNormalizer     = 190
	hitterExpectedGames  = 155
	pitcherExpectedGames = 30
	starterInnings       = 175
	starterRoleInnings   = 165
	closerRoleInnings    = 68
	closerSaveThreshold  = 18
	agePenaltyStart      = 31
)

var (
	directRiskKeys     = []string{"INJURY_RISK", "INJURY_RISK_PCT", "INJURY_PROB", "INJURY_PROBABILITY", "RISK"}
	gamesMissedKeys    = []string{"GAMES_MISSED_PREV", "GAMES_MISSED", "MISSED_G", "INJURED_GAMES", "IL_G"}
	ilDaysKeys         = []string{"IL_DAYS_PREV", "IL_DAYS", "DAYS_ON_IL", "INJURY_DAYS"}
	projectedGamesKeys = []string{"G", "GP", "GAMES"}
	inningsKeys        = []string{"IP", "INNINGS", "IP_PROJ"}
	ageKeys            = []string{"AGE", "PLAYER_AGE"}
)

// EstimateInjuryRisk averages a baseline with every injury signal found in the
// player's projections. The result is a probability in [0.03, 0.5].
func EstimateInjuryRisk(p *model.Player) float64 {
	proj := p.Projections
	pitcher := p.IsPitcher()

	samples := make([]float64, 0, 6)
	if pitcher {
		samples = append(samples, pitcherBaselineRisk)
	} else {
		samples = append(samples, hitterBaselineRisk)
	}

	if risk, ok := model.ProjectionValue(proj, directRiskKeys...); ok {
		// values above 1 are percentages
		if risk > 1 {
			risk /= 100
		}
		samples = append(samples, clamp(risk, 0, 0.75))
	}

	if missed, ok := model.ProjectionValue(proj, gamesMissedKeys...); ok {
		samples = append(samples, clamp(missed/fullSeasonGames, 0, 0.65))
	}

	if days, ok := model.ProjectionValue(proj, ilDaysKeys...); ok {
		samples = append(samples, clamp(days/ilDaysNormalizer, 0, 0.65))
	}

	if games, ok := model.ProjectionValue(proj, projectedGamesKeys...); ok {
		expected := float64(hitterExpectedGames)
		if pitcher {
			expected = pitcherExpectedGames
		}
		samples = append(samples, clamp((expected-games)/expected, 0, 0.4))
	} else if !pitcher {
		if s, ok := hitterVolumeRisk(proj); ok {
			samples = append(samples, s)
		}
	}

	if pitcher {
		if innings, ok := model.ProjectionValue(proj, inningsKeys...); ok {
			samples = append(samples, clamp((starterInnings-innings)/starterInnings, 0, 0.35))
		} else if s, ok := pitcherWorkloadRisk(proj); ok {
			samples = append(samples, s)
		}
	}

	if age, ok := model.ProjectionValue(proj, ageKeys...); ok && age > agePenaltyStart {
		samples = append(samples, clamp((age-agePenaltyStart)*0.012, 0, 0.14))
	}

	return clamp(mean(samples), minInjuryRisk, maxInjuryRisk)
}

// hitterVolumeRisk infers playing time from counting stats when no games
// projection is available.
func hitterVolumeRisk(proj model.Projections) (float64, bool) {
	runs, hasR := model.CAT_R.Value(proj)
	rbi, hasRBI := model.CAT_RBI.Value(proj)
	hr, hasHR := model.CAT_HR.Value(proj)
	sb, hasSB := model.CAT_SB.Value(proj)
	if !hasR && !hasRBI && !hasHR && !hasSB {
		return 0, false
	}

	volume := runs + rbi + hr*1.8 + sb*0.7
	impliedGames := clamp(78+volume*0.33, 70, fullSeasonGames)
	return clamp((hitterExpectedGames-impliedGames)/hitterExpectedGames, 0, 0.34), true
}

// pitcherWorkloadRisk infers innings from wins, strikeouts and saves and compares
// them to what a starter or closer is expected to throw.
func pitcherWorkloadRisk(proj model.Projections) (float64, bool) {
	inferred := make([]float64, 0, 3)
	if k, ok := model.CAT_K.Value(proj); ok {
		inferred = append(inferred, k/1.02)
	}
	if w, ok := model.CAT_W.Value(proj); ok {
		inferred = append(inferred, w*13)
	}
	saves, hasSaves := model.CAT_SV.Value(proj)
	if hasSaves {
		inferred = append(inferred, saves*2.2)
	}
	if len(inferred) == 0 {
		return 0, false
	}

	expected := float64(starterRoleInnings)
	if hasSaves && saves >= closerSaveThreshold {
		expected = closerRoleInnings
	}
	return clamp((expected-mean(inferred))/expected, 0, 0.34), true
}
