package valuation

import (
	"slices"

	"github.com/jchen-way/DraftOptimizer/model"
	"github.com/jchen-way/DraftOptimizer/roster"
)

// Demand is the number of roster slots still to be filled per position. With team
// rosters available it is the total of open slots across teams; otherwise every one
// of teamCount teams is assumed to need every configured slot.
func Demand(slots model.RosterSlots, teams []model.Team, teamCount int) map[model.Position]int {
	demand := make(map[model.Position]int, len(slots))

	if len(teams) == 0 {
		teamCount = max(1, teamCount)
		for pos, count := range slots {
			if count > 0 {
				demand[pos] = teamCount * count
			}
		}
		return demand
	}

	for pos, count := range slots {
		if count <= 0 {
			continue
		}
		missing := 0
		for i := range teams {
			filled := roster.MainRosterCounts(&teams[i])[pos]
			missing += max(0, count-filled)
		}
		demand[pos] = missing
	}
	return demand
}

type scored struct {
	player    *model.Player
	baseScore float64
}

// ScarcityFactors computes a multiplier per configured position from how many
// players are still needed there and how steeply quality falls off.
func (t Tuning) ScarcityFactors(rows []scored, slots model.RosterSlots, demand map[model.Position]int) map[model.Position]float64 {
	positions := make([]model.Position, 0, len(slots))
	for _, pos := range model.MainRosterPositions {
		if slots[pos] > 0 {
			positions = append(positions, pos)
		}
	}
	if len(positions) == 0 {
		return map[model.Position]float64{}
	}

	countPressure := make(map[model.Position]float64, len(positions))
	qualityDrop := make(map[model.Position]float64, len(positions))
	supply := make(map[model.Position]int, len(positions))

	for _, pos := range positions {
		scores := make([]float64, 0, len(rows))
		for _, r := range rows {
			if r.player.IsEligible(pos) {
				scores = append(scores, r.baseScore)
			}
		}
		d := demand[pos]
		supply[pos] = len(scores)
		if d > 0 {
			countPressure[pos] = float64(d) / float64(max(1, len(scores)))
		}
		if len(scores) == 0 {
			continue
		}
		qualityDrop[pos] = t.qualityDrop(scores, d)
	}

	countBaseline, _ := positiveBaseline(countPressure)
	qualityBaseline, hasQuality := positiveBaseline(qualityDrop)

	factors := make(map[model.Position]float64, len(positions))
	for _, pos := range positions {
		normalizedCount := countPressure[pos] / countBaseline
		normalizedQuality := 1.0
		if hasQuality {
			normalizedQuality = qualityDrop[pos] / qualityBaseline
		}
		composite := normalizedCount*t.CountWeight + normalizedQuality*t.QualityWeight

		d, s := demand[pos], supply[pos]
		shortage := 0.0
		if d > 0 {
			shortage = clamp(float64(d-s)/float64(d), 0, 1)
		}
		thinSupply := 0.0
		if s <= 2 {
			thinSupply = float64(3-s) * t.ThinSupplyStep
		}
		boost := 1 + shortage*t.ShortageWeight + thinSupply
		factors[pos] = clamp((1+(composite-1)*t.Dampening)*boost, t.FactorMin, t.FactorMax)
	}
	return factors
}

// qualityDrop is the gap between the elite players at a position and those that
// will be left once demand is met.
func (t Tuning) qualityDrop(scores []float64, demand int) float64 {
	slices.SortFunc(scores, func(a, b float64) int {
		switch {
		case a > b:
			return -1
		case a < b:
			return 1
		}
		return 0
	})

	cutoff := demand
	if cutoff <= 0 {
		cutoff = 1
	}
	cutoff = max(1, min(len(scores), cutoff))

	elite := scores[:max(1, min(t.EliteWindow, cutoff))]
	start := max(0, min(len(scores)-1, cutoff-1))
	replacement := scores[start:min(len(scores), start+t.ReplacementWindow)]
	if len(replacement) == 0 {
		replacement = scores[len(scores)-1:]
	}
	return max(0, mean(elite)-mean(replacement))
}

// positiveBaseline is the mean of the positive values, or 1 when there are none.
func positiveBaseline(values map[model.Position]float64) (float64, bool) {
	positives := make([]float64, 0, len(values))
	for _, v := range values {
		if v > 0 {
			positives = append(positives, v)
		}
	}
	if len(positives) == 0 {
		return 1, false
	}
	return mean(positives), true
}
