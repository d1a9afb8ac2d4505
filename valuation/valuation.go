// Package valuation prices every player in a league's pool. Projections are turned
// into per-category z-scores, blended with ADP, discounted for injury risk, adjusted
// for positional scarcity and finally mapped onto a dollar scale bounded by the
// league budget.
package valuation

import (
	"math"

	"github.com/jchen-way/DraftOptimizer/model"
)

// ModelVersion identifies the scoring algorithm revision in every result.
const ModelVersion = "stats-v5"

type Details struct {
	ModelVersion    string                     `json:"modelVersion"`
	CategoryScore   float64                    `json:"categoryScore"`
	ADPSignal       float64                    `json:"adpSignal"`
	InjuryRiskPct   float64                    `json:"injuryRiskPct"`
	ScarcityFactor  float64                    `json:"scarcityFactor"`
	PositionFactors map[model.Position]float64 `json:"positionFactors"`
}

type Result struct {
	ProjectedValue int     `json:"projectedValue"`
	Valuation      Details `json:"valuation"`
}

// Input is a consistent snapshot of everything the model reads.
type Input struct {
	Players   []model.Player
	League    *model.League
	TeamCount int
	// Teams is optional. When present, demand is derived from open roster slots.
	Teams []model.Team
}

type Valuator struct {
	tuning Tuning
}

func New(tuning Tuning) *Valuator {
	return &Valuator{tuning: tuning}
}

type categoryStats struct {
	mean  float64
	std   float64
	count int
}

type row struct {
	scored
	categoryScore float64
	adpSignal     float64
	injuryRisk    float64
}

// Value returns a result for every player in the input keyed by player ID.
func (v *Valuator) Value(in Input) map[string]Result {
	results := make(map[string]Result, len(in.Players))
	if len(in.Players) == 0 {
		return results
	}
	t := v.tuning

	population := valuationPopulation(in.Players)
	inPopulation := make(map[string]bool, len(population))
	for _, p := range population {
		inPopulation[p.ID] = true
	}

	slots := in.League.Slots()
	demand := Demand(slots, in.Teams, in.TeamCount)
	categories := in.League.Categories()
	stats := buildCategoryStats(population, categories)

	adps := make([]float64, 0, len(population))
	for _, p := range population {
		if p.ADP != nil && !math.IsNaN(*p.ADP) && !math.IsInf(*p.ADP, 0) {
			adps = append(adps, *p.ADP)
		}
	}
	adpMean, adpStd := mean(adps), stdDev(adps)

	rows := make([]row, len(in.Players))
	for i := range in.Players {
		p := &in.Players[i]

		zScores := make([]float64, 0, len(categories))
		for _, c := range categories {
			value, ok := c.Value(p.Projections)
			if !ok {
				continue
			}
			s := stats[c]
			if s.count < 2 {
				continue
			}
			zScores = append(zScores, (value-s.mean)/s.std*c.Direction())
		}

		categoryScore := mean(zScores)
		coverage := float64(len(zScores)) / float64(len(categories))
		coverageFactor := clamp(t.CoverageFloor+coverage*(1-t.CoverageFloor), t.CoverageFloor, 1)

		adpSignal := 0.0
		if p.ADP != nil {
			adpSignal = (adpMean - *p.ADP) / adpStd
		}

		rawScore := categoryScore*coverageFactor + adpSignal*t.ADPWeight
		risk := EstimateInjuryRisk(p)

		rows[i] = row{
			scored:        scored{player: p, baseScore: rawScore * (1 - risk)},
			categoryScore: categoryScore,
			adpSignal:     adpSignal,
			injuryRisk:    risk,
		}
	}

	scarcityRows := make([]scored, 0, len(population))
	for _, r := range rows {
		if inPopulation[r.player.ID] {
			scarcityRows = append(scarcityRows, r.scored)
		}
	}
	factors := t.ScarcityFactors(scarcityRows, slots, demand)

	adjusted := make([]float64, len(rows))
	scarcity := make([]float64, len(rows))
	minScore, maxScore := math.Inf(1), math.Inf(-1)
	for i, r := range rows {
		scarcity[i] = bestFactor(r.player.EligiblePositions, factors)
		adjusted[i] = r.baseScore * scarcity[i]
		minScore = math.Min(minScore, adjusted[i])
		maxScore = math.Max(maxScore, adjusted[i])
	}

	spread := math.Max(0.0001, maxScore-minScore)
	topCap := t.TopCap(in.League.TotalBudget)

	for i, r := range rows {
		normalized := clamp((adjusted[i]-minScore)/spread, 0, 1)
		shaped := math.Pow(normalized, t.PriceExponent)
		value := max(1, int(roundHalfUp(1+shaped*float64(topCap-1))))

		positionFactors := make(map[model.Position]float64, len(r.player.EligiblePositions))
		for _, pos := range r.player.EligiblePositions {
			f, found := factors[pos]
			if !found {
				f = 1
			}
			positionFactors[pos] = roundTo(f, 3)
		}

		results[r.player.ID] = Result{
			ProjectedValue: value,
			Valuation: Details{
				ModelVersion:    ModelVersion,
				CategoryScore:   roundTo(r.categoryScore, 3),
				ADPSignal:       roundTo(r.adpSignal, 3),
				InjuryRiskPct:   roundTo(r.injuryRisk*100, 1),
				ScarcityFactor:  roundTo(scarcity[i], 3),
				PositionFactors: positionFactors,
			},
		}
	}

	return results
}

// valuationPopulation is the undrafted pool, or every player once the pool is empty
// so that pricing keeps working after the draft.
func valuationPopulation(players []model.Player) []*model.Player {
	population := make([]*model.Player, 0, len(players))
	for i := range players {
		if !players[i].IsDrafted {
			population = append(population, &players[i])
		}
	}
	if len(population) > 0 {
		return population
	}
	for i := range players {
		population = append(population, &players[i])
	}
	return population
}

func buildCategoryStats(population []*model.Player, categories []model.Category) map[model.Category]categoryStats {
	result := make(map[model.Category]categoryStats, len(categories))
	for _, c := range categories {
		values := make([]float64, 0, len(population))
		for _, p := range population {
			if v, ok := c.Value(p.Projections); ok {
				values = append(values, v)
			}
		}
		result[c] = categoryStats{mean: mean(values), std: stdDev(values), count: len(values)}
	}
	return result
}

// bestFactor is the largest scarcity factor among the positions, defaulting to 1.
func bestFactor(positions []model.Position, factors map[model.Position]float64) float64 {
	if len(positions) == 0 {
		return 1
	}
	best := math.Inf(-1)
	for _, pos := range positions {
		f, found := factors[pos]
		if !found {
			f = 1
		}
		best = math.Max(best, f)
	}
	return best
}
