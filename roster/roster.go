// Package roster answers capacity and budget questions about a team's roster:
// how many main slots remain, which positions are open for a player and how much
// the team may legally bid.
package roster

import (
	"strings"

	"github.com/jchen-way/DraftOptimizer/model"
)

// MainRosterCounts counts non-taxi roster entries per main position. Entries at
// positions outside the main set are ignored.
func MainRosterCounts(team *model.Team) map[model.Position]int {
	counts := make(map[model.Position]int, len(model.MainRosterPositions))
	for _, pos := range model.MainRosterPositions {
		counts[pos] = 0
	}
	for _, slot := range team.Roster {
		if slot.DraftPhase == model.PhaseTaxi {
			continue
		}
		pos := model.Position(strings.ToUpper(string(slot.Position)))
		if !model.IsMainPosition(pos) {
			continue
		}
		counts[pos]++
	}
	return counts
}

// TotalMainSlots is the number of main roster slots each team must fill.
func TotalMainSlots(league *model.League) int {
	return league.Slots().Total()
}

// MainFilledCount is the number of main slots occupied, with every position capped
// at its configured maximum.
func MainFilledCount(team *model.Team, league *model.League) int {
	slots := league.Slots()
	counts := MainRosterCounts(team)
	filled := 0
	for pos, limit := range slots {
		if limit <= 0 {
			continue
		}
		filled += min(counts[pos], limit)
	}
	return filled
}

func MainSlotsLeft(team *model.Team, league *model.League) int {
	return max(0, TotalMainSlots(league)-MainFilledCount(team, league))
}

// EligibleOpenPositions filters a player's eligible positions down to the main
// roster positions that are configured and still have room on the team. The order
// of eligible is kept, so the first element is the slot a new acquisition takes.
func EligibleOpenPositions(team *model.Team, league *model.League, eligible []model.Position) []model.Position {
	slots := league.Slots()
	counts := MainRosterCounts(team)

	result := make([]model.Position, 0, len(eligible))
	seen := make(map[model.Position]bool)
	for _, raw := range eligible {
		pos := model.Position(strings.ToUpper(strings.TrimSpace(string(raw))))
		if pos == "" || seen[pos] {
			continue
		}
		seen[pos] = true

		if !model.IsMainPosition(pos) {
			continue
		}
		if limit := slots[pos]; limit <= 0 || counts[pos] >= limit {
			continue
		}
		result = append(result, pos)
	}
	return result
}

// MaxBid keeps $1 in reserve for every other open main slot so a team can always
// complete its roster.
func MaxBid(team *model.Team, league *model.League) int {
	return max(0, team.Budget.Remaining-max(0, MainSlotsLeft(team, league)-1))
}

// TaxiFilledCount counts entries taken in the taxi round or parked on the bench.
func TaxiFilledCount(team *model.Team) int {
	filled := 0
	for _, slot := range team.Roster {
		if slot.DraftPhase == model.PhaseTaxi || strings.ToUpper(string(slot.Position)) == string(model.POS_BENCH) {
			filled++
		}
	}
	return filled
}

func TaxiSlotsLeft(team *model.Team, league *model.League) int {
	return max(0, league.Bench()-TaxiFilledCount(team))
}

// AllTeamsMainRostersFull is false when there are no teams.
func AllTeamsMainRostersFull(teams []model.Team, league *model.League) bool {
	if len(teams) == 0 {
		return false
	}
	for i := range teams {
		if MainSlotsLeft(&teams[i], league) != 0 {
			return false
		}
	}
	return true
}

// TaxiRoundComplete reports whether the league is in the taxi round and every
// team has used all of its bench slots.
func TaxiRoundComplete(teams []model.Team, league *model.League) bool {
	if league.Phase() != model.PhaseTaxi || league.Bench() <= 0 || len(teams) == 0 {
		return false
	}
	for i := range teams {
		if TaxiSlotsLeft(&teams[i], league) != 0 {
			return false
		}
	}
	return true
}

// Guard is the bid capacity of a team at one point in time.
type Guard struct {
	Remaining     int              `json:"remaining"`
	MainSlotsLeft int              `json:"mainSlotsLeft"`
	TaxiSlotsLeft int              `json:"taxiSlotsLeft"`
	MaxBid        int              `json:"maxBid"`
	OpenPositions []model.Position `json:"openPositions,omitempty"`
}

// GuardFor summarizes the limits that apply to team, optionally for a specific
// player's eligible positions.
func GuardFor(team *model.Team, league *model.League, eligible []model.Position) Guard {
	g := Guard{
		Remaining:     team.Budget.Remaining,
		MainSlotsLeft: MainSlotsLeft(team, league),
		TaxiSlotsLeft: TaxiSlotsLeft(team, league),
		MaxBid:        MaxBid(team, league),
	}
	if len(eligible) > 0 {
		g.OpenPositions = EligibleOpenPositions(team, league, eligible)
	}
	return g
}
