package model

import "time"

type DraftPhase string

const (
	PhaseKeeper DraftPhase = "KEEPER"
	PhaseMain   DraftPhase = "MAIN"
	PhaseTaxi   DraftPhase = "TAXI"
)

const (
	DefaultTotalBudget = 260
	DefaultBenchSlots  = 6
)

// RosterSlots maps a main roster position to the number of slots each team has for it.
type RosterSlots map[Position]int

func DefaultRosterSlots() RosterSlots {
	return RosterSlots{
		POS_C:    2,
		POS_1B:   1,
		POS_2B:   1,
		POS_3B:   1,
		POS_SS:   1,
		POS_OF:   5,
		POS_UTIL: 1,
		POS_P:    9,
	}
}

// NormalizeRosterSlots resolves a configured slot map into one that always has a
// positive total. Positions that are missing or negative take their default count,
// and a map whose counts are all zero is replaced by the defaults entirely.
func NormalizeRosterSlots(s RosterSlots) RosterSlots {
	defaults := DefaultRosterSlots()
	result := make(RosterSlots, len(defaults))
	hasPositive := false
	for _, pos := range MainRosterPositions {
		count, found := s[pos]
		if !found || count < 0 {
			count = defaults[pos]
		}
		result[pos] = count
		if count > 0 {
			hasPositive = true
		}
	}
	if !hasPositive {
		return defaults
	}
	return result
}

// Total is the number of main roster slots across all positions.
func (s RosterSlots) Total() int {
	total := 0
	for _, count := range s {
		if count > 0 {
			total += count
		}
	}
	return total
}

type League struct {
	ID                 string      `json:"id"`
	Name               string      `json:"name"`
	TotalBudget        int         `json:"totalBudget"`
	RosterSlots        RosterSlots `json:"rosterSlots"`
	BenchSlots         int         `json:"benchSlots"`
	ScoringCategories  []Category  `json:"scoringCategories"`
	DraftPhase         DraftPhase  `json:"draftPhase"`
	KeeperFinalized    bool        `json:"keeperFinalized"`
	KeeperFinalizedAt  *time.Time  `json:"keeperFinalizedAt,omitempty"`
	TaxiRoundStartedAt *time.Time  `json:"taxiRoundStartedAt,omitempty"`
	Created            time.Time   `json:"createdAt"`
}

// Slots is the effective roster slot configuration.
func (l *League) Slots() RosterSlots {
	return NormalizeRosterSlots(l.RosterSlots)
}

// Bench is the effective bench slot count. Negative values use the default.
func (l *League) Bench() int {
	if l.BenchSlots < 0 {
		return DefaultBenchSlots
	}
	return l.BenchSlots
}

// Budget is the effective per-team budget. Unset or non-positive values use the default.
func (l *League) Budget() int {
	if l.TotalBudget <= 0 {
		return DefaultTotalBudget
	}
	return l.TotalBudget
}

func (l *League) Categories() []Category {
	return NormalizeCategories(l.ScoringCategories)
}

// Phase is the stored draft phase, defaulting to MAIN.
func (l *League) Phase() DraftPhase {
	if l.DraftPhase == PhaseTaxi {
		return PhaseTaxi
	}
	return PhaseMain
}

// ApplyDefaults fills in unset configuration on a newly created league.
func (l *League) ApplyDefaults() {
	if l.TotalBudget <= 0 {
		l.TotalBudget = DefaultTotalBudget
	}
	if l.RosterSlots == nil {
		l.RosterSlots = DefaultRosterSlots()
	} else {
		l.RosterSlots = NormalizeRosterSlots(l.RosterSlots)
	}
	if l.BenchSlots < 0 {
		l.BenchSlots = DefaultBenchSlots
	}
	l.ScoringCategories = NormalizeCategories(l.ScoringCategories)
	if l.DraftPhase == "" {
		l.DraftPhase = PhaseMain
	}
}
