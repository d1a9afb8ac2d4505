package model

import (
	"slices"
	"time"
)

// DraftHistoryEntry is one logged draft action. Entries are only ever created or,
// by an undo, deleted.
type DraftHistoryEntry struct {
	ID       string     `json:"id"`
	Seq      int64      `json:"-"`
	LeagueID string     `json:"leagueId"`
	PlayerID string     `json:"playerId"`
	TeamID   string     `json:"teamId"`
	Amount   int        `json:"amount"`
	Phase    DraftPhase `json:"phase"`
	Created  time.Time  `json:"createdAt"`
}

// CompareHistoryDesc orders entries newest first. Seq breaks ties between entries
// created at the same instant.
func CompareHistoryDesc(a, b DraftHistoryEntry) int {
	if c := b.Created.Compare(a.Created); c != 0 {
		return c
	}
	switch {
	case b.Seq > a.Seq:
		return 1
	case b.Seq < a.Seq:
		return -1
	}
	return 0
}

// LatestEntry returns the most recent entry, or nil if there are none.
func LatestEntry(entries []DraftHistoryEntry) *DraftHistoryEntry {
	if len(entries) == 0 {
		return nil
	}
	latest := slices.MinFunc(entries, CompareHistoryDesc)
	return &latest
}

// HasPhase reports whether any entry was logged in phase.
func HasPhase(entries []DraftHistoryEntry, phase DraftPhase) bool {
	return slices.ContainsFunc(entries, func(e DraftHistoryEntry) bool {
		return e.Phase == phase
	})
}

// DraftMutation is the complete set of writes produced by one draft action. It is
// applied by the store in a single transaction.
type DraftMutation struct {
	League        *League
	Player        *Player
	Team          *Team
	AddHistory    *DraftHistoryEntry
	RemoveHistory *DraftHistoryEntry
}

// Empty reports whether the mutation writes nothing.
func (m *DraftMutation) Empty() bool {
	return m == nil || (m.League == nil && m.Player == nil && m.Team == nil && m.AddHistory == nil && m.RemoveHistory == nil)
}
