package model

import "time"

type Budget struct {
	Total     int `json:"total"`
	Spent     int `json:"spent"`
	Remaining int `json:"remaining"`
}

// RosterSlot is one player occupying a position on a team.
type RosterSlot struct {
	PlayerID   string     `json:"playerId"`
	Position   Position   `json:"position"`
	Cost       int        `json:"cost"`
	DraftPhase DraftPhase `json:"draftPhase"`
}

type Team struct {
	ID        string       `json:"id"`
	LeagueID  string       `json:"leagueId"`
	OwnerName string       `json:"ownerName"`
	TeamName  string       `json:"teamName"`
	IsMyTeam  bool         `json:"isMyTeam"`
	Budget    Budget       `json:"budget"`
	Roster    []RosterSlot `json:"roster"`
	Created   time.Time    `json:"createdAt"`
}

// RecomputeBudget keeps Remaining in sync with Total and Spent. It must be called
// before every save.
func (t *Team) RecomputeBudget() {
	if t.Budget.Spent < 0 {
		t.Budget.Spent = 0
	}
	t.Budget.Remaining = t.Budget.Total - t.Budget.Spent
}

// DisplayName prefers the team name and falls back to the owner.
func (t *Team) DisplayName() string {
	if t.TeamName != "" {
		return t.TeamName
	}
	return t.OwnerName
}

// SlotIndex returns the index of the roster slot holding playerID, or -1.
func (t *Team) SlotIndex(playerID string) int {
	for i, s := range t.Roster {
		if s.PlayerID == playerID {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy so that a decision can be computed without touching
// the snapshot it was read from.
func (t *Team) Clone() *Team {
	c := *t
	c.Roster = append([]RosterSlot(nil), t.Roster...)
	return &c
}
