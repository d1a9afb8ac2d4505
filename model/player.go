package model

import (
	"slices"
	"strings"
	"time"
)

// Projections holds raw projected stats keyed by whatever name the source used.
// Values are numbers or strings that may parse as numbers.
type Projections map[string]any

type Player struct {
	ID                string      `json:"id"`
	LeagueID          string      `json:"leagueId"`
	Name              string      `json:"name"`
	MLBTeam           string      `json:"mlbTeam"`
	EligiblePositions []Position  `json:"eligiblePositions"`
	Projections       Projections `json:"projections"`
	ADP               *float64    `json:"adp,omitempty"`
	ProjectedValue    *int        `json:"projectedValue,omitempty"`
	IsDrafted         bool        `json:"isDrafted"`
	DraftedBy         string      `json:"draftedBy,omitempty"`
	DraftedFor        int         `json:"draftedFor"`
	DraftPhase        DraftPhase  `json:"draftPhase,omitempty"`
	ActivePosition    Position    `json:"activePosition,omitempty"`
	Created           time.Time   `json:"createdAt"`
}

func (p *Player) IsEligible(pos Position) bool {
	return slices.Contains(p.EligiblePositions, pos)
}

func (p *Player) IsPitcher() bool {
	return p.IsEligible(POS_P)
}

// MarkDrafted records the acquisition of the player by a team.
func (p *Player) MarkDrafted(teamID string, amount int, phase DraftPhase, pos Position) {
	p.IsDrafted = true
	p.DraftedBy = teamID
	p.DraftedFor = amount
	p.DraftPhase = phase
	p.ActivePosition = pos
}

// ResetDraft returns the player to the undrafted pool.
func (p *Player) ResetDraft() {
	p.IsDrafted = false
	p.DraftedBy = ""
	p.DraftedFor = 0
	p.DraftPhase = ""
	p.ActivePosition = ""
}

func (p *Player) Clone() *Player {
	c := *p
	c.EligiblePositions = append([]Position(nil), p.EligiblePositions...)
	return &c
}

// PlayerDedupeKey identifies a player within a league for import purposes.
func PlayerDedupeKey(name, mlbTeam string) string {
	return strings.ToLower(strings.TrimSpace(name)) + "::" + strings.ToUpper(strings.TrimSpace(mlbTeam))
}
