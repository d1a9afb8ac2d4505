// Package analysis builds the post-draft report for a league: projected category
// totals per team, the head-to-head outlook of "my team" against every other team,
// its category strengths and weaknesses, and flat rows for exporting.
package analysis

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/jchen-way/DraftOptimizer/model"
)

// TimestampFormat is used for every timestamp in exported rows.
const TimestampFormat = "2006-01-02T15:04:05.000Z07:00"

const (
	ResultWin    = "Likely win"
	ResultLoss   = "Likely loss"
	ResultTossUp = "Toss-up"

	noMyTeamText = `Set one team as "My Team" to generate strengths and weaknesses.`

	maxListedCategories = 4
	maxEdges            = 3
)

type Input struct {
	League  *model.League
	Teams   []model.Team
	Players []model.Player
	// History in any order. Draft log rows are always chronological.
	History []model.DraftHistoryEntry
}

type Report struct {
	GeneratedAt    time.Time      `json:"generatedAt"`
	League         LeagueSummary  `json:"league"`
	MyTeamID       *string        `json:"myTeamId"`
	MyTeamSummary  *TeamSummary   `json:"myTeamSummary"`
	TeamSummaries  []TeamSummary  `json:"teamSummaries"`
	MatchupOutlook []Matchup      `json:"matchupOutlook"`
	Strengths      []CategoryEdge `json:"strengths"`
	Weaknesses     []CategoryEdge `json:"weaknesses"`
	SummaryText    string         `json:"summaryText"`
	Exports        Exports        `json:"exports"`
}

type LeagueSummary struct {
	LeagueID          string           `json:"leagueId"`
	Name              string           `json:"name"`
	ScoringCategories []model.Category `json:"scoringCategories"`
}

type TeamSummary struct {
	TeamID          string                     `json:"teamId"`
	OwnerName       string                     `json:"ownerName"`
	TeamName        string                     `json:"teamName"`
	IsMyTeam        bool                       `json:"isMyTeam"`
	BudgetRemaining int                        `json:"budgetRemaining"`
	RosterSize      int                        `json:"rosterSize"`
	RosterRows      []RosterRow                `json:"rosterRows,omitempty"`
	CategoryTotals  map[model.Category]float64 `json:"categoryTotals"`
}

// RosterRow is one rostered player. Stats only holds the categories the player
// has a projection for.
type RosterRow struct {
	TeamID            string                     `json:"teamId"`
	OwnerName         string                     `json:"ownerName"`
	TeamName          string                     `json:"teamName"`
	PlayerID          string                     `json:"playerId"`
	PlayerName        string                     `json:"playerName"`
	MLBTeam           string                     `json:"mlbTeam"`
	RosterPosition    model.Position             `json:"rosterPosition"`
	DraftPhase        model.DraftPhase           `json:"draftPhase"`
	Cost              int                        `json:"cost"`
	ProjectedValue    int                        `json:"projectedValue"`
	EligiblePositions string                     `json:"eligiblePositions"`
	Stats             map[model.Category]float64 `json:"stats"`
}

type CategoryRecord struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Ties   int `json:"ties"`
}

type Matchup struct {
	OpponentTeamID    string           `json:"opponentTeamId"`
	OpponentOwnerName string           `json:"opponentOwnerName"`
	OpponentTeamName  string           `json:"opponentTeamName"`
	ProjectedResult   string           `json:"projectedResult"`
	CategoryRecord    CategoryRecord   `json:"categoryRecord"`
	WinningCategories []model.Category `json:"winningCategories"`
	LosingCategories  []model.Category `json:"losingCategories"`
}

// CategoryEdge is the direction adjusted z-score of my team's total in a category.
type CategoryEdge struct {
	Category      model.Category `json:"category"`
	Edge          float64        `json:"edge"`
	MyValue       float64        `json:"myValue"`
	LeagueAverage float64        `json:"leagueAverage"`
}

type Exports struct {
	MyRosterRows  []RosterRow   `json:"myRosterRows"`
	AllRosterRows []RosterRow   `json:"allRosterRows"`
	DraftLogRows  []DraftLogRow `json:"draftLogRows"`
}

type DraftLogRow struct {
	PickNumber int              `json:"pickNumber"`
	Timestamp  string           `json:"timestamp"`
	Phase      model.DraftPhase `json:"phase"`
	PlayerName string           `json:"playerName"`
	TeamOwner  string           `json:"teamOwner"`
	TeamName   string           `json:"teamName"`
	Amount     int              `json:"amount"`
}

// Build assembles the report. It does not check whether the draft is complete.
func Build(in Input, now time.Time) *Report {
	var categories []model.Category
	r := &Report{GeneratedAt: now.UTC()}
	if in.League != nil {
		categories = in.League.Categories()
		r.League = LeagueSummary{LeagueID: in.League.ID, Name: in.League.Name}
	} else {
		categories = model.NormalizeCategories(nil)
	}
	r.League.ScoringCategories = categories

	players := make(map[string]*model.Player, len(in.Players))
	for i := range in.Players {
		players[in.Players[i].ID] = &in.Players[i]
	}

	summaries := make([]TeamSummary, 0, len(in.Teams))
	for i := range in.Teams {
		summaries = append(summaries, summarize(&in.Teams[i], players, categories))
	}
	my := myTeam(summaries)

	r.TeamSummaries = make([]TeamSummary, 0, len(summaries))
	r.Exports.AllRosterRows = []RosterRow{}
	r.Exports.MyRosterRows = []RosterRow{}
	for _, s := range summaries {
		r.Exports.AllRosterRows = append(r.Exports.AllRosterRows, s.RosterRows...)
		s.RosterRows = nil
		r.TeamSummaries = append(r.TeamSummaries, s)
	}

	r.MatchupOutlook = matchups(my, summaries, categories)
	r.Strengths, r.Weaknesses, r.SummaryText = edges(my, summaries, categories)
	if my != nil {
		r.MyTeamID = &my.TeamID
		r.MyTeamSummary = my
		r.Exports.MyRosterRows = my.RosterRows
	}

	teams := make(map[string]*model.Team, len(in.Teams))
	for i := range in.Teams {
		teams[in.Teams[i].ID] = &in.Teams[i]
	}
	r.Exports.DraftLogRows = DraftLog(in.History, players, teams)
	return r
}

// myTeam is the flagged team, or the first one when no team is flagged.
func myTeam(summaries []TeamSummary) *TeamSummary {
	if len(summaries) == 0 {
		return nil
	}
	for i := range summaries {
		if summaries[i].IsMyTeam {
			s := summaries[i]
			return &s
		}
	}
	s := summaries[0]
	return &s
}

func summarize(t *model.Team, players map[string]*model.Player, categories []model.Category) TeamSummary {
	rows := rosterRows(t, players, categories)
	return TeamSummary{
		TeamID:          t.ID,
		OwnerName:       t.OwnerName,
		TeamName:        t.TeamName,
		IsMyTeam:        t.IsMyTeam,
		BudgetRemaining: t.Budget.Remaining,
		RosterSize:      len(rows),
		RosterRows:      rows,
		CategoryTotals:  categoryTotals(rows, categories),
	}
}

func rosterRows(t *model.Team, players map[string]*model.Player, categories []model.Category) []RosterRow {
	rows := make([]RosterRow, 0, len(t.Roster))
	for _, slot := range t.Roster {
		if slot.PlayerID == "" {
			continue
		}
		p, found := players[slot.PlayerID]
		if !found {
			continue
		}

		row := RosterRow{
			TeamID:         t.ID,
			OwnerName:      t.OwnerName,
			TeamName:       t.TeamName,
			PlayerID:       p.ID,
			PlayerName:     p.Name,
			MLBTeam:        p.MLBTeam,
			RosterPosition: model.Position(strings.ToUpper(string(slot.Position))),
			DraftPhase:     slot.DraftPhase,
			Cost:           slot.Cost,
			Stats:          make(map[model.Category]float64),
		}
		if row.PlayerName == "" {
			row.PlayerName = "Unknown Player"
		}
		if row.DraftPhase == "" {
			row.DraftPhase = model.PhaseMain
		}
		if p.ProjectedValue != nil {
			row.ProjectedValue = *p.ProjectedValue
		}
		positions := make([]string, len(p.EligiblePositions))
		for i, pos := range p.EligiblePositions {
			positions[i] = string(pos)
		}
		row.EligiblePositions = strings.Join(positions, ", ")

		for _, c := range categories {
			if v, ok := c.Value(p.Projections); ok {
				row.Stats[c] = FormatValue(c, v)
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// categoryTotals sums counting categories and averages rate categories over the
// players that have a value. Categories nobody has a value for total 0.
func categoryTotals(rows []RosterRow, categories []model.Category) map[model.Category]float64 {
	totals := make(map[model.Category]float64, len(categories))
	for _, c := range categories {
		var values []float64
		for _, row := range rows {
			if v, found := row.Stats[c]; found {
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			totals[c] = 0
			continue
		}
		aggregate := sum(values)
		if c.IsRate() {
			aggregate = mean(values)
		}
		totals[c] = FormatValue(c, aggregate)
	}
	return totals
}

type outcome int

const (
	tie outcome = iota
	win
	loss
)

// compare decides a category between two totals. The tolerance is tighter for
// categories where lower is better.
func compare(mine, theirs, direction float64) outcome {
	epsilon := 0.01
	if direction == -1 {
		epsilon = 0.001
	}
	delta := (mine - theirs) * direction
	if math.Abs(delta) <= epsilon {
		return tie
	}
	if delta > 0 {
		return win
	}
	return loss
}

func matchups(my *TeamSummary, summaries []TeamSummary, categories []model.Category) []Matchup {
	result := []Matchup{}
	if my == nil {
		return result
	}

	for _, opp := range summaries {
		if opp.TeamID == my.TeamID {
			continue
		}
		m := Matchup{
			OpponentTeamID:    opp.TeamID,
			OpponentOwnerName: opp.OwnerName,
			OpponentTeamName:  opp.TeamName,
			WinningCategories: []model.Category{},
			LosingCategories:  []model.Category{},
		}
		for _, c := range categories {
			switch compare(my.CategoryTotals[c], opp.CategoryTotals[c], c.Direction()) {
			case win:
				m.CategoryRecord.Wins++
				m.WinningCategories = append(m.WinningCategories, c)
			case loss:
				m.CategoryRecord.Losses++
				m.LosingCategories = append(m.LosingCategories, c)
			default:
				m.CategoryRecord.Ties++
			}
		}

		switch {
		case m.CategoryRecord.Wins > m.CategoryRecord.Losses:
			m.ProjectedResult = ResultWin
		case m.CategoryRecord.Losses > m.CategoryRecord.Wins:
			m.ProjectedResult = ResultLoss
		default:
			m.ProjectedResult = ResultTossUp
		}
		m.WinningCategories = m.WinningCategories[:min(len(m.WinningCategories), maxListedCategories)]
		m.LosingCategories = m.LosingCategories[:min(len(m.LosingCategories), maxListedCategories)]
		result = append(result, m)
	}

	slices.SortStableFunc(result, func(a, b Matchup) int {
		diffA := a.CategoryRecord.Wins - a.CategoryRecord.Losses
		diffB := b.CategoryRecord.Wins - b.CategoryRecord.Losses
		return diffB - diffA
	})
	return result
}

func edges(my *TeamSummary, summaries []TeamSummary, categories []model.Category) (strengths, weaknesses []CategoryEdge, text string) {
	strengths, weaknesses = []CategoryEdge{}, []CategoryEdge{}
	if my == nil {
		return strengths, weaknesses, noMyTeamText
	}

	for _, c := range categories {
		values := make([]float64, len(summaries))
		for i, s := range summaries {
			values[i] = s.CategoryTotals[c]
		}
		baseline := mean(values)
		myValue := my.CategoryTotals[c]
		edge := CategoryEdge{
			Category:      c,
			Edge:          roundTo((myValue-baseline)/stdDev(values)*c.Direction(), 2),
			MyValue:       myValue,
			LeagueAverage: FormatValue(c, baseline),
		}
		if edge.Edge >= 0 {
			strengths = append(strengths, edge)
		} else {
			weaknesses = append(weaknesses, edge)
		}
	}

	slices.SortStableFunc(strengths, func(a, b CategoryEdge) int { return cmp.Compare(b.Edge, a.Edge) })
	slices.SortStableFunc(weaknesses, func(a, b CategoryEdge) int { return cmp.Compare(a.Edge, b.Edge) })
	strengths = strengths[:min(len(strengths), maxEdges)]
	weaknesses = weaknesses[:min(len(weaknesses), maxEdges)]

	strengthText := "No category stands out as a clear strength yet."
	if len(strengths) > 0 {
		strengthText = fmt.Sprintf("Top strengths: %s.", joinCategories(strengths))
	}
	weaknessText := "No clear weaknesses detected from available projections."
	if len(weaknesses) > 0 {
		weaknessText = fmt.Sprintf("Main weaknesses: %s.", joinCategories(weaknesses))
	}
	return strengths, weaknesses, strengthText + " " + weaknessText
}

func joinCategories(edges []CategoryEdge) string {
	names := make([]string, len(edges))
	for i, e := range edges {
		names[i] = string(e.Category)
	}
	return strings.Join(names, ", ")
}

// DraftLog lists history entries oldest first with player and team names resolved.
// Unknown players or teams leave the names empty.
func DraftLog(history []model.DraftHistoryEntry, players map[string]*model.Player, teams map[string]*model.Team) []DraftLogRow {
	ordered := slices.Clone(history)
	slices.SortStableFunc(ordered, func(a, b model.DraftHistoryEntry) int {
		return model.CompareHistoryDesc(b, a)
	})

	rows := make([]DraftLogRow, 0, len(ordered))
	for i, e := range ordered {
		row := DraftLogRow{
			PickNumber: i + 1,
			Phase:      model.DraftPhase(strings.ToUpper(string(e.Phase))),
			Amount:     e.Amount,
		}
		if !e.Created.IsZero() {
			row.Timestamp = e.Created.UTC().Format(TimestampFormat)
		}
		if p, found := players[e.PlayerID]; found {
			row.PlayerName = p.Name
		}
		if t, found := teams[e.TeamID]; found {
			row.TeamOwner = t.OwnerName
			row.TeamName = t.TeamName
		}
		rows = append(rows, row)
	}
	return rows
}

// FormatValue rounds rate categories to three decimals and counting categories to one.
func FormatValue(c model.Category, v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if c.IsRate() {
		return roundTo(v, 3)
	}
	return roundTo(v, 1)
}
